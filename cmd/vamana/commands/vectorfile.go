package commands

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// readVectorFile parses a plain-text vector file: one vector per line,
// components comma-separated. Blank lines and lines starting with '#' are
// skipped so a file can carry a header comment.
func readVectorFile(path string) ([][]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var vectors [][]float32
	dim := -1
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, ",")
		vec := make([]float32, len(fields))
		for i, field := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 32)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: invalid component %q: %w", path, lineNo, field, err)
			}
			vec[i] = float32(v)
		}
		if dim == -1 {
			dim = len(vec)
		} else if len(vec) != dim {
			return nil, fmt.Errorf("%s:%d: expected %d components, got %d", path, lineNo, dim, len(vec))
		}
		vectors = append(vectors, vec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("%s: no vectors found", path)
	}
	return vectors, nil
}
