// Package vmmap provides read-only memory-mapped access to vstore files,
// for serving search traffic against a graph larger than comfortably fits
// copied into the heap. Grounded on
// original_source/DiskANNInRust/diskann-io/src/mmap.rs, which maps the same
// byte layout over memmap2 in the Rust implementation this system was
// distilled from; github.com/edsrzf/mmap-go is the Go ecosystem's
// equivalent, already present as a transitive dependency elsewhere in the
// pack for the same purpose.
package vmmap

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"github.com/edsrzf/mmap-go"
)

const vectorHeaderBytes = 8
const graphHeaderBytes = 8

// VectorView is a read-only mapping of a vstore vector file. Each point's
// bytes are decoded directly out of the mapped region on demand rather than
// read through the file descriptor, so repeated lookups over the same file
// avoid the syscall-per-Seek cost pkg/vstore.VectorFile pays.
type VectorView struct {
	file      *os.File
	mapping   mmap.MMap
	numPoints int32
	dimension int32
}

// OpenVectors maps path into memory and parses its header.
func OpenVectors(path string) (*VectorView, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("vmmap: open %s: %w", path, err)
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("vmmap: map %s: %w", path, err)
	}
	if len(m) < vectorHeaderBytes {
		m.Unmap()
		f.Close()
		return nil, fmt.Errorf("vmmap: %s is too short to contain a vector header", path)
	}
	numPoints := int32(binary.LittleEndian.Uint32(m[0:4]))
	dimension := int32(binary.LittleEndian.Uint32(m[4:8]))
	return &VectorView{file: f, mapping: m, numPoints: numPoints, dimension: dimension}, nil
}

// NumPoints returns the number of vectors in the mapped file.
func (v *VectorView) NumPoints() int { return int(v.numPoints) }

// Dimension returns the vector dimensionality of the mapped file.
func (v *VectorView) Dimension() int { return int(v.dimension) }

// Vector decodes and returns the i'th point. The returned slice is a fresh
// copy - float32 components can't be reinterpreted out of the mapped bytes
// without an unsafe cast this package avoids - but no read syscall or
// additional file-sized buffer is needed to produce it.
func (v *VectorView) Vector(i int) ([]float32, error) {
	if i < 0 || i >= int(v.numPoints) {
		return nil, fmt.Errorf("vmmap: point index %d out of range [0,%d)", i, v.numPoints)
	}
	recordBytes := int(v.dimension) * 4
	offset := vectorHeaderBytes + i*recordBytes
	if offset+recordBytes > len(v.mapping) {
		return nil, fmt.Errorf("vmmap: point %d extends past the end of the mapped file", i)
	}
	raw := v.mapping[offset : offset+recordBytes]
	out := make([]float32, v.dimension)
	for j := range out {
		bits := binary.LittleEndian.Uint32(raw[j*4 : j*4+4])
		out[j] = math.Float32frombits(bits)
	}
	return out, nil
}

// Close unmaps the file and releases the file handle.
func (v *VectorView) Close() error {
	if err := v.mapping.Unmap(); err != nil {
		return fmt.Errorf("vmmap: unmap: %w", err)
	}
	return v.file.Close()
}

// GraphView is a read-only mapping of a vstore graph file.
type GraphView struct {
	file     *os.File
	mapping  mmap.MMap
	numNodes uint32
	r        uint32
}

// OpenGraph maps path into memory and parses its header.
func OpenGraph(path string) (*GraphView, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("vmmap: open %s: %w", path, err)
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("vmmap: map %s: %w", path, err)
	}
	if len(m) < graphHeaderBytes {
		m.Unmap()
		f.Close()
		return nil, fmt.Errorf("vmmap: %s is too short to contain a graph header", path)
	}
	numNodes := binary.LittleEndian.Uint32(m[0:4])
	r := binary.LittleEndian.Uint32(m[4:8])
	return &GraphView{file: f, mapping: m, numNodes: numNodes, r: r}, nil
}

// NumNodes returns the number of nodes in the mapped graph.
func (g *GraphView) NumNodes() int { return int(g.numNodes) }

// R returns the maximum out-degree every record is padded to.
func (g *GraphView) R() int { return int(g.r) }

// Neighbors decodes and returns node i's neighbor ids, trimmed to its
// stored degree.
func (g *GraphView) Neighbors(i int) ([]uint32, error) {
	if i < 0 || i >= int(g.numNodes) {
		return nil, fmt.Errorf("vmmap: node index %d out of range [0,%d)", i, g.numNodes)
	}
	recordBytes := 4 + int(g.r)*4
	offset := graphHeaderBytes + i*recordBytes
	if offset+recordBytes > len(g.mapping) {
		return nil, fmt.Errorf("vmmap: node %d extends past the end of the mapped file", i)
	}
	raw := g.mapping[offset : offset+recordBytes]
	degree := binary.LittleEndian.Uint32(raw[0:4])
	if degree > g.r {
		return nil, fmt.Errorf("vmmap: node %d has stored degree %d exceeding R=%d", i, degree, g.r)
	}
	out := make([]uint32, degree)
	for j := range out {
		out[j] = binary.LittleEndian.Uint32(raw[4+j*4 : 8+j*4])
	}
	return out, nil
}

// Close unmaps the file and releases the file handle.
func (g *GraphView) Close() error {
	if err := g.mapping.Unmap(); err != nil {
		return fmt.Errorf("vmmap: unmap: %w", err)
	}
	return g.file.Close()
}
