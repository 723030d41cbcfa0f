// Package vstore implements the fixed-record binary container the core
// agrees to but never reads or writes itself: a vector file and a graph
// file, both little-endian throughout.
package vstore

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// VectorHeader is the 8-byte header preceding a vector file's payload:
// point count and dimensionality.
type VectorHeader struct {
	NumPoints int32
	Dimension int32
}

const vectorHeaderBytes = 8

// WriteVectors writes vectors to path as header {num_points, dimension}
// followed by num_points*dimension little-endian float32s, one fixed-width
// record per point. Grounded on pkg/diskann/disk_graph.go's WriteNode
// (encoding/binary, little-endian, os.File), but every record shares one
// width instead of being individually length-prefixed, since every row has
// the same Dimension - this is what lets ReadVector below seek directly to
// a point's offset instead of scanning.
func WriteVectors(path string, vectors [][]float32) error {
	if len(vectors) == 0 {
		return fmt.Errorf("vstore: cannot write an empty vector set")
	}
	dim := len(vectors[0])
	for i, v := range vectors {
		if len(v) != dim {
			return fmt.Errorf("vstore: vector %d has dimension %d, want %d", i, len(v), dim)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("vstore: create %s: %w", path, err)
	}
	defer f.Close()

	header := VectorHeader{NumPoints: int32(len(vectors)), Dimension: int32(dim)}
	if err := binary.Write(f, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("vstore: write header: %w", err)
	}
	for i, v := range vectors {
		if err := binary.Write(f, binary.LittleEndian, v); err != nil {
			return fmt.Errorf("vstore: write vector %d: %w", i, err)
		}
	}
	return nil
}

// VectorFile is a read handle over a vstore vector file. ReadVector seeks
// directly to a point's offset rather than replaying the file from the
// start, the way pkg/diskann/disk_graph.go's ReadNode does via its
// in-memory nodeIndex - here no side index is needed at all, since every
// record is the same fixed width.
type VectorFile struct {
	f           *os.File
	header      VectorHeader
	recordBytes int64
}

// OpenVectorFile opens path for reading and parses its header.
func OpenVectorFile(path string) (*VectorFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("vstore: open %s: %w", path, err)
	}
	var header VectorHeader
	if err := binary.Read(f, binary.LittleEndian, &header); err != nil {
		f.Close()
		return nil, fmt.Errorf("vstore: read header: %w", err)
	}
	return &VectorFile{f: f, header: header, recordBytes: int64(header.Dimension) * 4}, nil
}

// Header returns the parsed file header.
func (vf *VectorFile) Header() VectorHeader { return vf.header }

// ReadVector returns a copy of the i'th stored vector.
func (vf *VectorFile) ReadVector(i int) ([]float32, error) {
	if i < 0 || i >= int(vf.header.NumPoints) {
		return nil, fmt.Errorf("vstore: point index %d out of range [0,%d)", i, vf.header.NumPoints)
	}
	offset := int64(vectorHeaderBytes) + int64(i)*vf.recordBytes
	if _, err := vf.f.Seek(offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("vstore: seek: %w", err)
	}
	vec := make([]float32, vf.header.Dimension)
	if err := binary.Read(vf.f, binary.LittleEndian, vec); err != nil {
		return nil, fmt.Errorf("vstore: read vector %d: %w", i, err)
	}
	return vec, nil
}

// Close releases the underlying file handle.
func (vf *VectorFile) Close() error { return vf.f.Close() }
