package vstore

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// GraphHeader is the 8-byte header preceding a graph file's payload: node
// count and the maximum out-degree R every record is padded to.
type GraphHeader struct {
	NumNodes uint32
	R        uint32
}

const graphHeaderBytes = 8

// WriteGraph writes neighbors (one slice per node, indexed by position -
// node i's neighbor ids live at neighbors[i]) to path as header
// {num_nodes, R} followed by num_nodes fixed-size records of
// {degree uint32, neighbor_ids uint32[R]}, zero-padded past degree.
//
// Every record is the same width regardless of how many neighbors a node
// actually has, unlike pkg/diskann/disk_graph.go's WriteNode, which appends
// variable-length records and has to replay the whole file (loadIndex) to
// build an offset index before any random access works. Fixed-width
// records mean ReadNeighbors below can seek straight to record i.
func WriteGraph(path string, neighbors [][]uint32, r uint32) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("vstore: create %s: %w", path, err)
	}
	defer f.Close()

	header := GraphHeader{NumNodes: uint32(len(neighbors)), R: r}
	if err := binary.Write(f, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("vstore: write header: %w", err)
	}

	padded := make([]uint32, r)
	for i, nbs := range neighbors {
		if uint32(len(nbs)) > r {
			return fmt.Errorf("vstore: node %d has %d neighbors, exceeds R=%d", i, len(nbs), r)
		}
		degree := uint32(len(nbs))
		if err := binary.Write(f, binary.LittleEndian, degree); err != nil {
			return fmt.Errorf("vstore: write degree for node %d: %w", i, err)
		}
		for j := range padded {
			padded[j] = 0
		}
		copy(padded, nbs)
		if err := binary.Write(f, binary.LittleEndian, padded); err != nil {
			return fmt.Errorf("vstore: write neighbors for node %d: %w", i, err)
		}
	}
	return nil
}

// GraphFile is a read handle over a vstore graph file.
type GraphFile struct {
	f           *os.File
	header      GraphHeader
	recordBytes int64
}

// OpenGraphFile opens path for reading and parses its header.
func OpenGraphFile(path string) (*GraphFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("vstore: open %s: %w", path, err)
	}
	var header GraphHeader
	if err := binary.Read(f, binary.LittleEndian, &header); err != nil {
		f.Close()
		return nil, fmt.Errorf("vstore: read header: %w", err)
	}
	return &GraphFile{f: f, header: header, recordBytes: 4 + int64(header.R)*4}, nil
}

// Header returns the parsed file header.
func (gf *GraphFile) Header() GraphHeader { return gf.header }

// ReadNeighbors returns node i's neighbor ids, trimmed to its stored
// degree (the zero padding past degree is never returned).
func (gf *GraphFile) ReadNeighbors(i int) ([]uint32, error) {
	if i < 0 || i >= int(gf.header.NumNodes) {
		return nil, fmt.Errorf("vstore: node index %d out of range [0,%d)", i, gf.header.NumNodes)
	}
	offset := int64(graphHeaderBytes) + int64(i)*gf.recordBytes
	if _, err := gf.f.Seek(offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("vstore: seek: %w", err)
	}
	var degree uint32
	if err := binary.Read(gf.f, binary.LittleEndian, &degree); err != nil {
		return nil, fmt.Errorf("vstore: read degree for node %d: %w", i, err)
	}
	if degree > gf.header.R {
		return nil, fmt.Errorf("vstore: node %d has stored degree %d exceeding R=%d", i, degree, gf.header.R)
	}
	padded := make([]uint32, gf.header.R)
	if err := binary.Read(gf.f, binary.LittleEndian, padded); err != nil {
		return nil, fmt.Errorf("vstore: read neighbors for node %d: %w", i, err)
	}
	return padded[:degree], nil
}

// Close releases the underlying file handle.
func (gf *GraphFile) Close() error { return gf.f.Close() }
