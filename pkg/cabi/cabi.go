// Command cabi is the C ABI boundary for this system: it is not run as a Go
// binary but built with `go build -buildmode=c-shared` (or c-archive) to
// produce a library other languages can link against. It lives under
// pkg/cabi rather than cmd/ because its only consumer is a foreign-language
// caller linking the compiled artifact, not a Go importer.
//
// Grounded on original_source/DiskANNInRust/diskann-ffi/src/lib.rs, which
// exports a much wider surface (create/build/add/search/save/load/version)
// from Rust around an opaque *mut c_void handle obtained via
// Box::into_raw/Box::from_raw. Go's cgo rules don't allow a Go pointer to be
// stashed in C-visible memory and dereferenced on a later call without
// pinning it for the lifetime C might hold it, so this shim uses a handle
// registry instead: vamana_build hands back a small integer, and later calls
// look the *vamana.Index back up in a package-level map. The exported
// surface itself is narrowed to the three operations named for this system's
// boundary - build, search, and freeing the result buffer the C side owns -
// rather than reproducing the Rust reference's full lifecycle API.
package main

/*
#include <stdint.h>
#include <stdlib.h>

typedef struct {
	uint32_t id;
	float distance;
} vamana_search_result;
*/
import "C"

import (
	"sync"
	"unsafe"

	"github.com/arannis/vamana/pkg/vamana"
)

var (
	registryMu sync.Mutex
	registry   = make(map[int64]*vamana.Index)
	nextHandle int64
)

// vamana_build builds an index over a flat row-major array of numVectors *
// dim float32s, assigning ids 0..numVectors-1 in input order, and returns an
// opaque handle for use with vamana_search. Returns -1 on any failure
// (nil/empty input, invalid R/L/alpha, or a build error).
//
//export vamana_build
func vamana_build(vectors *C.float, numVectors C.uint32_t, dim C.uint32_t, r C.uint32_t, l C.uint32_t, alpha C.float, seed C.uint64_t) C.int64_t {
	if vectors == nil || numVectors == 0 || dim == 0 {
		return -1
	}

	n, d := int(numVectors), int(dim)
	flat := unsafe.Slice((*float32)(unsafe.Pointer(vectors)), n*d)
	items := make([]vamana.Item, n)
	for i := 0; i < n; i++ {
		vec := make([]float32, d)
		copy(vec, flat[i*d:(i+1)*d])
		items[i] = vamana.Item{ID: vamana.VectorId(i), Vector: vec}
	}

	cfg := vamana.DefaultConfig()
	cfg.R = int(r)
	cfg.L = int(l)
	cfg.Alpha = float64(alpha)
	cfg.Seed = uint64(seed)

	idx, err := vamana.Build(items, cfg)
	if err != nil {
		return -1
	}

	registryMu.Lock()
	defer registryMu.Unlock()
	nextHandle++
	registry[nextHandle] = idx
	return C.int64_t(nextHandle)
}

// vamana_search runs a top-k beam search against handle and writes the
// results into a heap-allocated C array stored at *out, which the caller
// must release with vamana_free_results. Returns the number of results
// written, or -1 if handle is unknown or the arguments are invalid.
//
//export vamana_search
func vamana_search(handle C.int64_t, query *C.float, dim C.uint32_t, k C.uint32_t, beamWidth C.uint32_t, out **C.vamana_search_result) C.int32_t {
	if query == nil || dim == 0 || k == 0 || out == nil {
		return -1
	}

	registryMu.Lock()
	idx, ok := registry[int64(handle)]
	registryMu.Unlock()
	if !ok {
		return -1
	}

	q := unsafe.Slice((*float32)(unsafe.Pointer(query)), int(dim))
	results, err := idx.SearchWithBeam(q, int(k), int(beamWidth))
	if err != nil {
		return -1
	}

	if len(results) == 0 {
		*out = nil
		return 0
	}

	buf := C.malloc(C.size_t(len(results)) * C.size_t(unsafe.Sizeof(C.vamana_search_result{})))
	slice := unsafe.Slice((*C.vamana_search_result)(buf), len(results))
	for i, r := range results {
		slice[i].id = C.uint32_t(r.ID)
		slice[i].distance = C.float(r.Distance)
	}
	*out = (*C.vamana_search_result)(buf)
	return C.int32_t(len(results))
}

// vamana_free_results releases a result array previously returned through
// vamana_search's out parameter. Safe to call with a nil pointer.
//
//export vamana_free_results
func vamana_free_results(results *C.vamana_search_result) {
	if results != nil {
		C.free(unsafe.Pointer(results))
	}
}

func main() {}
