package vamana

import "golang.org/x/sys/cpu"

// wideLaneThreshold mirrors diskann-core/src/simd.rs's dispatch cutoff:
// vectors shorter than this fall straight to the scalar loop, since the
// unrolled path's setup cost isn't worth it below one SIMD register's worth
// of lanes.
const wideLaneThreshold = 8

// hasWideSupport reports whether the current process can use the unrolled
// 8-lane accumulator path. It is evaluated once at package init rather than
// on every call.
var hasWideSupport = cpu.X86.HasAVX2 || cpu.ARM64.HasASIMD

// squaredL2Wide computes the squared Euclidean distance over 32-element
// chunks using four independent float32 accumulators (one per 8-element
// block of each chunk), summed at the end, then adds the remaining 8-element
// blocks and an explicit scalar tail. This is the portable
// equivalent of diskann-core/src/simd.rs's AVX2 kernel: ordinary Go float32
// arithmetic, just unrolled so the compiler can pipeline independent
// accumulator chains instead of waiting on a single serial dependency.
//
// Summation order differs from the plain scalar loop, so results agree with
// SquaredL2 only within float32 rounding tolerance, not bit-for-bit - exactly
// the property §8's kernel-equivalence tests check for.
func squaredL2Wide(a, b []float32) float32 {
	n := len(a)
	var acc0, acc1, acc2, acc3 float32
	i := 0
	for ; i+32 <= n; i += 32 {
		for lane := 0; lane < 8; lane++ {
			d := a[i+lane] - b[i+lane]
			acc0 += d * d
		}
		for lane := 0; lane < 8; lane++ {
			d := a[i+8+lane] - b[i+8+lane]
			acc1 += d * d
		}
		for lane := 0; lane < 8; lane++ {
			d := a[i+16+lane] - b[i+16+lane]
			acc2 += d * d
		}
		for lane := 0; lane < 8; lane++ {
			d := a[i+24+lane] - b[i+24+lane]
			acc3 += d * d
		}
	}
	sum := acc0 + acc1 + acc2 + acc3
	for ; i+8 <= n; i += 8 {
		for lane := 0; lane < 8; lane++ {
			d := a[i+lane] - b[i+lane]
			sum += d * d
		}
	}
	for ; i < n; i++ {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// dispatchSquaredL2 picks between the wide and scalar kernels per §4.1's
// policy: short vectors and CPUs without wide-register support always use
// the scalar loop.
func dispatchSquaredL2(a, b []float32) float32 {
	if len(a) != len(b) {
		return mismatch
	}
	if hasWideSupport && len(a) >= wideLaneThreshold {
		return squaredL2Wide(a, b)
	}
	return SquaredL2(a, b)
}

// innerProductWide is the wide-path counterpart to InnerProduct, unrolled
// the same way as squaredL2Wide.
func innerProductWide(a, b []float32) float32 {
	n := len(a)
	var acc0, acc1, acc2, acc3 float32
	i := 0
	for ; i+32 <= n; i += 32 {
		for lane := 0; lane < 8; lane++ {
			acc0 += a[i+lane] * b[i+lane]
		}
		for lane := 0; lane < 8; lane++ {
			acc1 += a[i+8+lane] * b[i+8+lane]
		}
		for lane := 0; lane < 8; lane++ {
			acc2 += a[i+16+lane] * b[i+16+lane]
		}
		for lane := 0; lane < 8; lane++ {
			acc3 += a[i+24+lane] * b[i+24+lane]
		}
	}
	sum := acc0 + acc1 + acc2 + acc3
	for ; i+8 <= n; i += 8 {
		for lane := 0; lane < 8; lane++ {
			sum += a[i+lane] * b[i+lane]
		}
	}
	for ; i < n; i++ {
		sum += a[i] * b[i]
	}
	return 1.0 - sum
}

func dispatchInnerProduct(a, b []float32) float32 {
	if len(a) != len(b) {
		return mismatch
	}
	if hasWideSupport && len(a) >= wideLaneThreshold {
		return innerProductWide(a, b)
	}
	return InnerProduct(a, b)
}

// DispatchedSquaredL2Distance and DispatchedInnerProductDistance are
// Distance implementations that route through the CPU-feature-gated wide
// kernels above rather than the always-scalar free functions. The
// package-level Build uses DispatchedSquaredL2Distance; NewBuilder and
// NewIndex use whichever Distance the caller passes.
var (
	DispatchedSquaredL2Distance   Distance = dispatchedDistance{fn: dispatchSquaredL2, name: "squared_l2", isMetric: false}
	DispatchedInnerProductDistance Distance = dispatchedDistance{fn: dispatchInnerProduct, name: "inner_product", isMetric: false}
)

type dispatchedDistance struct {
	fn       func(a, b []float32) float32
	name     string
	isMetric bool
}

func (d dispatchedDistance) Distance(a, b []float32) float32 { return d.fn(a, b) }
func (d dispatchedDistance) Name() string                    { return d.name }
func (d dispatchedDistance) IsMetric() bool                  { return d.isMetric }
