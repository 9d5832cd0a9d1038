// Package imgpool pools the float and byte buffers Enhance allocates per
// call — LAB planes and L-channel planes — so that a
// long-lived caller (the CLI driver processing a batch, or an
// in-process service) doesn't pay a fresh allocation for every image.
//
// Each Get call reuses a backing array when one large enough is already
// on the shelf and falls back to a fresh allocation otherwise, the same
// "check capacity, reslice or allocate" shape used for buffer reuse
// elsewhere in this codebase.
package imgpool

import "sync"

var (
	bytePool  sync.Pool
	floatPool sync.Pool
)

// GetBytes returns a []uint8 of length n, reused from the pool when a
// large-enough backing array is available.
func GetBytes(n int) []uint8 {
	if v := bytePool.Get(); v != nil {
		b := v.([]uint8)
		if cap(b) >= n {
			return b[:n]
		}
	}
	return make([]uint8, n)
}

// PutBytes returns a slice obtained from GetBytes to the pool.
func PutBytes(b []uint8) {
	bytePool.Put(b) //nolint:staticcheck // interface boxing is fine here
}

// GetFloat32 returns a []float32 of length n, reused from the pool when
// a large-enough backing array is available.
func GetFloat32(n int) []float32 {
	if v := floatPool.Get(); v != nil {
		f := v.([]float32)
		if cap(f) >= n {
			return f[:n]
		}
	}
	return make([]float32, n)
}

// PutFloat32 returns a slice obtained from GetFloat32 to the pool.
func PutFloat32(f []float32) {
	floatPool.Put(f)
}
