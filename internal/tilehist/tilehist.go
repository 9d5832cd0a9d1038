// Package tilehist builds contrast-limited histograms and lookup tables
// for one CLAHE tile at a time.
//
// The shape — collect per-bin counts, clip against a cap, redistribute
// the excess, then derive a monotone lookup table from the cumulative
// distribution — is the same counting-and-normalizing pattern used for
// per-symbol frequency tables elsewhere in this codebase, applied here
// to a single 256-bin pixel-value stream with a clip-and-redistribute
// step a plain frequency table doesn't need.
package tilehist

// NumBins is the number of 8-bit histogram/LUT bins.
const NumBins = 256

// LUT maps an input 8-bit value to an output 8-bit value for one tile.
type LUT [NumBins]uint8

// Histogram holds raw per-bin pixel counts for one tile.
type Histogram [NumBins]uint32

// Build counts pixel values in vals into hist, which must already be
// zeroed by the caller (it is reused across tiles to avoid allocating a
// fresh array per tile).
func (h *Histogram) Build(vals []uint8) {
	for _, v := range vals {
		h[v]++
	}
}

// ClipLimit computes k = max(1, floor(c*N/256)), the per-bin cap used by
// Clip.
func ClipLimit(clip float64, n int) uint32 {
	k := uint32(int64(clip * float64(n) / NumBins))
	if k < 1 {
		k = 1
	}
	return k
}

// Clip caps every bin at k and redistributes the total excess uniformly:
// q = excess/256 added to every bin, then 1 more added to bins [0, r)
// where r = excess mod 256. Total mass is preserved exactly (N in, N
// out). Bins that end up above k after redistribution are not
// re-clipped — a deliberate single-pass contract.
func (h *Histogram) Clip(k uint32) {
	var excess int64
	for i := range h {
		if h[i] > k {
			excess += int64(h[i] - k)
			h[i] = k
		}
	}
	if excess == 0 {
		return
	}
	q := uint32(excess / NumBins)
	r := int(excess % NumBins)
	for i := range h {
		h[i] += q
	}
	for i := 0; i < r; i++ {
		h[i]++
	}
}

// LUT derives this tile's lookup table from its (already clipped and
// redistributed) histogram via a cumulative distribution function
// normalized into [0,255]. A degenerate tile (cdf_max == cdf_min, e.g.
// empty or perfectly uniform) yields the identity mapping rather than
// dividing by zero.
func (h *Histogram) LUT() LUT {
	var cdf [NumBins]uint32
	var running uint32
	for i := range h {
		running += h[i]
		cdf[i] = running
	}

	cdfMin := uint32(0)
	for i := range cdf {
		if cdf[i] > 0 {
			cdfMin = cdf[i]
			break
		}
	}
	cdfMax := cdf[NumBins-1]

	var lut LUT
	if cdfMax == cdfMin {
		for i := range lut {
			lut[i] = uint8(i)
		}
		return lut
	}

	denom := float64(cdfMax - cdfMin)
	for i := range cdf {
		v := (float64(cdf[i]) - float64(cdfMin)) / denom * 255
		if v < 0 {
			v = 0
		} else if v > 255 {
			v = 255
		}
		lut[i] = uint8(v + 0.5)
	}
	return lut
}

// BuildTileLUT runs the full per-tile pipeline (histogram, clip,
// redistribute, CDF normalization) for one tile's pixel values and a
// given clip limit multiplier. hist is caller-owned scratch space,
// reset and reused across tiles.
func BuildTileLUT(hist *Histogram, vals []uint8, clipLimit float64) LUT {
	for i := range hist {
		hist[i] = 0
	}
	hist.Build(vals)
	k := ClipLimit(clipLimit, len(vals))
	hist.Clip(k)
	return hist.LUT()
}
