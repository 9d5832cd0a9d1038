package claheimg_test

import (
	"context"
	"math/rand"
	"testing"
	"testing/quick"

	"github.com/clahe/claheimg"
	"github.com/clahe/claheimg/internal/colorspace"
	"github.com/clahe/claheimg/internal/tilehist"
)

// randomRGB8 builds a valid, randomly seeded RGB8 image with dimensions
// between 8 and 40 on each axis.
func randomRGB8(rnd *rand.Rand) claheimg.RGB8 {
	w := 8 + rnd.Intn(32)
	h := 8 + rnd.Intn(32)
	pix := make([]uint8, w*h*3)
	rnd.Read(pix)
	return claheimg.RGB8{Pix: pix, Width: w, Height: h}
}

func randomGrid(rnd *rand.Rand, h, w int) int {
	maxG := h
	if w < maxG {
		maxG = w
	}
	if maxG > 16 {
		maxG = 16
	}
	if maxG < 2 {
		maxG = 2
	}
	g := 2 + rnd.Intn(maxG-1)
	if g > maxG {
		g = maxG
	}
	return g
}

// Invariant 1: output has the same dimensions and format as the input.
func TestInvariantSameDimensionsAndFormat(t *testing.T) {
	f := func(seed int64) bool {
		rnd := rand.New(rand.NewSource(seed))
		img := randomRGB8(rnd)
		g := randomGrid(rnd, img.Height, img.Width)
		out, err := claheimg.Enhance(context.Background(), img, claheimg.Options{ClipLimit: 1 + rnd.Float64()*39, TileGridSize: g})
		if err != nil {
			t.Logf("seed %d: %v", seed, err)
			return false
		}
		return out.Width == img.Width && out.Height == img.Height && len(out.Pix) == len(img.Pix)
	}
	if err := quick.Check(f, &quick.Config{MaxCount: 100}); err != nil {
		t.Error(err)
	}
}

// Invariant 2 and 3: per-tile histogram mass is preserved through clip
// and redistribution, and every LUT is monotone and in range.
func TestInvariantHistogramMassAndLUTShape(t *testing.T) {
	f := func(seed int64) bool {
		rnd := rand.New(rand.NewSource(seed))
		n := 1 + rnd.Intn(4000)
		vals := make([]uint8, n)
		rnd.Read(vals)

		var hist tilehist.Histogram
		hist.Build(vals)

		var before int64
		for _, v := range hist {
			before += int64(v)
		}
		if before != int64(n) {
			return false
		}

		clip := 1 + rnd.Float64()*39
		k := tilehist.ClipLimit(clip, n)
		hist.Clip(k)

		var after int64
		for _, v := range hist {
			after += int64(v)
		}
		if after != int64(n) {
			return false
		}

		lut := hist.LUT()
		for i := 1; i < tilehist.NumBins; i++ {
			if lut[i] < lut[i-1] {
				return false
			}
		}
		return true
	}
	if err := quick.Check(f, &quick.Config{MaxCount: 200}); err != nil {
		t.Error(err)
	}
}

// Invariant 4: a uniform image is unchanged by Enhance whenever every
// tile holds exactly one pixel (grid size equal to image size), since
// the per-bin clip cap k = max(1, floor(c*1/256)) is always 1 — equal
// to the tile's own pixel count — so clipping never triggers and the
// CDF stays genuinely degenerate. This does not generalize to coarser
// grids: with more than one pixel per tile, clipping caps the tile's
// single occupied bin and redistribution skews the output toward 255
// instead of leaving a uniform tile alone (see DESIGN.md).
func TestInvariantUniformImageIsIdentityAtMinClip(t *testing.T) {
	f := func(seed int64) bool {
		rnd := rand.New(rand.NewSource(seed))
		g := 2 + rnd.Intn(15) // 2..16, one pixel per tile
		v := uint8(rnd.Intn(256))
		pix := make([]uint8, g*g*3)
		for i := range pix {
			pix[i] = v
		}
		img := claheimg.RGB8{Pix: pix, Width: g, Height: g}

		out, err := claheimg.Enhance(context.Background(), img, claheimg.Options{ClipLimit: 1.0, TileGridSize: g})
		if err != nil {
			t.Logf("seed %d: %v", seed, err)
			return false
		}
		for i, p := range out.Pix {
			d := int(p) - int(img.Pix[i])
			if d < -1 || d > 1 {
				return false
			}
		}
		return true
	}
	if err := quick.Check(f, &quick.Config{MaxCount: 100}); err != nil {
		t.Error(err)
	}
}

// Invariant 5: the Lab round trip is idempotent to within +-1 per channel.
func TestInvariantColorRoundTrip(t *testing.T) {
	f := func(r, g, b uint8) bool {
		lab := colorspace.RGBToLab(r, g, b)
		rr, gg, bb := colorspace.LabToRGB(lab)
		within := func(a, c uint8) bool {
			d := int(a) - int(c)
			return d >= -1 && d <= 1
		}
		return within(rr, r) && within(gg, g) && within(bb, b)
	}
	if err := quick.Check(f, &quick.Config{MaxCount: 2000}); err != nil {
		t.Error(err)
	}
}

// Invariant 6: Enhance is deterministic across repeated runs on the same input.
func TestInvariantDeterministic(t *testing.T) {
	f := func(seed int64) bool {
		rnd := rand.New(rand.NewSource(seed))
		img := randomRGB8(rnd)
		g := randomGrid(rnd, img.Height, img.Width)
		opts := claheimg.Options{ClipLimit: 1 + rnd.Float64()*39, TileGridSize: g}

		out1, err1 := claheimg.Enhance(context.Background(), img, opts)
		out2, err2 := claheimg.Enhance(context.Background(), img, opts)
		if err1 != nil || err2 != nil {
			return err1 == nil && err2 == nil
		}
		for i := range out1.Pix {
			if out1.Pix[i] != out2.Pix[i] {
				return false
			}
		}
		return true
	}
	if err := quick.Check(f, &quick.Config{MaxCount: 50}); err != nil {
		t.Error(err)
	}
}

// Invariant 7: grayscale input (R == G == B) converts to Lab with
// near-zero chroma (a and b within 0.5 of zero).
func TestInvariantGrayscalePreservesNearZeroChroma(t *testing.T) {
	f := func(v uint8) bool {
		lab := colorspace.RGBToLab(v, v, v)
		return lab.A > -0.5 && lab.A < 0.5 && lab.B > -0.5 && lab.B < 0.5
	}
	if err := quick.Check(f, &quick.Config{MaxCount: 256}); err != nil {
		t.Error(err)
	}
}

// Invariant 8: the per-bin clip cap k = max(1, floor(c*N/256)) is
// non-decreasing in c, so raising the clip limit never lowers the
// post-clip value of any single bin.
func TestInvariantClipCapNonDecreasingInC(t *testing.T) {
	f := func(seed int64) bool {
		rnd := rand.New(rand.NewSource(seed))
		n := 1 + rnd.Intn(4000)
		vals := make([]uint8, n)
		rnd.Read(vals)

		c1 := 1 + rnd.Float64()*19
		c2 := c1 + rnd.Float64()*20

		maxBin := func(clip float64) uint32 {
			var hist tilehist.Histogram
			hist.Build(vals)
			hist.Clip(tilehist.ClipLimit(clip, n))
			var m uint32
			for _, v := range hist {
				if v > m {
					m = v
				}
			}
			return m
		}

		return maxBin(c2) >= maxBin(c1)
	}
	if err := quick.Check(f, &quick.Config{MaxCount: 200}); err != nil {
		t.Error(err)
	}
}
