package claheimg

import (
	"context"

	"github.com/clahe/claheimg/internal/colorspace"
	"github.com/clahe/claheimg/internal/imgpool"
	"github.com/clahe/claheimg/internal/remap"
)

// Enhance applies CLAHE to img's lightness channel and returns a new
// RGB8 image of the same dimensions. a and b (chromaticity) pass
// through unchanged; only L is remapped.
//
// Enhance is pure and total for any well-formed RGB8 input and valid
// Options — it never mutates img, never retries, and never produces
// partial output: on error the returned image is the zero value.
//
// ctx is polled once per tile row during the histogram stage and once
// per pixel row during the remap stage; a canceled context aborts with ctx.Err() rather than
// completing the transform. The core itself never blocks, but a caller
// driving Enhance over a very large image can still bound how long it
// waits.
func Enhance(ctx context.Context, img RGB8, opts Options) (RGB8, error) {
	if err := img.validate(); err != nil {
		return RGB8{}, err
	}
	if err := opts.validate(img.Height, img.Width); err != nil {
		return RGB8{}, err
	}

	h, w := img.Height, img.Width
	n := h * w

	labL := imgpool.GetFloat32(n)
	labA := imgpool.GetFloat32(n)
	labB := imgpool.GetFloat32(n)
	defer imgpool.PutFloat32(labL)
	defer imgpool.PutFloat32(labA)
	defer imgpool.PutFloat32(labB)

	lQuant := imgpool.GetBytes(n)
	defer imgpool.PutBytes(lQuant)

	for i := 0; i < n; i++ {
		r, g, b := img.Pix[i*3], img.Pix[i*3+1], img.Pix[i*3+2]
		lab := colorspace.RGBToLab(r, g, b)
		labL[i] = lab.L
		labA[i] = lab.A
		labB[i] = lab.B
		lQuant[i] = colorspace.QuantizeL(lab.L)
	}

	tensor, err := remap.BuildTensor(ctx, lQuant, h, w, opts.TileGridSize, opts.ClipLimit)
	if err != nil {
		return RGB8{}, err
	}
	assert(len(tensor.LUTs) == tensor.G*tensor.G, "LUT tensor size does not match grid")

	lRemapped := imgpool.GetBytes(n)
	defer imgpool.PutBytes(lRemapped)
	if err := remap.Apply(ctx, tensor, lQuant, h, w, lRemapped); err != nil {
		return RGB8{}, err
	}
	assert(len(lRemapped) == n, "remapped L plane length does not match image size")

	out := RGB8{Pix: make([]uint8, n*3), Width: w, Height: h}
	for i := 0; i < n; i++ {
		lab := colorspace.Lab{
			L: colorspace.DequantizeL(lRemapped[i]),
			A: labA[i],
			B: labB[i],
		}
		r, g, b := colorspace.LabToRGB(lab)
		out.Pix[i*3] = r
		out.Pix[i*3+1] = g
		out.Pix[i*3+2] = b
	}

	return out, nil
}
