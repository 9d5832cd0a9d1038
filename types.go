package claheimg

// RGB8 is a row-major H x W grid of 8-bit-per-channel sRGB pixels,
// three bytes per pixel.
type RGB8 struct {
	Pix           []uint8
	Width, Height int
}

// At returns the pixel at (x, y).
func (img RGB8) At(x, y int) (r, g, b uint8) {
	i := (y*img.Width + x) * 3
	return img.Pix[i], img.Pix[i+1], img.Pix[i+2]
}

func (img RGB8) validate() error {
	if img.Width <= 0 || img.Height <= 0 {
		return invalidInput("image dimensions must be positive, got %dx%d", img.Width, img.Height)
	}
	if len(img.Pix) != img.Width*img.Height*3 {
		return invalidInput("pixel buffer length %d does not match %dx%d RGB8", len(img.Pix), img.Width, img.Height)
	}
	return nil
}

// Options controls the CLAHE transform.
type Options struct {
	// ClipLimit is the contrast-clipping multiplier c (c >= 1.0).
	ClipLimit float64
	// TileGridSize is the number of tiles per axis G (2 <= G <= 16).
	TileGridSize int
}

// DefaultOptions returns clip_limit = 2.0, tile_grid_size = 8, the
// same defaults OpenCV's createCLAHE uses.
func DefaultOptions() Options {
	return Options{ClipLimit: 2.0, TileGridSize: 8}
}

func (o Options) validate(h, w int) error {
	if o.ClipLimit < 1.0 || o.ClipLimit > 40.0 {
		return invalidParameter("clip_limit %.4f out of range [1.0, 40.0]", o.ClipLimit)
	}
	if o.TileGridSize < 2 || o.TileGridSize > 16 {
		return invalidParameter("tile_grid_size %d out of range [2, 16]", o.TileGridSize)
	}
	if h < o.TileGridSize || w < o.TileGridSize {
		return invalidParameter("image %dx%d smaller than tile grid %d", w, h, o.TileGridSize)
	}
	return nil
}

// Stats holds the brightness/contrast summary returned by Metrics.
type Stats struct {
	Brightness float64 `json:"brightness"`
	Contrast   float64 `json:"contrast"`
}
