// Command clahe applies Contrast Limited Adaptive Histogram
// Equalization to a JPEG or PNG image from the command line.
//
// Usage:
//
//	clahe <input_path> <output_path> <clip_limit> <tile_grid_size>
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	"image/png"
	"os"
	"strconv"
	"time"

	"github.com/clahe/claheimg"
	"github.com/clahe/claheimg/internal/cliutil"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var verbose bool

func main() {
	root := &cobra.Command{
		Use:   "clahe <input_path> <output_path> <clip_limit> <tile_grid_size>",
		Short: "Apply CLAHE contrast enhancement to an image",
		Args:  cobra.ExactArgs(4),
		RunE:  run,
		// The driver's result is a single JSON object on stdout; usage
		// errors from Cobra itself would otherwise go there too.
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.Flags().BoolVar(&verbose, "verbose", false, "emit debug-level logs to stderr")

	if err := root.Execute(); err != nil {
		emitFailure(err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cliutil.InitLogging(verbose)

	inputPath, outputPath := args[0], args[1]
	clipLimit, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return argError("clip_limit must be a number: %v", err)
	}
	gridSize, err := strconv.Atoi(args[3])
	if err != nil {
		return argError("tile_grid_size must be an integer: %v", err)
	}

	start := time.Now()
	img, err := decodeImage(inputPath)
	if err != nil {
		return fmt.Errorf("decode %s: %w", inputPath, err)
	}
	log.Debug().Str("path", inputPath).Dur("decode_time", time.Since(start)).Msg("decoded input image")

	opts := claheimg.Options{ClipLimit: clipLimit, TileGridSize: gridSize}
	originalStats := claheimg.Metrics(img)

	out, usedOpts, err := enhanceWithFallback(context.Background(), img, opts)
	if err != nil {
		return err
	}
	processedStats := claheimg.Metrics(out)

	log.Info().
		Int("tile_grid_size", usedOpts.TileGridSize).
		Float64("clip_limit", usedOpts.ClipLimit).
		Msg("enhancement complete")

	if err := writePNG(outputPath, out); err != nil {
		return fmt.Errorf("write %s: %w", outputPath, err)
	}

	result := cliutil.Result{
		Success:          true,
		OutputPath:       outputPath,
		OriginalMetrics:  &originalStats,
		ProcessedMetrics: &processedStats,
		Parameters: &cliutil.Parameters{
			ClipLimit:    usedOpts.ClipLimit,
			TileGridSize: uint32(usedOpts.TileGridSize),
		},
	}
	return emitResult(result)
}

// enhanceWithFallback runs Enhance once with the caller's options. If it
// fails because tile_grid_size is larger than the image, it retries once
// with the package defaults rather than failing outright — a graceful
// degradation the core itself never performs.
func enhanceWithFallback(ctx context.Context, img claheimg.RGB8, opts claheimg.Options) (claheimg.RGB8, claheimg.Options, error) {
	out, err := claheimg.Enhance(ctx, img, opts)
	if err == nil {
		return out, opts, nil
	}

	var cerr *claheimg.Error
	if !errors.As(err, &cerr) || cerr.Kind != claheimg.KindInvalidParameter {
		return claheimg.RGB8{}, opts, err
	}
	if opts.TileGridSize <= img.Width && opts.TileGridSize <= img.Height {
		return claheimg.RGB8{}, opts, err
	}

	log.Warn().Err(err).Msg("requested parameters rejected, retrying with defaults")
	fallback := claheimg.DefaultOptions()
	out, err = claheimg.Enhance(ctx, img, fallback)
	if err != nil {
		return claheimg.RGB8{}, opts, err
	}
	return out, fallback, nil
}

func decodeImage(path string) (claheimg.RGB8, error) {
	f, err := os.Open(path)
	if err != nil {
		return claheimg.RGB8{}, err
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return claheimg.RGB8{}, err
	}
	return toRGB8(src), nil
}

// toRGB8 flattens any image.Image into claheimg's packed 8-bit RGB
// layout via image/draw, discarding alpha.
func toRGB8(src image.Image) claheimg.RGB8 {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	nrgba := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(nrgba, nrgba.Bounds(), src, b.Min, draw.Src)

	pix := make([]uint8, w*h*3)
	for y := 0; y < h; y++ {
		srcRow := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+w*4]
		dstRow := pix[y*w*3 : (y+1)*w*3]
		for x := 0; x < w; x++ {
			dstRow[x*3] = srcRow[x*4]
			dstRow[x*3+1] = srcRow[x*4+1]
			dstRow[x*3+2] = srcRow[x*4+2]
		}
	}
	return claheimg.RGB8{Pix: pix, Width: w, Height: h}
}

func writePNG(path string, img claheimg.RGB8) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	nrgba := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			r, g, b := img.At(x, y)
			i := nrgba.PixOffset(x, y)
			nrgba.Pix[i] = r
			nrgba.Pix[i+1] = g
			nrgba.Pix[i+2] = b
			nrgba.Pix[i+3] = 255
		}
	}
	return png.Encode(f, nrgba)
}

func argError(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}

func emitResult(r cliutil.Result) error {
	enc := json.NewEncoder(os.Stdout)
	return enc.Encode(r)
}

func emitFailure(err error) {
	result := cliutil.Result{Success: false, Error: err.Error()}
	enc := json.NewEncoder(os.Stdout)
	if encErr := enc.Encode(result); encErr != nil {
		fmt.Fprintf(os.Stderr, "clahe: %v\n", err)
	}
}
