package cliutil

import "github.com/clahe/claheimg"

// Parameters holds the clip_limit/tile_grid_size pair the enhancement
// actually ran with (the defaults, when the driver fell back to them),
// for the "parameters" field of Result.
type Parameters struct {
	ClipLimit    float64 `json:"clip_limit"`
	TileGridSize uint32  `json:"tile_grid_size"`
}

// Result is the single JSON object the driver prints to standard
// output, win or lose.
type Result struct {
	Success          bool            `json:"success"`
	OutputPath       string          `json:"output_path,omitempty"`
	OriginalMetrics  *claheimg.Stats `json:"original_metrics,omitempty"`
	ProcessedMetrics *claheimg.Stats `json:"processed_metrics,omitempty"`
	Parameters       *Parameters     `json:"parameters,omitempty"`
	Error            string          `json:"error,omitempty"`
}
