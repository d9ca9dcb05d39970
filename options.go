package tileindex

// BuildOption configures a Build call.
//
// Example:
//
//	// Sequential build that aborts on the first invalid primitive:
//	tm, err := tileindex.Build(shapes, 64)
//
//	// Parallel build that records and skips invalid primitives:
//	tm, err := tileindex.Build(shapes, 64,
//	    tileindex.WithWorkers(8),
//	    tileindex.WithSkipInvalid(),
//	)
type BuildOption func(*buildOptions)

// buildOptions holds optional configuration for a Build call.
type buildOptions struct {
	workers     int
	skipInvalid bool
}

func defaultBuildOptions() buildOptions {
	return buildOptions{
		workers:     0, // GOMAXPROCS
		skipInvalid: false,
	}
}

// WithWorkers sets the number of binning workers. Zero or negative means
// GOMAXPROCS; one forces the plain sequential pass. The worker count never
// changes the result, only how it is computed.
func WithWorkers(n int) BuildOption {
	return func(o *buildOptions) {
		o.workers = n
	}
}

// WithSkipInvalid makes Build skip primitives that fail geometry
// validation instead of aborting the whole batch. Skipped primitives are
// recorded and available from TileMap.Skipped; they contribute nothing to
// the aggregate bounding box or to any tile.
func WithSkipInvalid() BuildOption {
	return func(o *buildOptions) {
		o.skipInvalid = true
	}
}
