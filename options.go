package pixelart

// RendererOption configures a Renderer during creation.
//
// Example:
//
//	r := pixelart.NewRenderer(pixelart.WithWorkers(4), pixelart.WithBandHeight(8))
//	defer r.Close()
type RendererOption func(*rendererOptions)

type rendererOptions struct {
	workers    int
	bandHeight int
}

func defaultRendererOptions() rendererOptions {
	return rendererOptions{
		workers:    0, // GOMAXPROCS
		bandHeight: 16,
	}
}

// WithWorkers sets the number of worker goroutines. Zero or negative uses
// GOMAXPROCS.
func WithWorkers(n int) RendererOption {
	return func(o *rendererOptions) {
		o.workers = n
	}
}

// WithBandHeight sets the number of rows processed per work item.
// Cancellation is observed between bands, so smaller bands react faster.
func WithBandHeight(rows int) RendererOption {
	return func(o *rendererOptions) {
		if rows > 0 {
			o.bandHeight = rows
		}
	}
}
