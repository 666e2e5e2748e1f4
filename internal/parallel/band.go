package parallel

import "context"

// DefaultBandHeight is the number of rows per band when none is given.
const DefaultBandHeight = 16

// Band is a half-open range of rows [Y0, Y1).
type Band struct {
	Y0, Y1 int
}

// Rows returns the number of rows in the band.
func (b Band) Rows() int {
	return b.Y1 - b.Y0
}

// SplitRows divides height rows into consecutive bands of at most
// bandHeight rows. A non-positive bandHeight uses DefaultBandHeight.
func SplitRows(height, bandHeight int) []Band {
	if height <= 0 {
		return nil
	}
	if bandHeight <= 0 {
		bandHeight = DefaultBandHeight
	}
	bands := make([]Band, 0, (height+bandHeight-1)/bandHeight)
	for y := 0; y < height; y += bandHeight {
		bands = append(bands, Band{Y0: y, Y1: min(y+bandHeight, height)})
	}
	return bands
}

// ForEachBand calls fn for every band of height rows on the pool and waits.
// ctx is checked before each band starts; bands already running finish.
// It returns ctx.Err() if the context ended before all bands ran.
func (p *WorkerPool) ForEachBand(ctx context.Context, height, bandHeight int, fn func(Band)) error {
	bands := SplitRows(height, bandHeight)
	work := make([]func(), len(bands))
	for i, b := range bands {
		work[i] = func() {
			if ctx.Err() != nil {
				return
			}
			fn(b)
		}
	}
	p.ExecuteAll(work)
	return ctx.Err()
}
