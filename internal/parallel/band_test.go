package parallel

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func TestSplitRows(t *testing.T) {
	tests := []struct {
		name       string
		height     int
		bandHeight int
		want       []Band
	}{
		{"exact", 32, 16, []Band{{0, 16}, {16, 32}}},
		{"remainder", 20, 8, []Band{{0, 8}, {8, 16}, {16, 20}}},
		{"taller than frame", 5, 16, []Band{{0, 5}}},
		{"default height", 40, 0, []Band{{0, 16}, {16, 32}, {32, 40}}},
		{"empty", 0, 16, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitRows(tt.height, tt.bandHeight)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitRows(%d, %d) = %v, want %v", tt.height, tt.bandHeight, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("band %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestForEachBand_CoversEveryRow(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	const height = 37
	var rows [height]atomic.Int32
	err := pool.ForEachBand(context.Background(), height, 5, func(b Band) {
		for y := b.Y0; y < b.Y1; y++ {
			rows[y].Add(1)
		}
	})
	if err != nil {
		t.Fatalf("ForEachBand() error = %v", err)
	}
	for y := range rows {
		if n := rows[y].Load(); n != 1 {
			t.Errorf("row %d visited %d times, want 1", y, n)
		}
	}
}

func TestForEachBand_Canceled(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran atomic.Int32
	err := pool.ForEachBand(ctx, 64, 4, func(Band) { ran.Add(1) })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ForEachBand() error = %v, want context.Canceled", err)
	}
	if ran.Load() != 0 {
		t.Errorf("%d bands ran after cancel, want 0", ran.Load())
	}
}
