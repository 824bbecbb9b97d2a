package workerpool

import (
	"sort"
	"sync"
	"testing"
)

func TestRowRangeCoversAllRowsExactlyOnce(t *testing.T) {
	p := New(4)
	ranges := p.RowRange(10)
	seen := make([]bool, 10)
	for _, r := range ranges {
		for y := r[0]; y < r[1]; y++ {
			if seen[y] {
				t.Fatalf("row %d covered by more than one range", y)
			}
			seen[y] = true
		}
	}
	for y, ok := range seen {
		if !ok {
			t.Errorf("row %d not covered by any range", y)
		}
	}
}

func TestRowRangeFewerRowsThanWorkers(t *testing.T) {
	p := New(8)
	ranges := p.RowRange(3)
	total := 0
	for _, r := range ranges {
		total += r[1] - r[0]
	}
	if total != 3 {
		t.Errorf("RowRange(3) covered %d rows, want 3", total)
	}
}

func TestParallelRowsRunsEveryRow(t *testing.T) {
	p := New(4)
	var mu sync.Mutex
	touched := make([]bool, 37)
	p.ParallelRows(37, func(start, end int) {
		for y := start; y < end; y++ {
			mu.Lock()
			touched[y] = true
			mu.Unlock()
		}
	})
	for y, ok := range touched {
		if !ok {
			t.Errorf("row %d never visited", y)
		}
	}
}

func TestParallelNVisitsEveryIndexExactlyOnce(t *testing.T) {
	p := New(4)
	var mu sync.Mutex
	var seen []int
	p.ParallelN(50, func(i int) {
		mu.Lock()
		seen = append(seen, i)
		mu.Unlock()
	})
	if len(seen) != 50 {
		t.Fatalf("got %d calls, want 50", len(seen))
	}
	sort.Ints(seen)
	for i, v := range seen {
		if i != v {
			t.Fatalf("index %d missing or duplicated: %v", i, seen)
		}
	}
}

func TestNewDefaultsToAtLeastOneWorker(t *testing.T) {
	p := New(0)
	if p.Workers() < 1 {
		t.Errorf("Workers() = %d, want >= 1", p.Workers())
	}
}
