package scan

import (
	"io"
	"runtime"
	"sync"
	"sync/atomic"
)

// Bitmap is a dense, concurrency-safe set of document keys in [0, total).
// Each bit lives in a 32-bit word updated with compare-and-swap, so
// concurrent writers touching different bits never race (spec.md §4.4:
// "provided writes to distinct bytes do not conflict" — widened here to
// whole words, which is always safe regardless of byte layout).
type Bitmap struct {
	words []atomic.Uint32
}

// NewBitmap allocates a bitmap large enough to hold bits [0, total).
func NewBitmap(total int) *Bitmap {
	n := (total + 31) / 32
	return &Bitmap{words: make([]atomic.Uint32, n)}
}

// Set marks bit i. Safe to call concurrently for distinct or identical i.
func (b *Bitmap) Set(i int) {
	word := &b.words[i/32]
	mask := uint32(1) << uint(i%32)

	for {
		old := word.Load()
		if old&mask != 0 {
			return
		}

		if word.CompareAndSwap(old, old|mask) {
			return
		}
	}
}

// IsSet reports whether bit i is set.
func (b *Bitmap) IsSet(i int) bool {
	word := b.words[i/32].Load()
	return word&(uint32(1)<<uint(i%32)) != 0
}

// Keys returns the ascending list of set bits in [0, total).
func (b *Bitmap) Keys(total int) []int {
	var keys []int

	for i := 0; i < total; i++ {
		if b.IsSet(i) {
			keys = append(keys, i)
		}
	}

	return keys
}

// OpenFunc opens document key for scanning.
type OpenFunc func(key int) (io.ReadCloser, error)

// DefaultWorkerCapMultiplier bounds the worker count at
// DefaultWorkerCapMultiplier*runtime.NumCPU() absent an overriding
// configuration value (spec.md §9 Open Question (iii): the multiplier is
// arbitrary and should be parameterised — internal/config exposes it).
const DefaultWorkerCapMultiplier = 10

// ParallelContains fans out `requested` (at least 1) goroutines, bounded
// by capMultiplier*runtime.NumCPU() and by total, to decide for each key
// in [0, total) whether it contains term. Workers share an atomic
// fetch-and-add counter for disjoint work assignment and a [Bitmap] for
// disjoint-bit result writes; the caller only reads the bitmap after all
// workers have finished.
//
// The result is deterministic for a fixed document set and term,
// regardless of the worker count used (spec.md §8 "Scan determinism").
func ParallelContains(total int, term string, requested int, capMultiplier int, open OpenFunc) (*Bitmap, error) {
	bmp := NewBitmap(total)

	if total == 0 || len(term) == 0 {
		return bmp, nil
	}

	workers := requested
	if workers < 1 {
		workers = 1
	}

	if capMultiplier < 1 {
		capMultiplier = DefaultWorkerCapMultiplier
	}

	if max := capMultiplier * runtime.NumCPU(); workers > max {
		workers = max
	}

	if workers > total {
		workers = total
	}

	var next atomic.Int64

	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for {
				k := int(next.Add(1) - 1)
				if k >= total {
					return
				}

				// A key with no readable document (e.g. tombstoned by a
				// prior delete) simply never matches; it is not a scan
				// failure.
				rc, err := open(k)
				if err != nil {
					continue
				}

				hit, err := Contains(rc, term)
				_ = rc.Close()

				if err == nil && hit {
					bmp.Set(k)
				}
			}
		}()
	}

	wg.Wait()

	return bmp, nil
}
