package ecs

import "golang.org/x/sync/errgroup"

// Chunk is a contiguous run of query results owned by a single worker.
type Chunk[T any] struct {
	items []T
}

// Len returns the number of entities in the chunk.
func (c Chunk[T]) Len() int {
	return len(c.items)
}

// Each calls fn for every entity in the chunk, in order.
func (c Chunk[T]) Each(fn func(T)) {
	for _, item := range c.items {
		fn(item)
	}
}

// partition cuts items into at most n contiguous, non-overlapping windows.
// A query caches each matched entity exactly once, so disjoint windows
// mean no two chunks ever reference the same entity and per-entity writes
// need no locking.
func partition[T any](items []T, n int) []Chunk[T] {
	if len(items) == 0 {
		return nil
	}
	n = max(1, min(n, len(items)))

	size := (len(items) + n - 1) / n
	chunks := make([]Chunk[T], 0, n)
	for lo := 0; lo < len(items); lo += size {
		hi := min(lo+size, len(items))
		// Cap the capacity so an append inside a chunk cannot spill into its neighbour.
		chunks = append(chunks, Chunk[T]{items: items[lo:hi:hi]})
	}
	return chunks
}

// runChunks runs fn over every chunk and joins before returning.
// A single chunk runs on the calling goroutine.
func runChunks[T any](chunks []Chunk[T], fn func(T)) {
	switch len(chunks) {
	case 0:
		return
	case 1:
		chunks[0].Each(fn)
		return
	}

	var g errgroup.Group
	for _, chunk := range chunks {
		g.Go(func() error {
			chunk.Each(fn)
			return nil
		})
	}
	_ = g.Wait()
}
