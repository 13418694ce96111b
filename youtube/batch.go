package youtube

import "iter"

// Partition slices a sequence into chunks of size elements; the last chunk may
// be shorter. The input is consumed exactly once, in order, so single-use
// sequences are fine. Bulk lookup endpoints accept at most 50 identifiers per
// request, which is what callers here bound size with.
func Partition[T any](seq iter.Seq[T], size int) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		batch := make([]T, 0, size)
		for v := range seq {
			batch = append(batch, v)
			if len(batch) == size {
				if !yield(batch) {
					return
				}
				batch = make([]T, 0, size)
			}
		}
		if len(batch) > 0 {
			yield(batch)
		}
	}
}
