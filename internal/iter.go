package internal

import (
	"iter"
)

// Values2 drops the keys of a dual-return iterator.
func Values2[K any, V any](seq iter.Seq2[K, V]) iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, val := range seq {
			if !yield(val) {
				return // Stop if the consumer stops
			}
		}
	}
}

// SliceConcat joins every slice of a sequence, in order, into one slice.
func SliceConcat[T any](seq iter.Seq[[]T]) (out []T) {
	for chunk := range seq {
		out = append(out, chunk...)
	}
	return
}
