package rangeview

// FlatMap applies f to every element of src and concatenates the resulting sequences in order.
// Inner sequences are created only when the consumer reaches them.
func FlatMap[S, T any](src Seq[S], f func(S) Seq[T]) Seq[T] {
	return func(yield func(T, error) bool) {
		for s, err := range src {
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			for t, err := range f(s) {
				if !yield(t, err) || err != nil {
					return
				}
			}
		}
	}
}

// Map converts every element of src with f.
func Map[S, T any](src Seq[S], f func(S) T) Seq[T] {
	return func(yield func(T, error) bool) {
		for s, err := range src {
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			if !yield(f(s), nil) {
				return
			}
		}
	}
}

// Filter keeps the elements of src for which keep returns true.
func Filter[T any](src Seq[T], keep func(T) bool) Seq[T] {
	return func(yield func(T, error) bool) {
		for item, err := range src {
			if err != nil {
				yield(item, err)
				return
			}
			if keep(item) && !yield(item, nil) {
				return
			}
		}
	}
}

// Concat traverses the given sequences one after another.
func Concat[T any](seqs ...Seq[T]) Seq[T] {
	return FlatMap(FromSlice(seqs), func(s Seq[T]) Seq[T] { return s })
}

// Take stops after n elements. It is the usual way to bound an unbounded range.
func Take[T any](src Seq[T], n int) Seq[T] {
	return func(yield func(T, error) bool) {
		if n <= 0 {
			return
		}
		taken := 0
		for item, err := range src {
			if !yield(item, err) || err != nil {
				return
			}
			taken++
			if taken >= n {
				return
			}
		}
	}
}
