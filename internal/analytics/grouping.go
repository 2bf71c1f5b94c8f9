package analytics

// Groups is the output of GroupBy: folded buckets plus their keys in first-seen order.
type Groups[K comparable, A any] struct {
	keys    []K
	buckets map[K]A
}

// GroupBy buckets items by a structural key and folds each item into its bucket's accumulator.
// init creates the accumulator the first time a key is seen; fold returns the updated accumulator.
func GroupBy[T any, K comparable, A any](items []T, key func(T) K, init func(K) A, fold func(A, T) A) *Groups[K, A] {
	g := &Groups[K, A]{buckets: make(map[K]A)}
	for _, item := range items {
		k := key(item)
		acc, ok := g.buckets[k]
		if !ok {
			acc = init(k)
			g.keys = append(g.keys, k)
		}
		g.buckets[k] = fold(acc, item)
	}
	return g
}

// Len returns the number of buckets.
func (g *Groups[K, A]) Len() int {
	return len(g.keys)
}

// Keys returns bucket keys in first-seen order.
func (g *Groups[K, A]) Keys() []K {
	out := make([]K, len(g.keys))
	copy(out, g.keys)
	return out
}

// Get returns the accumulator for k.
func (g *Groups[K, A]) Get(k K) (A, bool) {
	acc, ok := g.buckets[k]
	return acc, ok
}

// Each visits buckets in first-seen order.
func (g *Groups[K, A]) Each(fn func(K, A)) {
	for _, k := range g.keys {
		fn(k, g.buckets[k])
	}
}

// Filter returns the items keep accepts, preserving order.
func Filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// appendTo is the fold used when a bucket just collects its members.
func appendTo[T any](acc []T, item T) []T {
	return append(acc, item)
}
