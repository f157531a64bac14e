// Package weighted implements the weighted table draw shared by reward and
// mob selection.
package weighted

import "math/rand"

// Entry is one weighted candidate. Entries with weight <= 0 are never drawn.
type Entry[T any] struct {
	Weight  float64
	Payload T
}

// Table is a list of entries drawn Draws times with replacement
type Table[T any] struct {
	Draws   int
	Entries []Entry[T]
}

// TotalWeight sums the positive weights
func (t Table[T]) TotalWeight() float64 {
	var total float64
	for _, e := range t.Entries {
		if e.Weight > 0 {
			total += e.Weight
		}
	}
	return total
}

// Roll draws t.Draws payloads with replacement. Entries are scanned in
// declaration order so a seeded rng reproduces the same picks.
func Roll[T any](rng *rand.Rand, t Table[T]) []T {
	if t.Draws <= 0 {
		return nil
	}
	total := t.TotalWeight()
	if total <= 0 {
		return nil
	}

	picks := make([]T, 0, t.Draws)
	for i := 0; i < t.Draws; i++ {
		picks = append(picks, pick(rng.Float64()*total, t.Entries))
	}
	return picks
}

// Pick draws a single payload. ok is false when the table has no weight.
func Pick[T any](rng *rand.Rand, entries []Entry[T]) (T, bool) {
	t := Table[T]{Draws: 1, Entries: entries}
	picks := Roll(rng, t)
	if len(picks) == 0 {
		var zero T
		return zero, false
	}
	return picks[0], true
}

// pick returns the first entry whose cumulative weight exceeds roll. The last
// positive entry absorbs floating point drift at the upper edge.
func pick[T any](roll float64, entries []Entry[T]) T {
	var cumulative float64
	last := -1
	for i, e := range entries {
		if e.Weight <= 0 {
			continue
		}
		last = i
		cumulative += e.Weight
		if roll < cumulative {
			return e.Payload
		}
	}
	return entries[last].Payload
}
