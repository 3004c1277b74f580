// Package bag provides an unordered multiset: a map from element to the
// number of times it was inserted.
//
// A key is never stored with a count of zero, so absence means zero. Bags are
// not safe for concurrent mutation.
package bag

import (
	"fmt"
	"iter"
	"maps"
	"math"

	e "github.com/STBoyden/bag/error"

	"github.com/go-errors/errors"
	"github.com/samber/lo"
)

type Bag[E comparable] map[E]uint64

// New creates a new empty Bag.
func New[E comparable]() Bag[E] {
	return make(map[E]uint64)
}

// Of creates a Bag holding each of elems once per appearance.
func Of[E comparable](elems ...E) Bag[E] {
	bag := make(Bag[E], len(elems))

	for _, elem := range elems {
		bag.Insert(elem)
	}

	return bag
}

// Collect inserts every element produced by seq into a new Bag.
func Collect[E comparable](seq iter.Seq[E]) Bag[E] {
	bag := New[E]()

	for elem := range seq {
		bag.Insert(elem)
	}

	return bag
}

func FromSlice[E comparable](elems []E) Bag[E] {
	return Of(elems...)
}

// Insert increments the count of elem by one.
//
// Insert panics with an OverflowError if the count of elem is already
// math.MaxUint64; the bag is left unchanged in that case.
func (b Bag[E]) Insert(elem E) {
	count := b[elem]

	if count == math.MaxUint64 {
		panic(errors.Wrap(e.New(e.OverflowError, fmt.Sprintf("count of %v is already %d", elem, count)), 1))
	}

	b[elem] = count + 1
}

// Occurrence returns the count of elem, or 0 if it was never inserted.
func (b Bag[E]) Occurrence(elem E) uint64 {
	return b[elem]
}

// Len counts all the elements, including each duplicate. Use len(b) for the
// number of distinct elements.
func (b Bag[E]) Len() uint64 {
	return lo.Sum(lo.Values(map[E]uint64(b)))
}

func (b Bag[E]) IsEmpty() bool {
	return len(b) == 0
}

// Distinct yields every stored element once, in no particular order.
//
// The sequence reads the bag when ranged over, so it can be restarted and
// always reflects the current contents. The bag must not be mutated while the
// sequence is being consumed.
func (b Bag[E]) Distinct() iter.Seq[E] {
	return maps.Keys(b)
}

// Frequency yields every stored element with its count, in no particular
// order. It follows the same rules as Distinct.
func (b Bag[E]) Frequency() iter.Seq2[E, uint64] {
	return maps.All(b)
}

// All is the same as Frequency.
func (b Bag[E]) All() iter.Seq2[E, uint64] {
	return b.Frequency()
}

// Elements returns a snapshot of the distinct elements. Later insertions are
// not reflected in the returned slice.
func (b Bag[E]) Elements() []E {
	return lo.Keys(map[E]uint64(b))
}

// Entries returns a snapshot of the (element, count) pairs.
func (b Bag[E]) Entries() []lo.Entry[E, uint64] {
	return lo.Entries(map[E]uint64(b))
}

// Equal reports whether both bags hold the same elements with the same counts.
func (b Bag[E]) Equal(other Bag[E]) bool {
	return maps.Equal(b, other)
}

func (b Bag[E]) Clone() Bag[E] {
	if b == nil {
		return New[E]()
	}

	return maps.Clone(b)
}

func (b Bag[E]) String() string {
	return fmt.Sprintf("Bag %v", map[E]uint64(b))
}
