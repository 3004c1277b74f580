package bag

import (
	"fmt"
	"iter"
)

// Pair is an ordered pair of adjacent elements.
type Pair[E comparable] struct {
	First  E
	Second E
}

func (p Pair[E]) String() string {
	return fmt.Sprintf("(%v, %v)", p.First, p.Second)
}

// Bigram counts every adjacent pair (elems[i], elems[i+1]). Fewer than two
// elements give an empty Bag.
func Bigram[E comparable](elems []E) Bag[Pair[E]] {
	bag := New[Pair[E]]()

	for i := 0; i+1 < len(elems); i++ {
		bag.Insert(Pair[E]{elems[i], elems[i+1]})
	}

	return bag
}

// BigramSeq is Bigram over a sequence.
func BigramSeq[E comparable](seq iter.Seq[E]) Bag[Pair[E]] {
	bag := New[Pair[E]]()

	var (
		prev    E
		started bool
	)

	for elem := range seq {
		if started {
			bag.Insert(Pair[E]{prev, elem})
		}

		prev, started = elem, true
	}

	return bag
}
