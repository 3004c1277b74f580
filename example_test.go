package bag_test

import (
	"fmt"
	"slices"
	"strings"

	"github.com/STBoyden/bag"
)

func ExampleBag_Len() {
	fmt.Println(bag.Of(1, 1, 2).Len())
	fmt.Println(bag.Of(1, 1, 2, 2).Len())
	// Output:
	// 3
	// 4
}

func ExampleBag_Occurrence() {
	b := bag.Of(0, 0, 1, 0, 1)

	fmt.Println(b.Occurrence(0), b.Occurrence(1), b.Occurrence(2))
	// Output: 3 2 0
}

func ExampleBigram() {
	b := bag.Bigram([]string{"to", "be", "or", "not", "to", "be"})

	for _, p := range slices.SortedFunc(b.Distinct(), func(x, y bag.Pair[string]) int {
		if c := strings.Compare(x.First, y.First); c != 0 {
			return c
		}
		return strings.Compare(x.Second, y.Second)
	}) {
		fmt.Println(p, b.Occurrence(p))
	}
	// Output:
	// (be, or) 1
	// (not, to) 1
	// (or, not) 1
	// (to, be) 2
}
