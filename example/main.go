package main

import (
	"cmp"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/STBoyden/bag"
	"github.com/STBoyden/bag/codectrl"

	"github.com/samber/lo"
)

const sentence = "the cat sat on the mat and the cat ran"

func printCounts[E comparable](title string, b bag.Bag[E]) {
	entries := b.Entries()

	slices.SortFunc(entries, func(x, y lo.Entry[E, uint64]) int {
		if c := cmp.Compare(y.Value, x.Value); c != 0 {
			return c
		}
		return strings.Compare(fmt.Sprint(x.Key), fmt.Sprint(y.Key))
	})

	fmt.Printf("%s (%d total, %d distinct)\n", title, b.Len(), len(b))

	lines := lo.Map(entries, func(entry lo.Entry[E, uint64], _ int) string {
		return fmt.Sprintf("  %4d  %v", entry.Value, entry.Key)
	})

	fmt.Println(strings.Join(lines, "\n"))
}

func main() {
	words := strings.Fields(sentence)

	unigrams := bag.FromSlice(words)
	bigrams := bag.Bigram(words)

	printCounts("unigrams", unigrams)
	printCounts("bigrams", bigrams)

	reporter := codectrl.NewReporter()

	if _, err := reporter.ReportWhenEnv(bigrams); err != nil {
		if _, present := os.LookupEnv(codectrl.DebugEnv); present {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
