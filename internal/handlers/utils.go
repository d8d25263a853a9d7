package handlers

import (
	"iter"
	"strings"
)

// pieces cuts s around each instance of sep, yielding pieces lazily
// and in order. Unlike strings.Split it allocates nothing.
func pieces(s, sep string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			piece, rest, found := strings.Cut(s, sep)
			if !yield(piece) {
				return
			}
			if !found {
				return
			}
			s = rest
		}
	}
}
