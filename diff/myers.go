package diff

// Implementation note: This is Myers' greedy forward search with a recorded trace, followed by a
// backtrace over that trace. The following posts are a good explanation of the algorithm and its
// backtrace:
//
// https://blog.jcoglan.com/2017/02/12/the-myers-diff-algorithm-part-1/
// https://blog.jcoglan.com/2017/02/15/the-myers-diff-algorithm-part-2/
//
// In contrast to the textbook version, the diagonals searched at distance d are clipped to the
// ones that can be reached without leaving the [0, n]x[0, m] edit graph.

import (
	"fmt"
	"slices"
)

const debug bool = false

// frontier stores the furthest reaching x for every diagonal k = x - y at a single edit distance.
// Diagonals can be negative, k is shifted by off to index into v.
type frontier struct {
	off int
	v   []int
}

// newFrontier returns a frontier for edit graphs with n + m = dmax. The diagonals searched are
// within [-dmax, dmax], their neighbors within [-dmax-1, dmax+1].
func newFrontier(dmax int) frontier {
	return frontier{
		off: dmax + 2,
		v:   make([]int, 2*dmax+5),
	}
}

func (f frontier) get(k int) int    { return f.v[f.index(k)] }
func (f frontier) set(k int, x int) { f.v[f.index(k)] = x }

func (f frontier) index(k int) int {
	if debug {
		if k+f.off < 0 || k+f.off >= len(f.v) {
			panic(fmt.Sprintf("k must be in [%v, %v] but is %v", -f.off, len(f.v)-f.off-1, k))
		}
	}
	return k + f.off
}

// window returns a copy of the diagonals [-d-1, d+1] of f that isn't affected by later changes to
// f. These are the only diagonals the backtrace reads at distance d, the trace therefore grows with
// d² instead of d·(n+m).
func (f frontier) window(d int) frontier {
	lo, hi := f.index(-d-1), f.index(d+1)
	return frontier{off: d + 1, v: slices.Clone(f.v[lo : hi+1])}
}

// insertion reports whether diagonal k at distance d is entered with an insertion (moving down
// from diagonal k+1) rather than a deletion (moving right from diagonal k-1). The search and the
// backtrace must agree on this choice.
func insertion(k, d int, v frontier) bool {
	return k == -d || (k != d && v.get(k-1) < v.get(k+1))
}

// search runs the forward search over a and b. It returns the trace and the length of the
// shortest edit script d.
//
// The trace holds one frontier per distance in [0, d]: trace[i] holds the diagonals [-i-1, i+1] of
// the frontier after distance i was searched.
func search(a, b []string) ([]frontier, int) {
	n, m := len(a), len(b)
	dmax := n + m

	var trace []frontier
	v := newFrontier(dmax)
	v.set(1, 0) // Lets the search at d = 0 start from (0, 0)

	for d := 0; d <= dmax+1; d++ {
		if d != 0 {
			trace = append(trace, v.window(d-1))
		}

		for k := -(d - 2*max(0, d-m)); k <= d-2*max(0, d-n)+1; k += 2 {
			var x int
			if insertion(k, d, v) {
				x = v.get(k + 1)
			} else {
				x = v.get(k-1) + 1
			}
			y := x - k

			// Follow the snake.
			for x < n && y < m && a[x] == b[y] {
				x++
				y++
			}

			v.set(k, x)

			if x >= n && y >= m {
				trace = append(trace, v.window(d))
				return trace, d
			}
		}
	}
	panic("never reached")
}

// move is a single step in the edit graph from (prevX, prevY) to (x, y).
//
//   - x - prevX == 1 and y - prevY == 1: the tokens a[prevX] and b[prevY] are equal
//   - x == prevX: b[prevY] is inserted
//   - y == prevY: a[prevX] is deleted
type move struct {
	prevX, prevY, x, y int
}

// backtrace walks the trace from (len(a), len(b)) back to (0, 0). The moves are returned in that
// order, from the end of the path to its start.
//
// No moves are returned if a and b are identical (d == 0).
func backtrace(a, b []string, trace []frontier, d int) []move {
	if d == 0 {
		return nil
	}

	moves := make([]move, 0, len(a)+len(b))
	x, y := len(a), len(b)

	for i := d; i > 0; i-- {
		v := trace[i]
		k := x - y

		// Diagonals with the parity of i-1 aren't touched when searching distance i, trace[i]
		// therefore still holds the values the search used to enter diagonal k.
		prevK := k - 1
		if insertion(k, i, v) {
			prevK = k + 1
		}
		prevX := v.get(prevK)
		prevY := prevX - prevK

		for x > prevX && y > prevY {
			moves = append(moves, move{x - 1, y - 1, x, y})
			x--
			y--
		}

		if debug {
			if (x != prevX || y != prevY+1) && (y != prevY || x != prevX+1) {
				panic(fmt.Sprintf("invariant violation: (%v, %v) -> (%v, %v) is not an edit", prevX, prevY, x, y))
			}
		}
		moves = append(moves, move{prevX, prevY, x, y})
		x, y = prevX, prevY
	}

	// Common prefix matched at d = 0.
	for x > 0 && y > 0 {
		moves = append(moves, move{x - 1, y - 1, x, y})
		x--
		y--
	}
	return moves
}
