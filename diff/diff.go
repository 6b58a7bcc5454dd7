// Package diff computes a token level diff between two texts and classifies every token of both
// texts as unchanged, inserted, or deleted.
//
// Texts are split into tokens on single space characters and compared with Myers' O(ND)
// algorithm, see myers.go for the search and the backtrace.
package diff

import (
	"slices"
	"strings"
)

// Delimiter separates tokens. Offsets assume that tokens are joined by exactly one delimiter.
const Delimiter = " "

// Action describes what happened to a token.
//
//go:generate go run golang.org/x/tools/cmd/stringer -type=Action -linecomment
type Action int

const (
	Unset  Action = iota //
	Equal                // EQU
	Insert               // INS
	Delete               // DEL
)

// Token is a single token of either the old or the new text.
type Token struct {
	Text   string
	Offset int // Byte offset, assuming tokens are joined with a single Delimiter
	Length int // Length of Text in bytes
	Index  int // Position of the token in its own text
	Action Action
}

// Result is the classification of both texts.
//
//   - OldSet and NewSet contain every token of the old and new text, in order.
//   - OldDelete contains the tokens of OldSet that are deleted or unchanged, in order.
//   - NewInsert contains the tokens of NewSet that are inserted or unchanged, in order.
//
// OldDelete and NewInsert point into OldSet and NewSet respectively.
//
// If both texts are identical, HasChanges is false, every token is marked Equal and both
// OldDelete and NewInsert are empty.
type Result struct {
	HasChanges bool
	OldSet     []*Token
	NewSet     []*Token
	OldDelete  []*Token
	NewInsert  []*Token
}

// Tokenize splits text into tokens on every Delimiter. Empty tokens are preserved, an empty text
// yields a single empty token.
func Tokenize(text string) []string {
	return strings.Split(text, Delimiter)
}

// Diff tokenizes oldText and newText and classifies all tokens along the shortest edit script
// that transforms the old tokens into the new ones.
func Diff(oldText, newText string) Result {
	a := Tokenize(oldText)
	b := Tokenize(newText)
	trace, d := search(a, b)
	return classify(a, b, backtrace(a, b, trace, d))
}

// classify annotates the tokens of a and b with the moves of an edit path. The moves are expected
// in the order produced by backtrace, i.e. from the end of the path to its start.
func classify(a, b []string, moves []move) Result {
	res := Result{
		OldSet: tokens(a),
		NewSet: tokens(b),
	}

	if len(moves) == 0 {
		// Identical texts, there is no path to follow.
		for _, t := range res.OldSet {
			t.Action = Equal
		}
		for _, t := range res.NewSet {
			t.Action = Equal
		}
		return res
	}

	slices.Reverse(moves)
	for _, mv := range moves {
		switch {
		case mv.x == mv.prevX:
			t := res.NewSet[mv.prevY]
			t.Action = Insert
			res.NewInsert = append(res.NewInsert, t)
		case mv.y == mv.prevY:
			t := res.OldSet[mv.prevX]
			t.Action = Delete
			res.OldDelete = append(res.OldDelete, t)
		default:
			s, t := res.OldSet[mv.prevX], res.NewSet[mv.prevY]
			s.Action = Equal
			t.Action = Equal
			res.NewInsert = append(res.NewInsert, t)
			res.OldDelete = append(res.OldDelete, s)
		}
	}
	res.HasChanges = true
	return res
}

func tokens(texts []string) []*Token {
	ret := make([]*Token, 0, len(texts))
	offset := 0
	for i, text := range texts {
		ret = append(ret, &Token{
			Text:   text,
			Offset: offset,
			Length: len(text),
			Index:  i,
		})
		offset += len(text) + len(Delimiter)
	}
	return ret
}
