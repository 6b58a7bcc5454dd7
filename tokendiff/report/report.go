// Package report encodes the result of a token diff for humans and machines.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/goccy/go-yaml"

	"znkr.io/tokendiff/diff"
)

// ErrUnknownFormat is returned by Write for unsupported formats.
var ErrUnknownFormat = errors.New("unknown format")

// Token is the encoded form of a [diff.Token].
type Token struct {
	Text   string `json:"text" yaml:"text"`
	Offset int    `json:"offset" yaml:"offset"`
	Length int    `json:"length" yaml:"length"`
	Index  int    `json:"index" yaml:"index"`
	Action string `json:"action" yaml:"action"`
}

// Document is the encoded form of a [diff.Result]. Slices are never nil, so that they are
// encoded as empty lists rather than null.
type Document struct {
	HasChanges bool    `json:"hasChanges" yaml:"hasChanges"`
	OldSet     []Token `json:"oldSet" yaml:"oldSet"`
	NewSet     []Token `json:"newSet" yaml:"newSet"`
	OldDelete  []Token `json:"oldDelete" yaml:"oldDelete"`
	NewInsert  []Token `json:"newInsert" yaml:"newInsert"`
}

func NewDocument(res diff.Result) Document {
	return Document{
		HasChanges: res.HasChanges,
		OldSet:     tokens(res.OldSet),
		NewSet:     tokens(res.NewSet),
		OldDelete:  tokens(res.OldDelete),
		NewInsert:  tokens(res.NewInsert),
	}
}

func tokens(in []*diff.Token) []Token {
	ret := make([]Token, 0, len(in))
	for _, t := range in {
		ret = append(ret, Token{
			Text:   t.Text,
			Offset: t.Offset,
			Length: t.Length,
			Index:  t.Index,
			Action: t.Action.String(),
		})
	}
	return ret
}

// Options control the text format.
type Options struct {
	ShowEqual bool // Include unchanged tokens
}

// Write encodes res to w in the given format, one of "text", "json", or "yaml".
func Write(w io.Writer, format string, res diff.Result, opts Options) error {
	switch format {
	case "text":
		return writeText(w, res, opts)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(NewDocument(res)); err != nil {
			return fmt.Errorf("encoding json: %v", err)
		}
		return nil
	case "yaml":
		b, err := yaml.Marshal(NewDocument(res))
		if err != nil {
			return fmt.Errorf("encoding yaml: %v", err)
		}
		if _, err := w.Write(b); err != nil {
			return fmt.Errorf("writing yaml: %v", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// writeText writes one line per token: a mark ("=", "-", or "+"), the index, the offset, and the
// quoted text. Old tokens come first, followed by the new tokens.
func writeText(w io.Writer, res diff.Result, opts Options) error {
	tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', 0)
	fmt.Fprintf(tw, "changes: %v\n", res.HasChanges)
	section := func(name string, tokens []*diff.Token) {
		fmt.Fprintf(tw, "%s:\n", name)
		for _, t := range tokens {
			if t.Action == diff.Equal && !opts.ShowEqual {
				continue
			}
			fmt.Fprintf(tw, "%s\t%d\t%d\t%q\n", mark(t.Action), t.Index, t.Offset, t.Text)
		}
	}
	section("old", res.OldSet)
	section("new", res.NewSet)
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("writing text: %v", err)
	}
	return nil
}

func mark(a diff.Action) string {
	switch a {
	case diff.Equal:
		return "="
	case diff.Delete:
		return "-"
	case diff.Insert:
		return "+"
	default:
		return "?"
	}
}
