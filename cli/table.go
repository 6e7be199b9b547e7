package cli

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/term"
)

// newTable returns a table writer rendering to w in the shared style.
func newTable(w io.Writer) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.Style().Options.SeparateRows = false
	tw.Style().Options.DrawBorder = true
	return tw
}

// header renders column titles the way every report shows them.
func header(titles ...string) table.Row {
	row := make(table.Row, len(titles))
	for i, t := range titles {
		row[i] = text.FgHiCyan.Sprint(t)
	}
	return row
}

// terminalWidth returns the width of w when it is a terminal, then of
// stdout, and -1 when neither is.
func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil {
			return width
		}
	}
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return width
	}
	return -1
}

// truncTransformer ellipsizes cells wider than limit runes.
func truncTransformer(limit int) text.Transformer {
	return func(val interface{}) string {
		s := fmt.Sprint(val)
		if utf8.RuneCountInString(s) <= limit {
			return s
		}
		if limit <= 1 {
			return "…"
		}
		r := []rune(s)
		return string(r[:limit-1]) + "…"
	}
}
