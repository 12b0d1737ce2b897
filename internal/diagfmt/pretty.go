package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"keyva/internal/diag"
	"keyva/internal/source"
)

// Pretty renders diagnostics for humans. It walks bag.Items() in order
// (call bag.Sort() first) and prints, per diagnostic:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed, when ShowPreview is set, by the source line with a ^~~~
// underline covering the span, and then any notes in the same shape.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	sevColor := map[diag.Severity]*color.Color{
		diag.SevError:   color.New(color.FgRed, color.Bold),
		diag.SevWarning: color.New(color.FgYellow, color.Bold),
		diag.SevInfo:    color.New(color.FgCyan),
	}
	for _, c := range sevColor {
		if !opts.Color {
			c.DisableColor()
		} else {
			c.EnableColor()
		}
	}

	for _, d := range bag.Items() {
		start, _ := fs.Resolve(d.Primary)
		head := fmt.Sprintf("%s:%d:%d: ", displayPath(fs, d.Primary, opts.PathMode), start.Line, start.Col)
		sev := sevColor[d.Severity].Sprintf("%s %s", d.Severity.String(), d.Code.ID())
		fmt.Fprintf(w, "%s%s: %s\n", head, sev, clip(d.Message, opts.Width))

		if opts.ShowPreview {
			writePreview(w, fs, d.Primary, opts.Width)
		}
		if opts.ShowNotes {
			for _, n := range d.Notes {
				nStart, _ := fs.Resolve(n.Span)
				fmt.Fprintf(w, "  %s:%d:%d: note: %s\n",
					displayPath(fs, n.Span, opts.PathMode), nStart.Line, nStart.Col, clip(n.Msg, opts.Width))
				if opts.ShowPreview {
					writePreview(w, fs, n.Span, opts.Width)
				}
			}
		}
	}
}

// writePreview prints the first line the span touches and underlines the
// covered columns: a caret under the first rune, tildes under the rest.
func writePreview(w io.Writer, fs *source.FileSet, span source.Span, width uint16) {
	f := fs.Get(span.File)
	start, end := fs.Resolve(span)
	line := f.GetLine(start.Line)
	if line == "" && span.Len() == 0 {
		return
	}

	prefix := line[:min(int(start.Col-1), len(line))]
	pad := runewidth.StringWidth(prefix)

	covered := int(end.Col - start.Col)
	if end.Line != start.Line || covered < 1 {
		covered = 1
	}
	spanText := line[min(int(start.Col-1), len(line)):]
	if covered < len(spanText) {
		spanText = spanText[:covered]
	}
	underline := runewidth.StringWidth(spanText)
	if underline < 1 {
		underline = 1
	}

	fmt.Fprintf(w, "  %s\n", clip(line, width))
	fmt.Fprintf(w, "  %s^%s\n", strings.Repeat(" ", pad), strings.Repeat("~", underline-1))
}

func displayPath(fs *source.FileSet, span source.Span, mode PathMode) string {
	p := fs.Get(span.File).Path
	if mode == PathModeBasename {
		return filepath.Base(p)
	}
	return p
}

// clip truncates s to the configured display width, rune-aware.
func clip(s string, width uint16) string {
	if width == 0 || runewidth.StringWidth(s) <= int(width) {
		return s
	}
	return runewidth.Truncate(s, int(width), "…")
}
