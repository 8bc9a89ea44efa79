package report

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"spaedge/pkg/rewrite"
)

// FilterMode matches the TUI filters.
type FilterMode int

const (
	FilterAll FilterMode = iota
	FilterRewritten
	FilterPassthrough
)

func (m FilterMode) String() string {
	switch m {
	case FilterRewritten:
		return "Rewritten only (R)"
	case FilterPassthrough:
		return "Passthrough only (P)"
	default:
		return "All (A)"
	}
}

// Outcome is the result of running one URI through the rewriter.
type Outcome struct {
	Input     string
	Output    string
	Rewritten bool
	Err       error
}

// Evaluate rewrites each uri independently.
func Evaluate(uris []string) []Outcome {
	out := make([]Outcome, 0, len(uris))
	for _, uri := range uris {
		out = append(out, evaluate(uri))
	}
	return out
}

func evaluate(uri string) Outcome {
	o := Outcome{Input: uri}
	req, err := rewrite.Rewrite(&rewrite.Request{URI: uri})
	if err != nil {
		o.Err = err
		return o
	}
	o.Output = req.URI
	o.Rewritten = req.URI != uri
	return o
}

// Options controls rendering details.
type Options struct {
	Colorize bool // when true, use tview color tags
	MaxWidth int  // URIs longer than this are truncated
}

func defaultOptions() Options {
	return Options{
		Colorize: false,
		MaxWidth: 60,
	}
}

// Build renders outcomes as text, one line each, followed by a summary.
func Build(outcomes []Outcome, mode FilterMode, opts Options) string {
	if opts.MaxWidth == 0 {
		opts.MaxWidth = defaultOptions().MaxWidth
	}

	var b strings.Builder
	b.WriteString(wrap("Rewrite results", "[yellow]", opts.Colorize))
	b.WriteString("\nLegend: ")
	b.WriteString(wrap("R", "[lime]", opts.Colorize))
	b.WriteString("=rewritten  ")
	b.WriteString(wrap("P", "[dodgerblue]", opts.Colorize))
	b.WriteString("=passthrough  ")
	b.WriteString(wrap("!", "[red]", opts.Colorize))
	b.WriteString("=failed\n")
	fmt.Fprintf(&b, "Filter: %s\n\n", mode)

	var rewritten, passthrough, failed, shown int
	for _, o := range outcomes {
		switch {
		case o.Err != nil:
			failed++
		case o.Rewritten:
			rewritten++
		default:
			passthrough++
		}
		if !visible(o, mode) {
			continue
		}
		shown++
		b.WriteString(line(o, opts))
		b.WriteByte('\n')
	}
	if shown == 0 {
		b.WriteString(wrap("No results for this filter.", "[red]", opts.Colorize))
		b.WriteByte('\n')
	}

	fmt.Fprintf(&b, "\n%d rewritten, %d passthrough, %d failed\n", rewritten, passthrough, failed)
	return b.String()
}

func visible(o Outcome, mode FilterMode) bool {
	switch mode {
	case FilterRewritten:
		return o.Err == nil && o.Rewritten
	case FilterPassthrough:
		return o.Err == nil && !o.Rewritten
	default:
		return true
	}
}

func line(o Outcome, opts Options) string {
	in := uriText(o.Input, opts)
	switch {
	case o.Err != nil:
		return wrap("!", "[red]", opts.Colorize) + " " + in + "  " + escape(o.Err.Error(), opts.Colorize)
	case o.Rewritten:
		return wrap("R", "[lime]", opts.Colorize) + " " + in + " → " + uriText(o.Output, opts)
	default:
		return wrap("P", "[dodgerblue]", opts.Colorize) + " " + in
	}
}

func uriText(uri string, opts Options) string {
	if uri == "" {
		return "(empty)"
	}
	return escape(truncate(uri, opts.MaxWidth), opts.Colorize)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width < 2 || len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}

// escape keeps URIs containing brackets from being read as color tags.
func escape(s string, colorize bool) string {
	if colorize {
		return tview.Escape(s)
	}
	return s
}

func wrap(s, color string, colorize bool) string {
	if colorize && color != "" {
		return color + s + "[-:-:-]"
	}
	return s
}
