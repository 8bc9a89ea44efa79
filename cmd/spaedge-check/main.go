package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"

	"spaedge/pkg/report"
)

// spaedge-check prints what the edge rewrite does to each URI given as an
// argument, or one per line on stdin when there are none.
func main() {
	var (
		filter = flag.String("filter", "all", "all, rewritten or passthrough")
		width  = flag.Int("width", 0, "truncate URIs longer than this (0 = default)")
	)
	flag.Parse()

	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "spaedge-check",
		Level:  hclog.LevelFromString(os.Getenv("LOG_LEVEL")),
		Output: os.Stderr,
	})

	mode, err := parseFilter(*filter)
	if err != nil {
		logger.Error("bad flag", "error", err)
		os.Exit(2)
	}

	uris := flag.Args()
	if len(uris) == 0 {
		uris, err = readURIs(os.Stdin)
		if err != nil {
			logger.Error("reading stdin", "error", err)
			os.Exit(1)
		}
	}

	os.Exit(run(os.Stdout, uris, mode, *width))
}

func run(w io.Writer, uris []string, mode report.FilterMode, width int) int {
	outcomes := report.Evaluate(uris)
	fmt.Fprint(w, report.Build(outcomes, mode, report.Options{MaxWidth: width}))
	for _, o := range outcomes {
		if o.Err != nil {
			return 1
		}
	}
	return 0
}

func parseFilter(s string) (report.FilterMode, error) {
	switch strings.ToLower(s) {
	case "all", "a":
		return report.FilterAll, nil
	case "rewritten", "r":
		return report.FilterRewritten, nil
	case "passthrough", "p":
		return report.FilterPassthrough, nil
	}
	return report.FilterAll, fmt.Errorf("unknown filter %q", s)
}

// readURIs returns the non-blank lines of r, trimmed.
func readURIs(r io.Reader) ([]string, error) {
	var uris []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			uris = append(uris, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	return uris, nil
}
