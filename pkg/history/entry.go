package history

import (
	"errors"
	"os"
	"path/filepath"
	"time"
)

// ErrUnsupported is returned by every Store method in the wasm build.
var ErrUnsupported = errors.New("history not available in wasm build")

// Entry is one distinct URI from the history.
type Entry struct {
	Input     string
	Output    string
	Rewritten bool
	Error     string
	Hits      int
	LastSeen  time.Time
}

// DefaultPath is <user cache dir>/spaedge/history.db, falling back to the
// working directory when no cache dir is known.
func DefaultPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "history.db"
	}
	return filepath.Join(dir, "spaedge", "history.db")
}

// Inputs returns the Input of each entry, in order.
func Inputs(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Input)
	}
	return out
}
