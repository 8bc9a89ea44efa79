//go:build js

package history

import (
	"context"

	"spaedge/pkg/report"
)

// Store is a no-op in wasm; there is no sqlite.
type Store struct{}

func Open(context.Context, string) (*Store, error) { return nil, ErrUnsupported }

func (*Store) Record(context.Context, report.Outcome) error { return ErrUnsupported }

func (*Store) Recent(context.Context, int) ([]Entry, error) { return nil, ErrUnsupported }

func (*Store) Clear(context.Context) error { return ErrUnsupported }

func (*Store) Close() error { return nil }
