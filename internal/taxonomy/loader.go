package taxonomy

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"whatfeeling/internal/emotion"
	"whatfeeling/internal/logging"
)

// ErrNotLoaded is returned by Roots before a successful Load.
var ErrNotLoaded = errors.New("taxonomy not loaded")

// Status is the observable state of a Loader.
type Status int

const (
	StatusPending Status = iota
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "pending"
	}
}

// Result is a snapshot of the loader for the rendering layer.
type Result struct {
	Status Status
	Roots  []*emotion.Node
	Err    error
}

// Loader fetches the taxonomy once per session. A failed load is terminal:
// later calls return the same error without fetching again.
type Loader struct {
	src   Source
	group singleflight.Group

	mu     sync.RWMutex
	status Status
	roots  []*emotion.Node
	err    error
}

// NewLoader creates a pending loader over src.
func NewLoader(src Source) *Loader {
	return &Loader{src: src}
}

// Load fetches and validates the taxonomy. Concurrent callers share one
// in-flight fetch.
func (l *Loader) Load(ctx context.Context) ([]*emotion.Node, error) {
	l.mu.RLock()
	status, roots, err := l.status, l.roots, l.err
	l.mu.RUnlock()
	switch status {
	case StatusReady:
		return roots, nil
	case StatusFailed:
		return nil, err
	}

	v, err, shared := l.group.Do("taxonomy", func() (interface{}, error) {
		timer := logging.StartTimer(logging.CategoryTaxonomy, "taxonomy fetch")
		defer timer.Stop()

		roots, err := l.src.Fetch(ctx)
		if err == nil {
			if verr := emotion.Validate(roots); verr != nil {
				err = fmt.Errorf("invalid taxonomy: %w", verr)
			}
		}

		l.mu.Lock()
		defer l.mu.Unlock()
		if err != nil {
			l.status, l.err = StatusFailed, err
			logging.TaxonomyError("load failed: %v", err)
			return nil, err
		}
		l.status, l.roots = StatusReady, roots
		logging.Taxonomy("loaded %d primaries (%d nodes)", len(roots), emotion.Count(roots))
		return roots, nil
	})
	if shared {
		logging.TaxonomyDebug("joined in-flight taxonomy fetch")
	}
	if err != nil {
		return nil, err
	}
	return v.([]*emotion.Node), nil
}

// Result returns the current state.
func (l *Loader) Result() Result {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return Result{Status: l.status, Roots: l.roots, Err: l.err}
}

// Roots returns the loaded forest, or ErrNotLoaded.
func (l *Loader) Roots() ([]*emotion.Node, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.status != StatusReady {
		return nil, ErrNotLoaded
	}
	return l.roots, nil
}
