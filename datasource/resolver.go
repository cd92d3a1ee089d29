// Package datasource decides where menu, order and message data comes from.
// Reads walk the enabled backends in preference order and end at the static
// bundled menu; writes walk the same backends and fail once all of them have.
// Backend failures are logged here and never returned raw.
package datasource

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"brewheaven-api/store"
)

// DefaultBestsellerLimit applies when callers pass a non-positive limit.
const DefaultBestsellerLimit = 6

// Options wires the backends a Resolver may use.
type Options struct {
	Preference BackendPreference
	// Relational and Document are nil when the backend is not configured.
	Relational store.Backend
	Document   store.Backend
	Static     store.MenuSource
	Logger     *slog.Logger
}

// Resolver serves menu, order and message operations from the enabled
// backends with the static menu as the last resort for reads.
type Resolver struct {
	preference BackendPreference
	backends   []store.Backend
	static     store.MenuSource
	logger     *slog.Logger
	now        func() time.Time
}

// New builds a Resolver, keeping only the non-nil backends the preference allows.
func New(opts Options) *Resolver {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	r := &Resolver{
		preference: opts.Preference,
		static:     opts.Static,
		logger:     logger.With("component", "datasource"),
		now:        time.Now,
	}
	if opts.Relational != nil && opts.Preference.usesRelational() {
		r.backends = append(r.backends, opts.Relational)
	}
	if opts.Document != nil && opts.Preference.usesDocument() {
		r.backends = append(r.backends, opts.Document)
	}
	return r
}

// Preference reports the configured backend preference.
func (r *Resolver) Preference() BackendPreference { return r.preference }

// Backends names the enabled backends in the order they are tried.
func (r *Resolver) Backends() []string {
	names := make([]string, len(r.backends))
	for i, b := range r.backends {
		names[i] = b.Name()
	}
	return names
}

// attempt runs fn against each backend in order and returns the first
// result accepted by accept. Rejected results and backend errors move on to
// the next backend; caller errors stop the walk. When nothing is accepted the
// error is errEmpty or store.ErrNotFound if some backend did answer,
// otherwise ErrNoBackend. A not-found answer from one backend does not hide
// another backend's failure.
func attempt[T any](r *Resolver, op string, fn func(store.Backend) (T, error), accept func(T) bool) (T, error) {
	var (
		zero     T
		answered error
		failure  error
	)
	for _, b := range r.backends {
		v, err := fn(b)
		switch {
		case err == nil && accept(v):
			return v, nil
		case isCallerError(err):
			return zero, err
		case err == nil:
			r.logger.Debug("backend returned nothing", "backend", b.Name(), "op", op)
			if answered == nil {
				answered = errEmpty
			}
		case errors.Is(err, store.ErrNotFound):
			answered = store.ErrNotFound
		default:
			r.logger.Warn("backend failed, trying next", "backend", b.Name(), "op", op, "error", err)
			failure = err
		}
	}
	// a miss only counts when every backend could look
	if errors.Is(answered, store.ErrNotFound) && failure != nil {
		return zero, fmt.Errorf("%w: %s: %v", ErrNoBackend, op, failure)
	}
	if answered != nil {
		return zero, answered
	}
	if failure == nil {
		return zero, fmt.Errorf("%w: %s: no backend enabled", ErrNoBackend, op)
	}
	return zero, fmt.Errorf("%w: %s: %v", ErrNoBackend, op, failure)
}

// isCallerError reports errors caused by the request rather than a backend.
func isCallerError(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrInvalidTransition)
}

func nonEmpty[T any](v []T) bool { return len(v) > 0 }

func notNil[T any](v *T) bool { return v != nil }
