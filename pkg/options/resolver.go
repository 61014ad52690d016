package options

import (
	"errors"
	"fmt"
	"strings"

	opts "github.com/goliatone/go-options"
	layering "github.com/goliatone/go-options/layering"
)

// Scope names used for plugin settings. Site values override system ones.
const (
	ScopeSystem = "system"
	ScopeSite   = "site"
)

// SystemScope holds built-in defaults.
func SystemScope() opts.Scope {
	return opts.NewScope(ScopeSystem, opts.ScopePrioritySystem, opts.WithScopeLabel("Built-in defaults"))
}

// SiteScope holds values supplied by site configuration.
func SiteScope() opts.Scope {
	return opts.NewScope(ScopeSite, opts.ScopePriorityUser, opts.WithScopeLabel("Site configuration"))
}

// Snapshot captures the immutable payload associated with a scope layer.
type Snapshot struct {
	Scope      opts.Scope
	Data       map[string]any
	SnapshotID string
}

// Resolver wraps a merged go-options value exposing typed lookups.
type Resolver struct {
	options *opts.Options[map[string]any]
}

var (
	// ErrNoSnapshots signals that at least one scope snapshot must be provided.
	ErrNoSnapshots = errors.New("options: at least one snapshot is required")
	// ErrNotString is returned when a resolved value is not a string.
	ErrNotString = errors.New("options: value is not a string")
)

// NewResolver merges the provided scope snapshots ordered by their scope
// priority.
func NewResolver(snapshots ...Snapshot) (*Resolver, error) {
	if len(snapshots) == 0 {
		return nil, ErrNoSnapshots
	}

	layers := make([]opts.Layer[map[string]any], 0, len(snapshots))
	for _, snap := range snapshots {
		if snap.Scope.Name == "" {
			return nil, fmt.Errorf("options: snapshot scope name is required")
		}
		layerOpts := []opts.LayerOption[map[string]any]{}
		if snap.SnapshotID != "" {
			layerOpts = append(layerOpts, opts.WithSnapshotID[map[string]any](snap.SnapshotID))
		}
		layers = append(layers, opts.NewLayer(snap.Scope, cloneMap(snap.Data), layerOpts...))
	}

	stack, err := opts.NewStack(layers...)
	if err != nil {
		return nil, err
	}
	merged, err := stack.Merge()
	if err != nil {
		return nil, err
	}
	return &Resolver{options: merged}, nil
}

// NewStringResolver layers site string values over system defaults. Blank
// site values are dropped so they never mask a default.
func NewStringResolver(defaults, site map[string]string) (*Resolver, error) {
	snapshots := []Snapshot{{
		Scope:      SystemScope(),
		Data:       stringMap(defaults),
		SnapshotID: ScopeSystem,
	}}
	if overrides := stringMap(site); len(overrides) > 0 {
		snapshots = append(snapshots, Snapshot{
			Scope:      SiteScope(),
			Data:       overrides,
			SnapshotID: ScopeSite,
		})
	}
	return NewResolver(snapshots...)
}

// Resolve fetches the value stored at path and returns the accompanying trace.
func (r *Resolver) Resolve(path string) (any, opts.Trace, error) {
	if r == nil || r.options == nil {
		return nil, opts.Trace{Path: path}, fmt.Errorf("options: resolver not initialised")
	}
	return r.options.ResolveWithTrace(path)
}

// ResolveString resolves the value at path and ensures it is a string.
func (r *Resolver) ResolveString(path string) (string, opts.Trace, error) {
	value, trace, err := r.Resolve(path)
	if err != nil {
		return "", trace, err
	}
	str, ok := value.(string)
	if !ok {
		return "", trace, fmt.Errorf("%w: %s", ErrNotString, path)
	}
	return str, trace, nil
}

// StringOr resolves path and returns fallback on any error or blank value.
func (r *Resolver) StringOr(path, fallback string) string {
	value, _, err := r.ResolveString(path)
	if err != nil || strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func stringMap(src map[string]string) map[string]any {
	out := make(map[string]any, len(src))
	for k, v := range src {
		if strings.TrimSpace(v) == "" {
			continue
		}
		out[k] = v
	}
	return out
}

func cloneMap(src map[string]any) map[string]any {
	if len(src) == 0 {
		return map[string]any{}
	}
	return layering.Clone(src)
}
