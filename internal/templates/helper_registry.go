package templates

import (
	"sync"

	gotemplate "github.com/goliatone/go-template"
)

// helperRegistry pushes helper functions into the renderer. Nil entries are
// skipped so callers can pass partially filled maps.
type helperRegistry struct {
	mu       sync.Mutex
	renderer *gotemplate.Engine
	names    map[string]struct{}
}

func newHelperRegistry(renderer *gotemplate.Engine) *helperRegistry {
	return &helperRegistry{
		renderer: renderer,
		names:    make(map[string]struct{}),
	}
}

func (r *helperRegistry) Register(funcs map[string]any) {
	if r == nil || len(funcs) == 0 {
		return
	}
	filtered := make(map[string]any, len(funcs))
	for key, fn := range funcs {
		if fn == nil {
			continue
		}
		filtered[key] = fn
	}
	if len(filtered) == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for key := range filtered {
		r.names[key] = struct{}{}
	}
	gotemplate.WithTemplateFunc(filtered)(r.renderer)
}

func (r *helperRegistry) has(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.names[name]
	return ok
}
