// Package hooks is an explicit extension-point registry. A hook name maps to
// an ordered chain of callbacks; filters receive the current value and return
// a possibly modified one, actions run for their side effects.
//
// Callbacks run by ascending priority; callbacks sharing a priority run in
// registration order. DefaultPriority matches the conventional midpoint so
// callers can register before or after the defaults.
package hooks
