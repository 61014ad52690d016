// Package host defines the collaborators a content host supplies to the
// post-delete service: content lookup and deletion, actor resolution,
// capability checks, single-use tokens and site URLs.
//
// Request-scoped ambient values (the current actor and the post being
// rendered) travel in a context.Context.
package host
