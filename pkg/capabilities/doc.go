// Package capabilities resolves named permissions for host actors.
//
// Primitive capabilities (delete_posts, delete_others_pages, ...) come from
// the actor's roles plus explicit per-actor grants. The meta capabilities
// delete_post and delete_page are scoped to a post and map to the primitive
// capabilities the post's ownership and status require.
package capabilities
