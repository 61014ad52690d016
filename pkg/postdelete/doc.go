// Package postdelete lets an authorized visitor delete a post from a public
// page.
//
// The Service builds signed deletion URLs, renders a delete link only when
// the request actor may delete the target post, and handles the follow-up
// request: it verifies the token and authorization, asks the host to delete
// the post and reports where to redirect.
//
// Every extension point is a named chain in a hooks.Registry:
//
//	<prefix>/post_delete/settings          replace the Settings value
//	<prefix>/post_delete/link_defaults     replace default LinkArgs
//	<prefix>/post_delete/request_id        override the link request key
//	<prefix>/post_delete/redirect_success  override the success redirect base
//	<prefix>/post_delete/get_link          filter form of GetLink
//	<prefix>/post_delete/link              action form writing to an io.Writer
//	<prefix>/post_delete/url               filter form of URL
//	<name>/public_edit                     authorization override
//
// Register wires the get_link, link and url forms. Content passed through
// ExpandShortcodes has every [<prefix>_post_delete_link ...] tag replaced by
// the same link output.
package postdelete
