package postdelete

// Request and redirect parameter names.
const (
	DefaultRequestID = "delete_post"
	NonceParam       = "nonce"
	SuccessParam     = "delete_post_success"
	FailureParam     = "delete_post_failure"
)

// Hook suffixes under <prefix>/post_delete/.
const (
	HookSettings        = "settings"
	HookLinkDefaults    = "link_defaults"
	HookRequestID       = "request_id"
	HookRedirectSuccess = "redirect_success"
	HookGetLink         = "get_link"
	HookLink            = "link"
	HookURL             = "url"
)

// PublicEditAllowLoggedIn is the public_edit value that allows any logged in
// actor.
const PublicEditAllowLoggedIn = "loggedin"

// HookName returns the full name of a post_delete hook.
func (s *Service) HookName(suffix string) string {
	return s.plugin.Prefix + "/post_delete/" + suffix
}

// PublicEditHook returns the name of the authorization override filter.
func (s *Service) PublicEditHook() string {
	return s.plugin.Name + "/public_edit"
}

// ShortcodeTag returns the shortcode handled by ExpandShortcodes.
func (s *Service) ShortcodeTag() string {
	return s.plugin.Prefix + "_post_delete_link"
}
