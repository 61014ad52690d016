package capabilities

// Meta capabilities checked against a specific post.
const (
	DeletePost = "delete_post"
	DeletePage = "delete_page"
)

// Roles maps a role name to the primitive capabilities it grants.
type Roles map[string][]string

// DefaultRoles returns the stock role table.
func DefaultRoles() Roles {
	authorCaps := []string{"read", "edit_posts", "edit_published_posts", "delete_posts", "delete_published_posts", "upload_files"}
	editorCaps := append([]string{
		"edit_others_posts", "delete_others_posts", "delete_private_posts", "read_private_posts",
		"edit_pages", "edit_others_pages", "edit_published_pages",
		"delete_pages", "delete_others_pages", "delete_published_pages", "delete_private_pages",
		"moderate_comments", "manage_categories",
	}, authorCaps...)
	adminCaps := append([]string{"manage_options", "edit_users", "delete_users", "activate_plugins"}, editorCaps...)

	return Roles{
		"administrator": adminCaps,
		"editor":        editorCaps,
		"author":        authorCaps,
		"contributor":   {"read", "edit_posts", "delete_posts"},
		"subscriber":    {"read"},
	}
}

func (r Roles) grants(role, capability string) bool {
	for _, c := range r[role] {
		if c == capability {
			return true
		}
	}
	return false
}
