package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RecordMeta captures identifiers and audit fields shared across entities.
type RecordMeta struct {
	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"updated_at"`
	DeletedAt time.Time `bun:",soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// EnsureID assigns a UUID when the struct is about to be persisted.
func (m *RecordMeta) EnsureID() {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
}

// Trashed reports whether the record has been moved to the trash.
func (m RecordMeta) Trashed() bool {
	return !m.DeletedAt.IsZero()
}

// Post types known to the capability table. Any other value is treated as a
// custom post type and mapped to the post capabilities.
const (
	PostTypePost = "post"
	PostTypePage = "page"
)

// Post statuses.
const (
	PostStatusPublish = "publish"
	PostStatusDraft   = "draft"
	PostStatusPending = "pending"
	PostStatusPrivate = "private"
)

// Post is a content record owned by the host. Number is the public numeric
// identifier used in URLs; ID is the storage key.
type Post struct {
	bun.BaseModel `bun:"table:posts"`
	RecordMeta

	Number   int64  `bun:",unique,notnull" json:"number"`
	Type     string `bun:",nullzero,notnull,default:'post'" json:"type"`
	Status   string `bun:",nullzero,notnull,default:'publish'" json:"status"`
	Title    string `bun:",nullzero" json:"title"`
	Slug     string `bun:",nullzero" json:"slug"`
	Content  string `bun:",nullzero" json:"content"`
	AuthorID string `bun:",nullzero" json:"author_id"`
}

// IsPage reports whether the post is a page.
func (p Post) IsPage() bool {
	return p.Type == PostTypePage
}

// IsPublished reports whether the post is publicly visible.
func (p Post) IsPublished() bool {
	return p.Status == PostStatusPublish
}
