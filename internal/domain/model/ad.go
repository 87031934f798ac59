package model

import "time"

// MediaKind identifies how an attachment has to be sent back.
type MediaKind string

const (
	MediaNone     MediaKind = ""
	MediaPhoto    MediaKind = "photo"
	MediaVideo    MediaKind = "video"
	MediaDocument MediaKind = "document"
)

// Media is a single attachment referenced by its platform file id.
type Media struct {
	Kind MediaKind `db:"media_kind"`
	Ref  string    `db:"media_ref"`
}

// Present reports whether m carries an attachment.
func (m Media) Present() bool {
	return m.Kind != MediaNone && m.Ref != ""
}

// User is a platform participant. Users are never deleted.
type User struct {
	UserID          int64     `db:"user_id"`
	AdCount         int       `db:"ad_count"`
	HasSubscription bool      `db:"has_subscription"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`

	Location
}

// Ad is an immutable classified listing.
type Ad struct {
	ID          string    `db:"id"`
	OwnerID     int64     `db:"owner_id"`
	Category    Category  `db:"category"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`

	Media
	// Location is the owner's location at publish time.
	Location
}
