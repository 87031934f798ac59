package model

import "time"

// State is the position of a chat inside the ad submission flow.
type State int

const (
	StateIdle State = iota
	StateSelectingCategory
	StateAwaitingDescription
	StateAwaitingMedia
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSelectingCategory:
		return "selecting_category"
	case StateAwaitingDescription:
		return "awaiting_description"
	case StateAwaitingMedia:
		return "awaiting_media"
	default:
		return "unknown"
	}
}

// Session is the per-chat conversation state. It holds the in-progress
// submission, the location-input flag and the listing cursor.
type Session struct {
	ChatID           int64    `db:"chat_id"`
	State            State    `db:"state"`
	AwaitingLocation bool     `db:"awaiting_location"`
	Category         Category `db:"category"`
	Description      string   `db:"description"`

	// Media staged before the description arrived.
	Media

	ListOffset    int       `db:"list_offset"`
	ListCategory  Category  `db:"list_category"`
	ListBroadened bool      `db:"list_broadened"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// NewSession returns an idle session for chatID.
func NewSession(chatID int64) *Session {
	return &Session{ChatID: chatID, State: StateIdle}
}

// InSubmission reports whether the chat is inside the submission flow.
func (s *Session) InSubmission() bool {
	return s.State != StateIdle
}

// BeginSubmission drops leftovers of any previous submission and waits for
// a category.
func (s *Session) BeginSubmission() {
	s.ResetSubmission()
	s.State = StateSelectingCategory
}

// ResetSubmission clears every submission field and returns to idle.
func (s *Session) ResetSubmission() {
	s.State = StateIdle
	s.Category = ""
	s.Description = ""
	s.Media = Media{}
}

// ResetListing rewinds the listing cursor to the first page.
func (s *Session) ResetListing(category Category) {
	s.ListOffset = 0
	s.ListCategory = category
	s.ListBroadened = false
}

// Expired reports whether the session has been idle longer than ttl.
func (s *Session) Expired(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 || s.UpdatedAt.IsZero() {
		return false
	}
	return now.Sub(s.UpdatedAt) > ttl
}
