package flow

import (
	"context"

	"github.com/edgard/adsbot/internal/domain/model"
)

// Sender delivers replies to users and announcements to the channel.
type Sender interface {
	Send(ctx context.Context, chatID int64, reply Reply) error
	Broadcast(ctx context.Context, reply Reply) error
}

// Reply is an outbound message. When Media is present the text becomes
// its caption.
type Reply struct {
	Text     string
	HTML     bool
	Media    model.Media
	Keyboard Keyboard
}

// Keyboard is one of MenuKeyboard, RemoveKeyboard or InlineKeyboard.
type Keyboard interface {
	isKeyboard()
}

// MenuKeyboard is a persistent reply keyboard of text buttons.
type MenuKeyboard struct {
	Rows [][]string
}

// RemoveKeyboard hides any reply keyboard.
type RemoveKeyboard struct{}

// InlineKeyboard is attached to a single message.
type InlineKeyboard struct {
	Rows [][]Button
}

// Button is an inline button carrying either callback Data or a URL.
type Button struct {
	Text string
	Data string
	URL  string
}

func (MenuKeyboard) isKeyboard()   {}
func (RemoveKeyboard) isKeyboard() {}
func (InlineKeyboard) isKeyboard() {}
