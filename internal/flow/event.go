package flow

import (
	"strings"

	"github.com/edgard/adsbot/internal/domain/model"
)

// EventKind classifies an inbound event.
type EventKind int

const (
	EventText EventKind = iota + 1
	EventCommand
	EventMedia
	EventCallback
)

func (k EventKind) String() string {
	switch k {
	case EventText:
		return "text"
	case EventCommand:
		return "command"
	case EventMedia:
		return "media"
	case EventCallback:
		return "callback"
	default:
		return "unknown"
	}
}

// Commands understood by the bot.
const (
	CommandStart       = "start"
	CommandSetLocation = "setlocation"
	CommandCancel      = "cancel"
	CommandHelp        = "help"
)

// Callback payloads attached to inline buttons.
const (
	CallbackCategoryPrefix = "category_"
	CallbackFilterPrefix   = "filter_"
	CallbackMore           = "more"
	CallbackPublish        = "publish_nomedia"
)

// CommandPrefix starts every command.
const CommandPrefix = "/"

// Commands that pass the location gate unconditionally.
var gateAllowList = map[string]bool{
	CommandStart:       true,
	CommandSetLocation: true,
	CommandCancel:      true,
}

// Event is a transport-independent inbound user action.
type Event struct {
	Kind   EventKind
	ChatID int64
	UserID int64

	// Text is the message text, or the caption of a media message.
	Text string
	// Command is the lowercased command name without prefix or bot suffix.
	Command string
	// Data is the callback payload.
	Data  string
	Media model.Media
}

// ParseCommand extracts the command name from text such as "/start@adsbot arg".
func ParseCommand(text string) (string, bool) {
	if !strings.HasPrefix(text, CommandPrefix) {
		return "", false
	}
	fields := strings.Fields(text)
	name := strings.TrimPrefix(fields[0], CommandPrefix)
	if at := strings.IndexByte(name, '@'); at >= 0 {
		name = name[:at]
	}
	return strings.ToLower(name), true
}

// NewTextEvent classifies free text as a command or plain text.
func NewTextEvent(chatID, userID int64, text string) Event {
	if name, ok := ParseCommand(text); ok {
		return Event{Kind: EventCommand, ChatID: chatID, UserID: userID, Text: text, Command: name}
	}
	return Event{Kind: EventText, ChatID: chatID, UserID: userID, Text: text}
}
