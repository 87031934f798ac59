// Package flow implements the conversation logic of the classifieds bot:
// the location gate, the top-level menu, ad browsing and the ad
// submission state machine. It is independent of the chat transport;
// inbound updates arrive as Events and replies leave through a Sender.
package flow

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/edgard/adsbot/internal/config"
	"github.com/edgard/adsbot/internal/domain/model"
	apperrors "github.com/edgard/adsbot/internal/errors"
	"github.com/edgard/adsbot/internal/listing"
)

// Store is the persistence the conversation logic needs.
type Store interface {
	GetUser(ctx context.Context, userID int64) (*model.User, error)
	EnsureUser(ctx context.Context, userID int64) (*model.User, error)
	SetUserLocation(ctx context.Context, userID int64, loc model.Location) error
	IncrementAdCount(ctx context.Context, userID int64) error
	CreateAd(ctx context.Context, ad *model.Ad) error
	ListAdsByOwner(ctx context.Context, ownerID int64, limit int) ([]model.Ad, error)
	GetSession(ctx context.Context, chatID int64) (*model.Session, error)
	SaveSession(ctx context.Context, session *model.Session) error
	DeleteSession(ctx context.Context, chatID int64) error
}

// Finder pages through ads near a requester.
type Finder interface {
	Find(ctx context.Context, q listing.Query) (*listing.Page, error)
}

// Deps holds the collaborators of a Service.
type Deps struct {
	Store    Store
	Finder   Finder
	Sender   Sender
	Messages config.MessagesConfig
	Logger   *slog.Logger

	// ChannelURL is offered by the channel menu entry when set.
	ChannelURL string
	// SessionTTL discards sessions idle for longer. Zero disables expiry.
	SessionTTL time.Duration
	MyAdsLimit int
	// Location renders announcement timestamps. Defaults to UTC.
	Location *time.Location
	Now      func() time.Time
}

type Service struct {
	store      Store
	finder     Finder
	sender     Sender
	msgs       config.MessagesConfig
	logger     *slog.Logger
	channelURL string
	sessionTTL time.Duration
	myAdsLimit int
	location   *time.Location
	now        func() time.Time
}

func NewService(deps Deps) *Service {
	s := &Service{
		store:      deps.Store,
		finder:     deps.Finder,
		sender:     deps.Sender,
		msgs:       deps.Messages,
		logger:     deps.Logger,
		channelURL: deps.ChannelURL,
		sessionTTL: deps.SessionTTL,
		myAdsLimit: deps.MyAdsLimit,
		location:   deps.Location,
		now:        deps.Now,
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s.logger = s.logger.With("component", "flow")
	if s.location == nil {
		s.location = time.UTC
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.myAdsLimit <= 0 {
		s.myAdsLimit = config.DefaultMyAdsLimit
	}
	return s
}

// loadSession returns the chat's session, or a fresh one when none is
// stored or the stored one has expired. Expired rows are removed.
func (s *Service) loadSession(ctx context.Context, chatID int64) (*model.Session, error) {
	session, err := s.store.GetSession(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return model.NewSession(chatID), nil
	}
	if session.Expired(s.now(), s.sessionTTL) {
		s.logger.InfoContext(ctx, "Discarding expired session",
			"chat_id", chatID, "state", session.State, "updated_at", session.UpdatedAt)
		if err := s.store.DeleteSession(ctx, chatID); err != nil {
			s.logger.WarnContext(ctx, "Failed to delete expired session", "error", err, "chat_id", chatID)
		}
		return model.NewSession(chatID), nil
	}
	return session, nil
}

// reply sends r and logs delivery failures. Replies are best effort.
func (s *Service) reply(ctx context.Context, chatID int64, r Reply) {
	if err := s.sender.Send(ctx, chatID, r); err != nil {
		s.logger.ErrorContext(ctx, "Failed to send reply", "error", err, "chat_id", chatID)
	}
}

func (s *Service) replyText(ctx context.Context, chatID int64, text string) {
	s.reply(ctx, chatID, Reply{Text: text})
}

// ReportError logs a failure that escaped the conversation logic and
// apologises to the chat.
func (s *Service) ReportError(ctx context.Context, chatID int64, err error) {
	s.logger.ErrorContext(ctx, "Failed to handle event",
		"error", err, "code", apperrors.Code(err), "chat_id", chatID)
	s.replyText(ctx, chatID, s.msgs.GeneralError)
}
