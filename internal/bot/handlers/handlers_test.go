package handlers

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/adsbot/internal/config"
	"github.com/edgard/adsbot/internal/database"
	"github.com/edgard/adsbot/internal/domain/model"
	"github.com/edgard/adsbot/internal/flow"
	"github.com/edgard/adsbot/internal/listing"
)

const adminID = int64(777)

type recordingSender struct {
	mu      sync.Mutex
	replies []flow.Reply
}

func (r *recordingSender) Send(_ context.Context, _ int64, reply flow.Reply) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replies = append(r.replies, reply)
	return nil
}

func (r *recordingSender) Broadcast(context.Context, flow.Reply) error { return nil }

func (r *recordingSender) lastText() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.replies) == 0 {
		return ""
	}
	return r.replies[len(r.replies)-1].Text
}

func newTestDeps(t *testing.T) (HandlerDeps, *recordingSender) {
	t.Helper()

	db, err := database.NewDB(filepath.Join(t.TempDir(), "ads.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.CloseDB(db) })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := database.NewStore(db, logger)
	sender := &recordingSender{}

	cfg := &config.Config{Messages: config.DefaultMessages}
	cfg.Telegram.AdminUserID = adminID

	svc := flow.NewService(flow.Deps{
		Store:    store,
		Finder:   listing.NewEngine(store, 0, logger),
		Sender:   sender,
		Messages: cfg.Messages,
		Logger:   logger,
	})
	return HandlerDeps{Logger: logger, Config: cfg, Store: store, Flow: svc, Sender: sender}, sender
}

func textUpdate(userID int64, text string) *models.Update {
	return &models.Update{Message: &models.Message{
		ID:   1,
		From: &models.User{ID: userID},
		Chat: models.Chat{ID: userID},
		Text: text,
	}}
}

func TestEventFromUpdate(t *testing.T) {
	t.Parallel()

	ev, ok := EventFromUpdate(textUpdate(5, "/start@ads_bot"))
	require.True(t, ok)
	assert.Equal(t, flow.EventCommand, ev.Kind)
	assert.Equal(t, flow.CommandStart, ev.Command)
	assert.Equal(t, int64(5), ev.ChatID)

	ev, ok = EventFromUpdate(textUpdate(5, "Москва"))
	require.True(t, ok)
	assert.Equal(t, flow.EventText, ev.Kind)

	photo := &models.Update{Message: &models.Message{
		From:    &models.User{ID: 5},
		Chat:    models.Chat{ID: 6},
		Caption: "Велосипед",
		Photo: []models.PhotoSize{
			{FileID: "small", Width: 90, Height: 90},
			{FileID: "large", Width: 1280, Height: 960},
			{FileID: "medium", Width: 320, Height: 240},
		},
	}}
	ev, ok = EventFromUpdate(photo)
	require.True(t, ok)
	assert.Equal(t, flow.EventMedia, ev.Kind)
	assert.Equal(t, model.Media{Kind: model.MediaPhoto, Ref: "large"}, ev.Media)
	assert.Equal(t, "Велосипед", ev.Text)
	assert.Equal(t, int64(6), ev.ChatID)

	video := &models.Update{Message: &models.Message{
		From: &models.User{ID: 5}, Chat: models.Chat{ID: 5}, Video: &models.Video{FileID: "v"},
	}}
	ev, ok = EventFromUpdate(video)
	require.True(t, ok)
	assert.Equal(t, model.Media{Kind: model.MediaVideo, Ref: "v"}, ev.Media)

	doc := &models.Update{Message: &models.Message{
		From: &models.User{ID: 5}, Chat: models.Chat{ID: 5}, Document: &models.Document{FileID: "d"},
	}}
	ev, ok = EventFromUpdate(doc)
	require.True(t, ok)
	assert.Equal(t, model.Media{Kind: model.MediaDocument, Ref: "d"}, ev.Media)

	callback := &models.Update{CallbackQuery: &models.CallbackQuery{
		ID:   "cb",
		From: models.User{ID: 5},
		Data: flow.CallbackMore,
		Message: models.MaybeInaccessibleMessage{
			InaccessibleMessage: &models.InaccessibleMessage{Chat: models.Chat{ID: 9}},
		},
	}}
	ev, ok = EventFromUpdate(callback)
	require.True(t, ok)
	assert.Equal(t, flow.EventCallback, ev.Kind)
	assert.Equal(t, int64(9), ev.ChatID)
	assert.Equal(t, flow.CallbackMore, ev.Data)

	sticker := &models.Update{Message: &models.Message{From: &models.User{ID: 5}, Chat: models.Chat{ID: 5}}}
	_, ok = EventFromUpdate(sticker)
	assert.False(t, ok)

	_, ok = EventFromUpdate(&models.Update{})
	assert.False(t, ok)
}

func TestDefaultHandlerFlow(t *testing.T) {
	t.Parallel()
	deps, sender := newTestDeps(t)
	handler := NewDefaultHandler(deps)
	ctx := context.Background()

	handler(ctx, nil, textUpdate(1, flow.LabelCityAds))
	assert.Equal(t, deps.Config.Messages.LocationMissing, sender.lastText())

	handler(ctx, nil, textUpdate(1, "/start"))
	assert.Equal(t, deps.Config.Messages.LocationPrompt, sender.lastText())

	handler(ctx, nil, textUpdate(1, "Россия, Москва"))
	assert.Equal(t, "✅ Локация сохранена: Россия, Москва", sender.lastText())

	handler(ctx, nil, textUpdate(1, flow.LabelCityAds))
	assert.Equal(t, "🔍 В вашем городе \"Москва\" пока нет объявлений.\n🔍 Объявлений в вашей стране \"Россия\" тоже нет.", sender.lastText())
}

func TestStatsHandlerAdminOnly(t *testing.T) {
	t.Parallel()
	deps, sender := newTestDeps(t)
	ctx := context.Background()

	registered := RegisterAllCommands(deps)
	stats, ok := registered["/stats"]
	require.True(t, ok)

	handler := stats.Handler
	for i := len(stats.Middleware) - 1; i >= 0; i-- {
		handler = stats.Middleware[i](handler)
	}

	handler(ctx, nil, textUpdate(1, "/stats"))
	assert.Equal(t, deps.Config.Messages.NotAuthorized, sender.lastText())

	_, err := deps.Store.EnsureUser(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, deps.Store.SetUserLocation(ctx, 2, model.Location{Country: "Россия", City: "Москва"}))

	handler(ctx, nil, textUpdate(adminID, "/stats"))
	assert.Equal(t, "📊 Пользователей: 2\n📍 С локацией: 1\n📢 Объявлений: 0", sender.lastText())
}

func TestRegisterAllCommandsWithoutAdmin(t *testing.T) {
	t.Parallel()
	deps, _ := newTestDeps(t)
	deps.Config.Telegram.AdminUserID = 0

	assert.Empty(t, RegisterAllCommands(deps))
}

func TestSerializeChats(t *testing.T) {
	t.Parallel()

	var (
		mu      sync.Mutex
		active  = map[int64]int{}
		overlap bool
	)
	handler := SerializeChats()(func(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
		chatID := update.Message.Chat.ID
		mu.Lock()
		active[chatID]++
		if active[chatID] > 1 {
			overlap = true
		}
		mu.Unlock()

		time.Sleep(5 * time.Millisecond)

		mu.Lock()
		active[chatID]--
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(chatID int64) {
			defer wg.Done()
			handler(context.Background(), nil, textUpdate(chatID, "x"))
		}(int64(i % 2))
	}
	wg.Wait()

	assert.False(t, overlap)
}

func TestChatLocksForgetIdleChats(t *testing.T) {
	t.Parallel()
	locks := newChatLocks()

	unlock := locks.lock(1)
	assert.Len(t, locks.locks, 1)
	unlock()
	assert.Empty(t, locks.locks)
}
