package listing

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/adsbot/internal/database"
	"github.com/edgard/adsbot/internal/domain/model"
	apperrors "github.com/edgard/adsbot/internal/errors"
)

// fakeStore keeps ads oldest first, like insertion order in the database.
type fakeStore struct {
	ads         []model.Ad
	users       map[int64]*model.User
	listCalls   int
	lookupCalls int
	listErr     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: map[int64]*model.User{}}
}

func (f *fakeStore) addUser(id int64, country, city string) {
	f.users[id] = &model.User{UserID: id, Location: model.Location{Country: country, City: city}}
}

func (f *fakeStore) addAd(owner int64, category model.Category) string {
	id := fmt.Sprintf("ad-%02d", len(f.ads)+1)
	f.ads = append(f.ads, model.Ad{
		ID:          id,
		OwnerID:     owner,
		Category:    category,
		Description: id,
		CreatedAt:   time.Date(2024, 1, 1, 0, 0, len(f.ads), 0, time.UTC),
	})
	return id
}

func (f *fakeStore) ListAds(_ context.Context, filter database.AdFilter) ([]model.Ad, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	var newest []model.Ad
	for i := len(f.ads) - 1; i >= 0; i-- {
		if filter.Category == "" || f.ads[i].Category == filter.Category {
			newest = append(newest, f.ads[i])
		}
	}
	if filter.Offset >= len(newest) {
		return nil, nil
	}
	end := min(filter.Offset+filter.Limit, len(newest))
	return newest[filter.Offset:end], nil
}

func (f *fakeStore) GetUsersByIDs(_ context.Context, ids []int64) (map[int64]*model.User, error) {
	f.lookupCalls++
	out := make(map[int64]*model.User, len(ids))
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func ids(p *Page) []string {
	out := make([]string, 0, len(p.Items))
	for _, it := range p.Items {
		out = append(out, it.Ad.ID)
	}
	return out
}

var moscow = model.Location{Country: "Россия", City: "Москва"}

func TestFindPaginatesTwelveAds(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := newFakeStore()
	store.addUser(1, "Россия", "Москва")
	var all []string
	for range 12 {
		all = append(all, store.addAd(1, model.CategoryTech))
	}
	// newest first
	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}

	engine := NewEngine(store, 4, nil)

	first, err := engine.Find(ctx, Query{Requester: moscow})
	require.NoError(t, err)
	assert.Equal(t, all[0:5], ids(first))
	assert.True(t, first.HasMore)
	assert.False(t, first.Broadened)
	assert.Equal(t, ScopeCity, first.Scope)

	second, err := engine.Find(ctx, Query{Requester: moscow, Offset: first.NextOffset()})
	require.NoError(t, err)
	assert.Equal(t, all[5:10], ids(second))
	assert.True(t, second.HasMore)

	third, err := engine.Find(ctx, Query{Requester: moscow, Offset: second.NextOffset()})
	require.NoError(t, err)
	assert.Equal(t, all[10:12], ids(third))
	assert.False(t, third.HasMore)

	beyond, err := engine.Find(ctx, Query{Requester: moscow, Offset: third.NextOffset()})
	require.NoError(t, err)
	assert.True(t, beyond.Empty())
	assert.False(t, beyond.HasMore)
	assert.False(t, beyond.Broadened, "no fallback past the first page")
}

func TestFindBroadensToCountry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := newFakeStore()
	store.addUser(1, "Россия", "Санкт-Петербург")
	store.addUser(2, "Беларусь", "Минск")
	spb := store.addAd(1, model.CategoryAuto)
	store.addAd(2, model.CategoryAuto)

	engine := NewEngine(store, 10, nil)
	requester := model.Location{Country: "Россия", City: "Казань"}

	page, err := engine.Find(ctx, Query{Requester: requester})
	require.NoError(t, err)
	assert.True(t, page.Broadened)
	assert.Equal(t, ScopeCountry, page.Scope)
	assert.Equal(t, []string{spb}, ids(page))
	assert.Equal(t, "Санкт-Петербург", page.Items[0].Owner.City)

	// A continuation keeps the broadened scope.
	next, err := engine.Find(ctx, Query{Requester: requester, Offset: page.NextOffset(), Broadened: true})
	require.NoError(t, err)
	assert.True(t, next.Broadened)
	assert.True(t, next.Empty())
}

func TestFindDoesNotBroadenWithoutCountry(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.addUser(1, "Россия", "Сочи")
	store.addAd(1, model.CategoryPets)

	engine := NewEngine(store, 10, nil)
	page, err := engine.Find(context.Background(), Query{
		Requester: model.Location{Country: model.Unspecified, City: "Казань"},
	})
	require.NoError(t, err)
	assert.True(t, page.Empty())
	assert.False(t, page.Broadened)
	assert.Equal(t, ScopeCity, page.Scope)
}

func TestFindMatchesSubstringIgnoringCase(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.addUser(1, "Россия", "г. МОСКВА")
	store.addUser(2, "Россия", "Подмосковье")
	store.addUser(3, "Россия", "Москва")
	store.addUser(4, model.Unspecified, model.Unspecified)
	a := store.addAd(1, model.CategoryOther)
	store.addAd(2, model.CategoryOther)
	c := store.addAd(3, model.CategoryOther)
	store.addAd(4, model.CategoryOther)
	store.addAd(99, model.CategoryOther) // owner no longer exists

	engine := NewEngine(store, 10, nil)
	page, err := engine.Find(context.Background(), Query{Requester: model.Location{Country: "Россия", City: "москва"}})
	require.NoError(t, err)
	assert.Equal(t, []string{c, a}, ids(page))
}

func TestFindFiltersByCategory(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.addUser(1, "Россия", "Москва")
	store.addAd(1, model.CategoryAuto)
	tech := store.addAd(1, model.CategoryTech)
	store.addAd(1, model.CategoryAuto)

	engine := NewEngine(store, 10, nil)
	page, err := engine.Find(context.Background(), Query{Requester: moscow, Category: model.CategoryTech})
	require.NoError(t, err)
	assert.Equal(t, []string{tech}, ids(page))
	assert.False(t, page.HasMore)
}

func TestFindBatchesOwnerLookups(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.addUser(1, "Россия", "Москва")
	store.addUser(2, "Россия", "Тверь")
	// Ten non-matching ads newer than six matching ones.
	for range 6 {
		store.addAd(1, model.CategoryTech)
	}
	for range 10 {
		store.addAd(2, model.CategoryTech)
	}

	engine := NewEngine(store, 5, nil)
	page, err := engine.Find(context.Background(), Query{Requester: moscow})
	require.NoError(t, err)
	assert.Len(t, page.Items, 5)
	assert.True(t, page.HasMore)
	// 16 candidates at 5 per batch need 4 batches, each with one owner lookup.
	assert.Equal(t, 4, store.listCalls)
	assert.Equal(t, store.listCalls, store.lookupCalls)
}

func TestFindStopsScanningOnceLookaheadIsKnown(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.addUser(1, "Россия", "Москва")
	for range 50 {
		store.addAd(1, model.CategoryTech)
	}

	engine := NewEngine(store, 3, nil)
	_, err := engine.Find(context.Background(), Query{Requester: moscow})
	require.NoError(t, err)
	// 6 matches (page + lookahead) need 2 batches of 3.
	assert.Equal(t, 2, store.listCalls)
}

func TestFindRequiresLocation(t *testing.T) {
	t.Parallel()

	engine := NewEngine(newFakeStore(), 10, nil)
	_, err := engine.Find(context.Background(), Query{Requester: model.UnknownLocation()})
	require.ErrorIs(t, err, ErrLocationRequired)
	assert.Equal(t, apperrors.CodePrecondition, apperrors.Code(err))
}

func TestFindPropagatesStoreErrors(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.listErr = apperrors.NewDatabaseError("list failed", errors.New("boom"))

	_, err := NewEngine(store, 10, nil).Find(context.Background(), Query{Requester: moscow})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeDatabase, apperrors.Code(err))
}

func TestMatchesAndScopeFor(t *testing.T) {
	t.Parallel()

	owner := model.Location{Country: "Россия", City: "Нижний Новгород"}

	assert.True(t, Matches(ScopeCity, model.Location{City: "новгород"}, owner))
	assert.False(t, Matches(ScopeCity, model.Location{City: "Казань"}, owner))
	assert.True(t, Matches(ScopeCountry, model.Location{Country: "РОССИЯ"}, owner))
	assert.False(t, Matches(ScopeCountry, model.Location{Country: "Россия"}, model.UnknownLocation()))
	assert.True(t, Matches(ScopeAll, model.UnknownLocation(), model.UnknownLocation()))

	assert.Equal(t, ScopeCity, ScopeFor(owner))
	assert.Equal(t, ScopeCountry, ScopeFor(model.Location{Country: "Россия", City: model.Unspecified}))
	assert.Equal(t, ScopeAll, ScopeFor(model.UnknownLocation()))
	assert.Equal(t, "country", ScopeCountry.String())
}
