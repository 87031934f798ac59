// Package listing finds ads near a requester, page by page.
//
// Candidates are scanned newest first in bounded batches; the owners of
// each batch are resolved with one lookup and matched against the
// requester's location by case-insensitive substring. A city search that
// finds nothing on its first page is retried once at country level.
package listing

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/edgard/adsbot/internal/database"
	"github.com/edgard/adsbot/internal/domain/model"
	apperrors "github.com/edgard/adsbot/internal/errors"
)

// PageSize is the number of ads shown per page.
const PageSize = 5

const defaultBatchSize = 100

// ErrLocationRequired is returned when the requester has no stored location.
var ErrLocationRequired = apperrors.NewPreconditionError("requester location is not set")

// Scope is the granularity at which owner locations are compared.
type Scope int

const (
	ScopeAll Scope = iota
	ScopeCountry
	ScopeCity
)

func (s Scope) String() string {
	switch s {
	case ScopeCity:
		return "city"
	case ScopeCountry:
		return "country"
	default:
		return "all"
	}
}

// ScopeFor returns the narrowest scope the location supports.
func ScopeFor(loc model.Location) Scope {
	switch {
	case loc.HasCity():
		return ScopeCity
	case loc.HasCountry():
		return ScopeCountry
	default:
		return ScopeAll
	}
}

// Store is the subset of persistence the engine reads from.
type Store interface {
	ListAds(ctx context.Context, filter database.AdFilter) ([]model.Ad, error)
	GetUsersByIDs(ctx context.Context, userIDs []int64) (map[int64]*model.User, error)
}

// Query describes one page request.
type Query struct {
	Requester model.Location
	Category  model.Category
	Offset    int
	// Broadened continues a result set that already fell back to country scope.
	Broadened bool
}

// Item is an ad with its owner's current location.
type Item struct {
	Ad    model.Ad
	Owner model.Location
}

// Page is one window of matching ads.
type Page struct {
	Items     []Item
	Offset    int
	Scope     Scope
	Broadened bool
	HasMore   bool
}

// Empty reports whether the window holds no ads.
func (p *Page) Empty() bool { return len(p.Items) == 0 }

// NextOffset is the offset of the following page.
func (p *Page) NextOffset() int { return p.Offset + PageSize }

type Engine struct {
	store     Store
	batchSize int
	logger    *slog.Logger
}

// NewEngine creates an engine reading candidates batchSize at a time.
func NewEngine(store Store, batchSize int, logger *slog.Logger) *Engine {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{
		store:     store,
		batchSize: batchSize,
		logger:    logger.With("component", "listing"),
	}
}

// Find returns the page of ads matching q.
func (e *Engine) Find(ctx context.Context, q Query) (*Page, error) {
	if !q.Requester.Known() {
		return nil, ErrLocationRequired
	}
	offset := max(q.Offset, 0)

	scope := ScopeFor(q.Requester)
	broadened := false
	if q.Broadened && q.Requester.HasCountry() {
		scope = ScopeCountry
		broadened = true
	}

	matches, err := e.collect(ctx, q.Requester, scope, q.Category, offset+PageSize+1)
	if err != nil {
		return nil, err
	}

	if offset == 0 && len(matches) == 0 && scope == ScopeCity && q.Requester.HasCountry() {
		e.logger.DebugContext(ctx, "No ads in city, broadening to country",
			"city", q.Requester.City, "country", q.Requester.Country)
		scope = ScopeCountry
		broadened = true
		matches, err = e.collect(ctx, q.Requester, scope, q.Category, PageSize+1)
		if err != nil {
			return nil, err
		}
	}

	page := &Page{
		Offset:    offset,
		Scope:     scope,
		Broadened: broadened,
		HasMore:   len(matches) > offset+PageSize,
	}
	if offset < len(matches) {
		page.Items = matches[offset:min(offset+PageSize, len(matches))]
	}
	return page, nil
}

// collect scans candidates newest first until want matches are known or
// candidates run out.
func (e *Engine) collect(ctx context.Context, requester model.Location, scope Scope, category model.Category, want int) ([]Item, error) {
	var matches []Item

	for scanned := 0; len(matches) < want; {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		batch, err := e.store.ListAds(ctx, database.AdFilter{
			Category: category,
			Limit:    e.batchSize,
			Offset:   scanned,
		})
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			break
		}
		scanned += len(batch)

		owners, err := e.store.GetUsersByIDs(ctx, ownerIDs(batch))
		if err != nil {
			return nil, err
		}

		for _, ad := range batch {
			owner, ok := owners[ad.OwnerID]
			if !ok {
				if scope != ScopeAll {
					continue
				}
				matches = append(matches, Item{Ad: ad, Owner: model.UnknownLocation()})
			} else if Matches(scope, requester, owner.Location) {
				matches = append(matches, Item{Ad: ad, Owner: owner.Location})
			}
			if len(matches) == want {
				break
			}
		}

		if len(batch) < e.batchSize {
			break
		}
	}

	return matches, nil
}

// Matches reports whether an owner at owner is visible to requester at scope.
// The owner's field must contain the requester's, ignoring case.
func Matches(scope Scope, requester, owner model.Location) bool {
	switch scope {
	case ScopeCity:
		return owner.HasCity() && containsFold(owner.City, requester.City)
	case ScopeCountry:
		return owner.HasCountry() && containsFold(owner.Country, requester.Country)
	default:
		return true
	}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(strings.TrimSpace(s)), strings.ToLower(strings.TrimSpace(substr)))
}

func ownerIDs(ads []model.Ad) []int64 {
	seen := make(map[int64]struct{}, len(ads))
	ids := make([]int64, 0, len(ads))
	for _, ad := range ads {
		if _, ok := seen[ad.OwnerID]; ok {
			continue
		}
		seen[ad.OwnerID] = struct{}{}
		ids = append(ids, ad.OwnerID)
	}
	return ids
}
