package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/edgard/adsbot/internal/errors"
)

func TestParseLocation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    Location
		wantErr bool
	}{
		{name: "country and city with comma", input: "Россия, Москва", want: Location{Country: "Россия", City: "Москва"}},
		{name: "single token is city", input: "Москва", want: Location{Country: Unspecified, City: "Москва"}},
		{name: "multi word city", input: "Россия Нижний Новгород", want: Location{Country: "Россия", City: "Нижний Новгород"}},
		{name: "mixed separators collapse", input: "  Россия,,  Нижний ,Новгород  ", want: Location{Country: "Россия", City: "Нижний Новгород"}},
		{name: "tabs and newlines", input: "Казахстан\n\tАлматы", want: Location{Country: "Казахстан", City: "Алматы"}},
		{name: "no-break space", input: "Россия\u00a0Москва", want: Location{Country: "Россия", City: "Москва"}},
		{name: "ideographic space", input: "Россия\u3000Нижний\u2009Новгород", want: Location{Country: "Россия", City: "Нижний Новгород"}},
		{name: "empty", input: "", wantErr: true},
		{name: "only separators", input: " , ,\t", wantErr: true},
		{name: "only unicode spaces", input: "\u00a0,\u2003", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseLocation(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, apperrors.CodeValidation, apperrors.Code(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocationPredicates(t *testing.T) {
	t.Parallel()

	unknown := UnknownLocation()
	assert.False(t, unknown.Known())
	assert.Equal(t, Unspecified, unknown.Display())

	cityOnly := Location{Country: Unspecified, City: "Москва"}
	assert.True(t, cityOnly.HasCity())
	assert.False(t, cityOnly.HasCountry())
	assert.True(t, cityOnly.Known())
	assert.Equal(t, "Москва", cityOnly.Display())

	full := Location{Country: "Россия", City: "Москва"}
	assert.Equal(t, "Россия, Москва", full.Display())

	assert.False(t, Location{}.Known())
}

func TestParseCategory(t *testing.T) {
	t.Parallel()

	for _, c := range Categories() {
		got, ok := ParseCategory(string(c))
		require.True(t, ok, c)
		assert.Equal(t, c, got)
		assert.NotEqual(t, string(c), c.Label())
	}

	_, ok := ParseCategory("weapons")
	assert.False(t, ok)
	assert.False(t, Category("").Valid())
	assert.Equal(t, "weapons", Category("weapons").Label())
}

func TestSessionTransitions(t *testing.T) {
	t.Parallel()

	s := NewSession(42)
	assert.False(t, s.InSubmission())

	s.Category = CategoryTech
	s.Description = "leftover"
	s.Media = Media{Kind: MediaPhoto, Ref: "file"}
	s.BeginSubmission()

	assert.Equal(t, StateSelectingCategory, s.State)
	assert.True(t, s.InSubmission())
	assert.Empty(t, s.Category)
	assert.Empty(t, s.Description)
	assert.False(t, s.Media.Present())

	s.State = StateAwaitingMedia
	s.AwaitingLocation = true
	s.ResetSubmission()
	assert.Equal(t, StateIdle, s.State)
	assert.True(t, s.AwaitingLocation, "submission reset must not touch the location flag")
}

func TestSessionExpired(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := &Session{UpdatedAt: now.Add(-25 * time.Hour)}

	assert.True(t, s.Expired(now, 24*time.Hour))
	assert.False(t, s.Expired(now, 48*time.Hour))
	assert.False(t, s.Expired(now, 0))
	assert.False(t, (&Session{}).Expired(now, time.Hour))
}

func TestStateString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "awaiting_description", StateAwaitingDescription.String())
	assert.Equal(t, "unknown", State(99).String())
}
