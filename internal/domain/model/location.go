package model

import (
	"strings"
	"unicode"

	apperrors "github.com/edgard/adsbot/internal/errors"
)

// Unspecified is stored in place of a location field the user never gave.
const Unspecified = "не указано"

// Location is a free-text country and city pair.
type Location struct {
	Country string `db:"country"`
	City    string `db:"city"`
}

// UnknownLocation returns a location with both fields unspecified.
func UnknownLocation() Location {
	return Location{Country: Unspecified, City: Unspecified}
}

// ParseLocation turns user input such as "Россия, Москва" or "Нижний
// Новгород" into a Location. A single token is taken as the city; with two
// or more the first is the country and the rest form the city.
func ParseLocation(raw string) (Location, error) {
	tokens := strings.FieldsFunc(raw, isLocationSeparator)

	switch len(tokens) {
	case 0:
		return Location{}, apperrors.NewValidationError("location is empty", nil)
	case 1:
		return Location{Country: Unspecified, City: tokens[0]}, nil
	default:
		return Location{Country: tokens[0], City: strings.Join(tokens[1:], " ")}, nil
	}
}

func isLocationSeparator(r rune) bool {
	return unicode.IsSpace(r) || r == ','
}

func specified(v string) bool {
	return v != "" && v != Unspecified
}

// HasCity reports whether the city is known.
func (l Location) HasCity() bool { return specified(l.City) }

// HasCountry reports whether the country is known.
func (l Location) HasCountry() bool { return specified(l.Country) }

// Known reports whether at least one field is specified.
func (l Location) Known() bool { return l.HasCity() || l.HasCountry() }

// Display renders the location for captions, skipping unknown fields.
func (l Location) Display() string {
	switch {
	case l.HasCountry() && l.HasCity():
		return l.Country + ", " + l.City
	case l.HasCity():
		return l.City
	case l.HasCountry():
		return l.Country
	default:
		return Unspecified
	}
}
