package utils

import (
	"regexp"
	"strconv"

	"github.com/nldi-service/internal/pkg/errors"
)

// Accepted coordinate form is "POINT(lon lat)" with optional whitespace.
var pointRe = regexp.MustCompile(`^\s*POINT\s*\(\s*(-?\d+(?:\.\d+)?)\s+(-?\d+(?:\.\d+)?)\s*\)\s*$`)

// ParsePointWKT parses a WKT point and validates it against the WGS84 domain.
// The axis order is fixed as (lon lat); swapped inputs are rejected only when
// they fall outside longitude bounds, never auto-corrected.
func ParsePointWKT(coords string) (lon, lat float64, err error) {
	m := pointRe.FindStringSubmatch(coords)
	if m == nil {
		return 0, 0, errors.ErrInvalidInput.WithMessage(
			"coords must be in the form POINT(lon lat), got %q", coords)
	}

	lon, err = strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, 0, errors.ErrInvalidInput.WithMessage("invalid longitude %q", m[1])
	}
	lat, err = strconv.ParseFloat(m[2], 64)
	if err != nil {
		return 0, 0, errors.ErrInvalidInput.WithMessage("invalid latitude %q", m[2])
	}

	if !ValidateCoordinates(lat, lon) {
		return 0, 0, errors.ErrInvalidInput.WithMessage(
			"coordinates out of range: lon=%g lat=%g", lon, lat)
	}
	return lon, lat, nil
}

// ValidateCoordinates checks that a point falls inside the WGS84 domain.
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
