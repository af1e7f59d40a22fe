package series

import (
	"errors"

	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/pkg/contracts/domain"
)

// Parameters outside the known sets fail fast with one of these. Filters
// that simply match nothing are not errors: they yield an empty result, and
// aggregates over nothing yield domain.NoData.
var (
	ErrUnknownPeriod  = errors.New("unknown period")
	ErrInvalidLevel   = errors.New("invalid course level")
	ErrUnknownFeature = domain.ErrUnknownFeature
	ErrUnknownMetric  = domain.ErrUnknownMetric
)

// IsUnknownParameter reports whether err was caused by a caller supplied
// value outside the known sets.
func IsUnknownParameter(err error) bool {
	return errors.Is(err, ErrUnknownPeriod) ||
		errors.Is(err, ErrInvalidLevel) ||
		errors.Is(err, ErrUnknownFeature) ||
		errors.Is(err, ErrUnknownMetric)
}
