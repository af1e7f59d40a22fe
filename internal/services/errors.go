package services

import (
	"errors"
	"fmt"

	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/internal/dataset"
)

var (
	// ErrDatasetNotLoaded is returned by every computation when the service
	// was started without a dataset.
	ErrDatasetNotLoaded = fmt.Errorf("dashboard: %w", dataset.ErrNotLoaded)

	ErrUnknownChart = errors.New("unknown chart")
	ErrUnknownPage  = errors.New("unknown page")
)
