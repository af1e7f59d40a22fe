package http

import (
	"context"

	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/internal/services"
	api "github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/pkg/contracts/api/v1"
	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/pkg/contracts/domain"
)

// DashboardServiceInterface defines the interface for series operations
type DashboardServiceInterface interface {
	Periods(ctx context.Context) ([]domain.Period, error)
	Options(ctx context.Context) (*api.Options, error)
	Compute(ctx context.Context, chart string, bind services.Binder) (interface{}, error)
	Page(ctx context.Context, page string, req api.PageRequest) (*api.PageBundle, error)
}

var _ DashboardServiceInterface = (*services.DashboardService)(nil)
