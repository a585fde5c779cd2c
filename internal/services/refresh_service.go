package services

import (
	"context"
	"time"

	"selectshop/internal/domain"
	applog "selectshop/internal/log"
	"selectshop/internal/repos"
)

// PriceSource is the capability the external search integration provides:
// given a query it returns the best-matching item record.
type PriceSource interface {
	Lookup(ctx context.Context, query string) (domain.Item, error)
}

// RefreshService periodically re-syncs listed prices from the source.
type RefreshService struct {
	Products *repos.ProductRepo
	Product  *ProductService
	Source   PriceSource
}

func NewRefreshService(products *repos.ProductRepo, svc *ProductService, src PriceSource) *RefreshService {
	return &RefreshService{Products: products, Product: svc, Source: src}
}

// Run blocks until ctx is cancelled, refreshing every interval. The first
// pass runs immediately.
func (s *RefreshService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	applog.Info(nil, "refresh.start", map[string]any{"interval": interval.String()})
	s.RefreshAll(ctx)

	for {
		select {
		case <-ctx.Done():
			applog.Info(nil, "refresh.stop", nil)
			return
		case <-ticker.C:
			s.RefreshAll(ctx)
		}
	}
}

// RefreshAll makes one pass over every tracked product. Failures are logged
// and skipped; one bad lookup must not stall the rest of the pass.
func (s *RefreshService) RefreshAll(ctx context.Context) {
	ids, err := s.Products.AllIDs()
	if err != nil {
		applog.Error(nil, "refresh.list.fail", err, nil)
		return
	}
	for _, id := range ids {
		select {
		case <-ctx.Done():
			return
		default:
		}

		p, err := s.Products.ByID(id)
		if err != nil {
			applog.Error(nil, "refresh.load.fail", err, map[string]any{"product": id})
			continue
		}
		item, err := s.Source.Lookup(ctx, p.Title)
		if err != nil {
			applog.Error(nil, "refresh.lookup.fail", err, map[string]any{"product": id})
			continue
		}
		if _, err := s.Product.UpdateBySearch(id, item); err != nil {
			applog.Error(nil, "refresh.update.fail", err, map[string]any{"product": id})
		}
	}
}
