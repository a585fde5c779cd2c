package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"selectshop/internal/domain"
	"selectshop/internal/repos"
	"selectshop/internal/services"
)

// fakeSource serves canned items keyed by query.
type fakeSource struct {
	items map[string]domain.Item
}

func (f *fakeSource) Lookup(_ context.Context, query string) (domain.Item, error) {
	it, ok := f.items[query]
	if !ok {
		return domain.Item{}, errors.New("no match")
	}
	return it, nil
}

func TestRefreshAll_AppliesSourcePrices(t *testing.T) {
	db := memdb(t)
	prodRepo := repos.NewProductRepo(db)
	svc := newProductService(db)

	tracked, err := svc.CreateProduct(userA, services.ProductRequest{Title: "SNES", Lprice: 10000})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.UpdateMyprice(tracked.ID, 9500); err != nil {
		t.Fatal(err)
	}
	// a product the source cannot match; the pass must skip it, not stop
	orphan, err := svc.CreateProduct(userA, services.ProductRequest{Title: "Unknown Thing", Lprice: 500})
	if err != nil {
		t.Fatal(err)
	}

	src := &fakeSource{items: map[string]domain.Item{
		"SNES": {Title: "SNES Console", Link: "l", Image: "i", Lprice: 8000},
	}}
	refresh := services.NewRefreshService(prodRepo, svc, src)
	refresh.RefreshAll(context.Background())

	p, err := prodRepo.ByID(tracked.ID)
	if err != nil {
		t.Fatal(err)
	}
	if p.Lprice != 8000 || p.Title != "SNES Console" {
		t.Fatalf("listing not refreshed: %+v", p)
	}
	if p.Myprice != 9500 {
		t.Fatalf("refresh must not touch myprice, got %d", p.Myprice)
	}

	o, err := prodRepo.ByID(orphan.ID)
	if err != nil {
		t.Fatal(err)
	}
	if o.Lprice != 500 {
		t.Fatalf("unmatched product must be left alone: %+v", o)
	}
}

func TestRun_ReturnsWhenContextEnds(t *testing.T) {
	db := memdb(t)
	prodRepo := repos.NewProductRepo(db)
	svc := newProductService(db)

	src := &fakeSource{items: map[string]domain.Item{}}
	refresh := services.NewRefreshService(prodRepo, svc, src)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		refresh.Run(ctx, 10*time.Millisecond)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}
}

func TestRefreshAll_StopsOnCancelledContext(t *testing.T) {
	db := memdb(t)
	prodRepo := repos.NewProductRepo(db)
	svc := newProductService(db)

	created, err := svc.CreateProduct(userA, services.ProductRequest{Title: "SNES", Lprice: 10000})
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &fakeSource{items: map[string]domain.Item{
		"SNES": {Title: "SNES Console", Lprice: 8000},
	}}
	services.NewRefreshService(prodRepo, svc, src).RefreshAll(ctx)

	p, err := prodRepo.ByID(created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if p.Lprice != 10000 {
		t.Fatalf("cancelled pass must not update anything: %+v", p)
	}
}
