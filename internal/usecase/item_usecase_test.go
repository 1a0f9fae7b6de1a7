package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sarabarbaraam/CompraBarbara/internal/domain"
	"github.com/sarabarbaraam/CompraBarbara/pkg/e"
	"github.com/shopspring/decimal"
)

func newItemTestUC() (*ItemUseCase, *fakeItemRepo, *fakeCacheRepo) {
	repo := newFakeItemRepo()
	cache := newFakeCacheRepo()
	return NewItemUC(repo, cache, fakeDB{}, testLogger{}), repo, cache
}

func validItemReq() *CreateItemReq {
	return &CreateItemReq{
		Name:        "Dog food 10kg",
		Description: "Dry food for adult dogs",
		UnitPrice:   decimal.RequireFromString("24.90"),
		ItemStock:   50,
		Type:        domain.TypePets,
		Supplier:    "PetCorp",
	}
}

func TestItemCreate(t *testing.T) {
	uc, _, _ := newItemTestUC()

	item, err := uc.Create(context.Background(), validItemReq())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if item.ID == 0 {
		t.Error("Create() did not assign an id")
	}
	if item.Date.IsZero() {
		t.Error("Create() did not assign a date")
	}
}

func TestItemCreateDuplicateName(t *testing.T) {
	uc, repo, _ := newItemTestUC()

	first, err := uc.Create(context.Background(), validItemReq())
	if err != nil {
		t.Fatalf("first Create() error = %v", err)
	}

	dup := validItemReq()
	dup.UnitPrice = decimal.RequireFromString("9.99")
	dup.Supplier = "OtherCorp"

	_, err = uc.Create(context.Background(), dup)
	if !errors.Is(err, e.ErrItemNameTaken) {
		t.Errorf("second Create() error = %v, want %v", err, e.ErrItemNameTaken)
	}
	if !strings.Contains(err.Error(), dup.Name) {
		t.Errorf("Create() error %q does not name the taken name %q", err, dup.Name)
	}

	// Первый товар остаётся нетронутым после отклонённого дубликата.
	stored, err := repo.GetByName(context.Background(), first.Name)
	if err != nil {
		t.Fatalf("GetByName() error = %v", err)
	}
	if !stored.UnitPrice.Equal(first.UnitPrice) || stored.Supplier != first.Supplier || stored.ItemStock != first.ItemStock {
		t.Errorf("rejected duplicate modified the stored item: %+v", stored)
	}
}

func TestItemCreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CreateItemReq)
		wantErr error
	}{
		{"blank name", func(r *CreateItemReq) { r.Name = " " }, e.ErrMissingFields},
		{"zero price", func(r *CreateItemReq) { r.UnitPrice = decimal.Zero }, e.ErrInvalidPrice},
		{"negative stock", func(r *CreateItemReq) { r.ItemStock = -1 }, e.ErrInvalidStock},
		{"unknown type", func(r *CreateItemReq) { r.Type = "CARS" }, e.ErrInvalidItemType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _, _ := newItemTestUC()
			req := validItemReq()
			tt.mutate(req)

			if _, err := uc.Create(context.Background(), req); !errors.Is(err, tt.wantErr) {
				t.Errorf("Create() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestItemUpdateKeepsPriceAndUntouchedFields(t *testing.T) {
	uc, _, cache := newItemTestUC()

	created, err := uc.Create(context.Background(), validItemReq())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	stock := 35
	supplier := "ZooTrade"
	updated, err := uc.Update(context.Background(), created.Name, &ItemPatch{
		ItemStock: &stock,
		Supplier:  &supplier,
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if updated.ItemStock != 35 || updated.Supplier != "ZooTrade" {
		t.Errorf("Update() = stock %d supplier %q, want 35 ZooTrade", updated.ItemStock, updated.Supplier)
	}
	if !updated.UnitPrice.Equal(created.UnitPrice) {
		t.Errorf("UnitPrice = %s, want unchanged %s", updated.UnitPrice, created.UnitPrice)
	}
	if updated.Name != created.Name || updated.Description != created.Description || updated.Type != created.Type {
		t.Errorf("Update() touched fields absent from the patch: %+v", updated)
	}

	if cache.deletes == 0 {
		t.Error("Update() did not invalidate the cache")
	}
}

func TestItemUpdateNegativeStock(t *testing.T) {
	uc, _, _ := newItemTestUC()

	stock := -5
	_, err := uc.Update(context.Background(), "whatever", &ItemPatch{ItemStock: &stock})
	if !errors.Is(err, e.ErrInvalidStock) {
		t.Errorf("Update() error = %v, want %v", err, e.ErrInvalidStock)
	}
}

func TestItemSheetCacheHit(t *testing.T) {
	uc, repo, cache := newItemTestUC()

	created, err := uc.Create(context.Background(), validItemReq())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	cachedCopy := *created
	cachedCopy.Supplier = "FromCache"
	if err := cache.SetItem(context.Background(), &cachedCopy); err != nil {
		t.Fatalf("SetItem() error = %v", err)
	}

	calls := repo.getByIDCalls
	got, err := uc.Sheet(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Sheet() error = %v", err)
	}

	if got.Supplier != "FromCache" {
		t.Errorf("Sheet() bypassed the cache: supplier = %q", got.Supplier)
	}
	if repo.getByIDCalls != calls {
		t.Error("Sheet() hit the repository on a cache hit")
	}
}

func TestItemSheetUnknownID(t *testing.T) {
	uc, _, _ := newItemTestUC()

	if _, err := uc.Sheet(context.Background(), 404); !errors.Is(err, e.ErrItemNotFound) {
		t.Errorf("Sheet() error = %v, want %v", err, e.ErrItemNotFound)
	}
}

func TestItemSearch(t *testing.T) {
	uc, _, _ := newItemTestUC()

	seed := []struct {
		name string
		typ  domain.ItemType
	}{
		{"Dog food 10kg", domain.TypePets},
		{"Cat food 5kg", domain.TypePets},
		{"Tennis racket", domain.TypeSports},
	}
	for _, s := range seed {
		req := validItemReq()
		req.Name = s.name
		req.Type = s.typ
		if _, err := uc.Create(context.Background(), req); err != nil {
			t.Fatalf("Create(%s) error = %v", s.name, err)
		}
	}

	name := "food"
	typ := domain.TypePets
	res, err := uc.Search(context.Background(), &ItemSearchReq{Name: &name, Type: &typ}, NewPageReq(1, 10))
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if res.Page.TotalItems != 2 {
		t.Errorf("TotalItems = %d, want 2", res.Page.TotalItems)
	}
}

func TestItemDelete(t *testing.T) {
	uc, repo, _ := newItemTestUC()

	created, err := uc.Create(context.Background(), validItemReq())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	repo.purchaseRefs[created.ID] = 1
	if err := uc.Delete(context.Background(), created.Name); !errors.Is(err, e.ErrItemHasPurchases) {
		t.Errorf("Delete() error = %v, want %v", err, e.ErrItemHasPurchases)
	}

	repo.purchaseRefs[created.ID] = 0
	if err := uc.Delete(context.Background(), created.Name); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
}
