package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sarabarbaraam/CompraBarbara/internal/domain"
	"github.com/sarabarbaraam/CompraBarbara/pkg/e"
	"github.com/shopspring/decimal"
)

type purchaseTestEnv struct {
	uc       *PurchaseUseCase
	clients  *fakeClientRepo
	items    *fakeItemRepo
	outbox   *fakeOutboxRepo
	clientID int64
	itemID   int64
}

func newPurchaseTestEnv(t *testing.T, unitPrice string, ivaPercent string) *purchaseTestEnv {
	t.Helper()

	clients := newFakeClientRepo()
	items := newFakeItemRepo()
	purchases := newFakePurchaseRepo()
	outbox := newFakeOutboxRepo()

	client, err := clients.Create(context.Background(), domain.NewClient(
		"Barbara", "Alonso", "Acme", "Manager", "Calle Mayor 1",
		"28001", "Madrid", "600111222", time.Date(1990, 5, 12, 0, 0, 0, 0, time.UTC),
	))
	if err != nil {
		t.Fatalf("seed client: %v", err)
	}

	item, err := items.Create(context.Background(), domain.NewItem(
		"Dog food 10kg", "Dry food", decimal.RequireFromString(unitPrice), 50, domain.TypePets, "PetCorp",
	))
	if err != nil {
		t.Fatalf("seed item: %v", err)
	}

	uc := NewPurchaseUC(
		purchases, clients, items, outbox,
		fakeDB{}, testLogger{},
		decimal.RequireFromString(ivaPercent),
	)

	return &purchaseTestEnv{
		uc:       uc,
		clients:  clients,
		items:    items,
		outbox:   outbox,
		clientID: client.ID,
		itemID:   item.ID,
	}
}

func TestPurchaseCreateComputesTotals(t *testing.T) {
	env := newPurchaseTestEnv(t, "10.00", "21")

	purchase, err := env.uc.Create(context.Background(), &CreatePurchaseReq{
		ClientID: env.clientID,
		ItemID:   env.itemID,
		Quantity: 3,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if !purchase.Total.Equal(decimal.RequireFromString("30.00")) {
		t.Errorf("Total = %s, want 30.00", purchase.Total)
	}
	if !purchase.TotalIVA.Equal(decimal.RequireFromString("6.30")) {
		t.Errorf("TotalIVA = %s, want 6.30", purchase.TotalIVA)
	}
	if !purchase.TotalPrice.Equal(decimal.RequireFromString("36.30")) {
		t.Errorf("TotalPrice = %s, want 36.30", purchase.TotalPrice)
	}
	if !purchase.IVA.Equal(decimal.RequireFromString("21")) {
		t.Errorf("IVA = %s, want 21", purchase.IVA)
	}
	if purchase.PurchaseDate.IsZero() {
		t.Error("Create() did not assign a purchase date")
	}
}

func TestPurchaseCreateWritesOutboxEvent(t *testing.T) {
	env := newPurchaseTestEnv(t, "10.00", "21")

	purchase, err := env.uc.Create(context.Background(), &CreatePurchaseReq{
		ClientID: env.clientID,
		ItemID:   env.itemID,
		Quantity: 5,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if len(env.outbox.events) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(env.outbox.events))
	}

	event := env.outbox.events[0]
	if event.EventType != EventPurchaseCreated {
		t.Errorf("EventType = %s, want %s", event.EventType, EventPurchaseCreated)
	}
	if event.Status != OutboxStatusPending {
		t.Errorf("Status = %s, want %s", event.Status, OutboxStatusPending)
	}
	if event.EventID == "" {
		t.Error("EventID is empty")
	}

	var payload PurchaseEventPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if payload.PurchaseID != purchase.ID || payload.TotalPrice != "60.5" {
		t.Errorf("payload = %+v, want purchase %d with total price 60.5", payload, purchase.ID)
	}
}

func TestPurchaseCreateValidation(t *testing.T) {
	env := newPurchaseTestEnv(t, "10.00", "21")

	tests := []struct {
		name    string
		req     CreatePurchaseReq
		wantErr error
	}{
		{"zero quantity", CreatePurchaseReq{env.clientID, env.itemID, 0}, e.ErrInvalidQuantity},
		{"unknown client", CreatePurchaseReq{999, env.itemID, 1}, e.ErrClientNotFound},
		{"unknown item", CreatePurchaseReq{env.clientID, 999, 1}, e.ErrItemNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := env.uc.Create(context.Background(), &tt.req); !errors.Is(err, tt.wantErr) {
				t.Errorf("Create() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPurchaseUpdateRecomputesOnQuantityChange(t *testing.T) {
	env := newPurchaseTestEnv(t, "10.00", "21")

	purchase, err := env.uc.Create(context.Background(), &CreatePurchaseReq{
		ClientID: env.clientID,
		ItemID:   env.itemID,
		Quantity: 3,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	quantity := 5
	updated, err := env.uc.Update(context.Background(), purchase.ID, &PurchasePatch{Quantity: &quantity})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if updated.Quantity != 5 {
		t.Errorf("Quantity = %d, want 5", updated.Quantity)
	}
	if !updated.Total.Equal(decimal.RequireFromString("50.00")) {
		t.Errorf("Total = %s, want 50.00", updated.Total)
	}
	if !updated.TotalIVA.Equal(decimal.RequireFromString("10.50")) {
		t.Errorf("TotalIVA = %s, want 10.50", updated.TotalIVA)
	}
	if !updated.TotalPrice.Equal(decimal.RequireFromString("60.50")) {
		t.Errorf("TotalPrice = %s, want 60.50", updated.TotalPrice)
	}

	if len(env.outbox.events) != 2 || env.outbox.events[1].EventType != EventPurchaseUpdated {
		t.Errorf("expected a %s event after update", EventPurchaseUpdated)
	}
}

func TestPurchaseUpdateUsesStoredTaxRate(t *testing.T) {
	// Ставка налога фиксируется в момент покупки: пересчёт при изменении
	// количества использует её, а не текущую ставку сервиса.
	env := newPurchaseTestEnv(t, "10.00", "21")

	purchase, err := env.uc.Create(context.Background(), &CreatePurchaseReq{
		ClientID: env.clientID,
		ItemID:   env.itemID,
		Quantity: 2,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	env.uc.ivaPercent = decimal.RequireFromString("10")

	quantity := 4
	updated, err := env.uc.Update(context.Background(), purchase.ID, &PurchasePatch{Quantity: &quantity})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if !updated.TotalIVA.Equal(decimal.RequireFromString("8.40")) {
		t.Errorf("TotalIVA = %s, want 8.40 (21%% of 40.00)", updated.TotalIVA)
	}
}

func TestPurchaseUpdateSameQuantityKeepsTotals(t *testing.T) {
	env := newPurchaseTestEnv(t, "10.00", "21")

	purchase, err := env.uc.Create(context.Background(), &CreatePurchaseReq{
		ClientID: env.clientID,
		ItemID:   env.itemID,
		Quantity: 3,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	calls := env.items.getByIDCalls
	quantity := 3
	updated, err := env.uc.Update(context.Background(), purchase.ID, &PurchasePatch{Quantity: &quantity})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if !updated.TotalPrice.Equal(purchase.TotalPrice) {
		t.Errorf("TotalPrice = %s, want unchanged %s", updated.TotalPrice, purchase.TotalPrice)
	}
	if env.items.getByIDCalls != calls {
		t.Error("Update() re-read the item although the quantity did not change")
	}
}

func TestPurchaseUpdateDateOnlyKeepsTotals(t *testing.T) {
	env := newPurchaseTestEnv(t, "10.00", "21")

	purchase, err := env.uc.Create(context.Background(), &CreatePurchaseReq{
		ClientID: env.clientID,
		ItemID:   env.itemID,
		Quantity: 3,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	updated, err := env.uc.Update(context.Background(), purchase.ID, &PurchasePatch{PurchaseDate: &date})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if !updated.PurchaseDate.Equal(date) {
		t.Errorf("PurchaseDate = %s, want %s", updated.PurchaseDate, date)
	}
	if updated.Quantity != purchase.Quantity || !updated.TotalPrice.Equal(purchase.TotalPrice) {
		t.Errorf("Update() touched totals on a date-only patch: %+v", updated)
	}
}

func TestPurchaseUpdateValidation(t *testing.T) {
	env := newPurchaseTestEnv(t, "10.00", "21")

	quantity := 0
	_, err := env.uc.Update(context.Background(), 1, &PurchasePatch{Quantity: &quantity})
	if !errors.Is(err, e.ErrInvalidQuantity) {
		t.Errorf("Update() error = %v, want %v", err, e.ErrInvalidQuantity)
	}

	quantity = 2
	_, err = env.uc.Update(context.Background(), 404, &PurchasePatch{Quantity: &quantity})
	if !errors.Is(err, e.ErrPurchaseNotFound) {
		t.Errorf("Update() error = %v, want %v", err, e.ErrPurchaseNotFound)
	}
}

func TestPurchaseDelete(t *testing.T) {
	env := newPurchaseTestEnv(t, "10.00", "21")

	purchase, err := env.uc.Create(context.Background(), &CreatePurchaseReq{
		ClientID: env.clientID,
		ItemID:   env.itemID,
		Quantity: 1,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := env.uc.Delete(context.Background(), purchase.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := env.uc.Sheet(context.Background(), purchase.ID); !errors.Is(err, e.ErrPurchaseNotFound) {
		t.Errorf("Sheet() after delete error = %v, want %v", err, e.ErrPurchaseNotFound)
	}

	last := env.outbox.events[len(env.outbox.events)-1]
	if last.EventType != EventPurchaseDeleted {
		t.Errorf("EventType = %s, want %s", last.EventType, EventPurchaseDeleted)
	}

	if err := env.uc.Delete(context.Background(), purchase.ID); !errors.Is(err, e.ErrPurchaseNotFound) {
		t.Errorf("second Delete() error = %v, want %v", err, e.ErrPurchaseNotFound)
	}
}

func TestPurchaseSearch(t *testing.T) {
	env := newPurchaseTestEnv(t, "10.00", "21")

	for _, q := range []int{1, 2, 2} {
		if _, err := env.uc.Create(context.Background(), &CreatePurchaseReq{
			ClientID: env.clientID,
			ItemID:   env.itemID,
			Quantity: q,
		}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	quantity := 2
	res, err := env.uc.Search(context.Background(), &PurchaseSearchReq{
		ClientID: &env.clientID,
		Quantity: &quantity,
	}, NewPageReq(1, 10))
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if res.Page.TotalItems != 2 {
		t.Errorf("TotalItems = %d, want 2", res.Page.TotalItems)
	}
	for _, p := range res.Records {
		if p.Quantity != 2 {
			t.Errorf("Search() returned purchase with quantity %d", p.Quantity)
		}
	}
}
