package usecase

import (
	"context"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sarabarbaraam/CompraBarbara/internal/domain"
	"github.com/sarabarbaraam/CompraBarbara/pkg/e"
	"github.com/shopspring/decimal"
)

// Фейки для тестов бизнес-логики: хранилища в памяти, заглушка транзакций
// и молчаливый логгер.

type testLogger struct{}

func (testLogger) Debugf(format string, args ...any)            {}
func (testLogger) Infof(format string, args ...any)             {}
func (testLogger) Warnf(format string, args ...any)             {}
func (testLogger) Errorf(err error, format string, args ...any) {}

// stubTx удовлетворяет pgx.Tx; никакой работы с базой в тестах нет.
type stubTx struct{}

func (t *stubTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *stubTx) Commit(ctx context.Context) error          { return nil }
func (t *stubTx) Rollback(ctx context.Context) error        { return nil }
func (t *stubTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *stubTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *stubTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *stubTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *stubTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (t *stubTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *stubTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (t *stubTx) Conn() *pgx.Conn                                              { return nil }

type fakeDB struct{}

func (fakeDB) BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error) {
	return &stubTx{}, nil
}

// criteriaMatch проверяет конъюнкцию критериев над плоским представлением записи.
func criteriaMatch(criteria Criteria, fields map[string]any) bool {
	for _, c := range criteria {
		v, ok := fields[c.Field]
		if !ok {
			return false
		}

		switch c.Kind {
		case MatchSubstring:
			if !strings.Contains(strings.ToLower(v.(string)), strings.ToLower(c.Value.(string))) {
				return false
			}
		case MatchEquals:
			if !equalValues(v, c.Value) {
				return false
			}
		}
	}

	return true
}

func equalValues(a, b any) bool {
	switch av := a.(type) {
	case decimal.Decimal:
		bv, ok := b.(decimal.Decimal)
		return ok && av.Equal(bv)
	case time.Time:
		bv, ok := b.(time.Time)
		return ok && av.Equal(bv)
	default:
		return reflect.DeepEqual(a, b)
	}
}

func window[T any](records []T, offset, limit int) []T {
	if offset >= len(records) {
		return []T{}
	}

	end := offset + limit
	if end > len(records) {
		end = len(records)
	}

	return records[offset:end]
}

// CLIENT REPO

type fakeClientRepo struct {
	seq          int64
	clients      map[int64]*domain.Client
	purchaseRefs map[int64]int
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{
		clients:      make(map[int64]*domain.Client),
		purchaseRefs: make(map[int64]int),
	}
}

func (r *fakeClientRepo) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	r.seq++
	stored := *client
	stored.ID = r.seq
	r.clients[stored.ID] = &stored

	res := stored
	return &res, nil
}

func (r *fakeClientRepo) Update(ctx context.Context, client *domain.Client) error {
	if _, ok := r.clients[client.ID]; !ok {
		return e.ErrClientNotFound
	}

	stored := *client
	r.clients[client.ID] = &stored
	return nil
}

func (r *fakeClientRepo) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	client, ok := r.clients[id]
	if !ok {
		return nil, e.ErrClientNotFound
	}

	res := *client
	return &res, nil
}

func (r *fakeClientRepo) GetByPhoneNumber(ctx context.Context, phoneNumber string) (*domain.Client, error) {
	for _, client := range r.clients {
		if client.PhoneNumber == phoneNumber {
			res := *client
			return &res, nil
		}
	}

	return nil, e.ErrClientNotFound
}

func (r *fakeClientRepo) ExistsByCompany(ctx context.Context, company string) (bool, error) {
	for _, client := range r.clients {
		if client.Company == company {
			return true, nil
		}
	}

	return false, nil
}

func (r *fakeClientRepo) sorted() []domain.Client {
	all := make([]domain.Client, 0, len(r.clients))
	for _, client := range r.clients {
		all = append(all, *client)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	return all
}

func (r *fakeClientRepo) List(ctx context.Context, offset, limit int) ([]domain.Client, int, error) {
	all := r.sorted()
	return window(all, offset, limit), len(all), nil
}

func (r *fakeClientRepo) Search(ctx context.Context, criteria Criteria, offset, limit int) ([]domain.Client, int, error) {
	var matched []domain.Client
	for _, client := range r.sorted() {
		fields := map[string]any{
			"name":         client.Name,
			"surname":      client.Surname,
			"company":      client.Company,
			"position":     client.Position,
			"zip_code":     client.ZipCode,
			"province":     client.Province,
			"phone_number": client.PhoneNumber,
		}
		if criteriaMatch(criteria, fields) {
			matched = append(matched, client)
		}
	}

	return window(matched, offset, limit), len(matched), nil
}

func (r *fakeClientRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.clients[id]; !ok {
		return e.ErrClientNotFound
	}
	if r.purchaseRefs[id] > 0 {
		return e.ErrClientHasPurchases
	}

	delete(r.clients, id)
	return nil
}

// ITEM REPO

type fakeItemRepo struct {
	seq          int64
	items        map[int64]*domain.Item
	purchaseRefs map[int64]int
	getByIDCalls int
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{
		items:        make(map[int64]*domain.Item),
		purchaseRefs: make(map[int64]int),
	}
}

func (r *fakeItemRepo) Create(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	r.seq++
	stored := *item
	stored.ID = r.seq
	stored.Date = time.Now()
	r.items[stored.ID] = &stored

	res := stored
	return &res, nil
}

func (r *fakeItemRepo) Update(ctx context.Context, item *domain.Item) error {
	stored, ok := r.items[item.ID]
	if !ok {
		return e.ErrItemNotFound
	}

	updated := *item
	// цена не перезаписывается
	updated.UnitPrice = stored.UnitPrice
	r.items[item.ID] = &updated
	return nil
}

func (r *fakeItemRepo) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	r.getByIDCalls++

	item, ok := r.items[id]
	if !ok {
		return nil, e.ErrItemNotFound
	}

	res := *item
	return &res, nil
}

func (r *fakeItemRepo) GetByName(ctx context.Context, name string) (*domain.Item, error) {
	for _, item := range r.items {
		if item.Name == name {
			res := *item
			return &res, nil
		}
	}

	return nil, e.ErrItemNotFound
}

func (r *fakeItemRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	for _, item := range r.items {
		if item.Name == name {
			return true, nil
		}
	}

	return false, nil
}

func (r *fakeItemRepo) sorted() []domain.Item {
	all := make([]domain.Item, 0, len(r.items))
	for _, item := range r.items {
		all = append(all, *item)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	return all
}

func (r *fakeItemRepo) List(ctx context.Context, offset, limit int) ([]domain.Item, int, error) {
	all := r.sorted()
	return window(all, offset, limit), len(all), nil
}

func (r *fakeItemRepo) Search(ctx context.Context, criteria Criteria, offset, limit int) ([]domain.Item, int, error) {
	var matched []domain.Item
	for _, item := range r.sorted() {
		fields := map[string]any{
			"name":       item.Name,
			"item_stock": item.ItemStock,
			"type":       item.Type,
			"supplier":   item.Supplier,
			"date":       item.Date,
		}
		if criteriaMatch(criteria, fields) {
			matched = append(matched, item)
		}
	}

	return window(matched, offset, limit), len(matched), nil
}

func (r *fakeItemRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return e.ErrItemNotFound
	}
	if r.purchaseRefs[id] > 0 {
		return e.ErrItemHasPurchases
	}

	delete(r.items, id)
	return nil
}

// PURCHASE REPO

type fakePurchaseRepo struct {
	seq       int64
	purchases map[int64]*domain.Purchase
}

func newFakePurchaseRepo() *fakePurchaseRepo {
	return &fakePurchaseRepo{purchases: make(map[int64]*domain.Purchase)}
}

func (r *fakePurchaseRepo) Create(ctx context.Context, purchase *domain.Purchase) (*domain.Purchase, error) {
	r.seq++
	stored := *purchase
	stored.ID = r.seq
	stored.PurchaseDate = time.Now().Truncate(24 * time.Hour)
	r.purchases[stored.ID] = &stored

	res := stored
	return &res, nil
}

func (r *fakePurchaseRepo) Update(ctx context.Context, purchase *domain.Purchase) error {
	if _, ok := r.purchases[purchase.ID]; !ok {
		return e.ErrPurchaseNotFound
	}

	stored := *purchase
	r.purchases[purchase.ID] = &stored
	return nil
}

func (r *fakePurchaseRepo) GetByID(ctx context.Context, id int64) (*domain.Purchase, error) {
	purchase, ok := r.purchases[id]
	if !ok {
		return nil, e.ErrPurchaseNotFound
	}

	res := *purchase
	return &res, nil
}

func (r *fakePurchaseRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Purchase, error) {
	return r.GetByID(ctx, id)
}

func (r *fakePurchaseRepo) sorted() []domain.Purchase {
	all := make([]domain.Purchase, 0, len(r.purchases))
	for _, purchase := range r.purchases {
		all = append(all, *purchase)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	return all
}

func (r *fakePurchaseRepo) List(ctx context.Context, offset, limit int) ([]domain.Purchase, int, error) {
	all := r.sorted()
	return window(all, offset, limit), len(all), nil
}

func (r *fakePurchaseRepo) Search(ctx context.Context, criteria Criteria, offset, limit int) ([]domain.Purchase, int, error) {
	var matched []domain.Purchase
	for _, purchase := range r.sorted() {
		fields := map[string]any{
			"id_client":     purchase.ClientID,
			"id_item":       purchase.ItemID,
			"purchase_date": purchase.PurchaseDate,
			"quantity":      purchase.Quantity,
			"total_price":   purchase.TotalPrice,
		}
		if criteriaMatch(criteria, fields) {
			matched = append(matched, purchase)
		}
	}

	return window(matched, offset, limit), len(matched), nil
}

func (r *fakePurchaseRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.purchases[id]; !ok {
		return e.ErrPurchaseNotFound
	}

	delete(r.purchases, id)
	return nil
}

// OUTBOX REPO

type fakeOutboxRepo struct {
	seq    int64
	events []*OutboxEvent
}

func newFakeOutboxRepo() *fakeOutboxRepo {
	return &fakeOutboxRepo{}
}

func (r *fakeOutboxRepo) Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	r.seq++
	stored := *event
	stored.ID = r.seq
	stored.CreatedAt = time.Now()
	r.events = append(r.events, &stored)

	res := stored
	return &res, nil
}

func (r *fakeOutboxRepo) GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error) {
	var batch []*OutboxEvent
	for _, event := range r.events {
		if event.Status != OutboxStatusPending {
			continue
		}
		event.Status = OutboxStatusProcessing
		batch = append(batch, event)
		if len(batch) == limit {
			break
		}
	}

	return batch, nil
}

func (r *fakeOutboxRepo) MarkAsProcessed(ctx context.Context, id int64) error {
	for _, event := range r.events {
		if event.ID == id {
			event.Status = OutboxStatusProcessed
			return nil
		}
	}

	return e.ErrInternalServerError
}

// CACHE REPO

type fakeCacheRepo struct {
	items   map[int64]*domain.Item
	deletes int
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{items: make(map[int64]*domain.Item)}
}

func (r *fakeCacheRepo) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, nil
	}

	res := *item
	return &res, nil
}

func (r *fakeCacheRepo) SetItem(ctx context.Context, item *domain.Item) error {
	stored := *item
	r.items[stored.ID] = &stored
	return nil
}

func (r *fakeCacheRepo) DeleteItems(ctx context.Context, ids []int64) error {
	r.deletes++
	for _, id := range ids {
		delete(r.items, id)
	}

	return nil
}
