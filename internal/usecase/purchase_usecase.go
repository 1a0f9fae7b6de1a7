package usecase

import (
	"context"
	"encoding/json"

	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/sarabarbaraam/CompraBarbara/internal/domain"
	"github.com/sarabarbaraam/CompraBarbara/pkg/e"
	"github.com/sarabarbaraam/CompraBarbara/pkg/logger"
	"github.com/sarabarbaraam/CompraBarbara/pkg/merge"
	"github.com/shopspring/decimal"
)

// PurchaseUseCase реализует бизнес-логику покупок: вычисление сумм с НДС,
// пересчёт при изменении количества и запись событий в outbox.
type PurchaseUseCase struct {
	purchaseRepo PurchaseRepository
	clientRepo   ClientRepository
	itemRepo     ItemRepository
	outboxRepo   OutboxEventRepository
	dbPool       transaction.Transactional
	logger       logger.Logger
	ivaPercent   decimal.Decimal
}

func NewPurchaseUC(
	purchaseRepo PurchaseRepository,
	clientRepo ClientRepository,
	itemRepo ItemRepository,
	outboxRepo OutboxEventRepository,
	dbPool transaction.Transactional,
	logger logger.Logger,
	ivaPercent decimal.Decimal,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		purchaseRepo: purchaseRepo,
		clientRepo:   clientRepo,
		itemRepo:     itemRepo,
		outboxRepo:   outboxRepo,
		dbPool:       dbPool,
		logger:       logger,
		ivaPercent:   ivaPercent,
	}
}

// Create регистрирует покупку. Суммы выводятся из текущей цены товара
// и количества; вызывающий их не передаёт. Дата назначается базой.
func (p *PurchaseUseCase) Create(ctx context.Context, req *CreatePurchaseReq) (*domain.Purchase, error) {
	const op = "PurchaseUseCase.Create"

	var err error
	if req.Quantity <= 0 {
		err = e.ErrInvalidQuantity
		return nil, e.Wrap(op, err)
	}

	client, err := p.clientRepo.GetByID(ctx, req.ClientID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	item, err := p.itemRepo.GetByID(ctx, req.ItemID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	totals, err := domain.ComputeTotals(item.UnitPrice, req.Quantity, p.ivaPercent)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	purchase, err := p.purchaseRepo.Create(ctx, domain.NewPurchase(
		client.ID,
		item.ID,
		req.Quantity,
		p.ivaPercent,
		totals,
	))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	err = p.writeOutboxEvent(ctx, EventPurchaseCreated, purchase)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return purchase, nil
}

// List возвращает страницу покупок.
func (p *PurchaseUseCase) List(ctx context.Context, page PageReq) (*PageRes[domain.Purchase], error) {
	const op = "PurchaseUseCase.List"

	if err := page.Validate(); err != nil {
		return nil, e.Wrap(op, err)
	}

	purchases, total, err := p.purchaseRepo.List(ctx, page.Offset(), page.Size)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewPageRes(purchases, NewPageInfo(page, total)), nil
}

// Search возвращает страницу покупок, удовлетворяющих всем заданным критериям.
func (p *PurchaseUseCase) Search(ctx context.Context, req *PurchaseSearchReq, page PageReq) (*PageRes[domain.Purchase], error) {
	const op = "PurchaseUseCase.Search"

	if err := page.Validate(); err != nil {
		return nil, e.Wrap(op, err)
	}

	var criteria Criteria
	criteria = Eq(criteria, "id_client", req.ClientID)
	criteria = Eq(criteria, "id_item", req.ItemID)
	criteria = Eq(criteria, "purchase_date", req.PurchaseDate)
	criteria = Eq(criteria, "quantity", req.Quantity)
	criteria = Eq(criteria, "total_price", req.TotalPrice)

	purchases, total, err := p.purchaseRepo.Search(ctx, criteria, page.Offset(), page.Size)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewPageRes(purchases, NewPageInfo(page, total)), nil
}

// Sheet возвращает карточку покупки по идентификатору.
func (p *PurchaseUseCase) Sheet(ctx context.Context, id int64) (*domain.Purchase, error) {
	const op = "PurchaseUseCase.Sheet"

	purchase, err := p.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return purchase, nil
}

// Update частично обновляет покупку. Суммы пересчитываются только если
// патч меняет количество, по сохранённой цене товара и сохранённой ставке
// налога этой покупки. Патч без количества суммы не трогает.
func (p *PurchaseUseCase) Update(ctx context.Context, id int64, patch *PurchasePatch) (*domain.Purchase, error) {
	const op = "PurchaseUseCase.Update"

	var err error
	if patch.Quantity != nil && *patch.Quantity <= 0 {
		err = e.ErrInvalidQuantity
		return nil, e.Wrap(op, err)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	purchase, err := p.purchaseRepo.GetByIDForUpdate(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if patch.Quantity != nil && *patch.Quantity != purchase.Quantity {
		var item *domain.Item
		item, err = p.itemRepo.GetByID(ctx, purchase.ItemID)
		if err != nil {
			return nil, e.Wrap(op, err)
		}

		var totals domain.Totals
		totals, err = domain.ComputeTotals(item.UnitPrice, *patch.Quantity, purchase.IVA)
		if err != nil {
			return nil, e.Wrap(op, err)
		}

		purchase.ApplyTotals(*patch.Quantity, totals)
	}

	merge.Apply(purchase, patch.ops()...)

	err = p.purchaseRepo.Update(ctx, purchase)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	err = p.writeOutboxEvent(ctx, EventPurchaseUpdated, purchase)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return purchase, nil
}

// Delete удаляет покупку по идентификатору.
func (p *PurchaseUseCase) Delete(ctx context.Context, id int64) error {
	const op = "PurchaseUseCase.Delete"

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.dbPool)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	purchase, err := p.purchaseRepo.GetByIDForUpdate(ctx, id)
	if err != nil {
		return e.Wrap(op, err)
	}

	err = p.purchaseRepo.Delete(ctx, purchase.ID)
	if err != nil {
		return e.Wrap(op, err)
	}

	err = p.writeOutboxEvent(ctx, EventPurchaseDeleted, purchase)
	if err != nil {
		return e.Wrap(op, err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

func (p *PurchaseUseCase) writeOutboxEvent(ctx context.Context, eventType OutboxEventType, purchase *domain.Purchase) error {
	payload, err := json.Marshal(NewPurchaseEventPayload(eventType, purchase))
	if err != nil {
		return err
	}

	_, err = p.outboxRepo.Create(ctx, NewOutboxEvent(eventType, purchase.ID, payload))

	return err
}
