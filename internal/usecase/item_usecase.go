package usecase

import (
	"context"
	"strings"
	"time"

	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/sarabarbaraam/CompraBarbara/internal/domain"
	"github.com/sarabarbaraam/CompraBarbara/pkg/e"
	"github.com/sarabarbaraam/CompraBarbara/pkg/logger"
	"github.com/sarabarbaraam/CompraBarbara/pkg/merge"
)

// ItemUseCase реализует бизнес-логику управления каталогом товаров.
type ItemUseCase struct {
	itemRepo  ItemRepository
	cacheRepo CacheRepository
	dbPool    transaction.Transactional
	logger    logger.Logger
}

func NewItemUC(
	itemRepo ItemRepository,
	cacheRepo CacheRepository,
	dbPool transaction.Transactional,
	logger logger.Logger,
) *ItemUseCase {
	return &ItemUseCase{
		itemRepo:  itemRepo,
		cacheRepo: cacheRepo,
		dbPool:    dbPool,
		logger:    logger,
	}
}

// Create добавляет товар в каталог. Имя — функциональный ключ:
// второй товар с тем же именем не создаётся. Дата добавления
// назначается сервером.
func (i *ItemUseCase) Create(ctx context.Context, req *CreateItemReq) (*domain.Item, error) {
	const op = "ItemUseCase.Create"

	// Валидация данных
	var err error
	err = i.validateItem(req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, i.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	// Проверка занятости имени до вставки; уникальный индекс в базе
	// страхует от гонки между проверкой и вставкой.
	taken, err := i.itemRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if taken {
		err = e.Conflict(req.Name, e.ErrItemNameTaken)
		return nil, e.Wrap(op, err)
	}

	item, err := i.itemRepo.Create(ctx, domain.NewItem(
		req.Name,
		req.Description,
		req.UnitPrice,
		req.ItemStock,
		req.Type,
		req.Supplier,
	))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return item, nil
}

// List возвращает страницу товаров.
func (i *ItemUseCase) List(ctx context.Context, page PageReq) (*PageRes[domain.Item], error) {
	const op = "ItemUseCase.List"

	if err := page.Validate(); err != nil {
		return nil, e.Wrap(op, err)
	}

	items, total, err := i.itemRepo.List(ctx, page.Offset(), page.Size)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewPageRes(items, NewPageInfo(page, total)), nil
}

// Search возвращает страницу товаров, удовлетворяющих всем заданным критериям.
func (i *ItemUseCase) Search(ctx context.Context, req *ItemSearchReq, page PageReq) (*PageRes[domain.Item], error) {
	const op = "ItemUseCase.Search"

	if err := page.Validate(); err != nil {
		return nil, e.Wrap(op, err)
	}

	var criteria Criteria
	criteria = Text(criteria, "name", req.Name)
	criteria = Eq(criteria, "item_stock", req.ItemStock)
	criteria = Eq(criteria, "type", req.Type)
	criteria = Text(criteria, "supplier", req.Supplier)
	criteria = Eq(criteria, "date", req.Date)

	items, total, err := i.itemRepo.Search(ctx, criteria, page.Offset(), page.Size)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewPageRes(items, NewPageInfo(page, total)), nil
}

// Sheet возвращает карточку товара по идентификатору, сначала из кэша.
func (i *ItemUseCase) Sheet(ctx context.Context, id int64) (*domain.Item, error) {
	const op = "ItemUseCase.Sheet"

	cached, err := i.cacheRepo.GetItem(ctx, id)
	if err != nil {
		i.logger.Warnf("Failed to get item from cache: %v", e.Wrap(op, err))
	}
	if cached != nil {
		return cached, nil
	}

	item, err := i.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Прогрев кэша вне пути запроса
	go func() {
		cacheCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		if err := i.cacheRepo.SetItem(cacheCtx, item); err != nil {
			i.logger.Warnf("Failed to cache item %d: %v", item.ID, e.Wrap(op, err))
		}
	}()

	return item, nil
}

// Update частично обновляет товар, найденный по имени. Цена не меняется
// никогда; поля, отсутствующие в патче, сохраняют прежние значения.
func (i *ItemUseCase) Update(ctx context.Context, name string, patch *ItemPatch) (*domain.Item, error) {
	const op = "ItemUseCase.Update"

	var err error
	if patch.ItemStock != nil && *patch.ItemStock < 0 {
		err = e.ErrInvalidStock
		return nil, e.Wrap(op, err)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, i.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	item, err := i.itemRepo.GetByName(ctx, name)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	merge.Apply(item, patch.ops()...)

	err = i.itemRepo.Update(ctx, item)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Удаление из кэша старых данных товара
	if err := i.cacheRepo.DeleteItems(ctx, []int64{item.ID}); err != nil {
		i.logger.Warnf("Failed to delete items: %v", e.Wrap(op, err))
	}

	return item, nil
}

// Delete удаляет товар по имени. Товар с покупками не удаляется.
func (i *ItemUseCase) Delete(ctx context.Context, name string) error {
	const op = "ItemUseCase.Delete"

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, i.dbPool)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	item, err := i.itemRepo.GetByName(ctx, name)
	if err != nil {
		return e.Wrap(op, err)
	}

	err = i.itemRepo.Delete(ctx, item.ID)
	if err != nil {
		return e.Wrap(op, err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return e.Wrap(op, err)
	}

	// Удаление из кэша старых данных товара
	if err := i.cacheRepo.DeleteItems(ctx, []int64{item.ID}); err != nil {
		i.logger.Warnf("Failed to delete items: %v", e.Wrap(op, err))
	}

	return nil
}

func (i *ItemUseCase) validateItem(req *CreateItemReq) error {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Supplier) == "" {
		return e.ErrMissingFields
	}

	if !req.UnitPrice.IsPositive() {
		return e.ErrInvalidPrice
	}

	if req.ItemStock < 0 {
		return e.ErrInvalidStock
	}

	if _, err := domain.ParseItemType(string(req.Type)); err != nil {
		return err
	}

	return nil
}
