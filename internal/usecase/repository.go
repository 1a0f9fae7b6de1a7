package usecase

import (
	"context"

	"github.com/sarabarbaraam/CompraBarbara/internal/domain"
)

// Порты хранилища. Методы с пометкой "в транзакции" ожидают активную
// транзакцию в контексте и выполняются через неё.

type ClientRepository interface {
	// Create выполняется в транзакции.
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)
	// Update выполняется в транзакции.
	Update(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	// GetByPhoneNumber выполняется в транзакции и блокирует строку (FOR UPDATE).
	GetByPhoneNumber(ctx context.Context, phoneNumber string) (*domain.Client, error)
	// ExistsByCompany выполняется в транзакции.
	ExistsByCompany(ctx context.Context, company string) (bool, error)
	List(ctx context.Context, offset, limit int) ([]domain.Client, int, error)
	Search(ctx context.Context, criteria Criteria, offset, limit int) ([]domain.Client, int, error)
	// Delete выполняется в транзакции.
	Delete(ctx context.Context, id int64) error
}

type ItemRepository interface {
	// Create выполняется в транзакции.
	Create(ctx context.Context, item *domain.Item) (*domain.Item, error)
	// Update выполняется в транзакции. Цена товара не перезаписывается.
	Update(ctx context.Context, item *domain.Item) error
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
	// GetByName выполняется в транзакции и блокирует строку (FOR UPDATE).
	GetByName(ctx context.Context, name string) (*domain.Item, error)
	// ExistsByName выполняется в транзакции.
	ExistsByName(ctx context.Context, name string) (bool, error)
	List(ctx context.Context, offset, limit int) ([]domain.Item, int, error)
	Search(ctx context.Context, criteria Criteria, offset, limit int) ([]domain.Item, int, error)
	// Delete выполняется в транзакции.
	Delete(ctx context.Context, id int64) error
}

type PurchaseRepository interface {
	// Create выполняется в транзакции. Дата покупки назначается базой.
	Create(ctx context.Context, purchase *domain.Purchase) (*domain.Purchase, error)
	// Update выполняется в транзакции.
	Update(ctx context.Context, purchase *domain.Purchase) error
	GetByID(ctx context.Context, id int64) (*domain.Purchase, error)
	// GetByIDForUpdate выполняется в транзакции и блокирует строку (FOR UPDATE).
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Purchase, error)
	List(ctx context.Context, offset, limit int) ([]domain.Purchase, int, error)
	Search(ctx context.Context, criteria Criteria, offset, limit int) ([]domain.Purchase, int, error)
	// Delete выполняется в транзакции.
	Delete(ctx context.Context, id int64) error
}

type OutboxEventRepository interface {
	// Create выполняется в транзакции вместе с изменением покупки.
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
}

type CacheRepository interface {
	// GetItem возвращает (nil, nil) при промахе кэша.
	GetItem(ctx context.Context, id int64) (*domain.Item, error)
	SetItem(ctx context.Context, item *domain.Item) error
	DeleteItems(ctx context.Context, ids []int64) error
}
