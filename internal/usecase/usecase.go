package usecase

import (
	"context"

	"github.com/sarabarbaraam/CompraBarbara/internal/domain"
)

type ClientUC interface {
	Create(ctx context.Context, req *CreateClientReq) (*domain.Client, error)
	List(ctx context.Context, page PageReq) (*PageRes[domain.Client], error)
	Search(ctx context.Context, req *ClientSearchReq, page PageReq) (*PageRes[domain.Client], error)
	Sheet(ctx context.Context, id int64) (*domain.Client, error)
	Update(ctx context.Context, phoneNumber string, patch *ClientPatch) (*domain.Client, error)
	Delete(ctx context.Context, phoneNumber string) error
}

type ItemUC interface {
	Create(ctx context.Context, req *CreateItemReq) (*domain.Item, error)
	List(ctx context.Context, page PageReq) (*PageRes[domain.Item], error)
	Search(ctx context.Context, req *ItemSearchReq, page PageReq) (*PageRes[domain.Item], error)
	Sheet(ctx context.Context, id int64) (*domain.Item, error)
	Update(ctx context.Context, name string, patch *ItemPatch) (*domain.Item, error)
	Delete(ctx context.Context, name string) error
}

type PurchaseUC interface {
	Create(ctx context.Context, req *CreatePurchaseReq) (*domain.Purchase, error)
	List(ctx context.Context, page PageReq) (*PageRes[domain.Purchase], error)
	Search(ctx context.Context, req *PurchaseSearchReq, page PageReq) (*PageRes[domain.Purchase], error)
	Sheet(ctx context.Context, id int64) (*domain.Purchase, error)
	Update(ctx context.Context, id int64, patch *PurchasePatch) (*domain.Purchase, error)
	Delete(ctx context.Context, id int64) error
}
