package converter

import (
	"github.com/sarabarbaraam/CompraBarbara/internal/domain"
	"github.com/shopspring/decimal"
)

// ItemConverter преобразует сущности Item между domain и моделью Redis.
// Цена сериализуется строкой, чтобы не терять точность.
type ItemConverter interface {
	ToRedisModel(entity *domain.Item) *ItemRedisModel
	ToEntity(model *ItemRedisModel) (*domain.Item, error)
}

type itemConverter struct{}

func NewItemConverter() ItemConverter { return itemConverter{} }

func (itemConverter) ToRedisModel(entity *domain.Item) *ItemRedisModel {
	return &ItemRedisModel{
		ID:          entity.ID,
		Name:        entity.Name,
		Description: entity.Description,
		UnitPrice:   entity.UnitPrice.String(),
		ItemStock:   entity.ItemStock,
		Type:        string(entity.Type),
		Supplier:    entity.Supplier,
		Date:        entity.Date,
	}
}

func (itemConverter) ToEntity(model *ItemRedisModel) (*domain.Item, error) {
	unitPrice, err := decimal.NewFromString(model.UnitPrice)
	if err != nil {
		return nil, err
	}

	return &domain.Item{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		UnitPrice:   unitPrice,
		ItemStock:   model.ItemStock,
		Type:        domain.ItemType(model.Type),
		Supplier:    model.Supplier,
		Date:        model.Date,
	}, nil
}
