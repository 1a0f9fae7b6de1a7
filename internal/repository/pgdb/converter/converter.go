package converter

import (
	"github.com/sarabarbaraam/CompraBarbara/internal/domain"
	"github.com/sarabarbaraam/CompraBarbara/internal/usecase"
)

// ClientConverter преобразует сущности Client между domain и моделью PostgreSQL.
type ClientConverter interface {
	ToModel(entity *domain.Client) *ClientModel
	ToEntity(model *ClientModel) *domain.Client
	ToArrEntity(models []*ClientModel) []domain.Client
}

// ItemConverter преобразует сущности Item между domain и моделью PostgreSQL.
type ItemConverter interface {
	ToModel(entity *domain.Item) *ItemModel
	ToEntity(model *ItemModel) *domain.Item
	ToArrEntity(models []*ItemModel) []domain.Item
}

// PurchaseConverter преобразует сущности Purchase между domain и моделью PostgreSQL.
type PurchaseConverter interface {
	ToModel(entity *domain.Purchase) *PurchaseModel
	ToEntity(model *PurchaseModel) *domain.Purchase
	ToArrEntity(models []*PurchaseModel) []domain.Purchase
}

// OutboxEventConverter преобразует сущности OutboxEvent между usecase и моделью PostgreSQL.
type OutboxEventConverter interface {
	ToModel(entity *usecase.OutboxEvent) *OutboxEventModel
	ToEntity(model *OutboxEventModel) *usecase.OutboxEvent
	ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent
}

type clientConverter struct{}

func NewClientConverter() ClientConverter { return clientConverter{} }

func (clientConverter) ToModel(entity *domain.Client) *ClientModel {
	return &ClientModel{
		ID:          entity.ID,
		Name:        entity.Name,
		Surname:     entity.Surname,
		Company:     entity.Company,
		Position:    entity.Position,
		Address:     entity.Address,
		ZipCode:     entity.ZipCode,
		Province:    entity.Province,
		PhoneNumber: entity.PhoneNumber,
		BirthDate:   entity.BirthDate,
	}
}

func (clientConverter) ToEntity(model *ClientModel) *domain.Client {
	return &domain.Client{
		ID:          model.ID,
		Name:        model.Name,
		Surname:     model.Surname,
		Company:     model.Company,
		Position:    model.Position,
		Address:     model.Address,
		ZipCode:     model.ZipCode,
		Province:    model.Province,
		PhoneNumber: model.PhoneNumber,
		BirthDate:   model.BirthDate,
	}
}

func (c clientConverter) ToArrEntity(models []*ClientModel) []domain.Client {
	entities := make([]domain.Client, 0, len(models))
	for _, model := range models {
		entities = append(entities, *c.ToEntity(model))
	}

	return entities
}

type itemConverter struct{}

func NewItemConverter() ItemConverter { return itemConverter{} }

func (itemConverter) ToModel(entity *domain.Item) *ItemModel {
	return &ItemModel{
		ID:          entity.ID,
		Name:        entity.Name,
		Description: entity.Description,
		UnitPrice:   entity.UnitPrice,
		ItemStock:   entity.ItemStock,
		Type:        string(entity.Type),
		Supplier:    entity.Supplier,
		Date:        entity.Date,
	}
}

func (itemConverter) ToEntity(model *ItemModel) *domain.Item {
	return &domain.Item{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		UnitPrice:   model.UnitPrice,
		ItemStock:   model.ItemStock,
		Type:        domain.ItemType(model.Type),
		Supplier:    model.Supplier,
		Date:        model.Date,
	}
}

func (c itemConverter) ToArrEntity(models []*ItemModel) []domain.Item {
	entities := make([]domain.Item, 0, len(models))
	for _, model := range models {
		entities = append(entities, *c.ToEntity(model))
	}

	return entities
}

type purchaseConverter struct{}

func NewPurchaseConverter() PurchaseConverter { return purchaseConverter{} }

func (purchaseConverter) ToModel(entity *domain.Purchase) *PurchaseModel {
	return &PurchaseModel{
		ID:           entity.ID,
		ClientID:     entity.ClientID,
		ItemID:       entity.ItemID,
		PurchaseDate: entity.PurchaseDate,
		Quantity:     entity.Quantity,
		Total:        entity.Total,
		IVA:          entity.IVA,
		TotalIVA:     entity.TotalIVA,
		TotalPrice:   entity.TotalPrice,
	}
}

func (purchaseConverter) ToEntity(model *PurchaseModel) *domain.Purchase {
	return &domain.Purchase{
		ID:           model.ID,
		ClientID:     model.ClientID,
		ItemID:       model.ItemID,
		PurchaseDate: model.PurchaseDate,
		Quantity:     model.Quantity,
		Total:        model.Total,
		IVA:          model.IVA,
		TotalIVA:     model.TotalIVA,
		TotalPrice:   model.TotalPrice,
	}
}

func (c purchaseConverter) ToArrEntity(models []*PurchaseModel) []domain.Purchase {
	entities := make([]domain.Purchase, 0, len(models))
	for _, model := range models {
		entities = append(entities, *c.ToEntity(model))
	}

	return entities
}

type outboxEventConverter struct{}

func NewOutboxEventConverter() OutboxEventConverter { return outboxEventConverter{} }

func (outboxEventConverter) ToModel(entity *usecase.OutboxEvent) *OutboxEventModel {
	return &OutboxEventModel{
		ID:          entity.ID,
		EventID:     entity.EventID,
		EventType:   string(entity.EventType),
		PurchaseID:  entity.PurchaseID,
		Payload:     entity.Payload,
		Status:      string(entity.Status),
		CreatedAt:   entity.CreatedAt,
		ProcessedAt: entity.ProcessedAt,
	}
}

func (outboxEventConverter) ToEntity(model *OutboxEventModel) *usecase.OutboxEvent {
	return &usecase.OutboxEvent{
		ID:          model.ID,
		EventID:     model.EventID,
		EventType:   usecase.OutboxEventType(model.EventType),
		PurchaseID:  model.PurchaseID,
		Payload:     model.Payload,
		Status:      usecase.OutboxStatus(model.Status),
		CreatedAt:   model.CreatedAt,
		ProcessedAt: model.ProcessedAt,
	}
}

func (c outboxEventConverter) ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent {
	entities := make([]*usecase.OutboxEvent, 0, len(models))
	for _, model := range models {
		entities = append(entities, c.ToEntity(model))
	}

	return entities
}
