package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/sarabarbaraam/CompraBarbara/internal/domain"
)

// OutboxStatus — статус события в таблице outbox_events.
type OutboxStatus string

const (
	OutboxStatusPending    OutboxStatus = "PENDING"
	OutboxStatusProcessing OutboxStatus = "PROCESSING"
	OutboxStatusProcessed  OutboxStatus = "PROCESSED"
)

// OutboxEventType — тип доменного события покупки.
type OutboxEventType string

const (
	EventPurchaseCreated OutboxEventType = "purchase.created"
	EventPurchaseUpdated OutboxEventType = "purchase.updated"
	EventPurchaseDeleted OutboxEventType = "purchase.deleted"
)

// OutboxEvent — запись transactional outbox: событие пишется в той же
// транзакции, что и изменение покупки, и публикуется воркером позже.
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   OutboxEventType
	PurchaseID  int64
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// PurchaseEventPayload — тело события покупки, сериализуемое в JSON.
type PurchaseEventPayload struct {
	EventType    OutboxEventType `json:"event_type"`
	PurchaseID   int64           `json:"purchase_id"`
	ClientID     int64           `json:"client_id"`
	ItemID       int64           `json:"item_id"`
	PurchaseDate string          `json:"purchase_date"`
	Quantity     int             `json:"quantity"`
	Total        string          `json:"total"`
	IVA          string          `json:"iva"`
	TotalIVA     string          `json:"total_iva"`
	TotalPrice   string          `json:"total_price"`
	OccurredAt   time.Time       `json:"occurred_at"`
}

// WriteRawMessageReq — запрос на публикацию сырого сообщения в брокер.
type WriteRawMessageReq struct {
	Key     []byte
	Payload []byte
}

// MAPPERS

func NewOutboxEvent(eventType OutboxEventType, purchaseID int64, payload []byte) *OutboxEvent {
	return &OutboxEvent{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		PurchaseID: purchaseID,
		Payload:    payload,
		Status:     OutboxStatusPending,
	}
}

func NewPurchaseEventPayload(eventType OutboxEventType, purchase *domain.Purchase) *PurchaseEventPayload {
	return &PurchaseEventPayload{
		EventType:    eventType,
		PurchaseID:   purchase.ID,
		ClientID:     purchase.ClientID,
		ItemID:       purchase.ItemID,
		PurchaseDate: purchase.PurchaseDate.Format("02/01/2006"),
		Quantity:     purchase.Quantity,
		Total:        purchase.Total.String(),
		IVA:          purchase.IVA.String(),
		TotalIVA:     purchase.TotalIVA.String(),
		TotalPrice:   purchase.TotalPrice.String(),
		OccurredAt:   time.Now().UTC(),
	}
}

func NewWriteRawMessageReq(key, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		Key:     key,
		Payload: payload,
	}
}
