package converter

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClientModel представляет запись таблицы client в PostgreSQL.
type ClientModel struct {
	ID          int64     `db:"id_client"`
	Name        string    `db:"name"`
	Surname     string    `db:"surname"`
	Company     string    `db:"company"`
	Position    string    `db:"position"`
	Address     string    `db:"address"`
	ZipCode     string    `db:"zip_code"`
	Province    string    `db:"province"`
	PhoneNumber string    `db:"phone_number"`
	BirthDate   time.Time `db:"birth_date"`
}

// ItemModel представляет запись таблицы item в PostgreSQL.
type ItemModel struct {
	ID          int64           `db:"id_item"`
	Name        string          `db:"name"`
	Description string          `db:"description"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	ItemStock   int             `db:"item_stock"`
	Type        string          `db:"type"`
	Supplier    string          `db:"supplier"`
	Date        time.Time       `db:"date"`
}

// PurchaseModel представляет запись таблицы purchase в PostgreSQL.
type PurchaseModel struct {
	ID           int64           `db:"id_purchase"`
	ClientID     int64           `db:"id_client"`
	ItemID       int64           `db:"id_item"`
	PurchaseDate time.Time       `db:"purchase_date"`
	Quantity     int             `db:"quantity"`
	Total        decimal.Decimal `db:"total"`
	IVA          decimal.Decimal `db:"iva"`
	TotalIVA     decimal.Decimal `db:"total_iva"`
	TotalPrice   decimal.Decimal `db:"total_price"`
}

// OutboxEventModel представляет запись таблицы outbox_events в PostgreSQL.
type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     string     `db:"event_id"`
	EventType   string     `db:"event_type"`
	PurchaseID  int64      `db:"purchase_id"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}
