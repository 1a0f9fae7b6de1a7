package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item описывает товар каталога
type Item struct {
	ID          int64
	Name        string // уникально, функциональный ключ для обновления и удаления
	Description string
	UnitPrice   decimal.Decimal // неизменяема после создания
	ItemStock   int
	Type        ItemType
	Supplier    string
	Date        time.Time // дата создания, назначается сервером
}

func NewItem(name, description string, unitPrice decimal.Decimal, itemStock int,
	itemType ItemType, supplier string) *Item {
	return &Item{
		Name:        name,
		Description: description,
		UnitPrice:   unitPrice,
		ItemStock:   itemStock,
		Type:        itemType,
		Supplier:    supplier,
	}
}
