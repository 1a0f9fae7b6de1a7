package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase описывает покупку: ссылки на клиента и товар плюс
// производные суммы, вычисленные на момент создания или изменения количества.
type Purchase struct {
	ID           int64
	ClientID     int64
	ItemID       int64
	PurchaseDate time.Time // назначается при создании, не принимается от клиента
	Quantity     int
	Total        decimal.Decimal // unitPrice * quantity
	IVA          decimal.Decimal // ставка налога в процентах на момент покупки
	TotalIVA     decimal.Decimal // total * iva / 100
	TotalPrice   decimal.Decimal // total + totalIva
}

func NewPurchase(clientID, itemID int64, quantity int, ivaPercent decimal.Decimal, totals Totals) *Purchase {
	return &Purchase{
		ClientID:   clientID,
		ItemID:     itemID,
		Quantity:   quantity,
		IVA:        ivaPercent,
		Total:      totals.Total,
		TotalIVA:   totals.TotalIVA,
		TotalPrice: totals.TotalPrice,
	}
}

// ApplyTotals переносит пересчитанные суммы в покупку вместе с новым количеством.
func (p *Purchase) ApplyTotals(quantity int, totals Totals) {
	p.Quantity = quantity
	p.Total = totals.Total
	p.TotalIVA = totals.TotalIVA
	p.TotalPrice = totals.TotalPrice
}
