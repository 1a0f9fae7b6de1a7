package domain

import (
	"github.com/sarabarbaraam/CompraBarbara/pkg/e"
	"github.com/shopspring/decimal"
)

// Totals — производные суммы покупки.
type Totals struct {
	Total      decimal.Decimal
	TotalIVA   decimal.Decimal
	TotalPrice decimal.Decimal
}

// ComputeTotals вычисляет суммы покупки без промежуточных округлений:
//
//	total      = unitPrice * quantity
//	totalIva   = total * ivaPercent / 100
//	totalPrice = total + totalIva
//
// Деление на 100 выполняется сдвигом десятичной точки, поэтому результат точен.
// Чистая функция без побочных эффектов.
func ComputeTotals(unitPrice decimal.Decimal, quantity int, ivaPercent decimal.Decimal) (Totals, error) {
	if quantity <= 0 {
		return Totals{}, e.ErrInvalidQuantity
	}

	if !unitPrice.IsPositive() {
		return Totals{}, e.ErrInvalidPrice
	}

	total := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	totalIva := total.Mul(ivaPercent).Shift(-2)

	return Totals{
		Total:      total,
		TotalIVA:   totalIva,
		TotalPrice: total.Add(totalIva),
	}, nil
}
