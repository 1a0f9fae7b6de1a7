package usecase

import (
	"time"

	"github.com/sarabarbaraam/CompraBarbara/internal/domain"
	"github.com/sarabarbaraam/CompraBarbara/pkg/merge"
)

// Перечни изменяемых полей для merge.Apply. Поля, которых здесь нет
// (идентификаторы, цена товара, суммы покупки), патчем недостижимы.

func (p *ClientPatch) ops() []merge.Op[domain.Client] {
	return []merge.Op[domain.Client]{
		merge.Set(func(c *domain.Client) *string { return &c.Name }, p.Name),
		merge.Set(func(c *domain.Client) *string { return &c.Surname }, p.Surname),
		merge.Set(func(c *domain.Client) *string { return &c.Company }, p.Company),
		merge.Set(func(c *domain.Client) *string { return &c.Position }, p.Position),
		merge.Set(func(c *domain.Client) *string { return &c.Address }, p.Address),
		merge.Set(func(c *domain.Client) *string { return &c.ZipCode }, p.ZipCode),
		merge.Set(func(c *domain.Client) *string { return &c.Province }, p.Province),
		merge.Set(func(c *domain.Client) *string { return &c.PhoneNumber }, p.PhoneNumber),
		merge.Set(func(c *domain.Client) *time.Time { return &c.BirthDate }, p.BirthDate),
	}
}

func (p *ItemPatch) ops() []merge.Op[domain.Item] {
	return []merge.Op[domain.Item]{
		merge.Set(func(i *domain.Item) *string { return &i.Name }, p.Name),
		merge.Set(func(i *domain.Item) *string { return &i.Description }, p.Description),
		merge.Set(func(i *domain.Item) *int { return &i.ItemStock }, p.ItemStock),
		merge.Set(func(i *domain.Item) *domain.ItemType { return &i.Type }, p.Type),
		merge.Set(func(i *domain.Item) *string { return &i.Supplier }, p.Supplier),
	}
}

// Количество в ops не входит: его изменение идёт через пересчёт сумм.
func (p *PurchasePatch) ops() []merge.Op[domain.Purchase] {
	return []merge.Op[domain.Purchase]{
		merge.Set(func(pc *domain.Purchase) *time.Time { return &pc.PurchaseDate }, p.PurchaseDate),
	}
}
