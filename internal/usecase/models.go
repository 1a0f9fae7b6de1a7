package usecase

import (
	"time"

	"github.com/sarabarbaraam/CompraBarbara/internal/domain"
	"github.com/sarabarbaraam/CompraBarbara/pkg/e"
	"github.com/shopspring/decimal"
)

// PAGINATION

// PageReq — запрос страницы: номер (с единицы) и размер.
type PageReq struct {
	Page int
	Size int
}

// Validate проверяет границы страницы единообразно для list и search.
func (p PageReq) Validate() error {
	if p.Page < 1 {
		return e.ErrInvalidPage
	}

	if p.Size < 1 {
		return e.ErrInvalidPageSize
	}

	return nil
}

// Offset переводит номер страницы в смещение от нуля.
func (p PageReq) Offset() int {
	return (p.Page - 1) * p.Size
}

// PageInfo — метаданные страницы. TotalItems и TotalPages считаются
// по всей отфильтрованной коллекции, а не по размеру текущей страницы.
type PageInfo struct {
	Page       int
	Size       int
	TotalItems int
	TotalPages int
}

// PageRes — страница записей с метаданными.
type PageRes[T any] struct {
	Records []T
	Page    PageInfo
}

// CLIENT USECASE

// CreateClientReq — запрос на создание клиента.
type CreateClientReq struct {
	Name        string
	Surname     string
	Company     string
	Position    string
	Address     string
	ZipCode     string
	Province    string
	PhoneNumber string
	BirthDate   time.Time
}

// ClientPatch — частичное обновление клиента. Идентификатор отсутствует
// намеренно: он не может быть изменён патчем.
type ClientPatch struct {
	Name        *string
	Surname     *string
	Company     *string
	Position    *string
	Address     *string
	ZipCode     *string
	Province    *string
	PhoneNumber *string
	BirthDate   *time.Time
}

// ClientSearchReq — необязательные критерии поиска клиента.
type ClientSearchReq struct {
	Name        *string
	Surname     *string
	Company     *string
	Position    *string
	ZipCode     *string
	Province    *string
	PhoneNumber *string
}

// ITEM USECASE

// CreateItemReq — запрос на создание товара.
type CreateItemReq struct {
	Name        string
	Description string
	UnitPrice   decimal.Decimal
	ItemStock   int
	Type        domain.ItemType
	Supplier    string
}

// ItemPatch — частичное обновление товара. Цена (unit price) неизменяема
// после создания и потому в патче отсутствует.
type ItemPatch struct {
	Name        *string
	Description *string
	ItemStock   *int
	Type        *domain.ItemType
	Supplier    *string
}

// ItemSearchReq — необязательные критерии поиска товара.
type ItemSearchReq struct {
	Name      *string
	ItemStock *int
	Type      *domain.ItemType
	Supplier  *string
	Date      *time.Time
}

// PURCHASE USECASE

// CreatePurchaseReq — запрос на создание покупки. Суммы не принимаются
// от вызывающего: они выводятся из цены товара и количества.
type CreatePurchaseReq struct {
	ClientID int64
	ItemID   int64
	Quantity int
}

// PurchasePatch — частичное обновление покупки. Производные суммы
// пересчитываются только при изменении количества и никогда не
// принимаются из патча.
type PurchasePatch struct {
	Quantity     *int
	PurchaseDate *time.Time
}

// PurchaseSearchReq — необязательные критерии поиска покупки.
type PurchaseSearchReq struct {
	ClientID     *int64
	ItemID       *int64
	PurchaseDate *time.Time
	Quantity     *int
	TotalPrice   *decimal.Decimal
}

// MAPPERS

func NewPageReq(page, size int) PageReq {
	return PageReq{Page: page, Size: size}
}

func NewPageInfo(req PageReq, totalItems int) PageInfo {
	return PageInfo{
		Page:       req.Page,
		Size:       req.Size,
		TotalItems: totalItems,
		TotalPages: (totalItems + req.Size - 1) / req.Size,
	}
}

func NewPageRes[T any](records []T, page PageInfo) *PageRes[T] {
	return &PageRes[T]{
		Records: records,
		Page:    page,
	}
}
