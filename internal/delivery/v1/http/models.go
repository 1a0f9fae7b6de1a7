package http

import (
	"time"

	"github.com/sarabarbaraam/CompraBarbara/internal/domain"
	"github.com/sarabarbaraam/CompraBarbara/internal/usecase"
)

// Даты на границе API ходят в формате dd/MM/yyyy.
const dateLayout = "02/01/2006"

type ClientDTO struct {
	ID          int64  `json:"id_client"`
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	Address     string `json:"address"`
	ZipCode     string `json:"zip_code"`
	Province    string `json:"province"`
	PhoneNumber string `json:"phone_number"`
	BirthDate   string `json:"birth_date"`
}

type CreateClientDTO struct {
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	Address     string `json:"address"`
	ZipCode     string `json:"zip_code"`
	Province    string `json:"province"`
	PhoneNumber string `json:"phone_number"`
	BirthDate   string `json:"birth_date"`
}

// Отсутствующее в JSON поле остаётся nil и не попадает в патч.
type ClientPatchDTO struct {
	Name        *string `json:"name"`
	Surname     *string `json:"surname"`
	Company     *string `json:"company"`
	Position    *string `json:"position"`
	Address     *string `json:"address"`
	ZipCode     *string `json:"zip_code"`
	Province    *string `json:"province"`
	PhoneNumber *string `json:"phone_number"`
	BirthDate   *string `json:"birth_date"`
}

type ItemDTO struct {
	ID          int64  `json:"id_item"`
	Name        string `json:"name"`
	Description string `json:"description"`
	UnitPrice   string `json:"unit_price"`
	ItemStock   int    `json:"item_stock"`
	Type        string `json:"type"`
	Supplier    string `json:"supplier"`
	Date        string `json:"date"`
}

type CreateItemDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	UnitPrice   string `json:"unit_price"`
	ItemStock   int    `json:"item_stock"`
	Type        string `json:"type"`
	Supplier    string `json:"supplier"`
}

type ItemPatchDTO struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ItemStock   *int    `json:"item_stock"`
	Type        *string `json:"type"`
	Supplier    *string `json:"supplier"`
}

type PurchaseDTO struct {
	ID           int64  `json:"id_purchase"`
	ClientID     int64  `json:"id_client"`
	ItemID       int64  `json:"id_item"`
	PurchaseDate string `json:"purchase_date"`
	Quantity     int    `json:"quantity"`
	Total        string `json:"total"`
	IVA          string `json:"iva"`
	TotalIVA     string `json:"total_iva"`
	TotalPrice   string `json:"total_price"`
}

type CreatePurchaseDTO struct {
	ClientID int64 `json:"id_client"`
	ItemID   int64 `json:"id_item"`
	Quantity int   `json:"quantity"`
}

type PurchasePatchDTO struct {
	Quantity     *int    `json:"quantity"`
	PurchaseDate *string `json:"purchase_date"`
}

// PageDTO — страница записей с метаданными пагинации.
type PageDTO[T any] struct {
	Records    []T `json:"records"`
	Page       int `json:"page"`
	Size       int `json:"size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// MAPPERS

func toClientDTO(client *domain.Client) *ClientDTO {
	return &ClientDTO{
		ID:          client.ID,
		Name:        client.Name,
		Surname:     client.Surname,
		Company:     client.Company,
		Position:    client.Position,
		Address:     client.Address,
		ZipCode:     client.ZipCode,
		Province:    client.Province,
		PhoneNumber: client.PhoneNumber,
		BirthDate:   client.BirthDate.Format(dateLayout),
	}
}

func toItemDTO(item *domain.Item) *ItemDTO {
	return &ItemDTO{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		UnitPrice:   item.UnitPrice.String(),
		ItemStock:   item.ItemStock,
		Type:        string(item.Type),
		Supplier:    item.Supplier,
		Date:        item.Date.Format(dateLayout),
	}
}

func toPurchaseDTO(purchase *domain.Purchase) *PurchaseDTO {
	return &PurchaseDTO{
		ID:           purchase.ID,
		ClientID:     purchase.ClientID,
		ItemID:       purchase.ItemID,
		PurchaseDate: purchase.PurchaseDate.Format(dateLayout),
		Quantity:     purchase.Quantity,
		Total:        purchase.Total.String(),
		IVA:          purchase.IVA.String(),
		TotalIVA:     purchase.TotalIVA.String(),
		TotalPrice:   purchase.TotalPrice.String(),
	}
}

func toPageDTO[E any, D any](res *usecase.PageRes[E], conv func(*E) *D) *PageDTO[D] {
	records := make([]D, 0, len(res.Records))
	for i := range res.Records {
		records = append(records, *conv(&res.Records[i]))
	}

	return &PageDTO[D]{
		Records:    records,
		Page:       res.Page.Page,
		Size:       res.Page.Size,
		TotalItems: res.Page.TotalItems,
		TotalPages: res.Page.TotalPages,
	}
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}
