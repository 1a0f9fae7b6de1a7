package converter

import "time"

// ItemRedisModel — представление товара в кэше Redis.
type ItemRedisModel struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	UnitPrice   string    `json:"unit_price"`
	ItemStock   int       `json:"item_stock"`
	Type        string    `json:"type"`
	Supplier    string    `json:"supplier"`
	Date        time.Time `json:"date"`
}
