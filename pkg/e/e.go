package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// 400 Bad Request
	ErrInvalidPage      = fmt.Errorf("page index must be at least 1")
	ErrInvalidPageSize  = fmt.Errorf("page size must be at least 1")
	ErrInvalidQuantity  = fmt.Errorf("quantity must be positive")
	ErrInvalidPrice     = fmt.Errorf("unit price must be positive")
	ErrInvalidStock     = fmt.Errorf("stock must not be negative")
	ErrInvalidItemType  = fmt.Errorf("unknown item type")
	ErrInvalidBirthDate = fmt.Errorf("birth date must be in the past")
	ErrMissingFields    = fmt.Errorf("missing required fields")
	ErrStatusBadRequest = fmt.Errorf("bad request")

	// 404 Not Found
	ErrClientNotFound   = fmt.Errorf("client not found")
	ErrItemNotFound     = fmt.Errorf("item not found")
	ErrPurchaseNotFound = fmt.Errorf("purchase not found")

	// 409 Conflict
	ErrCompanyTaken       = fmt.Errorf("company is already taken")
	ErrPhoneNumberTaken   = fmt.Errorf("phone number is already taken")
	ErrItemNameTaken      = fmt.Errorf("item name is already taken")
	ErrClientHasPurchases = fmt.Errorf("client is referenced by purchases")
	ErrItemHasPurchases   = fmt.Errorf("item is referenced by purchases")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}

// ConflictError — конфликт уникальности. Value хранит занятое значение,
// чтобы назвать его в ответе вызывающему.
type ConflictError struct {
	Value string
	Err   error
}

func (c *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", c.Value, c.Err.Error())
}

func (c *ConflictError) Unwrap() error { return c.Err }

// Conflict оборачивает ошибку-сентинел конфликта занятым значением.
func Conflict(value string, err error) error {
	return &ConflictError{Value: value, Err: err}
}
