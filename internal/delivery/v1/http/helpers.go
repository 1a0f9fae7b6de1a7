package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/sarabarbaraam/CompraBarbara/internal/usecase"
	"github.com/sarabarbaraam/CompraBarbara/pkg/e"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

func ToHTTPResponse(err error) (int, string) {
	// Конфликт называет занятое значение в сообщении, внутренние
	// префиксы обёрток при этом не утекают.
	var conflict *e.ConflictError
	if errors.As(err, &conflict) {
		return http.StatusConflict, conflict.Error()
	}

	switch {
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	case errors.Is(err, e.ErrMissingFields):
		return http.StatusBadRequest, e.ErrMissingFields.Error()
	case errors.Is(err, e.ErrInvalidPage):
		return http.StatusBadRequest, e.ErrInvalidPage.Error()
	case errors.Is(err, e.ErrInvalidPageSize):
		return http.StatusBadRequest, e.ErrInvalidPageSize.Error()
	case errors.Is(err, e.ErrInvalidQuantity):
		return http.StatusBadRequest, e.ErrInvalidQuantity.Error()
	case errors.Is(err, e.ErrInvalidPrice):
		return http.StatusBadRequest, e.ErrInvalidPrice.Error()
	case errors.Is(err, e.ErrInvalidStock):
		return http.StatusBadRequest, e.ErrInvalidStock.Error()
	case errors.Is(err, e.ErrInvalidItemType):
		return http.StatusBadRequest, e.ErrInvalidItemType.Error()
	case errors.Is(err, e.ErrInvalidBirthDate):
		return http.StatusBadRequest, e.ErrInvalidBirthDate.Error()
	case errors.Is(err, e.ErrClientNotFound):
		return http.StatusNotFound, e.ErrClientNotFound.Error()
	case errors.Is(err, e.ErrItemNotFound):
		return http.StatusNotFound, e.ErrItemNotFound.Error()
	case errors.Is(err, e.ErrPurchaseNotFound):
		return http.StatusNotFound, e.ErrPurchaseNotFound.Error()
	case errors.Is(err, e.ErrCompanyTaken):
		return http.StatusConflict, e.ErrCompanyTaken.Error()
	case errors.Is(err, e.ErrPhoneNumberTaken):
		return http.StatusConflict, e.ErrPhoneNumberTaken.Error()
	case errors.Is(err, e.ErrItemNameTaken):
		return http.StatusConflict, e.ErrItemNameTaken.Error()
	case errors.Is(err, e.ErrClientHasPurchases):
		return http.StatusConflict, e.ErrClientHasPurchases.Error()
	case errors.Is(err, e.ErrItemHasPurchases):
		return http.StatusConflict, e.ErrItemHasPurchases.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// parsePageReq читает page и size из query-строки. По умолчанию первая
// страница по 20 записей.
func parsePageReq(r *http.Request) (usecase.PageReq, error) {
	const (
		defaultPage = 1
		defaultSize = 20
	)

	page := defaultPage
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return usecase.PageReq{}, e.Wrap(raw, e.ErrInvalidPage)
		}
		page = parsed
	}

	size := defaultSize
	if raw := r.URL.Query().Get("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return usecase.PageReq{}, e.Wrap(raw, e.ErrInvalidPageSize)
		}
		size = parsed
	}

	return usecase.NewPageReq(page, size), nil
}

// parseID разбирает числовой идентификатор из сегмента пути.
func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, e.Wrap(raw, e.ErrStatusBadRequest)
	}

	return id, nil
}

// Необязательные критерии поиска: отсутствующий параметр даёт nil.

func queryString(r *http.Request, name string) *string {
	if !r.URL.Query().Has(name) {
		return nil
	}

	value := r.URL.Query().Get(name)
	return &value
}

func queryInt(r *http.Request, name string) (*int, error) {
	raw := queryString(r, name)
	if raw == nil {
		return nil, nil
	}

	value, err := strconv.Atoi(*raw)
	if err != nil {
		return nil, e.Wrap(name, e.ErrStatusBadRequest)
	}

	return &value, nil
}

func queryInt64(r *http.Request, name string) (*int64, error) {
	raw := queryString(r, name)
	if raw == nil {
		return nil, nil
	}

	value, err := strconv.ParseInt(*raw, 10, 64)
	if err != nil {
		return nil, e.Wrap(name, e.ErrStatusBadRequest)
	}

	return &value, nil
}

func queryDecimal(r *http.Request, name string) (*decimal.Decimal, error) {
	raw := queryString(r, name)
	if raw == nil {
		return nil, nil
	}

	value, err := decimal.NewFromString(*raw)
	if err != nil {
		return nil, e.Wrap(name, e.ErrStatusBadRequest)
	}

	return &value, nil
}
