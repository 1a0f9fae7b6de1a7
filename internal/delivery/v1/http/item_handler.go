package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sarabarbaraam/CompraBarbara/internal/domain"
	"github.com/sarabarbaraam/CompraBarbara/internal/usecase"
	"github.com/sarabarbaraam/CompraBarbara/pkg/e"
	"github.com/sarabarbaraam/CompraBarbara/pkg/logger"
	"github.com/shopspring/decimal"
)

type ItemHandler struct {
	itemUsecase usecase.ItemUC
	logger      logger.Logger
}

func NewItemHandler(itemUsecase usecase.ItemUC, logger logger.Logger) *ItemHandler {
	return &ItemHandler{itemUsecase: itemUsecase, logger: logger}
}

func (i *ItemHandler) create(w http.ResponseWriter, r *http.Request) {
	var dto CreateItemDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		i.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	unitPrice, err := decimal.NewFromString(dto.UnitPrice)
	if err != nil {
		i.logger.Warnf("%d %s: unit_price %q", http.StatusBadRequest, e.ErrInvalidPrice.Error(), dto.UnitPrice)
		WriteError(w, e.ErrInvalidPrice)
		return
	}

	item, err := i.itemUsecase.Create(r.Context(), &usecase.CreateItemReq{
		Name:        dto.Name,
		Description: dto.Description,
		UnitPrice:   unitPrice,
		ItemStock:   dto.ItemStock,
		Type:        domain.ItemType(dto.Type),
		Supplier:    dto.Supplier,
	})
	if err != nil {
		i.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toItemDTO(item))
}

func (i *ItemHandler) list(w http.ResponseWriter, r *http.Request) {
	page, err := parsePageReq(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	res, err := i.itemUsecase.List(r.Context(), page)
	if err != nil {
		i.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toPageDTO(res, toItemDTO))
}

func (i *ItemHandler) search(w http.ResponseWriter, r *http.Request) {
	page, err := parsePageReq(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	req, err := toItemSearchReq(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	res, err := i.itemUsecase.Search(r.Context(), req, page)
	if err != nil {
		i.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toPageDTO(res, toItemDTO))
}

func (i *ItemHandler) sheet(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "key"))
	if err != nil {
		WriteError(w, err)
		return
	}

	item, err := i.itemUsecase.Sheet(r.Context(), id)
	if err != nil {
		i.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toItemDTO(item))
}

func (i *ItemHandler) update(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "key")

	var dto ItemPatchDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		i.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	patch, err := toItemPatch(&dto)
	if err != nil {
		WriteError(w, err)
		return
	}

	item, err := i.itemUsecase.Update(r.Context(), name, patch)
	if err != nil {
		i.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toItemDTO(item))
}

func (i *ItemHandler) delete(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "key")

	if err := i.itemUsecase.Delete(r.Context(), name); err != nil {
		i.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toItemPatch(dto *ItemPatchDTO) (*usecase.ItemPatch, error) {
	var itemType *domain.ItemType
	if dto.Type != nil {
		parsed, err := domain.ParseItemType(*dto.Type)
		if err != nil {
			return nil, err
		}
		itemType = &parsed
	}

	return &usecase.ItemPatch{
		Name:        dto.Name,
		Description: dto.Description,
		ItemStock:   dto.ItemStock,
		Type:        itemType,
		Supplier:    dto.Supplier,
	}, nil
}

func toItemSearchReq(r *http.Request) (*usecase.ItemSearchReq, error) {
	itemStock, err := queryInt(r, "item_stock")
	if err != nil {
		return nil, err
	}

	var itemType *domain.ItemType
	if raw := queryString(r, "type"); raw != nil {
		parsed, err := domain.ParseItemType(*raw)
		if err != nil {
			return nil, err
		}
		itemType = &parsed
	}

	req := &usecase.ItemSearchReq{
		Name:      queryString(r, "name"),
		ItemStock: itemStock,
		Type:      itemType,
		Supplier:  queryString(r, "supplier"),
	}

	if raw := queryString(r, "date"); raw != nil {
		parsed, err := parseDate(*raw)
		if err != nil {
			return nil, e.Wrap(*raw, e.ErrStatusBadRequest)
		}
		req.Date = &parsed
	}

	return req, nil
}
