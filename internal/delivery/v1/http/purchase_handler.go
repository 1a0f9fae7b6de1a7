package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sarabarbaraam/CompraBarbara/internal/usecase"
	"github.com/sarabarbaraam/CompraBarbara/pkg/e"
	"github.com/sarabarbaraam/CompraBarbara/pkg/logger"
)

type PurchaseHandler struct {
	purchaseUsecase usecase.PurchaseUC
	logger          logger.Logger
}

func NewPurchaseHandler(purchaseUsecase usecase.PurchaseUC, logger logger.Logger) *PurchaseHandler {
	return &PurchaseHandler{purchaseUsecase: purchaseUsecase, logger: logger}
}

func (p *PurchaseHandler) create(w http.ResponseWriter, r *http.Request) {
	var dto CreatePurchaseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	purchase, err := p.purchaseUsecase.Create(r.Context(), &usecase.CreatePurchaseReq{
		ClientID: dto.ClientID,
		ItemID:   dto.ItemID,
		Quantity: dto.Quantity,
	})
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toPurchaseDTO(purchase))
}

func (p *PurchaseHandler) list(w http.ResponseWriter, r *http.Request) {
	page, err := parsePageReq(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	res, err := p.purchaseUsecase.List(r.Context(), page)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toPageDTO(res, toPurchaseDTO))
}

func (p *PurchaseHandler) search(w http.ResponseWriter, r *http.Request) {
	page, err := parsePageReq(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	req, err := toPurchaseSearchReq(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	res, err := p.purchaseUsecase.Search(r.Context(), req, page)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toPageDTO(res, toPurchaseDTO))
}

func (p *PurchaseHandler) sheet(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "key"))
	if err != nil {
		WriteError(w, err)
		return
	}

	purchase, err := p.purchaseUsecase.Sheet(r.Context(), id)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toPurchaseDTO(purchase))
}

func (p *PurchaseHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "key"))
	if err != nil {
		WriteError(w, err)
		return
	}

	var dto PurchasePatchDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	var purchaseDate *time.Time
	if dto.PurchaseDate != nil {
		parsed, err := parseDate(*dto.PurchaseDate)
		if err != nil {
			WriteError(w, e.Wrap(*dto.PurchaseDate, e.ErrStatusBadRequest))
			return
		}
		purchaseDate = &parsed
	}

	purchase, err := p.purchaseUsecase.Update(r.Context(), id, &usecase.PurchasePatch{
		Quantity:     dto.Quantity,
		PurchaseDate: purchaseDate,
	})
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toPurchaseDTO(purchase))
}

func (p *PurchaseHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "key"))
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := p.purchaseUsecase.Delete(r.Context(), id); err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toPurchaseSearchReq(r *http.Request) (*usecase.PurchaseSearchReq, error) {
	clientID, err := queryInt64(r, "id_client")
	if err != nil {
		return nil, err
	}

	itemID, err := queryInt64(r, "id_item")
	if err != nil {
		return nil, err
	}

	quantity, err := queryInt(r, "quantity")
	if err != nil {
		return nil, err
	}

	totalPrice, err := queryDecimal(r, "total_price")
	if err != nil {
		return nil, err
	}

	req := &usecase.PurchaseSearchReq{
		ClientID:   clientID,
		ItemID:     itemID,
		Quantity:   quantity,
		TotalPrice: totalPrice,
	}

	if raw := queryString(r, "purchase_date"); raw != nil {
		parsed, err := parseDate(*raw)
		if err != nil {
			return nil, e.Wrap(*raw, e.ErrStatusBadRequest)
		}
		req.PurchaseDate = &parsed
	}

	return req, nil
}
