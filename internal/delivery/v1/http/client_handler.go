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

type ClientHandler struct {
	clientUsecase usecase.ClientUC
	logger        logger.Logger
}

func NewClientHandler(clientUsecase usecase.ClientUC, logger logger.Logger) *ClientHandler {
	return &ClientHandler{clientUsecase: clientUsecase, logger: logger}
}

func (c *ClientHandler) create(w http.ResponseWriter, r *http.Request) {
	var dto CreateClientDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		c.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	birthDate, err := parseDate(dto.BirthDate)
	if err != nil {
		c.logger.Warnf("%d %s: birth_date %q", http.StatusBadRequest, e.ErrInvalidBirthDate.Error(), dto.BirthDate)
		WriteError(w, e.ErrInvalidBirthDate)
		return
	}

	client, err := c.clientUsecase.Create(r.Context(), &usecase.CreateClientReq{
		Name:        dto.Name,
		Surname:     dto.Surname,
		Company:     dto.Company,
		Position:    dto.Position,
		Address:     dto.Address,
		ZipCode:     dto.ZipCode,
		Province:    dto.Province,
		PhoneNumber: dto.PhoneNumber,
		BirthDate:   birthDate,
	})
	if err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toClientDTO(client))
}

func (c *ClientHandler) list(w http.ResponseWriter, r *http.Request) {
	page, err := parsePageReq(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	res, err := c.clientUsecase.List(r.Context(), page)
	if err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toPageDTO(res, toClientDTO))
}

func (c *ClientHandler) search(w http.ResponseWriter, r *http.Request) {
	page, err := parsePageReq(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	req := &usecase.ClientSearchReq{
		Name:        queryString(r, "name"),
		Surname:     queryString(r, "surname"),
		Company:     queryString(r, "company"),
		Position:    queryString(r, "position"),
		ZipCode:     queryString(r, "zip_code"),
		Province:    queryString(r, "province"),
		PhoneNumber: queryString(r, "phone_number"),
	}

	res, err := c.clientUsecase.Search(r.Context(), req, page)
	if err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toPageDTO(res, toClientDTO))
}

func (c *ClientHandler) sheet(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "key"))
	if err != nil {
		WriteError(w, err)
		return
	}

	client, err := c.clientUsecase.Sheet(r.Context(), id)
	if err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toClientDTO(client))
}

func (c *ClientHandler) update(w http.ResponseWriter, r *http.Request) {
	phoneNumber := chi.URLParam(r, "key")

	var dto ClientPatchDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		c.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	patch, err := toClientPatch(&dto)
	if err != nil {
		WriteError(w, err)
		return
	}

	client, err := c.clientUsecase.Update(r.Context(), phoneNumber, patch)
	if err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toClientDTO(client))
}

func (c *ClientHandler) delete(w http.ResponseWriter, r *http.Request) {
	phoneNumber := chi.URLParam(r, "key")

	if err := c.clientUsecase.Delete(r.Context(), phoneNumber); err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toClientPatch(dto *ClientPatchDTO) (*usecase.ClientPatch, error) {
	var birthDate *time.Time
	if dto.BirthDate != nil {
		parsed, err := parseDate(*dto.BirthDate)
		if err != nil {
			return nil, e.Wrap(*dto.BirthDate, e.ErrInvalidBirthDate)
		}
		birthDate = &parsed
	}

	return &usecase.ClientPatch{
		Name:        dto.Name,
		Surname:     dto.Surname,
		Company:     dto.Company,
		Position:    dto.Position,
		Address:     dto.Address,
		ZipCode:     dto.ZipCode,
		Province:    dto.Province,
		PhoneNumber: dto.PhoneNumber,
		BirthDate:   birthDate,
	}, nil
}
