package usecase

import (
	"context"
	"strings"
	"time"

	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/sarabarbaraam/CompraBarbara/internal/domain"
	"github.com/sarabarbaraam/CompraBarbara/pkg/e"
	"github.com/sarabarbaraam/CompraBarbara/pkg/logger"
	"github.com/sarabarbaraam/CompraBarbara/pkg/merge"
)

// ClientUseCase реализует бизнес-логику управления клиентами.
type ClientUseCase struct {
	clientRepo ClientRepository
	dbPool     transaction.Transactional
	logger     logger.Logger
}

func NewClientUC(
	clientRepo ClientRepository,
	dbPool transaction.Transactional,
	logger logger.Logger,
) *ClientUseCase {
	return &ClientUseCase{
		clientRepo: clientRepo,
		dbPool:     dbPool,
		logger:     logger,
	}
}

// Create регистрирует нового клиента. Компания — функциональный ключ:
// второй клиент с той же компанией не создаётся.
func (c *ClientUseCase) Create(ctx context.Context, req *CreateClientReq) (*domain.Client, error) {
	const op = "ClientUseCase.Create"

	// Валидация данных
	var err error
	err = c.validateClient(req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, c.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	// Проверка занятости компании до вставки; уникальный индекс в базе
	// страхует от гонки между проверкой и вставкой.
	taken, err := c.clientRepo.ExistsByCompany(ctx, req.Company)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if taken {
		err = e.Conflict(req.Company, e.ErrCompanyTaken)
		return nil, e.Wrap(op, err)
	}

	client, err := c.clientRepo.Create(ctx, domain.NewClient(
		req.Name,
		req.Surname,
		req.Company,
		req.Position,
		req.Address,
		req.ZipCode,
		req.Province,
		req.PhoneNumber,
		req.BirthDate,
	))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return client, nil
}

// List возвращает страницу клиентов.
func (c *ClientUseCase) List(ctx context.Context, page PageReq) (*PageRes[domain.Client], error) {
	const op = "ClientUseCase.List"

	if err := page.Validate(); err != nil {
		return nil, e.Wrap(op, err)
	}

	clients, total, err := c.clientRepo.List(ctx, page.Offset(), page.Size)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewPageRes(clients, NewPageInfo(page, total)), nil
}

// Search возвращает страницу клиентов, удовлетворяющих всем заданным критериям.
func (c *ClientUseCase) Search(ctx context.Context, req *ClientSearchReq, page PageReq) (*PageRes[domain.Client], error) {
	const op = "ClientUseCase.Search"

	if err := page.Validate(); err != nil {
		return nil, e.Wrap(op, err)
	}

	var criteria Criteria
	criteria = Text(criteria, "name", req.Name)
	criteria = Text(criteria, "surname", req.Surname)
	criteria = Text(criteria, "company", req.Company)
	criteria = Text(criteria, "position", req.Position)
	criteria = Text(criteria, "zip_code", req.ZipCode)
	criteria = Text(criteria, "province", req.Province)
	criteria = Text(criteria, "phone_number", req.PhoneNumber)

	clients, total, err := c.clientRepo.Search(ctx, criteria, page.Offset(), page.Size)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewPageRes(clients, NewPageInfo(page, total)), nil
}

// Sheet возвращает карточку клиента по идентификатору.
func (c *ClientUseCase) Sheet(ctx context.Context, id int64) (*domain.Client, error) {
	const op = "ClientUseCase.Sheet"

	client, err := c.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return client, nil
}

// Update частично обновляет клиента, найденного по номеру телефона.
// Поля, отсутствующие в патче, сохраняют прежние значения.
func (c *ClientUseCase) Update(ctx context.Context, phoneNumber string, patch *ClientPatch) (*domain.Client, error) {
	const op = "ClientUseCase.Update"

	var err error
	if patch.BirthDate != nil && !patch.BirthDate.Before(time.Now()) {
		err = e.ErrInvalidBirthDate
		return nil, e.Wrap(op, err)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, c.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	client, err := c.clientRepo.GetByPhoneNumber(ctx, phoneNumber)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	merge.Apply(client, patch.ops()...)

	err = c.clientRepo.Update(ctx, client)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return client, nil
}

// Delete удаляет клиента по номеру телефона. Клиент с покупками не удаляется.
func (c *ClientUseCase) Delete(ctx context.Context, phoneNumber string) error {
	const op = "ClientUseCase.Delete"

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, c.dbPool)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	client, err := c.clientRepo.GetByPhoneNumber(ctx, phoneNumber)
	if err != nil {
		return e.Wrap(op, err)
	}

	err = c.clientRepo.Delete(ctx, client.ID)
	if err != nil {
		return e.Wrap(op, err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

func (c *ClientUseCase) validateClient(req *CreateClientReq) error {
	required := []string{
		req.Name,
		req.Surname,
		req.Company,
		req.Position,
		req.Address,
		req.ZipCode,
		req.Province,
		req.PhoneNumber,
	}
	for _, f := range required {
		if strings.TrimSpace(f) == "" {
			return e.ErrMissingFields
		}
	}

	if !req.BirthDate.Before(time.Now()) {
		return e.ErrInvalidBirthDate
	}

	return nil
}
