package pgdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/sarabarbaraam/CompraBarbara/internal/domain"
	"github.com/sarabarbaraam/CompraBarbara/internal/repository/pgdb/converter"
	"github.com/sarabarbaraam/CompraBarbara/internal/usecase"
	"github.com/sarabarbaraam/CompraBarbara/pkg/e"
	"github.com/sarabarbaraam/CompraBarbara/pkg/tr"
)

// ClientRepo реализует репозиторий клиентов поверх PostgreSQL.
type ClientRepo struct {
	pool *pgxpool.Pool
	conv converter.ClientConverter
}

func NewClientRepo(pool *pgxpool.Pool, conv converter.ClientConverter) *ClientRepo {
	return &ClientRepo{
		pool: pool,
		conv: conv,
	}
}

const clientColumns = "id_client, name, surname, company, position, address, zip_code, province, phone_number, birth_date"

// Колонки, доступные динамическому поиску.
var clientSearchColumns = map[string]string{
	"name":         "name",
	"surname":      "surname",
	"company":      "company",
	"position":     "position",
	"zip_code":     "zip_code",
	"province":     "province",
	"phone_number": "phone_number",
}

func (c *ClientRepo) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model := c.conv.ToModel(client)
	query := `
		INSERT INTO client (name, surname, company, position, address, zip_code, province, phone_number, birth_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id_client;
	`

	err = tx.QueryRow(ctx, query,
		model.Name, model.Surname, model.Company, model.Position, model.Address,
		model.ZipCode, model.Province, model.PhoneNumber, model.BirthDate,
	).Scan(&model.ID)
	if err != nil {
		if postgresDuplicate(err) {
			return nil, e.Wrap(whereami.WhereAmI(), clientDuplicateErr(err, model))
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(model), nil
}

func (c *ClientRepo) Update(ctx context.Context, client *domain.Client) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	model := c.conv.ToModel(client)
	query := `
		UPDATE client
		SET name = $1, surname = $2, company = $3, position = $4, address = $5,
			zip_code = $6, province = $7, phone_number = $8, birth_date = $9
		WHERE id_client = $10;
	`

	result, err := tx.Exec(ctx, query,
		model.Name, model.Surname, model.Company, model.Position, model.Address,
		model.ZipCode, model.Province, model.PhoneNumber, model.BirthDate, model.ID,
	)
	if err != nil {
		if postgresDuplicate(err) {
			return e.Wrap(whereami.WhereAmI(), clientDuplicateErr(err, model))
		}

		return e.Wrap(whereami.WhereAmI(), err)
	}

	if result.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrClientNotFound)
	}

	return nil
}

func (c *ClientRepo) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM client WHERE id_client = $1;`

	model, err := scanClient(c.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrClientNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(model), nil
}

// GetByPhoneNumber блокирует найденную строку до конца транзакции.
func (c *ClientRepo) GetByPhoneNumber(ctx context.Context, phoneNumber string) (*domain.Client, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `SELECT ` + clientColumns + ` FROM client WHERE phone_number = $1 FOR UPDATE;`

	model, err := scanClient(tx.QueryRow(ctx, query, phoneNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrClientNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(model), nil
}

func (c *ClientRepo) ExistsByCompany(ctx context.Context, company string) (bool, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	var exists bool
	err = tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM client WHERE company = $1);`, company).Scan(&exists)
	if err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	return exists, nil
}

func (c *ClientRepo) List(ctx context.Context, offset, limit int) ([]domain.Client, int, error) {
	var total int
	if err := c.pool.QueryRow(ctx, `SELECT COUNT(*) FROM client;`).Scan(&total); err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `SELECT ` + clientColumns + ` FROM client ORDER BY id_client LIMIT $1 OFFSET $2;`

	rows, err := c.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models, err := collectClients(rows)
	if err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToArrEntity(models), total, nil
}

func (c *ClientRepo) Search(ctx context.Context, criteria usecase.Criteria, offset, limit int) ([]domain.Client, int, error) {
	where, args, err := buildWhere(criteria, clientSearchColumns)
	if err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}

	var total int
	if err := c.pool.QueryRow(ctx, `SELECT COUNT(*) FROM client`+where+`;`, args...).Scan(&total); err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}

	query := fmt.Sprintf(
		`SELECT %s FROM client%s ORDER BY id_client LIMIT $%d OFFSET $%d;`,
		clientColumns, where, len(args)+1, len(args)+2,
	)

	rows, err := c.pool.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models, err := collectClients(rows)
	if err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToArrEntity(models), total, nil
}

func (c *ClientRepo) Delete(ctx context.Context, id int64) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM client WHERE id_client = $1;`, id)
	if err != nil {
		if postgresForeignKeyViolation(err) {
			return e.Wrap(whereami.WhereAmI(), e.ErrClientHasPurchases)
		}

		return e.Wrap(whereami.WhereAmI(), err)
	}

	if result.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrClientNotFound)
	}

	return nil
}

// clientDuplicateErr различает нарушенное ограничение и называет занятое значение.
func clientDuplicateErr(err error, model *converter.ClientModel) error {
	if constraintName(err) == "client_phone_number_key" {
		return e.Conflict(model.PhoneNumber, e.ErrPhoneNumberTaken)
	}

	return e.Conflict(model.Company, e.ErrCompanyTaken)
}

func scanClient(row pgx.Row) (*converter.ClientModel, error) {
	var model converter.ClientModel
	err := row.Scan(
		&model.ID, &model.Name, &model.Surname, &model.Company, &model.Position,
		&model.Address, &model.ZipCode, &model.Province, &model.PhoneNumber, &model.BirthDate,
	)
	if err != nil {
		return nil, err
	}

	return &model, nil
}

func collectClients(rows pgx.Rows) ([]*converter.ClientModel, error) {
	var models []*converter.ClientModel
	for rows.Next() {
		model, err := scanClient(rows)
		if err != nil {
			return nil, err
		}

		models = append(models, model)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return models, nil
}
