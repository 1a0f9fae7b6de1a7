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

// PurchaseRepo реализует репозиторий покупок поверх PostgreSQL.
type PurchaseRepo struct {
	pool *pgxpool.Pool
	conv converter.PurchaseConverter
}

func NewPurchaseRepo(pool *pgxpool.Pool, conv converter.PurchaseConverter) *PurchaseRepo {
	return &PurchaseRepo{
		pool: pool,
		conv: conv,
	}
}

const purchaseColumns = "id_purchase, id_client, id_item, purchase_date, quantity, total, iva, total_iva, total_price"

// Колонки, доступные динамическому поиску.
var purchaseSearchColumns = map[string]string{
	"id_client":     "id_client",
	"id_item":       "id_item",
	"purchase_date": "purchase_date",
	"quantity":      "quantity",
	"total_price":   "total_price",
}

// Create назначает дату покупки на стороне базы.
func (p *PurchaseRepo) Create(ctx context.Context, purchase *domain.Purchase) (*domain.Purchase, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model := p.conv.ToModel(purchase)
	query := `
		INSERT INTO purchase (id_client, id_item, quantity, total, iva, total_iva, total_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id_purchase, purchase_date;
	`

	err = tx.QueryRow(ctx, query,
		model.ClientID, model.ItemID, model.Quantity,
		model.Total, model.IVA, model.TotalIVA, model.TotalPrice,
	).Scan(&model.ID, &model.PurchaseDate)
	if err != nil {
		if postgresForeignKeyViolation(err) {
			return nil, e.Wrap(whereami.WhereAmI(), purchaseReferenceErr(err))
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(model), nil
}

func (p *PurchaseRepo) Update(ctx context.Context, purchase *domain.Purchase) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	model := p.conv.ToModel(purchase)
	query := `
		UPDATE purchase
		SET purchase_date = $1, quantity = $2, total = $3, iva = $4, total_iva = $5, total_price = $6
		WHERE id_purchase = $7;
	`

	result, err := tx.Exec(ctx, query,
		model.PurchaseDate, model.Quantity,
		model.Total, model.IVA, model.TotalIVA, model.TotalPrice, model.ID,
	)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if result.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrPurchaseNotFound)
	}

	return nil
}

func (p *PurchaseRepo) GetByID(ctx context.Context, id int64) (*domain.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchase WHERE id_purchase = $1;`

	model, err := scanPurchase(p.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrPurchaseNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(model), nil
}

// GetByIDForUpdate блокирует найденную строку до конца транзакции.
func (p *PurchaseRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Purchase, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `SELECT ` + purchaseColumns + ` FROM purchase WHERE id_purchase = $1 FOR UPDATE;`

	model, err := scanPurchase(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrPurchaseNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(model), nil
}

func (p *PurchaseRepo) List(ctx context.Context, offset, limit int) ([]domain.Purchase, int, error) {
	var total int
	if err := p.pool.QueryRow(ctx, `SELECT COUNT(*) FROM purchase;`).Scan(&total); err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `SELECT ` + purchaseColumns + ` FROM purchase ORDER BY id_purchase LIMIT $1 OFFSET $2;`

	rows, err := p.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models, err := collectPurchases(rows)
	if err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToArrEntity(models), total, nil
}

func (p *PurchaseRepo) Search(ctx context.Context, criteria usecase.Criteria, offset, limit int) ([]domain.Purchase, int, error) {
	where, args, err := buildWhere(criteria, purchaseSearchColumns)
	if err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}

	var total int
	if err := p.pool.QueryRow(ctx, `SELECT COUNT(*) FROM purchase`+where+`;`, args...).Scan(&total); err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}

	query := fmt.Sprintf(
		`SELECT %s FROM purchase%s ORDER BY id_purchase LIMIT $%d OFFSET $%d;`,
		purchaseColumns, where, len(args)+1, len(args)+2,
	)

	rows, err := p.pool.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models, err := collectPurchases(rows)
	if err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToArrEntity(models), total, nil
}

func (p *PurchaseRepo) Delete(ctx context.Context, id int64) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM purchase WHERE id_purchase = $1;`, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if result.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrPurchaseNotFound)
	}

	return nil
}

func purchaseReferenceErr(err error) error {
	if constraintName(err) == "purchase_id_item_fkey" {
		return e.ErrItemNotFound
	}

	return e.ErrClientNotFound
}

func scanPurchase(row pgx.Row) (*converter.PurchaseModel, error) {
	var model converter.PurchaseModel
	err := row.Scan(
		&model.ID, &model.ClientID, &model.ItemID, &model.PurchaseDate, &model.Quantity,
		&model.Total, &model.IVA, &model.TotalIVA, &model.TotalPrice,
	)
	if err != nil {
		return nil, err
	}

	return &model, nil
}

func collectPurchases(rows pgx.Rows) ([]*converter.PurchaseModel, error) {
	var models []*converter.PurchaseModel
	for rows.Next() {
		model, err := scanPurchase(rows)
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
