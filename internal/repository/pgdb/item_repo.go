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

// ItemRepo реализует репозиторий каталога товаров поверх PostgreSQL.
type ItemRepo struct {
	pool *pgxpool.Pool
	conv converter.ItemConverter
}

func NewItemRepo(pool *pgxpool.Pool, conv converter.ItemConverter) *ItemRepo {
	return &ItemRepo{
		pool: pool,
		conv: conv,
	}
}

const itemColumns = "id_item, name, description, unit_price, item_stock, type, supplier, date"

// Колонки, доступные динамическому поиску.
var itemSearchColumns = map[string]string{
	"name":       "name",
	"item_stock": "item_stock",
	"type":       "type",
	"supplier":   "supplier",
	"date":       "date",
}

// Create назначает товару дату добавления на стороне базы.
func (i *ItemRepo) Create(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model := i.conv.ToModel(item)
	query := `
		INSERT INTO item (name, description, unit_price, item_stock, type, supplier)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id_item, date;
	`

	err = tx.QueryRow(ctx, query,
		model.Name, model.Description, model.UnitPrice, model.ItemStock, model.Type, model.Supplier,
	).Scan(&model.ID, &model.Date)
	if err != nil {
		if postgresDuplicate(err) {
			return nil, e.Wrap(whereami.WhereAmI(), e.Conflict(model.Name, e.ErrItemNameTaken))
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return i.conv.ToEntity(model), nil
}

// Update не трогает unit_price: цена товара фиксируется при создании.
func (i *ItemRepo) Update(ctx context.Context, item *domain.Item) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	model := i.conv.ToModel(item)
	query := `
		UPDATE item
		SET name = $1, description = $2, item_stock = $3, type = $4, supplier = $5
		WHERE id_item = $6;
	`

	result, err := tx.Exec(ctx, query,
		model.Name, model.Description, model.ItemStock, model.Type, model.Supplier, model.ID,
	)
	if err != nil {
		if postgresDuplicate(err) {
			return e.Wrap(whereami.WhereAmI(), e.Conflict(model.Name, e.ErrItemNameTaken))
		}

		return e.Wrap(whereami.WhereAmI(), err)
	}

	if result.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrItemNotFound)
	}

	return nil
}

func (i *ItemRepo) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM item WHERE id_item = $1;`

	model, err := scanItem(i.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrItemNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return i.conv.ToEntity(model), nil
}

// GetByName блокирует найденную строку до конца транзакции.
func (i *ItemRepo) GetByName(ctx context.Context, name string) (*domain.Item, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `SELECT ` + itemColumns + ` FROM item WHERE name = $1 FOR UPDATE;`

	model, err := scanItem(tx.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrItemNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return i.conv.ToEntity(model), nil
}

func (i *ItemRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	var exists bool
	err = tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM item WHERE name = $1);`, name).Scan(&exists)
	if err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	return exists, nil
}

func (i *ItemRepo) List(ctx context.Context, offset, limit int) ([]domain.Item, int, error) {
	var total int
	if err := i.pool.QueryRow(ctx, `SELECT COUNT(*) FROM item;`).Scan(&total); err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `SELECT ` + itemColumns + ` FROM item ORDER BY id_item LIMIT $1 OFFSET $2;`

	rows, err := i.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models, err := collectItems(rows)
	if err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return i.conv.ToArrEntity(models), total, nil
}

func (i *ItemRepo) Search(ctx context.Context, criteria usecase.Criteria, offset, limit int) ([]domain.Item, int, error) {
	where, args, err := buildWhere(criteria, itemSearchColumns)
	if err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}

	var total int
	if err := i.pool.QueryRow(ctx, `SELECT COUNT(*) FROM item`+where+`;`, args...).Scan(&total); err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}

	query := fmt.Sprintf(
		`SELECT %s FROM item%s ORDER BY id_item LIMIT $%d OFFSET $%d;`,
		itemColumns, where, len(args)+1, len(args)+2,
	)

	rows, err := i.pool.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models, err := collectItems(rows)
	if err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return i.conv.ToArrEntity(models), total, nil
}

func (i *ItemRepo) Delete(ctx context.Context, id int64) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM item WHERE id_item = $1;`, id)
	if err != nil {
		if postgresForeignKeyViolation(err) {
			return e.Wrap(whereami.WhereAmI(), e.ErrItemHasPurchases)
		}

		return e.Wrap(whereami.WhereAmI(), err)
	}

	if result.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrItemNotFound)
	}

	return nil
}

func scanItem(row pgx.Row) (*converter.ItemModel, error) {
	var model converter.ItemModel
	err := row.Scan(
		&model.ID, &model.Name, &model.Description, &model.UnitPrice,
		&model.ItemStock, &model.Type, &model.Supplier, &model.Date,
	)
	if err != nil {
		return nil, err
	}

	return &model, nil
}

func collectItems(rows pgx.Rows) ([]*converter.ItemModel, error) {
	var models []*converter.ItemModel
	for rows.Next() {
		model, err := scanItem(rows)
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
