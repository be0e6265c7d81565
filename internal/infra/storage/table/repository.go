package table

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	"github.com/m04kA/SMC-TableBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TableBookingService/pkg/pgerrors"
	"github.com/m04kA/SMC-TableBookingService/pkg/psqlbuilder"
)

const tableName = "restaurant_tables"

var columns = []string{
	"id",
	"number",
	"capacity",
	"location",
	"shape",
	"position_x",
	"position_y",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository справочник столов
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет стол
func (r *Repository) Create(ctx context.Context, t *domain.Table) (*domain.Table, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("number", "capacity", "location", "shape", "position_x", "position_y", "is_active").
		Values(t.Number, t.Capacity, t.Location, t.Shape, t.Position.X, t.Position.Y, t.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&t.ID, &createdAt, &updatedAt)
	if pgerrors.IsUniqueViolation(err) {
		return nil, fmt.Errorf("%w: number %d", ErrDuplicateNumber, t.Number)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time

	return t, nil
}

// GetByID получает стол по ID.
// Внутри транзакции строка блокируется (FOR UPDATE): так запись броней сериализуется по столу
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Table, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	t, err := scanTable(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTableNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan table: %v", ErrScanRow, err)
	}

	return t, nil
}

// List столы по фильтру, отсортированные по номеру
func (r *Repository) List(ctx context.Context, filter domain.TableFilter) ([]*domain.Table, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		OrderBy("number ASC", "id ASC")

	if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}
	if filter.MinCapacity != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"capacity": *filter.MinCapacity})
	}
	if filter.Location != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"location": *filter.Location})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	tables := make([]*domain.Table, 0)
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return tables, nil
}

// ListActive активные столы вместимостью от minCapacity и (опционально) в зоне location
func (r *Repository) ListActive(ctx context.Context, minCapacity *int, location *domain.Location) ([]*domain.Table, error) {
	return r.List(ctx, domain.TableFilter{MinCapacity: minCapacity, Location: location})
}

// Update обновляет атрибуты стола (кроме позиции на схеме)
func (r *Repository) Update(ctx context.Context, t *domain.Table) (*domain.Table, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("number", t.Number).
		Set("capacity", t.Capacity).
		Set("location", t.Location).
		Set("shape", t.Shape).
		Set("is_active", t.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": t.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTableNotFound
	}
	if pgerrors.IsUniqueViolation(err) {
		return nil, fmt.Errorf("%w: number %d", ErrDuplicateNumber, t.Number)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time

	return t, nil
}

// UpdatePositions переставляет столы на схеме. Атомарность пакета обеспечивает
// вызывающая транзакция: при первом неизвестном столе возвращается ErrTableNotFound
func (r *Repository) UpdatePositions(ctx context.Context, positions []domain.TablePosition) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	for _, p := range positions {
		query, args, err := psqlbuilder.Update(tableName).
			Set("position_x", p.Position.X).
			Set("position_y", p.Position.Y).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": p.TableID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: UpdatePositions - build update query: %v", ErrBuildQuery, err)
		}

		result, err := executor.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("%w: UpdatePositions - execute update: %v", ErrExecQuery, err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("%w: UpdatePositions - get rows affected: %v", ErrExecQuery, err)
		}
		if rowsAffected == 0 {
			return fmt.Errorf("%w: id %d", ErrTableNotFound, p.TableID)
		}
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTable(row rowScanner) (*domain.Table, error) {
	var t domain.Table
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&t.ID,
		&t.Number,
		&t.Capacity,
		&t.Location,
		&t.Shape,
		&t.Position.X,
		&t.Position.Y,
		&t.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time

	return &t, nil
}
