package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	"github.com/m04kA/SMC-TableBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TableBookingService/pkg/pgerrors"
	"github.com/m04kA/SMC-TableBookingService/pkg/psqlbuilder"
)

const tableName = "reservations"

var columns = []string{
	"id",
	"customer_id",
	"customer_name",
	"table_id",
	"date_time",
	"duration_minutes",
	"party_size",
	"status",
	"notes",
	"confirmed_at",
	"checked_in_at",
	"completed_at",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// statusTimestamps колонка отметки времени, которую выставляет переход в статус
var statusTimestamps = map[domain.ReservationStatus]string{
	domain.StatusConfirmed: "confirmed_at",
	domain.StatusSeated:    "checked_in_at",
	domain.StatusCompleted: "completed_at",
	domain.StatusCancelled: "cancelled_at",
}

// Repository журнал бронирований
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создаёт бронирование.
// end_time хранится явно: по нему строится exclusion constraint на пересечение интервалов стола
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	interval := res.Interval()

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"customer_id",
			"customer_name",
			"table_id",
			"date_time",
			"duration_minutes",
			"end_time",
			"party_size",
			"status",
			"notes",
		).
		Values(
			res.CustomerID,
			res.CustomerName,
			res.TableID,
			interval.Start,
			res.DurationMinutes,
			interval.End,
			res.PartySize,
			res.Status,
			res.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&res.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, classifyWriteError("Create - execute insert", err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает бронирование по ID, внутри транзакции строка блокируется
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
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

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// List бронирования по фильтру в порядке начала
func (r *Repository) List(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		OrderBy("date_time ASC", "id ASC")

	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"date_time": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"date_time": *filter.To})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.TableID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"table_id": *filter.TableID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, "List", query, args)
}

// FindOverlapping бронирования в статусах filter.Statuses, чей интервал
// [date_time, end_time) пересекает [filter.Start, filter.End).
// Внутри транзакции найденные строки блокируются
func (r *Repository) FindOverlapping(ctx context.Context, filter domain.OverlapFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	statuses := make([]string, len(filter.Statuses))
	for i, s := range filter.Statuses {
		statuses[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"status": statuses}).
		Where(squirrel.Lt{"date_time": filter.End}).
		Where(squirrel.Gt{"end_time": filter.Start}).
		OrderBy("date_time ASC", "id ASC")

	if filter.TableID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"table_id": *filter.TableID})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"table_id": nil})
	}
	if filter.ExcludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *filter.ExcludeID})
	}
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, "FindOverlapping", query, args)
}

// UpdateSchedule сохраняет время, длительность, размер компании, стол и заметки
func (r *Repository) UpdateSchedule(ctx context.Context, res *domain.Reservation) error {
	interval := res.Interval()

	return r.exec(ctx, "UpdateSchedule", psqlbuilder.Update(tableName).
		Set("table_id", res.TableID).
		Set("date_time", interval.Start).
		Set("duration_minutes", res.DurationMinutes).
		Set("end_time", interval.End).
		Set("party_size", res.PartySize).
		Set("notes", res.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": res.ID}))
}

// UpdateTable пересаживает бронирование на другой стол
func (r *Repository) UpdateTable(ctx context.Context, id int64, tableID int64) error {
	return r.exec(ctx, "UpdateTable", psqlbuilder.Update(tableName).
		Set("table_id", tableID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}))
}

// UpdateStatus меняет статус. Отметка времени перехода выставляется один раз:
// повторный переход не перезаписывает уже сохранённое значение
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus, at time.Time) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	updateBuilder := psqlbuilder.Update(tableName).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if column, ok := statusTimestamps[status]; ok {
		updateBuilder = updateBuilder.Set(column, squirrel.Expr("COALESCE("+column+", ?)", at))
	}

	return r.exec(ctx, "UpdateStatus", updateBuilder)
}

func (r *Repository) exec(ctx context.Context, op string, builder squirrel.UpdateBuilder) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return classifyWriteError(op+" - execute update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

func (r *Repository) query(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) ([]*domain.Reservation, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if pgerrors.IsConcurrencyConflict(err) {
			return nil, fmt.Errorf("%w: %s: %v", ErrConcurrentUpdate, op, err)
		}
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	reservations := make([]*domain.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return reservations, nil
}

// classifyWriteError отделяет бизнес-конфликты БД от прочих ошибок записи
func classifyWriteError(op string, err error) error {
	switch {
	case pgerrors.IsExclusionViolation(err):
		return fmt.Errorf("%w: %s: %v", ErrOverlap, op, err)
	case pgerrors.IsConcurrencyConflict(err):
		return fmt.Errorf("%w: %s: %v", ErrConcurrentUpdate, op, err)
	default:
		return fmt.Errorf("%w: %s: %v", ErrExecQuery, op, err)
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.CustomerID,
		&res.CustomerName,
		&res.TableID,
		&res.DateTime,
		&res.DurationMinutes,
		&res.PartySize,
		&res.Status,
		&res.Notes,
		&res.ConfirmedAt,
		&res.CheckedInAt,
		&res.CompletedAt,
		&res.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}
