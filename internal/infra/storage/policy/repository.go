package policy

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	"github.com/m04kA/SMC-TableBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TableBookingService/pkg/psqlbuilder"
)

const (
	tableName = "booking_policy"

	// singletonID у ресторана одна политика бронирования
	singletonID = 1
)

// Repository хранилище политики бронирования
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get возвращает сохранённую политику или ErrPolicyNotFound
func (r *Repository) Get(ctx context.Context) (*domain.BookingPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"opening_time",
		"closing_time",
		"slot_step_minutes",
		"default_duration_minutes",
		"advance_booking_days",
		"min_booking_notice_minutes",
		"updated_at",
	).
		From(tableName).
		Where(squirrel.Eq{"id": singletonID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.BookingPolicy
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.OpeningTime,
		&p.ClosingTime,
		&p.SlotStepMinutes,
		&p.DefaultDurationMinutes,
		&p.AdvanceBookingDays,
		&p.MinBookingNoticeMinutes,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan policy: %v", ErrScanRow, err)
	}

	p.UpdatedAt = updatedAt.Time

	return &p, nil
}

// Upsert сохраняет политику целиком
func (r *Repository) Upsert(ctx context.Context, p *domain.BookingPolicy) (*domain.BookingPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"id",
			"opening_time",
			"closing_time",
			"slot_step_minutes",
			"default_duration_minutes",
			"advance_booking_days",
			"min_booking_notice_minutes",
		).
		Values(
			singletonID,
			p.OpeningTime,
			p.ClosingTime,
			p.SlotStepMinutes,
			p.DefaultDurationMinutes,
			p.AdvanceBookingDays,
			p.MinBookingNoticeMinutes,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			opening_time = EXCLUDED.opening_time,
			closing_time = EXCLUDED.closing_time,
			slot_step_minutes = EXCLUDED.slot_step_minutes,
			default_duration_minutes = EXCLUDED.default_duration_minutes,
			advance_booking_days = EXCLUDED.advance_booking_days,
			min_booking_notice_minutes = EXCLUDED.min_booking_notice_minutes,
			updated_at = NOW()
		RETURNING updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	p.UpdatedAt = updatedAt.Time

	return p, nil
}
