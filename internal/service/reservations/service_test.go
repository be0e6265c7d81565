package reservations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-TableBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-TableBookingService/internal/integrations/notifications"
	"github.com/m04kA/SMC-TableBookingService/internal/service/notify"
	"github.com/m04kA/SMC-TableBookingService/internal/service/reservations/models"
	"github.com/m04kA/SMC-TableBookingService/pkg/logger"
	"github.com/m04kA/SMC-TableBookingService/pkg/ptr"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if r, ok := args.Get(0).(*domain.Reservation); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) List(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	args := m.Called(ctx, filter)
	if list, ok := args.Get(0).([]*domain.Reservation); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus, at time.Time) error {
	return m.Called(ctx, id, status, at).Error(0)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Committed(ctx context.Context, change notify.Change) {
	m.Called(ctx, change)
}

type passTx struct{}

func (passTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

var now = time.Date(2026, 10, 14, 19, 5, 0, 0, time.UTC)

func newTestService(repo *mockRepo, notifier *mockNotifier) *Service {
	s := NewService(repo, passTx{}, notifier, logger.NewNop())
	s.timeProvider = fixedClock(now)
	return s
}

func reservation(id int64, status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		ID:              id,
		CustomerID:      42,
		TableID:         ptr.Ptr(int64(5)),
		DateTime:        time.Date(2026, 10, 14, 19, 0, 0, 0, time.UTC),
		DurationMinutes: 120,
		PartySize:       4,
		Status:          status,
	}
}

func TestGetByID(t *testing.T) {
	repo := &mockRepo{}
	repo.On("GetByID", mock.Anything, int64(1)).Return(reservation(1, domain.StatusPending), nil)
	repo.On("GetByID", mock.Anything, int64(2)).Return(nil, reservationRepo.ErrReservationNotFound)
	s := newTestService(repo, &mockNotifier{})

	resp, err := s.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, time.Date(2026, 10, 14, 21, 0, 0, 0, time.UTC), resp.EndTime)

	_, err = s.GetByID(context.Background(), 2)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestList_DateBecomesDayWindow(t *testing.T) {
	repo := &mockRepo{}
	day := time.Date(2026, 10, 14, 15, 30, 0, 0, time.UTC)

	repo.On("List", mock.Anything, mock.MatchedBy(func(f domain.ReservationsFilter) bool {
		return f.From.Equal(time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)) &&
			f.To.Equal(time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)) &&
			*f.Status == domain.StatusConfirmed
	})).Return([]*domain.Reservation{reservation(1, domain.StatusConfirmed)}, nil)
	s := newTestService(repo, &mockNotifier{})

	resp, err := s.List(context.Background(), &models.ListReservationsRequest{
		Date:   &day,
		Status: ptr.Ptr("confirmed"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
}

func TestList_InvalidStatus(t *testing.T) {
	s := newTestService(&mockRepo{}, &mockNotifier{})

	_, err := s.List(context.Background(), &models.ListReservationsRequest{Status: ptr.Ptr("lost")})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestChangeStatus_Confirm(t *testing.T) {
	repo := &mockRepo{}
	notifier := &mockNotifier{}

	confirmed := reservation(1, domain.StatusConfirmed)
	confirmed.ConfirmedAt = ptr.Ptr(now)

	repo.On("GetByID", mock.Anything, int64(1)).Return(reservation(1, domain.StatusPending), nil).Once()
	repo.On("UpdateStatus", mock.Anything, int64(1), domain.StatusConfirmed, now).Return(nil).Once()
	repo.On("GetByID", mock.Anything, int64(1)).Return(confirmed, nil).Once()
	notifier.On("Committed", mock.Anything, mock.MatchedBy(func(c notify.Change) bool {
		return c.Kind == notifications.EventStatusChanged && *c.PreviousStatus == domain.StatusPending
	})).Once()

	s := newTestService(repo, notifier)
	resp, err := s.ChangeStatus(context.Background(), 1, &models.ChangeStatusRequest{Status: "confirmed"})
	require.NoError(t, err)

	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, now, *resp.ConfirmedAt)
	repo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestChangeStatus_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		current domain.ReservationStatus
		next    string
		wantErr error
	}{
		{name: "unknown status", current: domain.StatusPending, next: "lost", wantErr: ErrInvalidStatus},
		{name: "completed is final", current: domain.StatusCompleted, next: "seated", wantErr: ErrInvalidTransition},
		{name: "cannot complete before seating", current: domain.StatusConfirmed, next: "completed", wantErr: ErrInvalidTransition},
		{name: "cannot cancel seated", current: domain.StatusSeated, next: "cancelled", wantErr: ErrInvalidTransition},
		{name: "no-show is final", current: domain.StatusNoShow, next: "confirmed", wantErr: ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRepo{}
			notifier := &mockNotifier{}
			repo.On("GetByID", mock.Anything, int64(1)).Return(reservation(1, tt.current), nil)

			s := newTestService(repo, notifier)
			_, err := s.ChangeStatus(context.Background(), 1, &models.ChangeStatusRequest{Status: tt.next})

			assert.ErrorIs(t, err, tt.wantErr)
			repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			notifier.AssertNotCalled(t, "Committed", mock.Anything, mock.Anything)
		})
	}
}

func TestChangeStatus_RepositoryError(t *testing.T) {
	repo := &mockRepo{}
	repo.On("GetByID", mock.Anything, int64(1)).Return(reservation(1, domain.StatusSeated), nil)
	repo.On("UpdateStatus", mock.Anything, int64(1), domain.StatusCompleted, now).Return(errors.New("timeout"))

	s := newTestService(repo, &mockNotifier{})
	_, err := s.ChangeStatus(context.Background(), 1, &models.ChangeStatusRequest{Status: "completed"})

	assert.ErrorIs(t, err, ErrInternal)
}
