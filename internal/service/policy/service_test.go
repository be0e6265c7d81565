package policy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	policyRepo "github.com/m04kA/SMC-TableBookingService/internal/infra/storage/policy"
	"github.com/m04kA/SMC-TableBookingService/internal/service/policy/models"
	"github.com/m04kA/SMC-TableBookingService/pkg/logger"
	"github.com/m04kA/SMC-TableBookingService/pkg/ptr"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Get(ctx context.Context) (*domain.BookingPolicy, error) {
	args := m.Called(ctx)
	if p, ok := args.Get(0).(*domain.BookingPolicy); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) Upsert(ctx context.Context, p *domain.BookingPolicy) (*domain.BookingPolicy, error) {
	args := m.Called(ctx, p)
	return p, args.Error(0)
}

func defaults() domain.BookingPolicy {
	return domain.BookingPolicy{
		OpeningTime:             domain.DefaultOpeningTime,
		ClosingTime:             domain.DefaultClosingTime,
		SlotStepMinutes:         domain.DefaultSlotStepMinutes,
		DefaultDurationMinutes:  domain.DefaultDurationMinutes,
		AdvanceBookingDays:      domain.DefaultAdvanceBookingDays,
		MinBookingNoticeMinutes: domain.DefaultMinBookingNoticeMinutes,
	}
}

func TestGet_FallsBackToDefaults(t *testing.T) {
	repo := &mockRepo{}
	repo.On("Get", mock.Anything).Return(nil, policyRepo.ErrPolicyNotFound)
	s := NewService(repo, defaults(), logger.NewNop())

	resp, err := s.GetPolicy(context.Background())
	require.NoError(t, err)

	assert.True(t, resp.IsDefault)
	assert.Equal(t, "12:00", resp.OpeningTime)
	assert.Equal(t, domain.DefaultAdvanceBookingDays, resp.AdvanceBookingDays)
	assert.Nil(t, resp.UpdatedAt)
}

func TestGet_RepositoryError(t *testing.T) {
	repo := &mockRepo{}
	repo.On("Get", mock.Anything).Return(nil, errors.New("connection reset"))
	s := NewService(repo, defaults(), logger.NewNop())

	_, err := s.Get(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestUpdate_PartialMerge(t *testing.T) {
	repo := &mockRepo{}
	repo.On("Get", mock.Anything).Return(nil, policyRepo.ErrPolicyNotFound)
	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(p *domain.BookingPolicy) bool {
		return p.ClosingTime == "23:30" && p.SlotStepMinutes == 15 && p.OpeningTime == "12:00"
	})).Return(nil)
	s := NewService(repo, defaults(), logger.NewNop())

	resp, err := s.Update(context.Background(), &models.UpdatePolicyRequest{
		ClosingTime:     ptr.Ptr("23:30"),
		SlotStepMinutes: ptr.Ptr(15),
	})
	require.NoError(t, err)

	assert.False(t, resp.IsDefault)
	assert.Equal(t, "23:30", resp.ClosingTime)
	repo.AssertExpectations(t)
}

func TestUpdate_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  models.UpdatePolicyRequest
	}{
		{name: "bad time", req: models.UpdatePolicyRequest{OpeningTime: ptr.Ptr("25:00")}},
		{name: "closing before opening", req: models.UpdatePolicyRequest{OpeningTime: ptr.Ptr("22:00"), ClosingTime: ptr.Ptr("21:00")}},
		{name: "step too small", req: models.UpdatePolicyRequest{SlotStepMinutes: ptr.Ptr(1)}},
		{name: "advance too far", req: models.UpdatePolicyRequest{AdvanceBookingDays: ptr.Ptr(400)}},
		{name: "negative notice", req: models.UpdatePolicyRequest{MinBookingNoticeMinutes: ptr.Ptr(-5)}},
		{name: "duration does not fit", req: models.UpdatePolicyRequest{OpeningTime: ptr.Ptr("22:00"), DefaultDurationMinutes: ptr.Ptr(120)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRepo{}
			repo.On("Get", mock.Anything).Return(nil, policyRepo.ErrPolicyNotFound)
			s := NewService(repo, defaults(), logger.NewNop())

			_, err := s.Update(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
		})
	}
}
