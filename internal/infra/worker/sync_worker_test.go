package worker_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/smartleadhq/smart-leads/internal/entity"
	"github.com/smartleadhq/smart-leads/internal/infra/worker"
	"github.com/smartleadhq/smart-leads/internal/usecase"
)

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) Find(ctx context.Context, status string) ([]*entity.Lead, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindUnsyncedVerified(ctx context.Context) ([]*entity.Lead, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) MarkSynced(ctx context.Context, id string, at time.Time) (bool, error) {
	args := m.Called(ctx, id, at)
	return args.Bool(0), args.Error(1)
}

type MockCRMSink struct {
	mock.Mock
}

func (m *MockCRMSink) Forward(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func TestNewSyncWorker_DefaultsInterval(t *testing.T) {
	w := worker.NewSyncWorker(nil, 0)
	assert.Equal(t, 5*time.Minute, w.Interval())

	w = worker.NewSyncWorker(nil, 30*time.Second)
	assert.Equal(t, 30*time.Second, w.Interval())
}

func TestSyncWorker_RunsCycleOnStartAndStopsOnCancel(t *testing.T) {
	repo := new(MockLeadRepository)
	sink := new(MockCRMSink)

	called := make(chan struct{}, 1)
	repo.On("FindUnsyncedVerified", mock.Anything).Return([]*entity.Lead{}, nil).Run(func(mock.Arguments) {
		select {
		case called <- struct{}{}:
		default:
		}
	})

	uc := usecase.NewSyncLeadsUseCase(repo, sink)
	w := worker.NewSyncWorker(uc, time.Hour) // tick never fires in this test

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	// The immediate drain happens before the first tick.
	select {
	case <-called:
	case <-time.After(time.Second):
		t.Fatal("worker did not run a cycle on start")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop on context cancel")
	}

	repo.AssertNumberOfCalls(t, "FindUnsyncedVerified", 1)
}
