package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRunner struct {
	mock.Mock
}

func (m *mockRunner) Run(ctx context.Context) (RunReport, error) {
	args := m.Called(ctx)
	return args.Get(0).(RunReport), args.Error(1)
}

func Test_NewScheduler_RejectsBadSpecs(t *testing.T) {
	_, err := NewScheduler(context.Background(), &mockRunner{}, "")
	assert.Error(t, err)

	_, err = NewScheduler(context.Background(), &mockRunner{}, "every day at noon")
	assert.Error(t, err)
}

func Test_Scheduler_RunsPipeline(t *testing.T) {
	runner := &mockRunner{}
	runner.On("Run", mock.Anything).Return(RunReport{New: 3}, nil).Once()

	scheduler, err := NewScheduler(context.Background(), runner, "0 7 * * *")
	require.NoError(t, err)
	defer scheduler.Stop()

	scheduler.run()
	runner.AssertExpectations(t)
}

func Test_Scheduler_SkipsOverlappingRun(t *testing.T) {
	runner := &mockRunner{}

	scheduler, err := NewScheduler(context.Background(), runner, "0 7 * * *")
	require.NoError(t, err)
	defer scheduler.Stop()

	scheduler.running.Lock()
	scheduler.run()
	scheduler.running.Unlock()

	runner.AssertNotCalled(t, "Run", mock.Anything)
}
