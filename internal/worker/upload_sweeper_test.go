package worker

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockLocker struct {
	mock.Mock
}

func (m *mockLocker) TryLock(ctx context.Context, name string, ttl time.Duration) (bool, string, error) {
	args := m.Called(ctx, name, ttl)
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *mockLocker) Unlock(ctx context.Context, name, token string) error {
	args := m.Called(ctx, name, token)
	return args.Error(0)
}

type mockSweeper struct {
	mock.Mock
}

func (m *mockSweeper) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}

func newTestSweeper(locker *mockLocker, sweeper *mockSweeper, now time.Time) *UploadSweeper {
	log := logrus.New()
	log.SetOutput(io.Discard)
	w := NewUploadSweeper(log, "@every 1h", locker, sweeper)
	w.now = func() time.Time { return now }
	return w
}

func TestUploadSweeper_RunOnce(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Sweeps While Holding Lock", func(t *testing.T) {
		locker := new(mockLocker)
		sweeper := new(mockSweeper)
		locker.On("TryLock", mock.Anything, sweeperLockName, sweeperLockTTL).Return(true, "tok", nil)
		locker.On("Unlock", mock.Anything, sweeperLockName, "tok").Return(nil)
		sweeper.On("SweepExpired", mock.Anything, now).Return(3, nil)

		newTestSweeper(locker, sweeper, now).RunOnce(context.Background())

		locker.AssertExpectations(t)
		sweeper.AssertExpectations(t)
	})

	t.Run("Skips When Lock Held Elsewhere", func(t *testing.T) {
		locker := new(mockLocker)
		sweeper := new(mockSweeper)
		locker.On("TryLock", mock.Anything, sweeperLockName, sweeperLockTTL).Return(false, "", nil)

		newTestSweeper(locker, sweeper, now).RunOnce(context.Background())

		sweeper.AssertNotCalled(t, "SweepExpired", mock.Anything, mock.Anything)
		locker.AssertNotCalled(t, "Unlock", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Skips When Lock Errors", func(t *testing.T) {
		locker := new(mockLocker)
		sweeper := new(mockSweeper)
		locker.On("TryLock", mock.Anything, sweeperLockName, sweeperLockTTL).Return(false, "", errors.New("redis down"))

		newTestSweeper(locker, sweeper, now).RunOnce(context.Background())

		sweeper.AssertNotCalled(t, "SweepExpired", mock.Anything, mock.Anything)
	})

	t.Run("Releases Lock After Sweep Failure", func(t *testing.T) {
		locker := new(mockLocker)
		sweeper := new(mockSweeper)
		locker.On("TryLock", mock.Anything, sweeperLockName, sweeperLockTTL).Return(true, "tok", nil)
		locker.On("Unlock", mock.Anything, sweeperLockName, "tok").Return(nil)
		sweeper.On("SweepExpired", mock.Anything, now).Return(0, errors.New("db down"))

		newTestSweeper(locker, sweeper, now).RunOnce(context.Background())

		locker.AssertExpectations(t)
	})
}

func TestUploadSweeper_StartStop(t *testing.T) {
	locker := new(mockLocker)
	sweeper := new(mockSweeper)
	w := newTestSweeper(locker, sweeper, time.Now())
	w.spec = "not a schedule"

	assert.NotPanics(t, func() {
		w.Start(context.Background())
		w.Stop()
	})
}
