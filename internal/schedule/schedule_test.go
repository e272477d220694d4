package schedule

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestScheduler_RunsImmediatelyAndRepeats(t *testing.T) {
	s, err := New()
	require.NoError(t, err)

	var runs atomic.Int32
	id, err := s.Every(100*time.Millisecond, LinkCheckJob, func(context.Context) error {
		runs.Add(1)
		return nil
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	s.Start()
	assert.Eventually(t, func() bool { return runs.Load() >= 2 }, 5*time.Second, 10*time.Millisecond)
	require.NoError(t, s.Stop())
}

func TestScheduler_JobErrorsDoNotStopScheduling(t *testing.T) {
	s, err := New()
	require.NoError(t, err)

	var runs atomic.Int32
	_, err = s.Every(50*time.Millisecond, "failing", func(context.Context) error {
		runs.Add(1)
		return errors.New("boom")
	})
	require.NoError(t, err)

	s.Start()
	assert.Eventually(t, func() bool { return runs.Load() >= 2 }, 5*time.Second, 10*time.Millisecond)
	require.NoError(t, s.Stop())
}

func TestScheduler_StopCancelsJobContext(t *testing.T) {
	s, err := New()
	require.NoError(t, err)

	started := make(chan struct{})
	canceled := make(chan struct{})
	_, err = s.Every(time.Hour, LinkCheckJob, func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		close(canceled)
		return ctx.Err()
	})
	require.NoError(t, err)

	s.Start()
	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("job did not start")
	}
	require.NoError(t, s.Stop())
	select {
	case <-canceled:
	case <-time.After(5 * time.Second):
		t.Fatal("job context was not canceled")
	}
}

func TestScheduler_RejectsNonPositiveInterval(t *testing.T) {
	s, err := New()
	require.NoError(t, err)
	s.Start()
	defer func() { _ = s.Stop() }()

	_, err = s.Every(0, LinkCheckJob, func(context.Context) error { return nil })
	require.Error(t, err)
}
