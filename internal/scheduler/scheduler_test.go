package scheduler

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingJob struct {
	runs int32
	err  error
}

func (j *countingJob) Run() error {
	atomic.AddInt32(&j.runs, 1)
	return j.err
}

func (j *countingJob) Name() string { return "counting" }

func TestAddJobRejectsBadSchedule(t *testing.T) {
	sched := New(zerolog.Nop())
	err := sched.AddJob("not a schedule", &countingJob{})
	assert.Error(t, err)
}

func TestScheduledJobRuns(t *testing.T) {
	sched := New(zerolog.Nop())
	job := &countingJob{}

	require.NoError(t, sched.AddJob("@every 10ms", job))
	sched.Start()
	defer sched.Stop()

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&job.runs) > 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestRunNow(t *testing.T) {
	sched := New(zerolog.Nop())

	job := &countingJob{}
	require.NoError(t, sched.RunNow(job))
	assert.Equal(t, int32(1), atomic.LoadInt32(&job.runs))

	failing := &countingJob{err: errors.New("boom")}
	assert.Error(t, sched.RunNow(failing))
}
