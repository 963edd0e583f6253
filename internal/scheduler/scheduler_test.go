package scheduler

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/breakout/pkg/config"
	"github.com/wonny/breakout/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(&config.Config{Env: "test", LogLevel: "error", LogFormat: "json"})
}

// stubJob fails a configurable number of times before succeeding.
type stubJob struct {
	name     string
	schedule string
	failures int
	calls    int
}

func (j *stubJob) Name() string { return j.name }

func (j *stubJob) Schedule() string {
	if j.schedule == "" {
		return "0 0 * * * *"
	}
	return j.schedule
}

func (j *stubJob) Run(ctx context.Context) error {
	j.calls++
	if j.calls <= j.failures {
		return errors.New("boom")
	}
	return nil
}

func TestAddJobRejectsDuplicate(t *testing.T) {
	s := New(testLogger())

	require.NoError(t, s.AddJob(&stubJob{name: "refresh"}))
	err := s.AddJob(&stubJob{name: "refresh"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestAddJobRejectsBadSchedule(t *testing.T) {
	s := New(testLogger())

	err := s.AddJob(&stubJob{name: "broken", schedule: "not a cron"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to schedule job broken")
}

func TestRunJobUnknown(t *testing.T) {
	s := New(testLogger())

	err := s.RunJob("ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	err = s.RunJobAndWait("ghost")
	require.Error(t, err)
}

func TestRunJobAndWaitRecordsHistory(t *testing.T) {
	s := New(testLogger())
	job := &stubJob{name: "refresh"}
	require.NoError(t, s.AddJob(job))

	require.NoError(t, s.RunJobAndWait("refresh"))
	assert.Equal(t, 1, job.calls)

	history, err := s.GetJobHistory("refresh")
	require.NoError(t, err)
	require.Len(t, history.Results, 1)
	assert.True(t, history.Results[0].Success)
	assert.Equal(t, "refresh", history.Results[0].JobName)
	assert.InDelta(t, 1.0, history.GetSuccessRate(), 1e-9)
}

func TestRunJobAndWaitPropagatesFailure(t *testing.T) {
	s := New(testLogger())
	s.SetRetryPolicy(0, 0)
	job := &stubJob{name: "refresh", failures: 10}
	require.NoError(t, s.AddJob(job))

	err := s.RunJobAndWait("refresh")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")

	history, err := s.GetJobHistory("refresh")
	require.NoError(t, err)
	require.Len(t, history.Results, 1)
	assert.False(t, history.Results[0].Success)
	assert.Equal(t, "boom", history.Results[0].Error)
}

func TestRetryEventuallySucceeds(t *testing.T) {
	s := New(testLogger())
	s.SetRetryPolicy(3, time.Millisecond)
	job := &stubJob{name: "flaky", failures: 2}
	require.NoError(t, s.AddJob(job))

	require.NoError(t, s.RunJobAndWait("flaky"))
	assert.Equal(t, 3, job.calls, "two failures then one success")

	stats := s.GetJobStats()
	require.Contains(t, stats, "flaky")
	assert.Equal(t, 1, stats["flaky"].TotalRuns)
	assert.Equal(t, 1, stats["flaky"].SuccessCount)
	assert.NotNil(t, stats["flaky"].LastSuccess)
}

func TestRemoveJob(t *testing.T) {
	s := New(testLogger())
	require.NoError(t, s.AddJob(&stubJob{name: "refresh"}))
	require.NoError(t, s.AddJob(&stubJob{name: "purge"}))

	require.NoError(t, s.RemoveJob("refresh"))
	assert.Equal(t, []string{"purge"}, s.GetAllJobs())
	assert.NotContains(t, s.GetJobStats(), "refresh")

	err := s.RemoveJob("refresh")
	require.Error(t, err)

	err = s.RunJob("refresh")
	require.Error(t, err)
}

func TestGetAllJobsSorted(t *testing.T) {
	s := New(testLogger())
	require.NoError(t, s.AddJob(&stubJob{name: "zeta"}))
	require.NoError(t, s.AddJob(&stubJob{name: "alpha"}))

	assert.Equal(t, []string{"alpha", "zeta"}, s.GetAllJobs())
}

func TestJobHistoryRing(t *testing.T) {
	history := &JobHistory{}
	for i := 0; i < historyLimit+5; i++ {
		history.AddResult(JobResult{JobName: fmt.Sprintf("run-%d", i), Success: i%2 == 0})
	}

	require.Len(t, history.Results, historyLimit)
	assert.Equal(t, fmt.Sprintf("run-%d", historyLimit+4), history.Results[historyLimit-1].JobName, "newest result is kept")

	latest := history.GetLatestResults(3)
	require.Len(t, latest, 3)
	assert.Equal(t, fmt.Sprintf("run-%d", historyLimit+4), latest[2].JobName)

	assert.Empty(t, history.GetLatestResults(0))
	assert.Len(t, history.GetLatestResults(historyLimit*2), historyLimit)
}

func TestJobHistorySuccessRate(t *testing.T) {
	history := &JobHistory{}
	assert.Zero(t, history.GetSuccessRate())

	history.AddResult(JobResult{Success: true})
	history.AddResult(JobResult{Success: true})
	history.AddResult(JobResult{Success: false})

	assert.InDelta(t, 2.0/3.0, history.GetSuccessRate(), 1e-9)
	assert.Len(t, history.GetFailedResults(), 1)
}
