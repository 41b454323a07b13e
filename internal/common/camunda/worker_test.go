// internal/common/camunda/worker_test.go
package camunda

import (
	"testing"

	"insights-workers/internal/common/config"
	"insights-workers/internal/common/logger"
	"insights-workers/internal/common/metrics"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestInstrument_TracksActiveJobs(t *testing.T) {
	const taskType = "instrument-test"
	job := entities.Job{ActivatedJob: &pb.ActivatedJob{Key: 7, Type: taskType}}

	var activeDuringCall float64
	called := false
	handler := Instrument(taskType, func(_ worker.JobClient, got entities.Job) {
		called = true
		activeDuringCall = testutil.ToFloat64(metrics.WorkerJobsActive.WithLabelValues(taskType))
		assert.Equal(t, int64(7), got.Key)
	})

	handler(nil, job)

	assert.True(t, called)
	assert.Equal(t, float64(1), activeDuringCall)
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.WorkerJobsActive.WithLabelValues(taskType)))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.WorkerJobDuration, "worker_job_duration_seconds"))
}

func TestStartWorker_Disabled(t *testing.T) {
	// A disabled worker never touches the client.
	w := StartWorker(nil, "disabled-task", config.WorkerConfig{Enabled: false}, func(worker.JobClient, entities.Job) {}, logger.NewTestLogger(t))
	assert.Nil(t, w)
}
