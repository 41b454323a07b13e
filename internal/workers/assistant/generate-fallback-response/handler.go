// internal/workers/assistant/generate-fallback-response/handler.go
package generatefallbackresponse

import (
	"context"
	"fmt"
	"time"

	"insights-workers/internal/assistant"
	"insights-workers/internal/common/camunda"
	"insights-workers/internal/common/connectors"
	"insights-workers/internal/common/errors"
	"insights-workers/internal/common/logger"
	"insights-workers/internal/common/metrics"
	"insights-workers/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel/attribute"
)

const TaskType = "generate-fallback-response"

type Handler struct {
	config     *Config
	store      connectors.Source
	obs        *observability.Observability
	errHandler *errors.ErrorHandler
	logger     logger.Logger
}

// NewHandler wires the worker. store and obs may be nil.
func NewHandler(config *Config, store connectors.Source, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		store:      store,
		obs:        obs,
		errHandler: errors.NewErrorHandler(log).WithMaxRetries(config.MaxRetries),
		logger:     log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":             job.Key,
		"processInstanceKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	ctx, span := h.obs.StartSpan(ctx, TaskType, attribute.Int64("job.key", job.Key))
	defer span.End()

	start := time.Now()
	status := "failed"
	defer func() {
		h.obs.RecordJobProcessed(ctx, TaskType, status)
		h.obs.RecordJobDuration(ctx, TaskType, time.Since(start), status)
	}()

	input, err := h.parseInput(job)
	if err != nil {
		h.fail(ctx, client, job, err)
		return
	}

	output, err := h.Execute(ctx, input)
	if err != nil {
		h.fail(ctx, client, job, err)
		return
	}

	if h.completeJob(ctx, client, job, output) {
		status = "completed"
	}
}

func (h *Handler) parseInput(job entities.Job) (*Input, error) {
	var input Input
	if err := camunda.DecodeVariables(job.Variables, inputSchema, &input); err != nil {
		return nil, err
	}
	return &input, nil
}

// Execute answers the question against the resolved connector context.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if h.config.MaxQuestionLength > 0 && len(input.Question) > h.config.MaxQuestionLength {
		return nil, errors.NewInvalidInputError(
			fmt.Sprintf("question exceeds %d bytes", h.config.MaxQuestionLength))
	}

	sctx, err := connectors.Resolve(ctx, h.store, input.Context, input.WorkspaceID)
	if err != nil {
		metrics.ConnectorStoreErrors.WithLabelValues(TaskType).Inc()
		h.logger.Warn("connector state unavailable, using empty context", map[string]interface{}{
			"workspaceId": input.WorkspaceID,
			"error":       err.Error(),
		})
	}

	reply := assistant.Respond(input.Question, sctx)
	if reply.Source == assistant.ResponseSourceCanned {
		metrics.CannedResponses.Inc()
	} else {
		metrics.FallbackResponses.WithLabelValues(string(reply.Strategy)).Inc()
	}

	h.logger.Debug("reply composed", map[string]interface{}{
		"source":           string(reply.Source),
		"strategy":         string(reply.Strategy),
		"detectedSources":  reply.DetectedSources,
		"connectedSources": sctx.ConnectedSources,
	})

	return &Output{
		Message:         reply.Message,
		DetectedSources: reply.DetectedSources,
		Strategy:        reply.Strategy,
		Source:          reply.Source,
	}, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) bool {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.fail(ctx, client, job, errors.NewInternalError(err))
		return false
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return false
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	h.logger.Info("job completed", map[string]interface{}{
		"jobKey":   job.Key,
		"source":   string(output.Source),
		"strategy": string(output.Strategy),
	})
	return true
}

func (h *Handler) fail(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	stdErr := h.errHandler.HandleJobError(ctx, client, job, err)
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
}
