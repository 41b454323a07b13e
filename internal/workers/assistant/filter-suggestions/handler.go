// internal/workers/assistant/filter-suggestions/handler.go
package filtersuggestions

import (
	"context"
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

const TaskType = "filter-suggestions"

type Handler struct {
	config     *Config
	catalog    []assistant.ChatSuggestion
	store      connectors.Source
	obs        *observability.Observability
	errHandler *errors.ErrorHandler
	logger     logger.Logger
}

// NewHandler wires the worker around a validated catalog. store and obs may be nil.
func NewHandler(config *Config, catalog []assistant.ChatSuggestion, store connectors.Source, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		catalog:    catalog,
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

// Execute filters the catalog for the resolved context and annotates every
// suggestion with its lock state. Unlocked suggestions come first.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	limit := h.config.DefaultLimit
	if input.Limit != nil {
		if *input.Limit < 0 {
			return nil, errors.NewInvalidInputError("limit must not be negative")
		}
		limit = *input.Limit
	}

	sctx, err := connectors.Resolve(ctx, h.store, input.Context, input.WorkspaceID)
	if err != nil {
		metrics.ConnectorStoreErrors.WithLabelValues(TaskType).Inc()
		h.logger.Warn("connector state unavailable, using empty context", map[string]interface{}{
			"workspaceId": input.WorkspaceID,
			"error":       err.Error(),
		})
	}

	views := assistant.Annotate(assistant.FilterSuggestions(h.catalog, sctx), sctx)
	total := len(views)
	if limit > 0 && len(views) > limit {
		views = views[:limit]
	}

	unlocked := 0
	for _, v := range views {
		if v.Locked {
			metrics.SuggestionsServed.WithLabelValues(metrics.StateLocked).Inc()
		} else {
			unlocked++
			metrics.SuggestionsServed.WithLabelValues(metrics.StateUnlocked).Inc()
		}
	}

	h.logger.Debug("suggestions filtered", map[string]interface{}{
		"total":            total,
		"returned":         len(views),
		"unlocked":         unlocked,
		"connectedSources": sctx.ConnectedSources,
	})

	return &Output{
		Suggestions:   views,
		Total:         total,
		UnlockedCount: unlocked,
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
		"returned": len(output.Suggestions),
		"total":    output.Total,
	})
	return true
}

func (h *Handler) fail(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	stdErr := h.errHandler.HandleJobError(ctx, client, job, err)
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
}
