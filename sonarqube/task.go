package sonarqube

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	// DefaultWaitTimeout bounds the total time WaitForTask blocks.
	DefaultWaitTimeout = 5 * time.Minute
	// DefaultPollInterval is the fixed delay between task status checks.
	DefaultPollInterval = 5 * time.Second

	ceTaskEndpoint = "/api/ce/task"
)

// errTaskRunning marks a poll that observed a non-terminal status.
var errTaskRunning = errors.New("analysis task still running")

// GetTask returns the current state of a background analysis task.
func (c *Client) GetTask(ctx context.Context, taskID string) (*AnalysisTask, error) {
	if taskID == "" {
		return nil, configError("task id is required")
	}

	params := url.Values{}
	params.Set("id", taskID)

	var resp analysisTaskResponse
	if err := c.getJSON(ctx, ceTaskEndpoint, params, &resp); err != nil {
		return nil, err
	}
	return &resp.Task, nil
}

// WaitForTask blocks until the analysis task reaches a terminal state or
// the overall timeout elapses. The task is polled at a fixed interval;
// every status check additionally carries the client's per-request timeout,
// so a single slow check and an overall slow analysis surface as the same
// Timeout kind but at different scopes.
//
// SUCCESS returns the task. FAILED and CANCELED return an Analysis error
// with the task's reported message, immediately, without waiting out the
// remaining budget. An exhausted overall timeout returns a Timeout error
// that carries the last observed task status. A failed status check is
// returned as-is; the poller does not paper over transport errors.
func (c *Client) WaitForTask(ctx context.Context, taskID string, timeout, pollInterval time.Duration) (*AnalysisTask, error) {
	if taskID == "" {
		return nil, configError("task id is required")
	}
	if timeout <= 0 {
		timeout = DefaultWaitTimeout
	}
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}

	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var lastStatus string

	check := func() (*AnalysisTask, error) {
		task, err := c.GetTask(waitCtx, taskID)
		if err != nil {
			return nil, backoff.Permanent(err)
		}

		lastStatus = task.Status
		c.logger.Debug().Str("task_id", taskID).Str("status", task.Status).Msg("analysis task polled")

		switch task.Status {
		case TaskSuccess:
			return task, nil
		case TaskFailed:
			msg := task.ErrorMessage
			if msg == "" {
				msg = "analysis task failed"
			}
			return nil, backoff.Permanent(&Error{Kind: KindAnalysis, Endpoint: ceTaskEndpoint, Message: msg})
		case TaskCanceled:
			return nil, backoff.Permanent(&Error{Kind: KindAnalysis, Endpoint: ceTaskEndpoint, Message: "analysis was canceled"})
		default:
			// PENDING / IN_PROGRESS: keep polling.
			return nil, errTaskRunning
		}
	}

	task, err := backoff.RetryWithData(check, backoff.WithContext(backoff.NewConstantBackOff(pollInterval), waitCtx))
	if err != nil {
		var clientErr *Error
		if errors.As(err, &clientErr) {
			if clientErr.Kind == KindTimeout && clientErr.TaskStatus == "" {
				clientErr.TaskStatus = lastStatus
			}
			return nil, clientErr
		}
		// Deadline fired between polls, or the last poll still saw the
		// task running.
		return nil, &Error{
			Kind:       KindTimeout,
			Endpoint:   ceTaskEndpoint,
			Message:    "analysis did not finish within the wait timeout",
			TaskStatus: lastStatus,
			Err:        err,
		}
	}
	return task, nil
}
