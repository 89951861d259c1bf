package fanout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"relentless-fetch/internal/fetch"
	"relentless-fetch/internal/metrics"
	"relentless-fetch/internal/models"
)

type fetchResult struct {
	body string
	err  error
}

// runTask drives one job to a terminal outcome. The returned error is non-nil only
// for a page write failure that must abort the run.
func (c *Coordinator) runTask(ctx context.Context, job models.FetchJob) (models.FetchOutcome, error) {
	outcome := models.FetchOutcome{
		RunID:  job.RunID,
		Index:  job.Index,
		URL:    job.URL,
		Status: models.StatusFetching,
	}
	metrics.TaskStarted()
	start := time.Now()
	defer func() {
		metrics.TaskFinished(outcome.Status)
	}()

	// A run that is already aborting does not start new fetches.
	if err := ctx.Err(); err != nil {
		outcome.Status = models.StatusFailed
		outcome.Err = err
		outcome.FinishedAt = time.Now().UTC()
		return outcome, nil
	}

	body, err := c.boundedFetch(ctx, job.URL)
	outcome.Duration = time.Since(start)
	metrics.ObserveFetchLatency(outcome.Duration)

	switch {
	case err == nil:
		// The page is persisted before the task reports completion.
		writeErr := c.sink.Write(ctx, body, job.Index)
		metrics.PageWritten(writeErr)
		if writeErr != nil {
			outcome.Status = models.StatusFailed
			outcome.Err = writeErr
			outcome.FinishedAt = time.Now().UTC()
			if !c.cfg.IsolateWriteErrors {
				return outcome, fmt.Errorf("page %d: %w", job.Index, writeErr)
			}
			log.Printf("page write failed index=%d url=%q err=%v", job.Index, job.URL, writeErr)
			return outcome, nil
		}
		outcome.Status = models.StatusSucceeded
		outcome.Body = body
	case fetch.IsTimeout(err):
		outcome.Status = models.StatusTimedOut
		outcome.Err = err
		log.Printf("fetch timeout index=%d url=%q timeout=%s, moving on", job.Index, job.URL, c.cfg.Timeout)
	default:
		outcome.Status = models.StatusFailed
		outcome.Err = err
		log.Printf("fetch failed index=%d url=%q err=%v", job.Index, job.URL, err)
	}
	outcome.FinishedAt = time.Now().UTC()
	return outcome, nil
}

// boundedFetch races the fetch against the task deadline. When the deadline wins the
// fetch is abandoned: its context is cancelled and any late result is dropped on the
// buffered channel.
func (c *Coordinator) boundedFetch(ctx context.Context, url string) (string, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	resultCh := make(chan fetchResult, 1)
	go func() {
		body, err := c.fetcher.Fetch(fetchCtx, url)
		resultCh <- fetchResult{body: body, err: err}
	}()

	select {
	case res := <-resultCh:
		if res.err != nil && ctx.Err() == nil && errors.Is(fetchCtx.Err(), context.DeadlineExceeded) {
			return "", &fetch.TimeoutError{URL: url, Timeout: c.cfg.Timeout}
		}
		return res.body, res.err
	case <-fetchCtx.Done():
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("fetch %q: %w", url, err)
		}
		return "", &fetch.TimeoutError{URL: url, Timeout: c.cfg.Timeout}
	}
}
