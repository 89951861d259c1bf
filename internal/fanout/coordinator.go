package fanout

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"relentless-fetch/internal/metrics"
	"relentless-fetch/internal/models"
	"relentless-fetch/internal/sink"
)

// Coordinator fans a URL list out to one bounded fetch task per URL.
type Coordinator struct {
	cfg       Config
	fetcher   Fetcher
	sink      sink.Writer
	recorders []Recorder
}

// Report summarizes a run. Outcomes are in input order; entries still Pending were
// never launched because the run aborted.
type Report struct {
	RunID     string
	Outcomes  []models.FetchOutcome
	Succeeded int
	Failed    int
	TimedOut  int
	Pending   int
}

// New builds a coordinator. Nil recorders are ignored.
func New(cfg Config, fetcher Fetcher, writer sink.Writer, recorders ...Recorder) *Coordinator {
	var active []Recorder
	for _, r := range recorders {
		if r != nil {
			active = append(active, r)
		}
	}
	return &Coordinator{
		cfg:       cfg.withDefaults(),
		fetcher:   fetcher,
		sink:      writer,
		recorders: active,
	}
}

// Run launches one task per URL, index i for urls[i], and waits for all of them.
// Per-task timeouts and transport failures are contained in the outcomes; the only
// error returned is a page write failure when write errors are not isolated.
func (c *Coordinator) Run(ctx context.Context, urls []string) (Report, error) {
	report := Report{
		RunID:    c.cfg.RunID,
		Outcomes: make([]models.FetchOutcome, len(urls)),
	}

	group, groupCtx := errgroup.WithContext(ctx)
	if c.cfg.Concurrency > 0 {
		group.SetLimit(c.cfg.Concurrency)
	}
	for i, u := range urls {
		job := models.FetchJob{RunID: c.cfg.RunID, Index: i, URL: u}
		report.Outcomes[i] = models.FetchOutcome{RunID: job.RunID, Index: i, URL: u, Status: models.StatusPending}
		if groupCtx.Err() != nil {
			continue
		}
		// Each task owns report.Outcomes[job.Index]; no two tasks share a slot.
		group.Go(func() error {
			outcome, err := c.runTask(groupCtx, job)
			report.Outcomes[job.Index] = outcome
			c.record(groupCtx, outcome)
			return err
		})
	}
	err := group.Wait()

	for _, o := range report.Outcomes {
		switch o.Status {
		case models.StatusSucceeded:
			report.Succeeded++
		case models.StatusFailed:
			report.Failed++
		case models.StatusTimedOut:
			report.TimedOut++
		default:
			report.Pending++
		}
	}
	return report, err
}

func (c *Coordinator) record(ctx context.Context, outcome models.FetchOutcome) {
	for _, r := range c.recorders {
		recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.cfg.RecordTimeout)
		if err := r.Record(recordCtx, outcome); err != nil {
			metrics.RecordFailed()
			log.Printf("record outcome error index=%d url=%q err=%v", outcome.Index, outcome.URL, err)
		}
		cancel()
	}
}
