package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"relentless-fetch/internal/fanout"
	"relentless-fetch/internal/fetch"
	"relentless-fetch/internal/graph"
	"relentless-fetch/internal/kafka"
	"relentless-fetch/internal/metrics"
	"relentless-fetch/internal/models"
	"relentless-fetch/internal/sink"
	"relentless-fetch/internal/source"
	"relentless-fetch/internal/store"
)

const usage = `Fetch URLs and save content to files.

usage: fetcher [-h] <url-file>

Each successfully fetched URL on line i (0-based) is written to page_i.html.
Tuning comes from the environment: FETCH_TIMEOUT, FETCH_CONCURRENCY,
FETCH_REPEAT, OUTPUT_DIR, INSECURE_SKIP_VERIFY, ISOLATE_WRITE_ERRORS,
PROXY_URL, METRICS_ADDR, KAFKA_BROKER, REDIS_ADDR, NEO4J_URI.
`

// app wires the coordinator to its optional collaborators.
type app struct {
	cfg       config
	runID     string
	fetcher   fanout.Fetcher
	sink      sink.Writer
	status    store.StatusStore // nil = no status tracking
	recorders []fanout.Recorder
}

func main() {
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := execute(ctx, loadConfig(), flag.Arg(0)); err != nil {
		log.Printf("error: %v", err)
		stop()
		os.Exit(1)
	}
}

// execute builds the app from cfg, runs it against path, and closes every client.
func execute(ctx context.Context, cfg config, path string) error {
	if cfg.metricsAddr != "" {
		metrics.StartServer(ctx, cfg.metricsAddr)
	}

	client, err := fetch.NewHTTPClient(fetch.ClientConfig{
		InsecureSkipVerify: cfg.insecureSkipVerify,
		ProxyURL:           cfg.proxyURL,
	})
	if err != nil {
		return err
	}
	if cfg.insecureSkipVerify {
		log.Printf("tls verification disabled (INSECURE_SKIP_VERIFY=true); unsafe for untrusted urls")
	}

	a := &app{
		cfg:     cfg,
		runID:   uuid.NewString(),
		fetcher: fetch.NewHTTPFetcher(client),
		sink:    sink.NewFileSink(cfg.outputDir),
	}

	if cfg.kafkaBroker != "" {
		pub := kafka.NewPublisher(cfg.kafkaBroker, cfg.outcomesTopic, cfg.failuresTopic)
		defer func() {
			if err := pub.Close(); err != nil {
				log.Printf("failed to close publisher: %v", err)
			}
		}()
		a.recorders = append(a.recorders, pub)
	}

	if cfg.neo4jURI != "" {
		driver, err := graph.NewDriver(cfg.neo4jURI, cfg.neo4jUser, cfg.neo4jPassword)
		if err != nil {
			log.Printf("neo4j driver error (outcome graph disabled): %v", err)
		} else {
			g := graph.NewOutcomeGraph(driver)
			defer func() {
				if err := g.Close(context.Background()); err != nil {
					log.Printf("neo4j close error: %v", err)
				}
			}()
			a.recorders = append(a.recorders, g)
		}
	}

	if cfg.redisAddr != "" {
		statusStore := store.NewRedisStatusStore(cfg.redisAddr, cfg.statusPrefix, cfg.statusTTL)
		defer func() {
			if err := statusStore.Close(); err != nil {
				log.Printf("failed to close status store: %v", err)
			}
		}()
		a.status = statusStore
	}

	return a.run(ctx, path)
}

// run loads the URL list from path and fans it out. Only an unreadable input or a
// fatal page write is returned as an error; per-URL failures are logged.
func (a *app) run(ctx context.Context, path string) error {
	urls, err := source.ReadLines(path)
	if err != nil {
		return err
	}
	urls = source.Repeat(urls, a.cfg.repeat)

	status := models.RunStatus{
		RunID:     a.runID,
		Source:    path,
		Status:    models.RunRunning,
		Total:     len(urls),
		StartedAt: time.Now().UTC(),
	}
	a.setStatus(ctx, status)

	log.Printf("fetch run=%s urls=%d timeout=%s concurrency=%d", a.runID, len(urls), a.cfg.timeout, a.cfg.concurrency)
	coordinator := fanout.New(a.cfg.fanoutConfig(a.runID), a.fetcher, a.sink, a.recorders...)
	report, runErr := coordinator.Run(ctx, urls)

	status.Succeeded = report.Succeeded
	status.Failed = report.Failed
	status.TimedOut = report.TimedOut
	status.FinishedAt = time.Now().UTC()
	status.Status = models.RunCompleted
	if runErr != nil {
		status.Status = models.RunAborted
	}
	a.setStatus(context.WithoutCancel(ctx), status)

	log.Printf("fetch run=%s done succeeded=%d failed=%d timed_out=%d not_started=%d",
		a.runID, report.Succeeded, report.Failed, report.TimedOut, report.Pending)
	return runErr
}

func (a *app) setStatus(ctx context.Context, status models.RunStatus) {
	if a.status == nil {
		return
	}
	statusCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := a.status.SetStatus(statusCtx, status); err != nil {
		log.Printf("status store error run=%s status=%s: %v", status.RunID, status.Status, err)
	}
}
