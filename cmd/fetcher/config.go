package main

import (
	"time"

	"relentless-fetch/common"
	"relentless-fetch/internal/fanout"
)

// config is everything the fetcher reads from the environment.
type config struct {
	timeout            time.Duration
	concurrency        int
	repeat             int
	outputDir          string
	insecureSkipVerify bool
	isolateWriteErrors bool
	proxyURL           string
	metricsAddr        string

	kafkaBroker   string
	outcomesTopic string
	failuresTopic string

	redisAddr   string
	statusTTL   time.Duration
	statusPrefix string

	neo4jURI      string
	neo4jUser     string
	neo4jPassword string
}

func loadConfig() config {
	return config{
		timeout:            common.ParseDuration(common.GetEnv("FETCH_TIMEOUT", "510ms"), fanout.DefaultTimeout),
		concurrency:        common.ParseInt(common.GetEnv("FETCH_CONCURRENCY", "0"), 0),
		repeat:             common.ParseInt(common.GetEnv("FETCH_REPEAT", "1"), 1),
		outputDir:          common.GetEnv("OUTPUT_DIR", "."),
		insecureSkipVerify: common.ParseBool(common.GetEnv("INSECURE_SKIP_VERIFY", "true"), true),
		isolateWriteErrors: common.ParseBool(common.GetEnv("ISOLATE_WRITE_ERRORS", "false"), false),
		proxyURL:           common.GetEnv("PROXY_URL", ""),
		metricsAddr:        common.GetEnv("METRICS_ADDR", ""),

		kafkaBroker:   common.GetEnv("KAFKA_BROKER", ""),
		outcomesTopic: common.GetEnv("KAFKA_OUTCOMES_TOPIC", "relentless.fetch.outcomes"),
		failuresTopic: common.GetEnv("KAFKA_FAILURES_TOPIC", "relentless.fetch.failures"),

		redisAddr:   common.GetEnv("REDIS_ADDR", ""),
		statusTTL:   common.ParseDuration(common.GetEnv("STATUS_TTL", "24h"), 24*time.Hour),
		statusPrefix: common.GetEnv("STATUS_PREFIX", "fetch:run:"),

		neo4jURI:      common.GetEnv("NEO4J_URI", ""),
		neo4jUser:     common.GetEnv("NEO4J_USER", "neo4j"),
		neo4jPassword: common.GetEnv("NEO4J_PASSWORD", "neo4j"),
	}
}

func (c config) fanoutConfig(runID string) fanout.Config {
	return fanout.Config{
		RunID:              runID,
		Timeout:            c.timeout,
		Concurrency:        c.concurrency,
		IsolateWriteErrors: c.isolateWriteErrors,
	}
}
