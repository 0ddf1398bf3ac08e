package util

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

type leveledSlog struct {
	inner *slog.Logger
}

// re-writes HTTP client ERROR to WARN level (because of retries)
func (l leveledSlog) Error(msg string, keysAndValues ...interface{}) {
	l.inner.Warn(msg, keysAndValues...)
}

func (l leveledSlog) Warn(msg string, keysAndValues ...interface{}) {
	l.inner.Warn(msg, keysAndValues...)
}

func (l leveledSlog) Info(msg string, keysAndValues ...interface{}) {
	l.inner.Info(msg, keysAndValues...)
}

// re-writes HTTP client DEBUG to INFO level (this is where retry is logged)
func (l leveledSlog) Debug(msg string, keysAndValues ...interface{}) {
	l.inner.Info(msg, keysAndValues...)
}

// Generates an HTTP client with decent general-purpose defaults around
// timeouts and retries. The returned client has the stdlib http.Client
// interface, but has Hashicorp retryablehttp logic internally.
//
// This client will retry on connection errors, 5xx status (except 501), and
// 429 Backoff requests (respecting 'Retry-After' header). It will log
// intermediate failures with WARN level.
//
// This is for the short request/response API calls (user lookup, rule
// management, message send). The standing stream connection must NOT use
// this client: its overall timeout would kill a long-lived read.
func RobustHTTPClient() *http.Client {

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 3
	retryClient.RetryWaitMin = 1 * time.Second
	retryClient.RetryWaitMax = 10 * time.Second
	retryClient.Logger = retryablehttp.LeveledLogger(leveledSlog{slog.Default().With("system", "http")})
	client := retryClient.StandardClient()
	client.Timeout = 20 * time.Second
	return client
}

// Plain client for long-lived streaming requests: no retries and no overall
// deadline (the server holds the connection open indefinitely).
func StreamingHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 0,
	}
}
