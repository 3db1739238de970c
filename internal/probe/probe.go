// Package probe holds the stateless verification calls: broker liveness,
// API health, and queue-key enumeration. Every probe is one-shot with no
// retry; failures come back as values for the caller to report.
package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// QueueKeyPrefix is the namespace arq reserves for job queue state.
const QueueKeyPrefix = "arq:"

const healthPath = "/api/v1/health"

const brokerTimeout = 2 * time.Second
const healthTimeout = 3 * time.Second

// httpClient bounds every health check so a dead server returns instead of
// hanging.
var httpClient = &http.Client{Timeout: healthTimeout}

func newBrokerClient(redisURL string) (*redis.Client, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse broker url: %w", err)
	}
	options.DialTimeout = brokerTimeout
	options.ReadTimeout = brokerTimeout
	options.MaxRetries = -1
	return redis.NewClient(options), nil
}

// PingBroker issues a single liveness command against the broker. A broker
// that is down is an expected outcome, reported as the returned error.
func PingBroker(ctx context.Context, redisURL string) error {
	client, err := newBrokerClient(redisURL)
	if err != nil {
		return err
	}
	defer client.Close()
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("broker unreachable: %w", err)
	}
	return nil
}

// ListQueueKeys enumerates broker keys under the job queue namespace,
// sorted ascending. An empty namespace yields an empty slice, not an error.
func ListQueueKeys(ctx context.Context, redisURL string) ([]string, error) {
	client, err := newBrokerClient(redisURL)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	keys := make([]string, 0)
	iter := client.Scan(ctx, 0, QueueKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan queue keys: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}

// CheckHealth issues one GET against the API server's health endpoint under
// baseURL and returns the status code. Connection failures are reported as
// the returned error within the client timeout.
func CheckHealth(ctx context.Context, baseURL string) (int, error) {
	target := strings.TrimRight(baseURL, "/") + healthPath
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return 0, fmt.Errorf("build health request: %w", err)
	}
	response, err := httpClient.Do(request)
	if err != nil {
		return 0, fmt.Errorf("health check failed: %w", err)
	}
	defer response.Body.Close()
	_, _ = io.Copy(io.Discard, response.Body)
	return response.StatusCode, nil
}
