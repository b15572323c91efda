// Package datadog implements a DogStatsD backend for the metrics package.
//
// Metrics are emitted to a local Datadog agent over UDP. Label maps are
// converted to Datadog tags ("key:value"). Flush drains the client's buffer
// before the loader exits so short-lived runs do not lose samples.
package datadog

import (
	"fmt"
	"sort"

	"github.com/DataDog/datadog-go/v5/statsd"

	"salesdw/internal/metrics"
)

// Config holds Datadog backend settings.
type Config struct {
	// Addr is the DogStatsD endpoint, e.g. "127.0.0.1:8125".
	Addr string
	// Namespace is prefixed to every metric name; defaults to "dwload.".
	Namespace string
	// GlobalTags are attached to every metric.
	GlobalTags []string
}

// Backend emits loader metrics to a Datadog agent via DogStatsD.
type Backend struct {
	client *statsd.Client
}

// NewBackend constructs a DogStatsD backend.
func NewBackend(cfg Config) (*Backend, error) {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8125"
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "dwload."
	}
	client, err := statsd.New(cfg.Addr,
		statsd.WithNamespace(cfg.Namespace),
		statsd.WithTags(cfg.GlobalTags),
	)
	if err != nil {
		return nil, fmt.Errorf("datadog: connect %s: %w", cfg.Addr, err)
	}
	return &Backend{client: client}, nil
}

func (b *Backend) IncCounter(name string, delta float64, labels metrics.Labels) {
	if b.client == nil {
		return
	}
	// statsd counters are integral; deltas from the loader always are.
	_ = b.client.Count(name, int64(delta), labelsToTags(labels), 1)
}

func (b *Backend) ObserveHistogram(name string, value float64, labels metrics.Labels) {
	if b.client == nil {
		return
	}
	_ = b.client.Histogram(name, value, labelsToTags(labels), 1)
}

// Flush forces buffered metrics out to the agent.
func (b *Backend) Flush() error {
	if b.client == nil {
		return nil
	}
	return b.client.Flush()
}

// Close flushes and releases the underlying client.
func (b *Backend) Close() error {
	if b.client == nil {
		return nil
	}
	return b.client.Close()
}

// labelsToTags converts a label map to sorted "key:value" tags.
func labelsToTags(labels metrics.Labels) []string {
	if len(labels) == 0 {
		return nil
	}
	tags := make([]string, 0, len(labels))
	for k, v := range labels {
		tags = append(tags, k+":"+v)
	}
	sort.Strings(tags)
	return tags
}
