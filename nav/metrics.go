package nav

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "github.com/milk9111/alienfield/nav"

var (
	metricsOnce sync.Once
	queries     metric.Int64Counter
	expanded    metric.Int64Histogram
)

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// instruments are created once from the global meter, which forwards to
// whatever provider is installed later.
func instruments() (metric.Int64Counter, metric.Int64Histogram) {
	metricsOnce.Do(func() {
		m := meter()
		var err error
		queries, err = m.Int64Counter(
			"nav.path.queries",
			metric.WithDescription("Path queries answered"),
		)
		if err != nil {
			queries = noop.Int64Counter{}
		}
		expanded, err = m.Int64Histogram(
			"nav.path.expanded",
			metric.WithDescription("Nodes expanded per path query"),
		)
		if err != nil {
			expanded = noop.Int64Histogram{}
		}
	})
	return queries, expanded
}

func recordQuery(ctx context.Context, stats PathStats) {
	q, e := instruments()
	result := "empty"
	if stats.Found {
		result = "found"
	}
	q.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
	e.Record(ctx, int64(stats.Expanded))
}
