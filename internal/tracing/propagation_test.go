package tracing

import (
	"context"
	"net/http"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTraceparent = "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01"

func TestExtractThenInject(t *testing.T) {
	InstallPropagator()

	h := http.Header{}
	h.Set("traceparent", testTraceparent)
	ctx := ExtractHTTP(context.Background(), h)

	ctx, span := Tracer().Start(ctx, "test")
	defer span.End()

	headers := InjectKafkaHeaders(ctx, []kafka.Header{{Key: "event_type", Value: []byte("payment.captured")}})

	got := map[string]string{}
	for _, hh := range headers {
		got[hh.Key] = string(hh.Value)
	}
	require.Contains(t, got, "traceparent")
	assert.Contains(t, got["traceparent"], "4bf92f3577b34da6a3ce929d0e0e4736")
	assert.Equal(t, "payment.captured", got["event_type"])
}

func TestInject_NoTraceContext(t *testing.T) {
	InstallPropagator()
	headers := InjectKafkaHeaders(context.Background(), nil)
	assert.Empty(t, headers)
}
