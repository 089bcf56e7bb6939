package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "")
	t.Setenv("OTEL_SERVICE_NAME", "")
	t.Setenv("OTEL_EXPORTER_OTLP_PROTOCOL", "")

	cfg := LoadFromEnv()

	assert.False(t, cfg.Enabled)
	assert.Equal(t, "flamegraph-analyzer", cfg.ServiceName)
	assert.Equal(t, "unknown", cfg.ServiceVersion)
	assert.Equal(t, "grpc", cfg.Protocol)
	assert.Empty(t, cfg.Headers)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "TRUE")
	t.Setenv("OTEL_SERVICE_NAME", "my-analyzer")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://collector:4317")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "Authorization=Bearer abc=def, X-Tenant=perf")

	cfg := LoadFromEnv()

	assert.True(t, cfg.Enabled)
	assert.Equal(t, "my-analyzer", cfg.ServiceName)
	assert.Equal(t, "http://collector:4317", cfg.Endpoint)
	assert.Equal(t, map[string]string{
		"Authorization": "Bearer abc=def",
		"X-Tenant":      "perf",
	}, cfg.Headers)
}

func TestParseKeyValuePairs(t *testing.T) {
	assert.Empty(t, parseKeyValuePairs(""))
	assert.Empty(t, parseKeyValuePairs("=value,novalue"))
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, parseKeyValuePairs(" a=1 , b=2 "))
}

func TestCreateSampler(t *testing.T) {
	tests := []struct {
		sampler string
		arg     string
		want    string
	}{
		{"", "", sdktrace.AlwaysSample().Description()},
		{"always_on", "", sdktrace.AlwaysSample().Description()},
		{"always_off", "", sdktrace.NeverSample().Description()},
		{"traceidratio", "0.25", sdktrace.TraceIDRatioBased(0.25).Description()},
		{"parentbased_always_on", "", sdktrace.ParentBased(sdktrace.AlwaysSample()).Description()},
		{"bogus", "", sdktrace.AlwaysSample().Description()},
	}

	for _, tt := range tests {
		got := createSampler(&Config{Sampler: tt.sampler, SamplerArg: tt.arg})
		assert.Equal(t, tt.want, got.Description(), "sampler %q", tt.sampler)
	}
}

func TestParseRatio(t *testing.T) {
	assert.Equal(t, 1.0, parseRatio(""))
	assert.Equal(t, 1.0, parseRatio("not a number"))
	assert.Equal(t, 0.5, parseRatio("0.5"))
	assert.Equal(t, 0.0, parseRatio("-3"))
	assert.Equal(t, 1.0, parseRatio("7"))
}

func TestBuildResource(t *testing.T) {
	res, err := buildResource(context.Background(), &Config{
		ServiceName:    "flamegraph-analyzer",
		ServiceVersion: "1.0.0",
		ResourceAttrs:  map[string]string{"deployment.environment": "test"},
	})
	require.NoError(t, err)

	attrs := res.Attributes()
	found := make(map[string]string)
	for _, kv := range attrs {
		found[string(kv.Key)] = kv.Value.Emit()
	}

	assert.Equal(t, "flamegraph-analyzer", found["service.name"])
	assert.Equal(t, "1.0.0", found["service.version"])
	assert.Equal(t, "test", found["deployment.environment"])
}

func TestInit_DisabledIsNoop(t *testing.T) {
	// The cached config is loaded on first use; when tracing is off Init
	// must not touch the global provider.
	if Enabled() {
		t.Skip("OTEL_ENABLED set in environment")
	}

	shutdown, err := Init(context.Background())
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
