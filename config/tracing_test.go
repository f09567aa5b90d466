package config

import (
	"testing"

	"github.com/postie/waitlist/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestParseOTLPEndpoint(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantHostPort string
		wantPath     string
		wantInsecure bool
		wantErr      bool
	}{
		{name: "http default path", raw: "http://collector:4318", wantHostPort: "collector:4318", wantPath: "/v1/traces", wantInsecure: true},
		{name: "https custom path", raw: "https://otel.example.com/custom/traces", wantHostPort: "otel.example.com", wantPath: "/custom/traces"},
		{name: "bare host port", raw: "localhost:4318", wantHostPort: "localhost:4318", wantPath: "/v1/traces", wantInsecure: true},
		{name: "trailing slash", raw: "http://collector:4318/", wantHostPort: "collector:4318", wantPath: "/v1/traces", wantInsecure: true},
		{name: "empty", raw: "   ", wantErr: true},
		{name: "unsupported scheme", raw: "grpc://collector:4317", wantErr: true},
		{name: "missing host", raw: "http:///v1/traces", wantErr: true},
		{name: "path without scheme", raw: "collector:4318/v1/traces", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hostport, path, insecure, err := parseOTLPEndpoint(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHostPort, hostport)
			assert.Equal(t, tt.wantPath, path)
			assert.Equal(t, tt.wantInsecure, insecure)
		})
	}
}

func TestSetupTracing_DisabledReturnsNilShutdown(t *testing.T) {
	t.Setenv("OTEL_TRACES_ENABLED", "false")

	shutdown, err := SetupTracing(log.NewLoggerWithJSONOutput(), NewAppConfig())
	require.NoError(t, err)
	assert.Nil(t, shutdown)
}

func TestSetupTracing_RejectsBadSampleRatio(t *testing.T) {
	t.Setenv("OTEL_TRACES_ENABLED", "true")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4318")
	t.Setenv("OTEL_TRACES_SAMPLER_RATIO", "2")

	shutdown, err := SetupTracing(log.NewLoggerWithJSONOutput(), NewAppConfig())
	assert.Error(t, err)
	assert.Nil(t, shutdown)
}

func TestParseSampleRatio(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		wantErr bool
	}{
		{raw: "", want: 1},
		{raw: "0", want: 0},
		{raw: "0.25", want: 0.25},
		{raw: "1", want: 1},
		{raw: "-0.1", wantErr: true},
		{raw: "1.5", wantErr: true},
		{raw: "half", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseSampleRatio(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTracingResourceAttributes(t *testing.T) {
	t.Setenv("OTEL_SERVICE_NAME", "")
	t.Setenv("OTEL_SERVICE_VERSION", "1.4.0")
	t.Setenv(AppEnvKey, " Production ")

	attrs := tracingResourceAttributes(&AppConfig{WaitlistStore: "redis"})

	assert.ElementsMatch(t, []attribute.KeyValue{
		attribute.String("service.name", "postie-waitlist"),
		attribute.String("service.version", "1.4.0"),
		attribute.String("deployment.environment", "production"),
		attribute.String("waitlist.store", "redis"),
	}, attrs)
}

func TestTracingResourceAttributes_Defaults(t *testing.T) {
	t.Setenv("OTEL_SERVICE_VERSION", "")
	t.Setenv(AppEnvKey, "")

	attrs := tracingResourceAttributes(nil)

	assert.Contains(t, attrs, attribute.String("service.version", "dev"))
	assert.Contains(t, attrs, attribute.String("deployment.environment", "development"))
	assert.Len(t, attrs, 3)
}
