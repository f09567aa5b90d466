package config

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/postie/waitlist/internal/log"
	"github.com/postie/waitlist/pkg/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
)

const defaultServiceVersion = "dev"

// SetupTracing installs a global OTLP/HTTP tracer provider when OTEL_TRACES_ENABLED is set.
// The returned shutdown func is nil when tracing is off.
func SetupTracing(logger *log.Logger, appConfig *AppConfig) (func(context.Context) error, error) {
	if !utils.IsTracingEnabled() {
		return nil, nil
	}

	endpoint := utils.GetEnvTrimmedOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4318")

	hostport, urlPath, insecure, err := parseOTLPEndpoint(endpoint)
	if err != nil {
		return nil, err
	}

	sampleRatio, err := parseSampleRatio(utils.GetEnvTrimmed("OTEL_TRACES_SAMPLER_RATIO"))
	if err != nil {
		return nil, err
	}

	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(hostport),
		otlptracehttp.WithURLPath(urlPath),
	}
	if insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptracehttp.New(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("setup tracing exporter: %w", err)
	}

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(tracingResourceAttributes(appConfig)...),
	)
	if err != nil {
		return nil, fmt.Errorf("setup tracing resource: %w", err)
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
		trace.WithSampler(trace.ParentBased(trace.TraceIDRatioBased(sampleRatio))),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	logger.Info("OpenTelemetry tracing enabled",
		"service", utils.OTelServiceName(),
		"endpoint", endpoint,
		"sample_ratio", sampleRatio,
		"waitlist_store", appConfig.WaitlistStore,
	)

	return tp.Shutdown, nil
}

// tracingResourceAttributes describes this deployment on every exported span.
func tracingResourceAttributes(appConfig *AppConfig) []attribute.KeyValue {
	env := GetAppEnv()
	if env == "" {
		env = "development"
	}

	attrs := []attribute.KeyValue{
		attribute.String("service.name", utils.OTelServiceName()),
		attribute.String("service.version", utils.GetEnvTrimmedOrDefault("OTEL_SERVICE_VERSION", defaultServiceVersion)),
		attribute.String("deployment.environment", env),
	}

	if appConfig != nil && appConfig.WaitlistStore != "" {
		attrs = append(attrs, attribute.String("waitlist.store", appConfig.WaitlistStore))
	}

	return attrs
}

// parseSampleRatio reads OTEL_TRACES_SAMPLER_RATIO; unset samples every trace.
func parseSampleRatio(raw string) (float64, error) {
	if raw == "" {
		return 1, nil
	}

	ratio, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid OTEL_TRACES_SAMPLER_RATIO %q: %w", raw, err)
	}
	if ratio < 0 || ratio > 1 {
		return 0, fmt.Errorf("invalid OTEL_TRACES_SAMPLER_RATIO %q: must be between 0 and 1", raw)
	}

	return ratio, nil
}

func parseOTLPEndpoint(raw string) (hostport string, urlPath string, insecure bool, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", false, fmt.Errorf("empty OTLP endpoint")
	}

	if strings.Contains(raw, "://") {
		u, parseErr := url.Parse(raw)
		if parseErr != nil {
			return "", "", false, fmt.Errorf("invalid OTLP endpoint %q: %w", raw, parseErr)
		}
		if u.Host == "" {
			return "", "", false, fmt.Errorf("invalid OTLP endpoint %q: missing host", raw)
		}

		scheme := strings.ToLower(u.Scheme)
		if scheme != "http" && scheme != "https" {
			return "", "", false, fmt.Errorf("unsupported OTLP endpoint scheme %q in %q; only http and https are supported", u.Scheme, raw)
		}

		path := u.EscapedPath()
		if path == "" || path == "/" {
			path = "/v1/traces"
		}

		insecure = scheme == "http"
		return u.Host, path, insecure, nil
	}

	// Bare host:port; otlptracehttp.WithEndpoint takes nothing else.
	if strings.ContainsAny(raw, "/?#") {
		return "", "", false, fmt.Errorf("invalid OTLP endpoint %q: missing scheme; when specifying a path or query, use an endpoint like \"http://host:port[/path]\"", raw)
	}
	return raw, "/v1/traces", true, nil
}
