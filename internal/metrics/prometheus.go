package metrics

import (
	"context"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/alexisbeaulieu97/sdui/pkg/observability"
)

// Registry holds the sdui metrics and implements the observability hooks.
type Registry struct {
	// Decode metrics
	Decodes       *prometheus.CounterVec
	DocumentBytes prometheus.Histogram

	// Render metrics
	Renders        prometheus.Counter
	RenderNodes    prometheus.Histogram
	RenderDuration prometheus.Histogram
	Placeholders   *prometheus.CounterVec

	// Action metrics
	Dispatches *prometheus.CounterVec

	// Image metrics
	ImageLoads    *prometheus.CounterVec
	ImageDuration *prometheus.HistogramVec

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPLatency  *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

var (
	_ observability.RenderHooks = (*Registry)(nil)
	_ observability.ActionHooks = (*Registry)(nil)
	_ observability.ImageHooks  = (*Registry)(nil)
)

// New registers the metrics with reg. A nil reg uses a fresh registry.
func New(reg *prometheus.Registry) *Registry {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)
	r := &Registry{gatherer: reg}

	r.Decodes = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "sdui_decodes_total",
		Help: "Scene documents decoded, by result",
	}, []string{"result"})

	r.DocumentBytes = factory.NewHistogram(prometheus.HistogramOpts{
		Name:    "sdui_document_bytes",
		Help:    "Size of decoded scene documents",
		Buckets: prometheus.ExponentialBuckets(256, 4, 8),
	})

	r.Renders = factory.NewCounter(prometheus.CounterOpts{
		Name: "sdui_renders_total",
		Help: "Scenes rendered",
	})

	r.RenderNodes = factory.NewHistogram(prometheus.HistogramOpts{
		Name:    "sdui_render_nodes",
		Help:    "Views rendered per scene",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	})

	r.RenderDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Name:    "sdui_render_duration_seconds",
		Help:    "Time to build a scene's component tree",
		Buckets: prometheus.DefBuckets,
	})

	r.Placeholders = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "sdui_placeholders_total",
		Help: "Nodes rendered as placeholders, by reason",
	}, []string{"reason"})

	r.Dispatches = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "sdui_action_dispatches_total",
		Help: "Actions handled, by transition and outcome",
	}, []string{"transition", "outcome"})

	r.ImageLoads = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "sdui_image_loads_total",
		Help: "Image loads, by source and result",
	}, []string{"source", "result"})

	r.ImageDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sdui_image_load_duration_seconds",
		Help:    "Image load latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"source"})

	r.HTTPRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "sdui_http_requests_total",
		Help: "Preview server requests",
	}, []string{"route", "method", "status"})

	r.HTTPLatency = factory.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sdui_http_request_duration_seconds",
		Help:    "Preview server request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	return r
}

// Gatherer returns the registry the metrics are registered with.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.gatherer
}

// Install registers r as the process-wide observability hooks.
func (r *Registry) Install() {
	observability.SetRenderHooks(r)
	observability.SetActionHooks(r)
	observability.SetImageHooks(r)
}

func (r *Registry) OnDecode(_ context.Context, size int, _ time.Duration, err error) {
	r.Decodes.WithLabelValues(result(err)).Inc()
	r.DocumentBytes.Observe(float64(size))
}

func (r *Registry) OnRender(_ context.Context, nodes int, duration time.Duration) {
	r.Renders.Inc()
	r.RenderNodes.Observe(float64(nodes))
	r.RenderDuration.Observe(duration.Seconds())
}

func (r *Registry) OnPlaceholder(_ context.Context, _, reason string) {
	r.Placeholders.WithLabelValues(reasonLabel(reason)).Inc()
}

func (r *Registry) OnDispatch(_ context.Context, _, transition, outcome string) {
	r.Dispatches.WithLabelValues(transition, outcome).Inc()
}

func (r *Registry) OnImageLoad(_ context.Context, source string, duration time.Duration, err error) {
	r.ImageLoads.WithLabelValues(source, result(err)).Inc()
	r.ImageDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// reasonLabel drops the quoted document values from a placeholder reason so
// the label stays bounded.
func reasonLabel(reason string) string {
	head, _, _ := strings.Cut(reason, `"`)
	return strings.TrimSpace(head)
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
