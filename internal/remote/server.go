package remote

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"libauth/internal/domain"
	"libauth/internal/envelope"
)

// DefaultMaxBody bounds request bodies when Options.MaxBody is zero.
const DefaultMaxBody int64 = 1 << 20

const (
	endpointVerify   = "verify"
	endpointEnvelope = "envelope"

	resultValid     = "valid"
	resultInvalid   = "invalid"
	resultMalformed = "malformed"
	resultUntrusted = "untrusted"
	resultError     = "error"
)

// Options configures a Handler.
type Options struct {
	// MaxBody caps request body size in bytes.
	MaxBody int64
	// Registry receives the handler's metrics and backs /metrics. A fresh
	// registry is created when nil.
	Registry *prometheus.Registry
}

type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		requests: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "libauth",
				Name:      "verify_requests_total",
				Help:      "Verification requests by endpoint and outcome.",
			},
			[]string{"endpoint", "result"},
		),
		duration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "libauth",
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by route and status code.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "code"},
		),
	}
}

// Handler serves the verification API over a domain.VerificationService.
type Handler struct {
	svc     domain.VerificationService
	log     logrus.FieldLogger
	maxBody int64
	metrics *metrics
	mux     *http.ServeMux
}

// NewHandler builds the HTTP API.
//
//	POST /v1/verify            JSON domain.VerifyRequest
//	POST /v1/verify/envelope   msgpack envelope
//	GET  /healthz
//	GET  /metrics
func NewHandler(svc domain.VerificationService, log logrus.FieldLogger, opts Options) *Handler {
	if opts.MaxBody <= 0 {
		opts.MaxBody = DefaultMaxBody
	}
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	h := &Handler{
		svc:     svc,
		log:     log,
		maxBody: opts.MaxBody,
		metrics: newMetrics(reg),
		mux:     http.NewServeMux(),
	}
	h.route("POST /v1/verify", h.handleVerify)
	h.route("POST /v1/verify/envelope", h.handleEnvelope)
	h.route("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	h.mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) route(pattern string, fn http.HandlerFunc) {
	h.mux.Handle(pattern, h.accessLog(pattern, fn))
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	defer r.Body.Close()

	var req domain.VerifyRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		h.fail(w, endpointVerify, fmt.Errorf("%w: decoding body: %w", errBadRequest, err))
		return
	}

	var (
		valid bool
		fp    domain.Fingerprint
		err   error
	)
	switch {
	case req.KeyName != "" && len(req.PublicKey) > 0:
		err = fmt.Errorf("%w: set key_name or public_key, not both", errBadRequest)
	case req.KeyName != "":
		valid, fp, err = h.svc.Verify(req.KeyName, req.Message, req.Signature)
	case len(req.PublicKey) > 0:
		valid, fp, err = h.svc.VerifyRaw(req.PublicKey, req.Message, req.Signature)
	default:
		err = fmt.Errorf("%w: key_name or public_key required", errBadRequest)
	}
	if err != nil {
		h.fail(w, endpointVerify, err)
		return
	}
	h.succeed(w, endpointVerify, valid, fp)
}

func (h *Handler) handleEnvelope(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.fail(w, endpointEnvelope, err)
		return
	}
	env, err := envelope.Unmarshal(body)
	if err != nil {
		h.fail(w, endpointEnvelope, err)
		return
	}
	valid, fp, err := h.svc.VerifyEnvelope(env)
	if err != nil {
		h.fail(w, endpointEnvelope, err)
		return
	}
	h.succeed(w, endpointEnvelope, valid, fp)
}

func (h *Handler) succeed(w http.ResponseWriter, endpoint string, valid bool, fp domain.Fingerprint) {
	result := resultInvalid
	if valid {
		result = resultValid
	}
	h.metrics.requests.WithLabelValues(endpoint, result).Inc()
	writeJSON(w, http.StatusOK, domain.VerifyResponse{Valid: valid, Fingerprint: fp})
}

func (h *Handler) fail(w http.ResponseWriter, endpoint string, err error) {
	status, code := classify(err)
	result := resultMalformed
	switch {
	case status >= http.StatusInternalServerError:
		result = resultError
		h.log.WithError(err).WithField("endpoint", endpoint).Error("verification request failed")
	case status == http.StatusNotFound || status == http.StatusForbidden:
		result = resultUntrusted
	}
	h.metrics.requests.WithLabelValues(endpoint, result).Inc()

	msg := err.Error()
	if status >= http.StatusInternalServerError {
		msg = http.StatusText(status)
	}
	writeJSON(w, status, domain.ErrorResponse{Error: msg, Code: code})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusRecorder captures the status code and byte count for the access log.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

func (h *Handler) accessLog(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		elapsed := time.Since(start)

		h.metrics.duration.WithLabelValues(route, strconv.Itoa(rec.status)).Observe(elapsed.Seconds())
		h.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"remote":   r.RemoteAddr,
			"status":   rec.status,
			"bytes":    rec.bytes,
			"duration": elapsed.String(),
		}).Info("request")
	})
}
