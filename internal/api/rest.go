package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/platformbuilds/loan-approval/internal/grpc/loanv1"
)

// maxBodyBytes bounds request bodies; an application is a handful of scalar fields.
const maxBodyBytes = 64 << 10

// RouterOptions configures the REST gateway.
type RouterOptions struct {
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
	Logger         *zap.Logger
}

type restHandler struct {
	svc    loanv1.LoanApprovalServer
	logger *zap.Logger
}

// NewRouter exposes the LoanApproval service over JSON/HTTP:
//
//	POST /api/predict/   application fields in the body, optional ?mode=
//	GET  /api/mode       active prediction mode
//	PUT  /api/mode       {"mode": "mode2"}
//	GET  /healthz
func NewRouter(svc loanv1.LoanApprovalServer, opts RouterOptions) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &restHandler{svc: svc, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
			MaxAge:         300,
		}))
	}
	if opts.RateLimitRPS > 0 {
		burst := opts.RateLimitBurst
		if burst <= 0 {
			burst = 1
		}
		r.Use(rateLimit(rate.NewLimiter(rate.Limit(opts.RateLimitRPS), burst)))
	}

	r.Get("/healthz", h.health)
	r.Route("/api", func(r chi.Router) {
		r.Post("/predict", h.predict)
		r.Post("/predict/", h.predict)
		r.Get("/mode", h.getMode)
		r.Put("/mode", h.setMode)
	})
	return r
}

func (h *restHandler) predict(w http.ResponseWriter, r *http.Request) {
	var application map[string]any
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(&application); err != nil || application == nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "request body must be a JSON object"})
		return
	}

	resp, err := h.svc.Predict(r.Context(), &loanv1.PredictRequest{
		Application: application,
		Mode:        r.URL.Query().Get("mode"),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"prediction":  resp.Prediction,
		"decision_id": resp.DecisionId,
		"mode":        resp.Mode,
		"probability": resp.Probability,
	})
}

func (h *restHandler) getMode(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.GetMode(r.Context(), &loanv1.GetModeRequest{})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *restHandler) setMode(w http.ResponseWriter, r *http.Request) {
	var req loanv1.SetModeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "request body must be a JSON object"})
		return
	}
	resp, err := h.svc.SetMode(r.Context(), &req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *restHandler) health(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.HealthCheck(r.Context(), &loanv1.HealthCheckRequest{})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// writeError renders a service failure. Field violations use the
// {"field": ["message"]} body; other failures use {"detail": "..."}.
func (h *restHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	st, _ := status.FromError(err)
	code := httpStatus(st.Code())
	if code >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err))
	}
	if violations := FieldViolations(err); len(violations) > 0 {
		writeJSON(w, code, violations)
		return
	}
	writeJSON(w, code, map[string]any{"detail": st.Message()})
}

func httpStatus(code codes.Code) int {
	switch code {
	case codes.OK:
		return http.StatusOK
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.FailedPrecondition, codes.Unavailable:
		return http.StatusServiceUnavailable
	case codes.Unimplemented:
		return http.StatusNotImplemented
	case codes.DeadlineExceeded:
		return http.StatusGatewayTimeout
	case codes.Canceled:
		return 499
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		http.Error(w, `{"detail":"encode response"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(buf.Bytes())
}

func rateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				w.Header().Set("Retry-After", "1")
				writeJSON(w, http.StatusTooManyRequests, map[string]any{"detail": "rate limit exceeded"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("elapsed", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())))
		})
	}
}
