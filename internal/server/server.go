package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rpgo/networth-planner/internal/calculation"
	"github.com/rpgo/networth-planner/internal/config"
	"github.com/rpgo/networth-planner/internal/logging"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Server serves projections over HTTP.
type Server struct {
	engine   *calculation.CalculationEngine
	settings *config.Settings
	parser   *config.InputParser
	metrics  *Metrics
	logger   calculation.Logger

	metricsHandler fasthttp.RequestHandler
	routes         map[string]fasthttp.RequestHandler
}

// New creates a server. reg receives the HTTP metrics and is exposed on /metrics.
func New(engine *calculation.CalculationEngine, settings *config.Settings, reg *prometheus.Registry) *Server {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	s := &Server{
		engine:         engine,
		settings:       settings,
		parser:         config.NewInputParser(),
		metrics:        MustNewMetrics(reg),
		logger:         calculation.NopLogger{},
		metricsHandler: fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
	}
	s.routes = map[string]fasthttp.RequestHandler{
		"POST /v1/balance":    s.handleBalance,
		"POST /v1/trajectory": s.handleTrajectory,
		"POST /v1/matrix":     s.handleMatrix,
		"POST /v1/resolve":    s.handleResolve,
		"POST /v1/goal":       s.handleGoal,
		"POST /v1/share":      s.handleShareEncode,
		"GET /v1/share":       s.handleShareDecode,
		"GET /healthz":        s.handleHealth,
		"GET /metrics":        s.metricsHandler,
	}
	return s
}

// SetLogger sets the logger. If nil is provided, a no-op logger is used.
func (s *Server) SetLogger(l calculation.Logger) {
	s.logger = calculation.OrNop(l)
}

// Handler returns the routed, instrumented request handler.
func (s *Server) Handler() fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()
		s.metrics.inFlight.Inc()
		defer s.metrics.inFlight.Dec()

		requestID := string(ctx.Request.Header.Peek("X-Request-ID"))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx.Response.Header.Set("X-Request-ID", requestID)

		route := string(ctx.Method()) + " " + string(ctx.Path())
		h, ok := s.routes[route]
		if !ok {
			route = "unmatched"
			writeError(ctx, fasthttp.StatusNotFound, "no route for "+string(ctx.Method())+" "+string(ctx.Path()))
		} else {
			s.serveRecovered(ctx, h, requestID)
		}

		status := ctx.Response.StatusCode()
		s.metrics.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
		s.metrics.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		s.requestLogger(requestID).Debugf("%s status=%d duration=%s", route, status, time.Since(start))
	}
}

// serveRecovered runs h and turns a panic into a 500 so one request cannot
// stop the process.
func (s *Server) serveRecovered(ctx *fasthttp.RequestCtx, h fasthttp.RequestHandler, requestID string) {
	defer func() {
		if r := recover(); r != nil {
			s.requestLogger(requestID).Errorf("panic serving %s %s: %v", ctx.Method(), ctx.Path(), r)
			ctx.Response.Reset()
			ctx.Response.Header.Set("X-Request-ID", requestID)
			writeError(ctx, fasthttp.StatusInternalServerError, "internal error")
		}
	}()
	h(ctx)
}

// requestLogger tags structured loggers with the request id.
func (s *Server) requestLogger(id string) calculation.Logger {
	if l, ok := s.logger.(*logging.Logger); ok {
		return l.WithContext(logging.ContextWithRequestID(context.Background(), id))
	}
	return s.logger
}

// Serve accepts connections on ln until ctx is canceled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &fasthttp.Server{
		Handler:      s.Handler(),
		Name:         "fplan",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		if err := srv.Shutdown(); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return <-errCh
	}
}

// ListenAndServe listens on addr and serves until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	s.logger.Infof("serving projections on %s", ln.Addr())
	return s.Serve(ctx, ln)
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "encode response: "+err.Error())
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	body, _ := json.Marshal(ErrorResponse{Status: status, Message: message})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

// statusFor maps decode and validation failures to 400 and everything else to 500.
func statusFor(err error) int {
	if errors.Is(err, config.ErrMissingField) || errors.Is(err, config.ErrInvalidProfile) ||
		errors.Is(err, config.ErrHorizonOutOfRange) || errors.Is(err, errBadRequest) {
		return fasthttp.StatusBadRequest
	}
	return fasthttp.StatusInternalServerError
}
