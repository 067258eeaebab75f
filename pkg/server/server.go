package server

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/texsvg/pkg/errors"
	"github.com/matzehuels/texsvg/pkg/httputil"
	"github.com/matzehuels/texsvg/pkg/pipeline"
	"github.com/matzehuels/texsvg/pkg/protocol"
)

// DefaultHost is the interface the server binds to unless configured.
const DefaultHost = "127.0.0.1"

// Config holds the listener settings.
type Config struct {
	Host string
	Port int

	// MaxBodyBytes caps request bodies. Zero means unlimited.
	MaxBodyBytes int64
}

// Addr returns the host:port listen address.
func (c Config) Addr() string {
	host := c.Host
	if host == "" {
		host = DefaultHost
	}
	return net.JoinHostPort(host, strconv.Itoa(c.Port))
}

// Server answers conversion requests.
type Server struct {
	runner *pipeline.Runner
	cfg    Config
	logger *log.Logger
	router chi.Router
}

// New creates a server that converts with runner.
func New(runner *pipeline.Runner, cfg Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, cfg: cfg, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler serving all routes.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID, s.logRequests, s.recoverPanics)
	r.Post("/*", s.handleConvert)
	r.MethodNotAllowed(s.handleMethodNotAllowed)
	return r
}

// ListenAndServe listens on the configured address and serves until ctx is
// cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if err := errors.ValidatePort(s.cfg.Port); err != nil {
		return err
	}
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return errors.Wrap(errors.ErrCodeTransport, err, "listen on %s", s.cfg.Addr())
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then stops
// accepting and waits for in-flight requests to finish.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{Handler: s.router}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down")
		return srv.Shutdown(context.WithoutCancel(ctx))
	})
	return g.Wait()
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	data, err := httputil.ReadBody(r.Body, s.cfg.MaxBodyBytes)
	if err != nil {
		s.fail(w, r, errors.Wrap(errors.ErrCodeTransport, err, "%s", err.Error()))
		return
	}

	var req protocol.Request
	if err := httputil.DecodeJSON(data, &req); err != nil {
		s.fail(w, r, errors.Wrap(errors.ErrCodeProtocol, err, "%s", err.Error()))
		return
	}

	res, err := s.runner.Execute(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.write(w, r, http.StatusOK, protocol.Success(res.SVG))
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", http.MethodPost)
	s.fail(w, r, errors.New(errors.ErrCodeMethodNotAllowed, protocol.MethodNotAllowedMessage))
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Debug("request failed",
		"request_id", RequestID(r.Context()),
		"code", errors.GetCode(err),
		"err", errors.UserMessage(err))
	s.write(w, r, errors.HTTPStatus(err), protocol.Failure(errors.UserMessage(err)))
}

func (s *Server) write(w http.ResponseWriter, r *http.Request, status int, resp protocol.Response) {
	if err := httputil.WriteJSON(w, status, resp); err != nil {
		s.logger.Warn("write response", "request_id", RequestID(r.Context()), "err", err)
	}
}
