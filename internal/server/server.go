// Package server exposes the advisor over a websocket JSON protocol.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/lox/pokeradvisor/advisor"
	"github.com/lox/pokeradvisor/equity"
	"github.com/lox/pokeradvisor/game"
	"github.com/lox/pokeradvisor/internal/randutil"
	"github.com/lox/pokeradvisor/poker"
)

// ProfileLookup resolves an opponent profile by name.
type ProfileLookup func(name string) (game.Profile, error)

// Server represents the WebSocket server
type Server struct {
	addr        string
	upgrader    websocket.Upgrader
	connections map[*Connection]bool
	register    chan *Connection
	unregister  chan *Connection
	logger      *log.Logger
	mu          sync.RWMutex
	ctx         context.Context
	cancel      context.CancelFunc

	clock       quartz.Clock
	idleTimeout time.Duration
	seed        int64
	connCount   atomic.Int64
	iterations  int
	calc        *equity.Calculator
	advisorOpts []advisor.Option
	profiles    ProfileLookup
	validator   *Validator
}

// Option configures a Server.
type Option func(*Server)

// WithClock replaces the clock that drives idle timeouts.
func WithClock(clock quartz.Clock) Option {
	return func(s *Server) {
		s.clock = clock
	}
}

// WithIdleTimeout closes connections that send nothing for d. Zero
// disables the timeout.
func WithIdleTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.idleTimeout = d
	}
}

// WithSeed sets the base seed. Connection n gets seed+n.
func WithSeed(seed int64) Option {
	return func(s *Server) {
		s.seed = seed
	}
}

// WithIterations sets the default simulation budget for equity requests
// and per-connection advisors.
func WithIterations(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.iterations = n
		}
	}
}

// WithCalculator shares one equity calculator between connections.
func WithCalculator(calc *equity.Calculator) Option {
	return func(s *Server) {
		s.calc = calc
	}
}

// WithAdvisorOptions are applied to every per-connection advisor.
func WithAdvisorOptions(opts ...advisor.Option) Option {
	return func(s *Server) {
		s.advisorOpts = append(s.advisorOpts, opts...)
	}
}

// WithProfiles sets how advise requests resolve profile names.
func WithProfiles(lookup ProfileLookup) Option {
	return func(s *Server) {
		s.profiles = lookup
	}
}

// WithValidator checks every request against the request schema.
func WithValidator(v *Validator) Option {
	return func(s *Server) {
		s.validator = v
	}
}

// NewServer creates a new WebSocket server
func NewServer(addr string, logger *log.Logger, opts ...Option) *Server {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		addr: addr,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		connections: make(map[*Connection]bool),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		logger:      logger.WithPrefix("server"),
		ctx:         ctx,
		cancel:      cancel,
		clock:       quartz.NewReal(),
		iterations:  advisor.DefaultIterations,
		profiles:    game.PresetProfile,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.calc == nil {
		s.calc = equity.NewCalculator(poker.NewEvaluator(), equity.WithLogger(logger))
	}
	go s.run()
	return s
}

// Handler returns the routes served by Start.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Start starts the WebSocket server
func (s *Server) Start() error {
	s.logger.Info("Starting WebSocket server", "addr", s.addr, "idleTimeout", s.idleTimeout)
	return http.ListenAndServe(s.addr, s.Handler())
}

// Stop stops the WebSocket server
func (s *Server) Stop() error {
	s.cancel()

	s.mu.Lock()
	for conn := range s.connections {
		_ = conn.Close()
	}
	s.mu.Unlock()

	return nil
}

// ConnectionCount reports the number of registered connections.
func (s *Server) ConnectionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.connections)
}

// run handles connection lifecycle
func (s *Server) run() {
	for {
		select {
		case conn := <-s.register:
			s.mu.Lock()
			s.connections[conn] = true
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("Client connected", "total", total)

		case conn := <-s.unregister:
			s.mu.Lock()
			if _, ok := s.connections[conn]; ok {
				delete(s.connections, conn)
				_ = conn.Close()
			}
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("Client disconnected", "total", total)

		case <-s.ctx.Done():
			return
		}
	}
}

// newAdvisor builds the advisor for the nth connection.
func (s *Server) newAdvisor(n int64) *advisor.Advisor {
	opts := []advisor.Option{
		advisor.WithCalculator(s.calc),
		advisor.WithIterations(s.iterations),
		advisor.WithRand(randutil.New(s.seed + n)),
		advisor.WithLogger(s.logger),
	}
	return advisor.New(append(opts, s.advisorOpts...)...)
}

// handleWebSocket handles WebSocket upgrade requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	n := s.connCount.Add(1)
	client := NewConnection(conn, s.logger, connectionConfig{
		advisor:     s.newAdvisor(n),
		calc:        s.calc,
		rng:         randutil.New(s.seed + n),
		iterations:  s.iterations,
		profiles:    s.profiles,
		validator:   s.validator,
		clock:       s.clock,
		idleTimeout: s.idleTimeout,
	})

	select {
	case s.register <- client:
	case <-s.ctx.Done():
		_ = client.Close()
		return
	}
	client.Start()

	go func() {
		<-client.ctx.Done()
		select {
		case s.unregister <- client:
		case <-s.ctx.Done():
		}
	}()
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}
