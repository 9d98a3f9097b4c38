package mcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/custodia-labs/consolidator/internal/core/domain"
	"github.com/custodia-labs/consolidator/internal/logger"
)

// instructions tells connected assistants how the tools fit together.
const instructions = `Consolidates duplicate assets in a project.
Call suggest_groups or pick a master and duplicates, check plan_replace,
then replace. delete_unreferenced removes only assets nothing references
any more; run deletion_candidates first to see what would be refused.
Assets may be given by id or by path.`

const shutdownTimeout = 5 * time.Second

// Server exposes the consolidation service over the Model Context Protocol.
type Server struct {
	ports  *Ports
	server *mcp.Server
	log    zerolog.Logger
}

// Option configures a Server.
type Option func(*mcp.Implementation)

// WithVersion sets the version reported to clients.
func WithVersion(v string) Option {
	return func(impl *mcp.Implementation) {
		if v != "" {
			impl.Version = v
		}
	}
}

// NewServer creates a new MCP server with the given ports.
func NewServer(ports *Ports, opts ...Option) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	impl := &mcp.Implementation{Name: "consolidator", Version: "dev"}
	for _, opt := range opts {
		opt(impl)
	}

	s := &Server{
		ports:  ports,
		server: mcp.NewServer(impl, &mcp.ServerOptions{Instructions: instructions}),
		log:    logger.Logger("mcp"),
	}
	s.registerTools()
	s.registerResources()
	return s, nil
}

// Run serves a single client over stdio until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.log.Debug().Msg("serving over stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Handler returns the streamable HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, nil)
}

// RunHTTP serves over HTTP on addr until ctx is cancelled.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}

	s.log.Debug().Str("addr", ln.Addr().String()).Msg("serving over http")
	return s.serve(ctx, ln)
}

// serve runs the HTTP server on ln. The shutdown goroutine always exits
// before serve returns.
func (s *Server) serve(ctx context.Context, ln net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.log.Warn().Err(err).Msg("http shutdown")
		}
	}()

	err := httpServer.Serve(ln)
	cancel()
	<-stopped
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// lookup loads the current catalog for resolving ids and paths.
func (s *Server) lookup(ctx context.Context) (*domain.AssetLookup, error) {
	assets, err := s.ports.Consolidation.Assets(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing assets: %w", err)
	}
	return domain.NewAssetLookup(assets), nil
}
