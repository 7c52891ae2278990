// Package mcp wires the joke resolver into a Model Context Protocol server.
// The mcp-go library owns framing, sessions, and serialization; this package
// only registers the prompt, maps domain errors, and handles transports.
package mcp

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/pltanton/dadjoke-mcp/internal/config"
	"github.com/pltanton/dadjoke-mcp/internal/jokes"
	"github.com/pltanton/dadjoke-mcp/internal/logger"
)

const (
	ServerName    = "dad-joke-mcp-server"
	ServerVersion = "1.0.0"
)

// Server hosts the dad_joke prompt over an MCP transport.
type Server struct {
	cfg      *config.Config
	resolver *jokes.Resolver
	mcp      *server.MCPServer
}

// New builds the MCP server around the given catalog. Request/response
// payload logging is controlled by the logging config.
func New(cfg *config.Config, catalog *jokes.Catalog) *Server {
	s := &Server{
		cfg:      cfg,
		resolver: jokes.NewResolver(catalog, logger.Warn),
	}

	hooks := &server.Hooks{}
	if cfg.Logging.LogRequests {
		hooks.AddBeforeAny(func(ctx context.Context, id any, method mcp.MCPMethod, message any) {
			logger.Info("[MCP] Incoming request request_id=%s method=%s data=%+v",
				uuid.NewString(), method, message)
		})
	}
	if cfg.Logging.LogResponses {
		hooks.AddOnSuccess(func(ctx context.Context, id any, method mcp.MCPMethod, message any, result any) {
			logger.Info("[MCP] Outgoing response request_id=%s method=%s data=%+v",
				uuid.NewString(), method, result)
		})
	}
	hooks.AddOnError(func(ctx context.Context, id any, method mcp.MCPMethod, message any, err error) {
		logger.Error("[MCP] Request failed method=%s error=%v", method, err)
	})

	s.mcp = server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithPromptCapabilities(false),
		server.WithRecovery(),
		server.WithHooks(hooks),
	)

	desc := s.resolver.Describe()
	opts := []mcp.PromptOption{mcp.WithPromptDescription(desc.Description)}
	for _, arg := range desc.Arguments {
		argOpts := []mcp.ArgumentOption{mcp.ArgumentDescription(arg.Description)}
		if arg.Required {
			argOpts = append(argOpts, mcp.RequiredArgument())
		}
		opts = append(opts, mcp.WithArgument(arg.Name, argOpts...))
	}
	s.mcp.AddPrompt(mcp.NewPrompt(desc.Name, opts...), s.handleGetPrompt)

	return s
}

func (s *Server) handleGetPrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	requestID := uuid.NewString()

	resp, err := s.resolver.Resolve(req.Params.Name, req.Params.Arguments)
	if err != nil {
		logger.Error("[MCP] get_prompt rejected request_id=%s name=%s error=%v",
			requestID, req.Params.Name, err)
		return nil, err
	}

	messages := make([]mcp.PromptMessage, 0, len(resp.Messages))
	for _, m := range resp.Messages {
		messages = append(messages, mcp.NewPromptMessage(mcp.Role(m.Role), mcp.NewTextContent(m.Text)))
	}

	logger.Info("[MCP] Generated dad joke prompt request_id=%s topic=%q prompt_length=%d",
		requestID, req.Params.Arguments["topic"], len(resp.Messages[0].Text))
	return mcp.NewGetPromptResult(resp.Description, messages), nil
}

// Run serves until ctx is cancelled or the transport fails.
func (s *Server) Run(ctx context.Context) error {
	switch s.cfg.Transport {
	case config.TransportStdio:
		logger.Info("[MCP] Serving on stdio")
		return server.NewStdioServer(s.mcp).Listen(ctx, os.Stdin, os.Stdout)
	case config.TransportSSE:
		sse := server.NewSSEServer(s.mcp,
			server.WithBaseURL(fmt.Sprintf("http://%s", s.cfg.Addr())),
		)
		logger.Info("[MCP] Serving SSE on http://%s", s.cfg.Addr())
		errCh := make(chan error, 1)
		go func() {
			errCh <- sse.Start(s.cfg.Addr())
		}()
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return sse.Shutdown(shutdownCtx)
		case err := <-errCh:
			return err
		}
	default:
		return fmt.Errorf("unsupported transport: %q", s.cfg.Transport)
	}
}
