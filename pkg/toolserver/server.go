// Package toolserver exposes the engine to agents as newline-delimited
// JSON-RPC 2.0 over a pair of streams, usually stdin and stdout.
package toolserver

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/google/uuid"
	"gitlab.com/tozd/go/errors"

	"github.com/sdejongh/photopuller/pkg/engine"
	"github.com/sdejongh/photopuller/pkg/logging"
)

// protocolVersion is reported by initialize
const protocolVersion = "2024-11-05"

// maxLineSize bounds a single request line
const maxLineSize = 4 * 1024 * 1024

// Server answers tool requests against one coordinator. Requests are
// handled one at a time in arrival order.
type Server struct {
	coordinator *engine.Coordinator
	logger      logging.Logger
	name        string
	version     string
}

// New creates a server. A nil logger discards output.
func New(coordinator *engine.Coordinator, logger logging.Logger, version string) *Server {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Server{
		coordinator: coordinator,
		logger:      logger,
		name:        "photopuller",
		version:     version,
	}
}

// Serve reads requests from r and writes responses to w until r is
// exhausted or ctx is cancelled. Lines that are not valid JSON are skipped.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	encoder := json.NewEncoder(w)

	s.logger.Info(ctx, "Tool server started", logging.Fields{"version": s.version})

	for scanner.Scan() {
		if ctx.Err() != nil {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var req Request
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			s.logger.Warn(ctx, "Skipping invalid request line", logging.Fields{"error": err.Error()})
			continue
		}

		resp := s.Handle(ctx, &req)
		if resp == nil {
			continue
		}
		if err := encoder.Encode(resp); err != nil {
			return errors.Errorf("failed to write response: %w", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return errors.Errorf("failed to read requests: %w", err)
	}

	s.logger.Info(ctx, "Tool server stopped", nil)
	return nil
}

// Handle answers one request. It returns nil for notifications.
func (s *Server) Handle(ctx context.Context, req *Request) *Response {
	logger := s.logger.WithFields(logging.Fields{
		"request_id": uuid.New().String(),
		"method":     req.Method,
	})
	logger.Debug(ctx, "Request received", nil)

	if req.IsNotification() && strings.HasPrefix(req.Method, "notifications/") {
		return nil
	}

	resp := &Response{JSONRPC: jsonrpcVersion, ID: req.ID}
	if resp.ID == nil {
		resp.ID = json.RawMessage("null")
	}

	switch req.Method {
	case "initialize":
		resp.Result = map[string]interface{}{
			"protocolVersion": protocolVersion,
			"serverInfo":      map[string]string{"name": s.name, "version": s.version},
			"capabilities":    map[string]interface{}{"tools": map[string]interface{}{}},
		}

	case "tools/list":
		resp.Result = map[string]interface{}{"tools": Tools()}

	case "tools/call":
		var params ToolCallParams
		if len(req.Params) > 0 {
			if err := json.Unmarshal(req.Params, &params); err != nil {
				resp.Error = internalError(err)
				break
			}
		}
		result, err := s.callTool(ctx, params.Name, params.Arguments)
		if err != nil {
			logger.Error(ctx, "Tool call failed", err, logging.Fields{"tool": params.Name})
			resp.Error = internalError(err)
			break
		}
		if result.IsError {
			logger.Warn(ctx, "Tool reported an error", logging.Fields{"tool": params.Name})
		}
		resp.Result = result

	default:
		resp.Error = &RPCError{Code: CodeMethodNotFound, Message: "Method not found: " + req.Method}
	}

	return resp
}

func internalError(err error) *RPCError {
	return &RPCError{Code: CodeInternalError, Message: "Internal error: " + err.Error()}
}
