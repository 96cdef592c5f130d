package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cropstudio/cropd/internal/config"
	"github.com/cropstudio/cropd/internal/loader"
	"github.com/cropstudio/cropd/internal/log"
	"github.com/cropstudio/cropd/internal/session"
)

// Server handles JSON-RPC communication and owns the single editor
// session.
type Server struct {
	cfg     config.Config
	cache   *loader.Cache
	session *session.Session
	path    string
	logger  *slog.Logger

	in  io.Reader
	out io.Writer
}

// RPCRequest represents an incoming JSON-RPC request.
type RPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// RPCResponse represents an outgoing JSON-RPC response.
type RPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *RPCError   `json:"error,omitempty"`
}

// RPCError represents a JSON-RPC error.
type RPCError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// JSON-RPC error codes used by the server. -32601 and -32602 are the
// standard codes; the -32xxx application codes are ours.
const (
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeExecution      = -32000
	codeNoImage        = -32002
)

// New creates a server bound to stdio.
func New(cfg config.Config) *Server {
	return &Server{
		cfg:    cfg,
		cache:  loader.NewCache(),
		logger: log.WithComponent("server"),
		in:     os.Stdin,
		out:    os.Stdout,
	}
}

// Run reads requests line by line until the input closes.
func (s *Server) Run() error {
	scanner := bufio.NewScanner(s.in)
	// Room for large requests
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	encoder := json.NewEncoder(s.out)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req RPCRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.logger.Warn("failed to parse request", "err", err)
			continue
		}

		resp := s.handleRequest(&req)
		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				s.logger.Error("failed to encode response", "err", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

// handleRequest routes a request to the reserved methods or the editor
// dispatch.
func (s *Server) handleRequest(req *RPCRequest) *RPCResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "methods/list":
		return &RPCResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{"methods": MethodCatalog()},
		}
	case "ping":
		return &RPCResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		result, rpcErr := s.executeMethod(req.Method, req.Params)
		if rpcErr != nil {
			s.logger.Debug("method failed", "method", req.Method, "code", rpcErr.Code, "err", rpcErr.Message)
			return &RPCResponse{JSONRPC: "2.0", ID: req.ID, Error: rpcErr}
		}
		return &RPCResponse{JSONRPC: "2.0", ID: req.ID, Result: result}
	}
}

// handleInitialize responds to the initialize handshake.
func (s *Server) handleInitialize(req *RPCRequest) *RPCResponse {
	return &RPCResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "1",
			"serverInfo": map[string]interface{}{
				"name":    "cropd",
				"version": "0.1.0",
			},
			"capabilities": map[string]interface{}{
				"methods": map[string]interface{}{},
			},
		},
	}
}
