package ipc

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"

	"github.com/1broseidon/foliodesk/internal/runtimepath"
)

// Handler answers one decoded request. The daemon implements it by queueing
// the request onto its event loop.
type Handler interface {
	HandleRequest(req *Request) *Response
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(req *Request) *Response

func (f HandlerFunc) HandleRequest(req *Request) *Response { return f(req) }

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	handler      Handler
	logger       *slog.Logger
	wg           sync.WaitGroup
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a server on the default runtime socket.
func NewServer(h Handler, logger *slog.Logger) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}
	return NewServerAt(socketPath, h, logger), nil
}

// NewServerAt creates a server listening on socketPath. A stale socket file
// is removed.
func NewServerAt(socketPath string, h Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	os.Remove(socketPath)
	return &Server{
		socketPath: socketPath,
		handler:    h,
		logger:     logger,
	}
}

// SocketPath returns the path the server listens on.
func (s *Server) SocketPath() string {
	return s.socketPath
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.logger.Info("IPC server listening", "socket", s.socketPath)

	s.wg.Add(1)
	go s.acceptLoop()
	return nil
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.isShuttingDown() {
				return
			}
			s.logger.Warn("IPC accept error", "error", err)
			continue
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConnection(conn)
		}()
	}
}

func (s *Server) isShuttingDown() bool {
	s.shutdownMu.Lock()
	defer s.shutdownMu.Unlock()
	return s.shuttingDown
}

// handleConnection serves one request per connection: a single JSON line in,
// a single JSON line out.
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.logger.Warn("IPC read error", "error", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.write(conn, NewErrorResponse(fmt.Sprintf("Invalid request: %v", err)))
		return
	}

	s.logger.Debug("IPC request", "command", req.Command)
	resp := s.handler.HandleRequest(req)
	if resp == nil {
		resp = NewErrorResponse(fmt.Sprintf("No response for command: %s", req.Command))
	}
	s.write(conn, resp)
}

func (s *Server) write(conn net.Conn, resp *Response) {
	respData, err := resp.Marshal()
	if err != nil {
		s.logger.Error("Failed to marshal response", "error", err)
		return
	}
	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		s.logger.Warn("Failed to send response", "error", err)
	}
}

// Stop closes the listener, waits for in-flight connections and removes the
// socket file.
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	s.wg.Wait()
	os.Remove(s.socketPath)
}
