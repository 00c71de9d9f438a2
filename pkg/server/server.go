package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/autocompose/internal/logger"
	"github.com/bastiangx/autocompose/pkg/compose"
	"github.com/bastiangx/autocompose/pkg/config"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles the IPC for completion insertion
type Server struct {
	config       *config.Config
	decoder      *msgpack.Decoder
	encoder      *msgpack.Encoder
	writer       *bufio.Writer
	log          *log.Logger
	requestCount int
}

// NewServer creates a server on stdin/stdout
func NewServer(cfg *config.Config) *Server {
	return NewServerWithIO(cfg, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server on arbitrary streams
func NewServerWithIO(cfg *config.Config, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	bw := bufio.NewWriter(w)
	return &Server{
		config:  cfg,
		decoder: msgpack.NewDecoder(bufio.NewReader(r)),
		encoder: msgpack.NewEncoder(bw),
		writer:  bw,
		log:     logger.New("server"),
	}
}

// Start serves until stdin closes
func (s *Server) Start() error {
	return s.Serve(context.Background())
}

// Serve writes the ready message and answers requests until the input ends
// or ctx is cancelled. Cancellation is observed between requests only.
func (s *Server) Serve(ctx context.Context) error {
	s.log.Debug("Starting Server.")
	if err := s.send(StatusResponse{Status: "ready"}); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		// Framing errors end the stream; a well-framed value that is not a
		// valid Request only fails that request.
		raw, err := s.decoder.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.log.Debug("input closed", "requests", s.requestCount)
				return nil
			}
			s.log.Errorf("Reading request: %v", err)
			return fmt.Errorf("read request: %w", err)
		}

		s.requestCount++
		var req Request
		if err := msgpack.Unmarshal(raw, &req); err != nil {
			s.log.Errorf("Decoding request: %v", err)
			if err := s.send(errorResponse(req.ID, "invalid request", 400)); err != nil {
				return err
			}
			continue
		}
		if err := s.send(s.handle(req)); err != nil {
			return err
		}
	}
}

// handle maps one request to its response value
func (s *Server) handle(req Request) any {
	switch req.Action {
	case "", ActionCompose:
		return s.handleCompose(req)
	case ActionToken:
		return s.handleToken(req)
	case ActionHealth:
		return StatusResponse{ID: req.ID, Status: "ok"}
	default:
		return errorResponse(req.ID, fmt.Sprintf("unknown action: %s", req.Action), 400)
	}
}

func (s *Server) handleCompose(req Request) any {
	if resp, ok := s.checkRequest(req); !ok {
		return resp
	}
	if limit := s.config.Server.MaxCompletionLength; limit > 0 && utf8.RuneCountInString(req.Completion) > limit {
		s.log.Debug("completion too long", "id", req.ID)
		return errorResponse(req.ID, fmt.Sprintf("completion exceeds maximum length of %d characters", limit), 400)
	}

	start := time.Now()
	result := compose.Apply(req.Text, req.Completion, selection(req))
	elapsed := time.Since(start)

	s.log.Debug("composed", "id", req.ID, "trigger", result.Trigger, "found", result.Found)
	if !result.Found {
		s.log.Warn("no trigger before cursor, appended completion as-is", "id", req.ID)
	}

	return ComposeResponse{
		ID:        req.ID,
		Text:      result.Text,
		Cursor:    result.Cursor,
		Trigger:   result.Trigger.String(),
		Found:     result.Found,
		TimeTaken: elapsed.Microseconds(),
	}
}

func (s *Server) handleToken(req Request) any {
	if resp, ok := s.checkRequest(req); !ok {
		return resp
	}
	tok, found := compose.ActiveToken(req.Text, selection(req))
	return TokenResponse{
		ID:      req.ID,
		Trigger: tok.Trigger.String(),
		Domain:  tok.Trigger.Domain(),
		Query:   tok.Query,
		Silent:  tok.Silent,
		Found:   found,
	}
}

// checkRequest applies the configured text and selection limits.
func (s *Server) checkRequest(req Request) (ErrorResponse, bool) {
	if limit := s.config.Server.MaxTextLength; limit > 0 && utf8.RuneCountInString(req.Text) > limit {
		s.log.Debug("text too long", "id", req.ID)
		return errorResponse(req.ID, fmt.Sprintf("text exceeds maximum length of %d characters", limit), 400), false
	}
	if s.config.Server.ValidateSelection {
		if err := selection(req).Validate(req.Text); err != nil {
			s.log.Debug("bad selection", "id", req.ID, "err", err)
			return errorResponse(req.ID, err.Error(), 400), false
		}
	}
	return ErrorResponse{}, true
}

func selection(req Request) compose.Selection {
	return compose.Selection{Start: req.Start, End: req.End}
}

func errorResponse(id, message string, code int) ErrorResponse {
	return ErrorResponse{ID: id, Error: message, Code: code}
}

// send encodes one response and flushes it so the client sees it right away.
func (s *Server) send(response any) error {
	if err := s.encoder.Encode(response); err != nil {
		s.log.Errorf("Encoding response: %v", err)
		return fmt.Errorf("encode response: %w", err)
	}
	if err := s.writer.Flush(); err != nil {
		return fmt.Errorf("flush response: %w", err)
	}
	return nil
}
