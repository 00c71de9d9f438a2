// Package cli handles cmd line input for DBG and testing completion insertion
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/autocompose/internal/logger"
	"github.com/bastiangx/autocompose/pkg/compose"
	"github.com/charmbracelet/log"
)

// InputHandler reads buffers from stdin and prints what accepting a
// suggestion would turn them into.
//
// A line is a buffer with an optional cursor marker ("hi @al| bob"), two
// markers for a selected range, and optionally a tab followed by the
// completion to accept. Without an explicit completion the best sample
// candidate for the active token is used.
type InputHandler struct {
	candidates   *Candidates
	marker       string
	in           io.Reader
	out          io.Writer
	log          *log.Logger
	requestCount int
}

// NewInputHandler creates a handler on stdin/stdout
func NewInputHandler(candidates *Candidates, marker string) *InputHandler {
	return NewInputHandlerWithIO(candidates, marker, os.Stdin, os.Stdout)
}

// NewInputHandlerWithIO creates a handler on arbitrary streams
func NewInputHandlerWithIO(candidates *Candidates, marker string, in io.Reader, out io.Writer) *InputHandler {
	if marker == "" {
		marker = "|"
	}
	if candidates == nil {
		candidates = NewCandidates(nil, nil, nil)
	}
	return &InputHandler{
		candidates: candidates,
		marker:     marker,
		in:         in,
		out:        out,
		log:        logger.New("cli"),
	}
}

// Start begins the interface loop. It ends cleanly when input runs out.
func (h *InputHandler) Start() error {
	fmt.Fprintln(h.out, "autocompose CLI [BETA]")
	fmt.Fprintf(h.out, "type a buffer, mark the cursor with %q, optionally add <TAB>completion (Ctrl+C to exit):\n", h.marker)

	scanner := bufio.NewScanner(h.in)
	for {
		fmt.Fprint(h.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(h.out)
			return scanner.Err()
		}
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		h.handleInput(line)
	}
}

func (h *InputHandler) handleInput(line string) {
	h.requestCount++

	buffer, completion, explicit := strings.Cut(line, "\t")
	text, sel := h.parseBuffer(buffer)

	if !explicit {
		tok, ok := compose.ActiveToken(text, sel)
		if !ok {
			fmt.Fprintln(h.out, "no trigger before cursor, add <TAB>completion to insert anyway")
			return
		}
		best, ok := h.candidates.Best(tok)
		if !ok {
			fmt.Fprintf(h.out, "no %s candidates for %q\n", tok.Trigger.Domain(), tok.Query)
			return
		}
		h.log.Debug("picked candidate", "domain", tok.Trigger.Domain(), "query", tok.Query, "candidate", best)
		completion = best
	}

	start := time.Now()
	result := compose.Apply(text, completion, sel)
	elapsed := time.Since(start)

	fmt.Fprintln(h.out, h.render(result))
	h.log.Debug("composed", "request", h.requestCount, "trigger", result.Trigger, "found", result.Found, "took", elapsed)
}

// parseBuffer strips the cursor markers. One marker is a cursor, two a
// range, none puts the cursor at the end.
func (h *InputHandler) parseBuffer(buffer string) (string, compose.Selection) {
	first := strings.Index(buffer, h.marker)
	if first < 0 {
		return buffer, compose.Cursor(utf8.RuneCountInString(buffer))
	}
	text := buffer[:first] + strings.Replace(buffer[first+len(h.marker):], h.marker, "", -1)
	start := utf8.RuneCountInString(buffer[:first])

	rest := buffer[first+len(h.marker):]
	second := strings.Index(rest, h.marker)
	if second < 0 {
		return text, compose.Cursor(start)
	}
	return text, compose.Selection{Start: start, End: start + utf8.RuneCountInString(rest[:second])}
}

// render puts the marker back at the advisory cursor.
func (h *InputHandler) render(r compose.Result) string {
	runes := []rune(r.Text)
	cursor := min(r.Cursor, len(runes))
	return string(runes[:cursor]) + h.marker + string(runes[cursor:])
}
