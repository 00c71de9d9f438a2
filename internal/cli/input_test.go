package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bastiangx/autocompose/pkg/compose"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func sampleCandidates() *Candidates {
	return NewCandidates(
		[]string{"smile", "smiley", "tada"},
		[]string{"announcements", "general"},
		[]string{"bob", "alice", "alfred", "security-team"},
	)
}

func TestCandidatesMatches(t *testing.T) {
	c := sampleCandidates()

	assert.Equal(t, []string{"alfred", "alice"}, c.Matches(compose.Token{Trigger: compose.Mention, Query: "al"}))
	assert.Equal(t, []string{"smile", "smiley"}, c.Matches(compose.Token{Trigger: compose.Emoji, Query: "smi"}))
	assert.Equal(t, []string{"announcements", "general"}, c.Matches(compose.Token{Trigger: compose.Stream}))
	assert.Empty(t, c.Matches(compose.Token{Trigger: compose.Stream, Query: "zzz"}))
	assert.Empty(t, c.Matches(compose.Token{}))

	best, ok := c.Best(compose.Token{Trigger: compose.Mention, Query: "se"})
	require.True(t, ok)
	assert.Equal(t, "security-team", best)
}

func TestParseBuffer(t *testing.T) {
	h := NewInputHandlerWithIO(nil, "|", strings.NewReader(""), &bytes.Buffer{})

	testCases := []struct {
		buffer string
		text   string
		sel    compose.Selection
	}{
		{"hello @al", "hello @al", compose.Cursor(9)},
		{"hi @al| bob", "hi @al bob", compose.Cursor(6)},
		{"hé @ål|", "hé @ål", compose.Cursor(6)},
		{"hi |@al| bob", "hi @al bob", compose.Selection{Start: 3, End: 6}},
	}

	for _, tc := range testCases {
		text, sel := h.parseBuffer(tc.buffer)
		assert.Equal(t, tc.text, text, tc.buffer)
		assert.Equal(t, tc.sel, sel, tc.buffer)
	}
}

func TestInputHandlerSession(t *testing.T) {
	input := strings.Join([]string{
		"hello @al",
		"hi @al| bob\talice",
		"hey @_se",
		"I feel :smi",
		"plain text",
		"plain\tword",
		"#zzz",
		"",
	}, "\n")

	var out bytes.Buffer
	h := NewInputHandlerWithIO(sampleCandidates(), "|", strings.NewReader(input), &out)
	require.NoError(t, h.Start())

	got := out.String()
	assert.Contains(t, got, "hello @alfred |")
	assert.Contains(t, got, "hi @alice |bob")
	assert.Contains(t, got, "hey @_security-team |")
	assert.Contains(t, got, "I feel :smile: |")
	assert.Contains(t, got, "no trigger before cursor")
	assert.Contains(t, got, "plainword |")
	assert.Contains(t, got, `no stream candidates for "zzz"`)
	assert.Equal(t, 7, h.requestCount)
}
