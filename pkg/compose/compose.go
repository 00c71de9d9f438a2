/*
Package compose rewrites a chat input buffer when a suggestion is accepted.

The text typed since the most recent trigger character (':' for emoji, '#' for
streams, '@' for mentions) is replaced by the chosen completion, wrapped the
way the trigger's domain expects, and followed by a separating space:

	Compose("hello @al", "alice", Cursor(9))         // "hello @alice "
	Compose("I feel :smi", "smile", Cursor(11))      // "I feel :smile: "
	Compose("hey @_sec", "security-team", Cursor(9)) // "hey @_security-team "

Text after the cursor is kept verbatim. All offsets count characters, not bytes.
Every function in the package is pure and safe for concurrent use.
*/
package compose

import (
	"strings"
	"unicode"
)

// Result is the outcome of accepting a completion.
type Result struct {
	Text string
	// Cursor is the character offset just past the inserted completion and
	// its separator. Where the caller puts the cursor is up to the caller.
	Cursor  int
	Trigger Trigger
	Found   bool
}

// Compose returns the buffer that results from accepting completion at sel.
func Compose(fullText, completion string, sel Selection) string {
	return Apply(fullText, completion, sel).Text
}

// Split separates the buffer at a collapsed cursor. The remainder is empty
// when the cursor sits at the end or sel spans a range.
func Split(fullText string, sel Selection) (head, remainder string) {
	h, r := splitRunes([]rune(fullText), sel)
	return string(h), string(r)
}

func splitRunes(text []rune, sel Selection) (head, remainder []rune) {
	sel = sel.clamp(len(text))
	if sel.Collapsed() && sel.Start != len(text) {
		return text[:sel.Start], text[sel.Start:]
	}
	return text, nil
}

// Apply is Compose with the metadata a caller needs to place the cursor.
// Without a trigger in front of the cursor the head is kept whole and the
// completion is appended bare.
func Apply(fullText, completion string, sel Selection) Result {
	head, remainder := splitRunes([]rune(fullText), sel)

	t, idx, ok := locateRunes(head)
	keep := head
	var prefix, suffix string
	if ok {
		keep = head[:idx]
		prefix = t.String()
		if t == Mention && idx+1 < len(head) && head[idx+1] == silentMarker {
			prefix += string(silentMarker)
		}
		if t == Emoji {
			suffix = t.String()
		}
	}

	var b strings.Builder
	b.WriteString(string(keep))
	b.WriteString(prefix)
	b.WriteString(completion)
	b.WriteString(suffix)
	// The remainder's own leading whitespace doubles as the separator.
	if len(remainder) == 0 || !unicode.IsSpace(remainder[0]) {
		b.WriteByte(' ')
	}
	cursor := len(keep) + len([]rune(prefix+completion+suffix)) + 1
	b.WriteString(string(remainder))

	return Result{
		Text:    b.String(),
		Cursor:  cursor,
		Trigger: t,
		Found:   ok,
	}
}
