package cli

import (
	"sort"

	"github.com/bastiangx/autocompose/pkg/compose"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Candidates holds sample suggestions per trigger domain for the debug CLI.
// The tries are built once and only read afterwards.
type Candidates struct {
	tries map[compose.Trigger]*patricia.Trie
}

// NewCandidates builds one trie per trigger from the given names.
func NewCandidates(emoji, streams, users []string) *Candidates {
	c := &Candidates{tries: make(map[compose.Trigger]*patricia.Trie, 3)}
	c.add(compose.Emoji, emoji)
	c.add(compose.Stream, streams)
	c.add(compose.Mention, users)
	return c
}

func (c *Candidates) add(t compose.Trigger, names []string) {
	trie := patricia.NewTrie()
	for _, name := range names {
		if name == "" {
			continue
		}
		trie.Insert(patricia.Prefix(name), struct{}{})
	}
	c.tries[t] = trie
}

// Matches returns every candidate in the token's domain that starts with
// its query, sorted.
func (c *Candidates) Matches(tok compose.Token) []string {
	trie, ok := c.tries[tok.Trigger]
	if !ok {
		return nil
	}
	var out []string
	_ = trie.VisitSubtree(patricia.Prefix(tok.Query), func(p patricia.Prefix, _ patricia.Item) error {
		out = append(out, string(p))
		return nil
	})
	sort.Strings(out)
	return out
}

// Best returns the first match, if any.
func (c *Candidates) Best(tok compose.Token) (string, bool) {
	matches := c.Matches(tok)
	if len(matches) == 0 {
		return "", false
	}
	return matches[0], true
}
