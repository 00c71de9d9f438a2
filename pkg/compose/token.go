package compose

// Token is the partially typed word a suggestion list is filtered against.
type Token struct {
	Trigger Trigger
	Query   string
	// Silent is set for "@_" mentions; the marker is not part of Query.
	Silent bool
}

// ActiveToken returns the trigger in front of the cursor and the text typed
// after it. A selected range yields the token at the end of the buffer, the
// same head Compose would rewrite.
func ActiveToken(fullText string, sel Selection) (Token, bool) {
	head, _ := splitRunes([]rune(fullText), sel)
	t, idx, ok := locateRunes(head)
	if !ok {
		return Token{}, false
	}
	query := head[idx+1:]
	tok := Token{Trigger: t}
	if t == Mention && len(query) > 0 && query[0] == silentMarker {
		tok.Silent = true
		query = query[1:]
	}
	tok.Query = string(query)
	return tok, true
}
