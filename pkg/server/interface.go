/*
Package server implements msgpack IPC for completion insertion.

The server reads a stream of msgpack maps from stdin and answers each with a
single msgpack map on stdout. Requests are handled synchronously, in order,
with timing info included in responses.

# IPC

On start the server writes a ready message:

	{"status": "ready"}

Compose requests carry the whole input buffer, the accepted suggestion and
the selection in characters. "a" defaults to "compose":

	{"id": "r1", "t": "hello @al", "c": "alice", "s": 9, "e": 9}

The response holds the new buffer, the advisory cursor offset, the trigger
that was rewritten and the time taken in microseconds:

	{"id": "r1", "t": "hello @alice ", "k": 13, "g": "@", "f": true, "us": 3}

Token requests return the partially typed word the client should filter its
suggestion list with:

	{"id": "r2", "a": "token", "t": "hey @_sec", "s": 9, "e": 9}
	{"id": "r2", "g": "@", "d": "mention", "q": "sec", "si": true, "f": true}

Health checks:

	{"id": "h1", "a": "health"}
	{"id": "h1", "status": "ok"}

Any request that cannot be served gets an error with a status code:

	{"id": "r3", "e": "unknown action: frob", "c": 400}
*/
package server

const (
	ActionCompose = "compose"
	ActionToken   = "token"
	ActionHealth  = "health"
)

// Request is the single envelope for every action.
type Request struct {
	ID         string `msgpack:"id"`
	Action     string `msgpack:"a,omitempty"`
	Text       string `msgpack:"t"`
	Completion string `msgpack:"c,omitempty"`
	Start      int    `msgpack:"s"`
	End        int    `msgpack:"e"`
}

// ComposeResponse - compose result
type ComposeResponse struct {
	ID        string `msgpack:"id"`
	Text      string `msgpack:"t"`
	Cursor    int    `msgpack:"k"`
	Trigger   string `msgpack:"g,omitempty"`
	Found     bool   `msgpack:"f"`
	TimeTaken int64  `msgpack:"us"`
}

// TokenResponse - active token result
type TokenResponse struct {
	ID      string `msgpack:"id"`
	Trigger string `msgpack:"g,omitempty"`
	Domain  string `msgpack:"d,omitempty"`
	Query   string `msgpack:"q"`
	Silent  bool   `msgpack:"si"`
	Found   bool   `msgpack:"f"`
}

// StatusResponse - ready and health messages
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// ErrorResponse holds basic error information for failed requests
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
