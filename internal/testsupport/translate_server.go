package testsupport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

// TranslateServer mimics the keyless translate endpoint. It answers every
// request with the upper-cased query text.
type TranslateServer struct {
	URL      string
	requests atomic.Int32
}

// NewTranslateServer starts a server that is closed when the test ends.
func NewTranslateServer(t testing.TB) *TranslateServer {
	t.Helper()

	ts := &TranslateServer{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ts.requests.Add(1)
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		q := r.PostForm.Get("q")
		body, err := json.Marshal([]any{[]any{[]any{strings.ToUpper(q), q}}, nil, r.URL.Query().Get("sl")})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		_, _ = w.Write(body)
	}))
	t.Cleanup(server.Close)
	ts.URL = server.URL
	return ts
}

// Requests reports how many requests the server has handled.
func (s *TranslateServer) Requests() int {
	return int(s.requests.Load())
}
