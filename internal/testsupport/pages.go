package testsupport

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// PuzzlePage renders a page carrying the hidden month/year inputs.
func PuzzlePage(month, year string) string {
	return fmt.Sprintf(`<!doctype html><html><body><form>
<input type="hidden" name="puzzle_month" value="%s">
<input type="hidden" name="puzzle_year" value="%s">
</form></body></html>`, month, year)
}

// Page is an httptest server whose body and status can change between
// requests.
type Page struct {
	*httptest.Server

	mu     sync.Mutex
	body   string
	status int
	hits   int
}

// NewPage starts a server serving body with status 200.
func NewPage(t testing.TB, body string) *Page {
	t.Helper()

	p := &Page{body: body, status: http.StatusOK}
	p.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.hits++
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(p.status)
		_, _ = w.Write([]byte(p.body))
	}))
	t.Cleanup(p.Close)
	return p
}

// Set replaces the body and status served on the next request.
func (p *Page) Set(status int, body string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status = status
	p.body = body
}

// Hits returns the number of requests served.
func (p *Page) Hits() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hits
}
