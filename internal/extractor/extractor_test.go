package extractor_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pagewatch/internal/config"
	"pagewatch/internal/extractor"
	"pagewatch/internal/services"
	"pagewatch/internal/signals"
)

const puzzlePage = `<!doctype html>
<html><body>
<form>
  <input type="hidden" name="puzzle_month" value=" March ">
  <input type="hidden" name="puzzle_year" value="2024">
</form>
</body></html>`

func newServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "pagewatch-test/1.0" {
			t.Errorf("unexpected user agent %q", got)
		}
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func newConfig(url, locator string) *config.Config {
	cfg := config.Default()
	cfg.Target.URL = url
	cfg.Target.UserAgent = "pagewatch-test/1.0"
	cfg.Target.Locator = locator
	return &cfg
}

func extract(t *testing.T, cfg *config.Config) (signals.Signal, error) {
	t.Helper()
	ex, err := extractor.New(cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return ex.Extract(context.Background())
}

func TestHiddenInputExtractsMonthAndYear(t *testing.T) {
	server := newServer(t, http.StatusOK, puzzlePage)
	sig, err := extract(t, newConfig(server.URL, config.LocatorHiddenInput))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if sig != signals.Composite("March", "2024") {
		t.Fatalf("unexpected signal %+v", sig)
	}
}

func TestHiddenInputYearIsOptional(t *testing.T) {
	page := `<html><body><input type="HIDDEN" name="puzzle_month" value="April"></body></html>`
	server := newServer(t, http.StatusOK, page)
	sig, err := extract(t, newConfig(server.URL, config.LocatorHiddenInput))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if sig.Month != "April" || sig.Year != "" {
		t.Fatalf("unexpected signal %+v", sig)
	}
}

func TestHiddenInputMissingMonthIsExtractionError(t *testing.T) {
	tests := []struct {
		name string
		page string
	}{
		{name: "absent", page: `<html><body><input type="hidden" name="puzzle_year" value="2024"></body></html>`},
		{name: "not hidden", page: `<html><body><input type="text" name="puzzle_month" value="March"></body></html>`},
		{name: "no value attribute", page: `<html><body><input type="hidden" name="puzzle_month"></body></html>`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := newServer(t, http.StatusOK, tc.page)
			_, err := extract(t, newConfig(server.URL, config.LocatorHiddenInput))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, services.ErrExtraction) {
				t.Fatalf("expected extraction marker, got %v", err)
			}
			if !errors.Is(err, extractor.ErrFieldMissing) {
				t.Fatalf("expected missing field cause, got %v", err)
			}
			var exErr *extractor.Error
			if !errors.As(err, &exErr) {
				t.Fatalf("expected *extractor.Error, got %T", err)
			}
			if exErr.URL != server.URL || !strings.Contains(exErr.Field, "puzzle_month") {
				t.Fatalf("expected url and field context, got %+v", exErr)
			}
		})
	}
}

func TestNonSuccessStatusIsExtractionError(t *testing.T) {
	server := newServer(t, http.StatusServiceUnavailable, "maintenance")
	_, err := extract(t, newConfig(server.URL, config.LocatorHiddenInput))
	if !errors.Is(err, services.ErrExtraction) {
		t.Fatalf("expected extraction marker, got %v", err)
	}
	var exErr *extractor.Error
	if !errors.As(err, &exErr) || exErr.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected status code on error, got %v", err)
	}
	if !strings.Contains(err.Error(), "maintenance") {
		t.Fatalf("expected body snippet in %q", err.Error())
	}
}

func TestOversizedBodyIsExtractionError(t *testing.T) {
	server := newServer(t, http.StatusOK, puzzlePage+strings.Repeat("<!-- padding -->", (8<<20)/16))
	_, err := extract(t, newConfig(server.URL, config.LocatorHiddenInput))
	if !errors.Is(err, services.ErrExtraction) {
		t.Fatalf("expected extraction marker, got %v", err)
	}
	var exErr *extractor.Error
	if !errors.As(err, &exErr) || exErr.Op != "parse" {
		t.Fatalf("expected parse error, got %v", err)
	}
	if !strings.Contains(err.Error(), "exceeds") {
		t.Fatalf("expected size limit in %q", err.Error())
	}
}

func TestNetworkFailureIsExtractionError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := extract(t, newConfig(url, config.LocatorHiddenInput))
	if !errors.Is(err, services.ErrExtraction) {
		t.Fatalf("expected extraction marker, got %v", err)
	}
}

func TestPDFLinkFirstMatchWins(t *testing.T) {
	page := `<html><body>
<a href="/about">About</a>
<a href="/puzzles/2024-03.PDF">March</a>
<a href="https://cdn.example.com/other.pdf">Other</a>
</body></html>`
	server := newServer(t, http.StatusOK, page)
	sig, err := extract(t, newConfig(server.URL+"/puzzles/current/", config.LocatorPDFLink))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	want := server.URL + "/puzzles/2024-03.PDF"
	if sig.Kind != signals.KindScalar || sig.Value != want {
		t.Fatalf("unexpected signal %+v, want %q", sig, want)
	}
}

func TestPDFLinkAbsentIsEmptySignal(t *testing.T) {
	server := newServer(t, http.StatusOK, `<html><body><a href="/x.html">x</a></body></html>`)
	sig, err := extract(t, newConfig(server.URL, config.LocatorPDFLink))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !sig.Empty() || sig.Kind != signals.KindScalar {
		t.Fatalf("expected empty scalar, got %+v", sig)
	}
}

func TestResolveLink(t *testing.T) {
	cfg := newConfig("https://www.example.com/puzzles/current/", config.LocatorPDFLink)
	ex, err := extractor.New(cfg, nil, extractor.WithHTTPClient(http.DefaultClient))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if ex.URL() != cfg.Target.URL || ex.Field() != "a[href$=.pdf]" {
		t.Fatalf("unexpected accessors %q %q", ex.URL(), ex.Field())
	}

	page := mustParseURL(t, "https://www.example.com/puzzles/current/")
	tests := map[string]string{
		"/files/p.pdf":            "https://www.example.com/files/p.pdf",
		"files/p.pdf":             "files/p.pdf",
		"https://other.org/p.pdf": "https://other.org/p.pdf",
		"//cdn.example.com/p.pdf": "//cdn.example.com/p.pdf",
	}
	for in, want := range tests {
		if got := extractor.ResolveLink(in, page); got != want {
			t.Fatalf("ResolveLink(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWithLocatorOverride(t *testing.T) {
	server := newServer(t, http.StatusOK, `<html><input type="hidden" name="edition" value="7"></html>`)
	cfg := newConfig(server.URL, config.LocatorHiddenInput)
	ex, err := extractor.New(cfg, nil, extractor.WithLocator(extractor.HiddenInput{MonthField: "edition"}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	sig, err := ex.Extract(context.Background())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if sig.PrimaryKey() != "7" {
		t.Fatalf("unexpected signal %+v", sig)
	}
}
