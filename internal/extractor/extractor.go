package extractor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"pagewatch/internal/config"
	"pagewatch/internal/logging"
	"pagewatch/internal/signals"
)

const maxBodyBytes = 8 << 20

// Extractor fetches the configured page and locates the watched signal.
type Extractor struct {
	url        string
	page       *url.URL
	userAgent  string
	locator    Locator
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(e *Extractor) {
		if client != nil {
			e.httpClient = client
		}
	}
}

// WithLocator overrides the locator derived from configuration.
func WithLocator(locator Locator) Option {
	return func(e *Extractor) {
		if locator != nil {
			e.locator = locator
		}
	}
}

// New builds an extractor from the target section of cfg.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Extractor, error) {
	if cfg == nil {
		return nil, errors.New("extractor requires config")
	}
	page, err := url.Parse(cfg.Target.URL)
	if err != nil {
		return nil, fmt.Errorf("parse target url: %w", err)
	}
	timeout := cfg.FetchTimeout()
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	e := &Extractor{
		url:        cfg.Target.URL,
		page:       page,
		userAgent:  cfg.Target.UserAgent,
		locator:    LocatorFor(cfg),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logging.NewComponentLogger(logger, "extractor"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// LocatorFor maps the configured locator name to its implementation.
func LocatorFor(cfg *config.Config) Locator {
	if cfg.Target.Locator == config.LocatorPDFLink {
		return PDFLink{}
	}
	return HiddenInput{MonthField: cfg.Target.MonthField, YearField: cfg.Target.YearField}
}

// URL returns the watched page.
func (e *Extractor) URL() string { return e.url }

// Field describes what the locator looks for.
func (e *Extractor) Field() string { return e.locator.Field() }

// Extract performs one fetch and returns the located signal.
func (e *Extractor) Extract(ctx context.Context) (signals.Signal, error) {
	logger := logging.WithContext(ctx, e.logger)
	started := time.Now()

	doc, err := e.fetch(ctx)
	if err != nil {
		return signals.Signal{}, err
	}

	sig, err := e.locator.Locate(doc, e.page)
	if err != nil {
		return signals.Signal{}, &Error{URL: e.url, Field: e.locator.Field(), Op: "locate", Err: err}
	}

	logger.Debug("signal extracted",
		logging.String(logging.FieldURL, e.url),
		logging.String(logging.FieldField, e.locator.Field()),
		logging.String("signal", sig.String()),
		logging.Duration("elapsed", time.Since(started)))
	return sig, nil
}

func (e *Extractor) fetch(ctx context.Context) (*html.Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.url, nil)
	if err != nil {
		return nil, &Error{URL: e.url, Op: "build request", Err: err}
	}
	req.Header.Set("User-Agent", e.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, &Error{URL: e.url, Op: "fetch", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		cause := errors.New("unexpected status")
		if snippet := strings.TrimSpace(string(body)); snippet != "" {
			cause = fmt.Errorf("unexpected status: %s", snippet)
		}
		return nil, &Error{URL: e.url, Op: "fetch", StatusCode: resp.StatusCode, Err: cause}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, &Error{URL: e.url, Op: "fetch", Err: err}
	}
	if len(body) > maxBodyBytes {
		return nil, &Error{URL: e.url, Op: "parse", Err: fmt.Errorf("body exceeds %d bytes", maxBodyBytes)}
	}
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, &Error{URL: e.url, Op: "parse", Err: err}
	}
	return doc, nil
}
