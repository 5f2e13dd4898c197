// Package sync loads and saves documents against a Mortar config service.
package sync

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	apperr "mortarEditor/internal/error"
	"mortarEditor/internal/fileio"
	"mortarEditor/internal/models"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	Port           = 1337
	ConfigPath     = "/config"
	DefaultTimeout = 10 * time.Second

	tracerName   = "mortar/sync"
	maxErrorBody = 512
)

// ConfigURL returns the config endpoint of the service at address.
func ConfigURL(address string) string {
	return "http://" + net.JoinHostPort(address, strconv.Itoa(Port)) + ConfigPath
}

type Client struct {
	address string
	http    *http.Client
	timeout time.Duration
	logger  *slog.Logger
	tracer  trace.Tracer
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout sets the request timeout. It applies to a copy of the
// configured http.Client, whatever the option order.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func NewClient(address string, opts ...Option) (*Client, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, apperr.New(apperr.ConfigError, "API address cannot be empty", nil)
	}

	c := &Client{
		address: address,
		http:    &http.Client{Timeout: DefaultTimeout},
		logger:  slog.Default(),
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	c.logger = c.logger.With("component", "sync", "address", address)
	return c, nil
}

// Address returns the host part of the service address.
func (c *Client) Address() string {
	return c.address
}

// Endpoint returns "address:port" as shown to the user.
func (c *Client) Endpoint() string {
	return net.JoinHostPort(c.address, strconv.Itoa(Port))
}

// Load fetches the remote document.
func (c *Client) Load(ctx context.Context) (models.Document, error) {
	ctx, span := c.startSpan(ctx, http.MethodGet)
	defer span.End()

	body, err := c.do(ctx, span, http.MethodGet, nil)
	if err != nil {
		return models.Document{}, err
	}

	doc, err := fileio.Unmarshal(body)
	if err != nil {
		err = apperr.New(apperr.SyncError, "error parsing response", apperr.Cause(err))
		c.fail(span, err)
		return models.Document{}, err
	}

	c.logger.Info("configuration loaded", "hosts", len(doc.Hosts))
	return doc, nil
}

// Save posts doc as the new remote document.
func (c *Client) Save(ctx context.Context, doc models.Document) error {
	ctx, span := c.startSpan(ctx, http.MethodPost)
	defer span.End()

	payload, err := fileio.Marshal(doc)
	if err != nil {
		err = apperr.New(apperr.SyncError, "error preparing data", apperr.Cause(err))
		c.fail(span, err)
		return err
	}

	if _, err := c.do(ctx, span, http.MethodPost, payload); err != nil {
		return err
	}

	c.logger.Info("configuration saved", "hosts", len(doc.Hosts))
	return nil
}

func (c *Client) startSpan(ctx context.Context, method string) (context.Context, trace.Span) {
	return c.tracer.Start(ctx, "config "+method, trace.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("mortar.address", c.address),
	))
}

func (c *Client) fail(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	c.logger.Error("config request failed", "error", err)
}

func (c *Client) do(ctx context.Context, span trace.Span, method string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, ConfigURL(c.address), reqBody)
	if err != nil {
		err = apperr.New(apperr.SyncError, "error creating request", err)
		c.fail(span, err)
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		err = apperr.New(apperr.SyncError, "error making request", err)
		c.fail(span, err)
		return nil, err
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		err = apperr.New(apperr.SyncError, "error reading response", err)
		c.fail(span, err)
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err = apperr.New(apperr.SyncError, "request failed", &StatusError{Code: resp.StatusCode, Body: excerpt(body)})
		c.fail(span, err)
		return nil, err
	}

	return body, nil
}

// StatusError is the cause of a SyncError for a non-success HTTP status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("HTTP error! status: %d", e.Code)
	}
	return fmt.Sprintf("HTTP error! status: %d: %s", e.Code, e.Body)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}

func excerpt(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorBody {
		s = s[:maxErrorBody] + "..."
	}
	return s
}
