// internal/adapters/hosfind/client.go
package hosfind

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"hosfind_admin/internal/adapters/observability"
	"hosfind_admin/internal/domain"
)

const maxBody = 4 << 20

// Envelope is the API's response wrapper.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

type Client struct {
	base   string
	hc     *http.Client
	tokens domain.TokenSource
	rl     *rate.Limiter
}

// New builds a client for the admin API rooted at base. tokens may be nil,
// in which case requests go out without an Authorization header.
func New(base string, tokens domain.TokenSource, rps int, timeout time.Duration) (*Client, error) {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		return nil, fmt.Errorf("API base URL is required")
	}
	if rps <= 0 {
		rps = 10
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		base:   base,
		hc:     &http.Client{Timeout: timeout},
		tokens: tokens,
		rl:     rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// ---- Collections ----

func (c *Client) ListProperties(ctx context.Context) ([]domain.Property, error) {
	env, err := c.list(ctx, domain.KindProperty)
	if err != nil {
		return nil, err
	}
	return NormalizeProperties(env), nil
}

func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	env, err := c.list(ctx, domain.KindCategory)
	if err != nil {
		return nil, err
	}
	return NormalizeCategories(env), nil
}

func (c *Client) ListRoomTypes(ctx context.Context) ([]domain.RoomType, error) {
	env, err := c.list(ctx, domain.KindRoomType)
	if err != nil {
		return nil, err
	}
	return NormalizeRoomTypes(env), nil
}

func (c *Client) ListRegionalSections(ctx context.Context) ([]domain.RegionalSection, error) {
	env, err := c.list(ctx, domain.KindRegionalSection)
	if err != nil {
		return nil, err
	}
	return NormalizeRegionalSections(env), nil
}

// ---- Mutations (never retried) ----

func (c *Client) Create(ctx context.Context, kind domain.Kind, body any) (json.RawMessage, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
	}
	path := "/admin/" + kind.Collection()
	return c.mutate(ctx, http.MethodPost, path, path, body)
}

func (c *Client) Update(ctx context.Context, kind domain.Kind, id string, body any) (json.RawMessage, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
	}
	route := "/admin/" + kind.Collection() + "/{id}"
	return c.mutate(ctx, http.MethodPut, route, c.itemPath(kind, id), body)
}

func (c *Client) Delete(ctx context.Context, kind domain.Kind, id string) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
	}
	route := "/admin/" + kind.Collection() + "/{id}"
	_, err := c.mutate(ctx, http.MethodDelete, route, c.itemPath(kind, id), nil)
	return err
}

// ---- Session & health ----

func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	data, err := c.mutate(ctx, http.MethodPost, "/admin/login", "/admin/login",
		map[string]string{"email": email, "password": password})
	if err != nil {
		return "", err
	}
	var out struct {
		AccessToken string `json:"accessToken"`
		Token       string `json:"token"`
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &out); err != nil {
			return "", fmt.Errorf("decode login response: %w", err)
		}
	}
	if out.AccessToken != "" {
		return out.AccessToken, nil
	}
	if out.Token != "" {
		return out.Token, nil
	}
	return "", errors.New("login response carried no token")
}

func (c *Client) Health(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/health", "/health", nil)
	return err
}

// ---- Internals ----

// errMalformed marks a 2xx response whose body is not a JSON envelope.
var errMalformed = errors.New("malformed response body")

func (c *Client) itemPath(kind domain.Kind, id string) string {
	return "/admin/" + kind.Collection() + "/" + strings.TrimSpace(id)
}

// list fetches a collection. A malformed body degrades to an empty envelope.
func (c *Client) list(ctx context.Context, kind domain.Kind) (Envelope, error) {
	path := "/admin/" + kind.Collection()
	env, err := c.do(ctx, http.MethodGet, path, path, nil)
	if errors.Is(err, errMalformed) {
		log.Warn().Err(err).Str("kind", string(kind)).Msg("list response malformed; treating as empty")
		return Envelope{}, nil
	}
	return env, err
}

// mutate sends a write and insists on success=true in the envelope.
func (c *Client) mutate(ctx context.Context, method, route, path string, body any) (json.RawMessage, error) {
	env, err := c.do(ctx, method, route, path, body)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = "Request failed"
		}
		return nil, &domain.APIError{Status: http.StatusOK, Message: msg}
	}
	return env.Data, nil
}

// do performs one API call with client-side rate limiting. GETs are retried
// on network errors, 429 and transient 5xx, honoring Retry-After; writes get
// exactly one attempt.
func (c *Client) do(ctx context.Context, method, route, path string, body any) (Envelope, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return Envelope{}, err
	}

	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return Envelope{}, fmt.Errorf("encode request: %w", err)
		}
		payload = b
	}

	attempts := 1
	if method == http.MethodGet {
		attempts = 4
	}
	url := c.base + path
	endpoint := method + " " + route

	var lastErr error
	for i := 0; i < attempts; i++ {
		// build a fresh request each attempt
		var rd io.Reader
		if payload != nil {
			rd = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, rd)
		if err != nil {
			return Envelope{}, err
		}
		if err := c.setHeaders(ctx, req, payload != nil); err != nil {
			return Envelope{}, err
		}

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			observability.ObserveExternal("hosfind", endpoint, 0, time.Since(start))
			if ctx.Err() != nil {
				return Envelope{}, ctx.Err()
			}
			lastErr = fmt.Errorf("%s %s: %w", method, path, err)
			if i < attempts-1 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return Envelope{}, ctx.Err()
			}
			return Envelope{}, lastErr
		}

		raw, rerr := io.ReadAll(io.LimitReader(resp.Body, maxBody))
		resp.Body.Close()
		observability.ObserveExternal("hosfind", endpoint, resp.StatusCode, time.Since(start))
		if rerr != nil {
			return Envelope{}, fmt.Errorf("%s %s: read body: %w", method, path, rerr)
		}

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return decodeEnvelope(resp.StatusCode, raw)

		case retryable(resp.StatusCode) && i < attempts-1:
			lastErr = apiError(resp.StatusCode, raw)
			wait := retryAfter(resp)
			if wait == 0 {
				wait = backoff(i)
			}
			if sleepCtx(ctx, wait) {
				continue
			}
			return Envelope{}, ctx.Err()

		default:
			return Envelope{}, apiError(resp.StatusCode, raw)
		}
	}
	return Envelope{}, lastErr
}

func (c *Client) setHeaders(ctx context.Context, req *http.Request, hasBody bool) error {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "hosfind-admin/1.0")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens == nil {
		return nil
	}
	tok, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("read session token: %w", err)
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	return nil
}

func retryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests, http.StatusInternalServerError,
		http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

func decodeEnvelope(status int, raw []byte) (Envelope, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		// 204 and friends: nothing to report but success
		return Envelope{Success: true}, nil
	}
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope{}, fmt.Errorf("%w (status %d): %v", errMalformed, status, err)
	}
	return env, nil
}

// errorBody covers the places the API puts the message and field details.
type errorBody struct {
	Message string          `json:"message"`
	Error   json.RawMessage `json:"error"`
	Details json.RawMessage `json:"details"`
	Errors  json.RawMessage `json:"errors"`
}

func apiError(status int, raw []byte) *domain.APIError {
	e := &domain.APIError{Status: status, Body: raw}
	var eb errorBody
	if err := json.Unmarshal(raw, &eb); err == nil {
		e.Message = eb.Message
		var nested struct {
			Message string          `json:"message"`
			Details json.RawMessage `json:"details"`
		}
		var plain string
		switch {
		case json.Unmarshal(eb.Error, &nested) == nil:
			e.Details = fieldErrors(nested.Details)
			if e.Message == "" {
				e.Message = nested.Message
			}
		case json.Unmarshal(eb.Error, &plain) == nil && e.Message == "":
			e.Message = plain
		}
		if len(e.Details) == 0 {
			e.Details = fieldErrors(eb.Details)
		}
		if len(e.Details) == 0 {
			e.Details = fieldErrors(eb.Errors)
		}
	}
	if e.Message == "" {
		e.Message = "HTTP error! status: " + strconv.Itoa(status)
	}
	return e
}

// fieldErrors accepts either [{field,message}] or {field: message}.
func fieldErrors(raw json.RawMessage) []domain.FieldError {
	if len(raw) == 0 {
		return nil
	}
	var list []domain.FieldError
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}
	var byField map[string]string
	if err := json.Unmarshal(raw, &byField); err == nil && len(byField) > 0 {
		keys := make([]string, 0, len(byField))
		for k := range byField {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]domain.FieldError, 0, len(keys))
		for _, k := range keys {
			out = append(out, domain.FieldError{Field: k, Message: byField[k]})
		}
		return out
	}
	return nil
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After header (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff doubles from 200ms per attempt with up to +50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}
