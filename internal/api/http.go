package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/podlift/podlift/internal/common"
)

// refreshLeeway refreshes the access token slightly before it actually
// expires so a request does not burn a round trip on a 401.
const refreshLeeway = 30 * time.Second

// HTTPClient is the concrete Client over JSON/HTTP.
type HTTPClient struct {
	baseURL string
	hc      *http.Client

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

type tokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Login(ctx context.Context, email string, password []byte) error {
	var tp tokenPair
	body := map[string]any{"email": email, "password": string(password)}
	if err := c.doOnce(ctx, http.MethodPost, "/auth/login", body, &tp, false); err != nil {
		return err
	}
	c.SetTokens(tp.AccessToken, tp.RefreshToken)
	return nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.doOnce(ctx, http.MethodGet, "/health", nil, nil, false)
}

func (c *HTTPClient) Get(ctx context.Context, resource, id string, out any) error {
	return c.do(ctx, http.MethodGet, "/"+resource+"/"+id, nil, out)
}

func (c *HTTPClient) List(ctx context.Context, resource string, out any) error {
	return c.do(ctx, http.MethodGet, "/"+resource, nil, out)
}

func (c *HTTPClient) Update(ctx context.Context, resource, id string, fields map[string]any) error {
	return c.do(ctx, http.MethodPatch, "/"+resource+"/"+id, fields, nil)
}

func (c *HTTPClient) Tokens() (string, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken, c.refreshToken
}

func (c *HTTPClient) SetTokens(access, refresh string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = access
	c.refreshToken = refresh
}

func (c *HTTPClient) Close() error {
	c.hc.CloseIdleConnections()
	return nil
}

// do performs an authenticated request, refreshing the access token and
// retrying once when the server reports it expired.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	access, refresh := c.Tokens()

	// Proactive refresh: the exp claim is read without verifying the
	// signature, which is the server's job, not ours.
	if access != "" && refresh != "" && tokenNeedsRefresh(access) {
		if err := c.refresh(ctx); err != nil {
			return err
		}
	}

	err := c.doOnce(ctx, method, path, body, out, true)
	if err == nil {
		return nil
	}

	if errors.Is(err, common.ErrTokenExpired) && refresh != "" {
		if rerr := c.refresh(ctx); rerr != nil {
			return rerr
		}
		return c.doOnce(ctx, method, path, body, out, true)
	}

	return err
}

func (c *HTTPClient) refresh(ctx context.Context) error {
	_, refresh := c.Tokens()

	var tp tokenPair
	body := map[string]any{"refresh_token": refresh}
	if err := c.doOnce(ctx, http.MethodPost, "/auth/refresh", body, &tp, false); err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			return common.ErrRefreshTokenExpired
		}
		return err
	}
	c.SetTokens(tp.AccessToken, tp.RefreshToken)
	return nil
}

func (c *HTTPClient) doOnce(ctx context.Context, method, path string, body, out any, authed bool) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		if access, _ := c.Tokens(); access != "" {
			req.Header.Set(common.AuthorizationHeaderName, "Bearer "+access)
		}
	}
	if method != http.MethodGet {
		req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.mapError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// mapError converts a non-2xx response into a sentinel or an *Error carrying
// the server's human-readable detail.
func (c *HTTPClient) mapError(resp *http.Response) error {
	var eb errorBody
	_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&eb)
	detail := eb.Detail
	if detail == "" {
		detail = eb.Message
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized && detail == common.ErrTokenExpired.Error():
		return common.ErrTokenExpired
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return common.ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return common.ErrNotFound
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: status %d", common.ErrUnavailable, resp.StatusCode)
	default:
		return &Error{Status: resp.StatusCode, Detail: detail}
	}
}

// tokenNeedsRefresh reports whether the access token expires within the
// refresh leeway. Unparseable tokens and tokens without exp are left to the
// server to judge.
func tokenNeedsRefresh(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return time.Until(exp.Time) < refreshLeeway
}
