package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"crm-relay.io/relay/internal/pkg/logger"
)

// refreshMargin renews the token slightly before its actual expiry so
// in-flight requests never carry a token that dies mid-call.
const refreshMargin = 30 * time.Second

// tokenSource obtains and refreshes backend bearer tokens via the
// client-credentials grant. Refresh is single-flight: one in-flight refresh
// at a time, concurrent callers await its result.
type tokenSource struct {
	httpClient   *http.Client
	tokenURL     string
	clientID     string
	clientSecret string

	mu        sync.RWMutex
	token     string
	expiresAt time.Time

	sf singleflight.Group
}

func newTokenSource(httpClient *http.Client, tokenURL, clientID, clientSecret string) *tokenSource {
	return &tokenSource{
		httpClient:   httpClient,
		tokenURL:     tokenURL,
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

// Token returns a currently valid token, refreshing if needed.
func (ts *tokenSource) Token(ctx context.Context) (string, error) {
	ts.mu.RLock()
	token, ok := ts.token, time.Now().Before(ts.expiresAt.Add(-refreshMargin))
	ts.mu.RUnlock()
	if ok && token != "" {
		return token, nil
	}

	v, err, _ := ts.sf.Do("refresh", func() (interface{}, error) {
		// Another caller may have refreshed while we queued.
		ts.mu.RLock()
		token, ok := ts.token, time.Now().Before(ts.expiresAt.Add(-refreshMargin))
		ts.mu.RUnlock()
		if ok && token != "" {
			return token, nil
		}
		return ts.refresh(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (ts *tokenSource) refresh(ctx context.Context) (string, error) {
	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {ts.clientID},
		"client_secret": {ts.clientSecret},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ts.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := ts.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("token endpoint: status %d: %s", resp.StatusCode, string(raw))
	}

	var body struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if body.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned empty access_token")
	}

	expiresAt := tokenExpiry(body.AccessToken, body.ExpiresIn)

	ts.mu.Lock()
	ts.token = body.AccessToken
	ts.expiresAt = expiresAt
	ts.mu.Unlock()

	logger.Debug("backend token refreshed", zap.Time("expires_at", expiresAt))
	return body.AccessToken, nil
}

// tokenExpiry derives token expiry from the JWT exp claim when present
// (unverified parse: the backend owns the signing key), falling back to the
// advertised expires_in, then to a conservative default.
func tokenExpiry(token string, expiresIn int64) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			return exp.Time
		}
	}
	if expiresIn > 0 {
		return time.Now().Add(time.Duration(expiresIn) * time.Second)
	}
	return time.Now().Add(5 * time.Minute)
}
