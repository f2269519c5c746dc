package client

import (
	"context"
	"io"
	"net/http"
)

type skipAuthKey struct{}

// withoutAuth marks requests that must not carry a token or trigger a
// re-authentication, such as the login call itself.
func withoutAuth(ctx context.Context) context.Context {
	return context.WithValue(ctx, skipAuthKey{}, true)
}

type authTransport struct {
	client *Client
	next   http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if skip, _ := req.Context().Value(skipAuthKey{}).(bool); skip {
		return t.next.RoundTrip(req)
	}
	sent := t.client.Token()
	resp, err := t.next.RoundTrip(withBearer(req, sent))
	if err != nil || resp.StatusCode != http.StatusUnauthorized || t.client.reauth == nil {
		return resp, err
	}
	if req.Body != nil && req.GetBody == nil {
		return resp, nil
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	token, err := t.client.refreshToken(req.Context(), sent)
	if err != nil {
		return nil, err
	}

	retry := req.Clone(req.Context())
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		retry.Body = body
	}
	return t.next.RoundTrip(withBearer(retry, token))
}

// refreshToken replaces a rejected token. Concurrent callers holding the same
// stale token share one reauth call, and a caller whose token was already
// replaced reuses the current one.
func (c *Client) refreshToken(ctx context.Context, stale string) (string, error) {
	if current := c.Token(); current != stale {
		return current, nil
	}
	v, err, _ := c.refresh.Do(stale, func() (any, error) {
		if current := c.Token(); current != stale {
			return current, nil
		}
		fresh, err := c.reauth(ctx, c)
		if err != nil {
			return "", err
		}
		c.SetToken(fresh)
		return fresh, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func withBearer(req *http.Request, token string) *http.Request {
	out := req.Clone(req.Context())
	if token != "" {
		out.Header.Set("Authorization", "Bearer "+token)
	} else {
		out.Header.Del("Authorization")
	}
	return out
}
