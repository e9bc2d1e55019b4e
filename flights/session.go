package flights

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/browserutils/kooky"
	"github.com/hashicorp/go-retryablehttp"
)

// Consent cookies sent with every request. Without them Google answers with
// a consent interstitial instead of flight results.
var consentCookies = []string{
	"SOCS=CAESEwgDEgk2MjA5NDM1NjAaAmVuIAEaBgiA_Le-Bg",
	"CONSENT=PENDING+987",
}

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/114.0.0.0 Safari/537.36"

// Options configures the HTTP side of a Session.
type Options struct {
	Proxy    string        // optional HTTP/SOCKS proxy URL
	Timeout  time.Duration // per-request timeout
	RetryMax int
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{Timeout: 30 * time.Second, RetryMax: 3}
}

type httpClient interface {
	Do(req *retryablehttp.Request) (*http.Response, error)
}

// Session issues search requests against Google Flights. It is safe for
// concurrent use by multiple goroutines: per-request state lives in the
// request, and the cookie set is fixed after New.
type Session struct {
	client  httpClient
	cookies []string
}

func customRetryPolicy() retryablehttp.CheckRetry {
	return func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
				return false, ctx.Err()
			}
		}

		if resp != nil {
			switch resp.StatusCode {
			case http.StatusTooManyRequests, http.StatusForbidden, http.StatusServiceUnavailable:
				// Retrying a block only digs the hole deeper.
				return false, nil
			}
		}

		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}
}

func getCookies(res *http.Response) ([]string, error) {
	var cookies []string
	if setCookie, ok := res.Header["Set-Cookie"]; ok {
		for _, c := range setCookie {
			cookies = append(cookies, strings.Split(c, ";")[0])
		}
		return cookies, nil
	}
	return nil, fmt.Errorf("could not find the 'Set-Cookie' header in the initialization response")
}

// New creates a Session: it builds the retrying HTTP client, performs one
// request against www.google.com to pick up session cookies, and reuses a
// GOOGLE_ABUSE_EXEMPTION cookie from a local browser when one exists.
func New(opts Options) (*Session, error) {
	client := retryablehttp.NewClient()
	client.RetryMax = opts.RetryMax
	client.Logger = nil
	client.CheckRetry = customRetryPolicy()
	client.RetryWaitMin = time.Second
	client.HTTPClient.Timeout = opts.Timeout

	if opts.Proxy != "" {
		proxyURL, err := url.Parse(opts.Proxy)
		if err != nil {
			return nil, fmt.Errorf("new session: invalid proxy URL: %w", err)
		}
		client.HTTPClient.Transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
	}

	res, err := client.Get("https://www.google.com/")
	if err != nil {
		return nil, fmt.Errorf("new session: err sending request to www.google.com: %w", err)
	}
	defer res.Body.Close()

	cookies, err := getCookies(res)
	if err != nil {
		return nil, fmt.Errorf("new session: err getting cookies: %w", err)
	}
	cookies = append(cookies, consentCookies...)

	exemption := kooky.ReadCookies(kooky.Valid, kooky.DomainHasSuffix(`google.com`), kooky.Name(`GOOGLE_ABUSE_EXEMPTION`))
	if len(exemption) == 1 {
		cookies = append(cookies, fmt.Sprintf("%s=%s", exemption[0].Name, exemption[0].Value))
	}

	return &Session{
		client:  client,
		cookies: cookies,
	}, nil
}

func (s *Session) doRequest(ctx context.Context, params []Param) (*http.Response, error) {
	var sb strings.Builder
	sb.WriteString(BaseURL)
	for i, p := range params {
		if i == 0 {
			sb.WriteByte('?')
		} else {
			sb.WriteByte('&')
		}
		sb.WriteString(p.Key)
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p.Value))
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, sb.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", `*/*`)
	req.Header.Set("accept-language", `en-US,en;q=0.9`)
	req.Header.Set("user-agent", userAgent)
	req.Header["cookie"] = s.cookies

	return s.client.Do(req)
}

// SearchFlights validates and encodes the request, fetches the results page,
// and decodes the embedded payload.
func (s *Session) SearchFlights(ctx context.Context, req SearchRequest) (*SearchResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	resp, err := s.doRequest(ctx, req.URLParams())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case resp.StatusCode == http.StatusForbidden, resp.StatusCode == http.StatusServiceUnavailable:
		return nil, &BlockedError{StatusCode: resp.StatusCode}
	case resp.StatusCode >= 400:
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return ParseHTML(string(body))
}
