package comcigan

import (
	"comcigan/internal/components/assert"
	"comcigan/internal/components/telemetry"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/time/rate"
)

// Transport fetches the exact bytes the service responds with, NUL filler
// included. Relative urls are resolved against the service's base url.
//
// note: fault injection point
type Transport interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}

// FetchText fetches a url and decodes the body as UTF-8, invalid sequences
// become U+FFFD. NUL filler is kept.
func FetchText(ctx context.Context, t Transport, url string) (string, error) {
	body, err := t.FetchBytes(ctx, url)
	if err != nil {
		return "", err
	}
	text, err := unicode.UTF8.NewDecoder().Bytes(body)
	if err != nil {
		return "", fmt.Errorf("%w: decode utf-8: %w", ErrMalformedPayload, err)
	}
	return string(text), nil
}

type TransportOptions struct {
	// BaseUrl is the scheme, host and port of the service, ex. http://comci.net:4082
	BaseUrl   string
	UserAgent string
	// Proxy is prefixed to every absolute request url when set,
	// ex. https://proxy.example/?url= fetches https://proxy.example/?url=http://comci.net:4082/st
	Proxy string
	// Timeout bounds a single request, 0 means no timeout.
	Timeout time.Duration
	// RequestsPerSecond limits outbound requests, 0 means no limit.
	RequestsPerSecond float64
}

// RestyTransport implements Transport over HTTP.
type RestyTransport struct {
	http    *resty.Client
	baseUrl string
	proxy   string
}

func NewRestyTransport(opts TransportOptions, tel telemetry.API) RestyTransport {
	assert.NotEmptyStr(opts.BaseUrl)
	assert.NotNil(tel)

	baseUrl := strings.TrimSuffix(opts.BaseUrl, "/")

	httpClient := resty.New()
	if opts.Timeout > 0 {
		httpClient.SetTimeout(opts.Timeout)
	}
	if opts.UserAgent != "" {
		httpClient.SetHeader("user-agent", opts.UserAgent)
	}

	if opts.RequestsPerSecond > 0 {
		burst := int(opts.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		rateLimiter := rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
		httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return rateLimiter.Wait(req.Context())
		})
	}

	telemetry.InstrumentResty(httpClient, "comcigan/http", telemetry.NewScopedAPI("comcigan_transport", tel))

	return RestyTransport{
		http:    httpClient,
		baseUrl: baseUrl,
		proxy:   opts.Proxy,
	}
}

func (t RestyTransport) resolve(url string) string {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = t.baseUrl + url
	}
	return t.proxy + url
}

func (t RestyTransport) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	res, err := t.http.R().
		SetContext(ctx).
		Get(t.resolve(url))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("%w: GET %s: %s", ErrTransport, url, res.Status())
	}
	return res.Body(), nil
}
