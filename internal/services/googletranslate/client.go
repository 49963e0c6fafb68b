package googletranslate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultFreeURL is the keyless endpoint used by browser extensions.
	DefaultFreeURL = "https://translate.googleapis.com/translate_a/single"
	// DefaultCloudURL is the Cloud Translation v2 endpoint used with an API key.
	DefaultCloudURL = "https://translation.googleapis.com/language/translate/v2"

	defaultHTTPTimeout    = 30 * time.Second
	defaultRetryMaxDelay  = 10 * time.Second
	defaultRetryBaseDelay = 1 * time.Second
	defaultRetryAttempts  = 1
)

// Config captures the runtime settings for the translate endpoint.
type Config struct {
	BaseURL        string
	APIKey         string
	TimeoutSeconds int
}

// Client issues translation requests.
type Client struct {
	cfg        Config
	httpClient *http.Client

	retryMaxAttempts int
	retryBaseDelay   time.Duration
	retryMaxDelay    time.Duration
	sleeper          func(time.Duration)
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithRetryMaxAttempts overrides the attempt count (defaults to 1).
func WithRetryMaxAttempts(attempts int) Option {
	return func(c *Client) {
		c.retryMaxAttempts = attempts
	}
}

// WithRetryBackoff overrides the retry backoff delays.
func WithRetryBackoff(baseDelay, maxDelay time.Duration) Option {
	return func(c *Client) {
		c.retryBaseDelay = baseDelay
		c.retryMaxDelay = maxDelay
	}
}

// WithSleeper overrides how retry sleeps are performed (useful for tests).
func WithSleeper(sleeper func(time.Duration)) Option {
	return func(c *Client) {
		c.sleeper = sleeper
	}
}

// NewClient constructs a client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg: Config{
			BaseURL:        strings.TrimSpace(cfg.BaseURL),
			APIKey:         strings.TrimSpace(cfg.APIKey),
			TimeoutSeconds: cfg.TimeoutSeconds,
		},
		httpClient:       &http.Client{Timeout: timeout},
		retryMaxAttempts: defaultRetryAttempts,
		retryBaseDelay:   defaultRetryBaseDelay,
		retryMaxDelay:    defaultRetryMaxDelay,
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.cfg.BaseURL == "" {
		if client.cfg.APIKey != "" {
			client.cfg.BaseURL = DefaultCloudURL
		} else {
			client.cfg.BaseURL = DefaultFreeURL
		}
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return client
}

type httpStatusError struct {
	StatusCode int
	Body       string
	RetryAfter time.Duration
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("translate request: http %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}

// Translate returns text translated from source to target. Language codes
// are the remote service's codes (for example "zh-CN").
func (c *Client) Translate(ctx context.Context, text, source, target string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	if strings.TrimSpace(target) == "" {
		return "", errors.New("translate: target language required")
	}
	attempts := max(c.retryMaxAttempts, 1)
	for attempt := 1; ; attempt++ {
		translated, err := c.translateOnce(ctx, text, source, target)
		if err == nil {
			return translated, nil
		}
		delay, retry := c.nextDelay(ctx, err, attempt)
		if !retry || attempt >= attempts {
			if attempt > 1 {
				return "", fmt.Errorf("translate: failed after %d attempts: %w", attempt, err)
			}
			return "", err
		}
		if err := c.sleep(ctx, delay); err != nil {
			return "", err
		}
	}
}

func (c *Client) translateOnce(ctx context.Context, text, source, target string) (string, error) {
	form := url.Values{}
	form.Set("q", text)
	query := url.Values{}
	if c.cfg.APIKey != "" {
		query.Set("key", c.cfg.APIKey)
		form.Set("source", source)
		form.Set("target", target)
		form.Set("format", "text")
	} else {
		query.Set("client", "gtx")
		query.Set("sl", source)
		query.Set("tl", target)
		query.Set("dt", "t")
	}
	endpoint := c.cfg.BaseURL + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("translate request: new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=utf-8")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("translate request: http error (timeout=%s): %w", c.timeoutDuration(), err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("translate request: read body (timeout=%s): %w", c.timeoutDuration(), err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return "", &httpStatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}
	if c.cfg.APIKey != "" {
		return decodeCloudResponse(body)
	}
	return decodeFreeResponse(body)
}

// decodeFreeResponse joins the translated fragments of a gtx response:
// [[["Hello","Hola",...],["world","mundo",...]],null,"es",...].
func decodeFreeResponse(body []byte) (string, error) {
	var payload []json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("translate request: decode response: %w", err)
	}
	if len(payload) == 0 {
		return "", errors.New("translate request: empty response")
	}
	var sentences [][]any
	if err := json.Unmarshal(payload[0], &sentences); err != nil {
		return "", fmt.Errorf("translate request: decode sentences: %w", err)
	}
	var b strings.Builder
	for _, sentence := range sentences {
		if len(sentence) == 0 {
			continue
		}
		if fragment, ok := sentence[0].(string); ok {
			b.WriteString(fragment)
		}
	}
	if b.Len() == 0 {
		return "", errors.New("translate request: no translated text")
	}
	return b.String(), nil
}

type cloudResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func decodeCloudResponse(body []byte) (string, error) {
	var payload cloudResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("translate request: decode response: %w", err)
	}
	if payload.Error != nil {
		return "", fmt.Errorf("translate request: api error: %s", strings.TrimSpace(payload.Error.Message))
	}
	if len(payload.Data.Translations) == 0 {
		return "", errors.New("translate request: no translated text")
	}
	return payload.Data.Translations[0].TranslatedText, nil
}

func (c *Client) timeoutDuration() time.Duration {
	if c == nil || c.httpClient == nil || c.httpClient.Timeout <= 0 {
		return defaultHTTPTimeout
	}
	return c.httpClient.Timeout
}
