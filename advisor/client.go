// Package advisor calls an external language-model service to turn one
// month's financial snapshot into a natural-language advice report.
package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"

	"github.com/duxiu-index/duxiu-tui/lib"
)

const (
	// DefaultBaseURL is the Gemini API base URL.
	DefaultBaseURL = "https://generativelanguage.googleapis.com"

	// DefaultModel is the model used for advice generation.
	DefaultModel = "gemini-2.5-flash"

	// DefaultTimeout is the default HTTP client timeout. Generation can take
	// a while, so this is generous.
	DefaultTimeout = 60 * time.Second

	// APIKeyEnv is the environment fallback consulted when the user has not
	// configured a key in settings.
	APIKeyEnv = "GEMINI_API_KEY"

	contentType = "application/json"
)

// ErrMissingAPIKey is returned when neither the request nor the environment
// provides a credential. Callers must present this differently from generic
// failures: it is user-actionable (configure a key), not transient.
var ErrMissingAPIKey = errors.New("missing api key")

// Options configures the client.
type Options struct {
	// BaseURL overrides the default API base URL.
	BaseURL string

	// Model overrides the default model name.
	Model string

	// HTTPClient allows using a custom HTTP client.
	HTTPClient *http.Client

	// Timeout sets the HTTP client timeout.
	Timeout time.Duration

	// RetryMax caps transport-level retries. Zero disables retrying, which
	// is the default: a failed generation simply surfaces the generic error
	// and the user may re-invoke.
	RetryMax int
}

// Client is the advisory-generation API client.
type Client struct {
	baseURL string
	model   string
	http    *retryablehttp.Client
}

// NewClient creates an advisory client. A nil opts uses all defaults.
func NewClient(opts *Options) *Client {
	if opts == nil {
		opts = &Options{}
	}

	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}

	if opts.Model == "" {
		opts.Model = DefaultModel
	}

	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}

	if opts.Timeout > 0 {
		opts.HTTPClient.Timeout = opts.Timeout
	}

	rc := retryablehttp.NewClient()
	rc.HTTPClient = opts.HTTPClient
	rc.RetryMax = opts.RetryMax
	rc.Logger = nil

	return &Client{
		baseURL: opts.BaseURL,
		model:   opts.Model,
		http:    rc,
	}
}

// Request carries one generation call's inputs: the draft, its computed
// result, the report language, and an optional user-supplied key.
type Request struct {
	Data     lib.FinancialInput
	Result   lib.DerivedResult
	Language string

	// APIKey is the user-configured credential. When empty, APIKeyEnv is
	// consulted; if that is empty too, Generate returns ErrMissingAPIKey.
	APIKey string
}

type generatePart struct {
	Text string `json:"text"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generateRequest struct {
	Contents []generateContent `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content generateContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Generate requests an advice report for the given snapshot. Every call is a
// fresh request - nothing is cached and nothing is retried beyond the
// transport's configuration.
func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	key := req.APIKey
	if key == "" {
		key = os.Getenv(APIKeyEnv)
	}

	if key == "" {
		return "", ErrMissingAPIKey
	}

	payload := generateRequest{
		Contents: []generateContent{
			{Parts: []generatePart{{Text: BuildPrompt(req.Language, req.Data, req.Result)}}},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal generation request")
	}

	url := fmt.Sprintf("%v/v1beta/models/%v:generateContent", c.baseURL, c.model)

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "failed to build generation request")
	}

	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("x-goog-api-key", key)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", errors.Wrap(err, "advisory service request failed")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "failed to read advisory response")
	}

	var parsed generateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", errors.Wrapf(err, "failed to parse advisory response (status %v)", resp.StatusCode)
	}

	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return "", errors.Errorf("advisory service error %v: %v", parsed.Error.Code, parsed.Error.Message)
		}

		return "", errors.Errorf("advisory service returned status %v", resp.StatusCode)
	}

	text := ""
	if len(parsed.Candidates) > 0 {
		for _, p := range parsed.Candidates[0].Content.Parts {
			text += p.Text
		}
	}

	if text == "" {
		return "", errors.New("advisory service returned no content")
	}

	return text, nil
}
