package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sandevgo/folio/pkg/retry"
)

type baseProvider struct {
	client  *http.Client
	retrier *retry.Retrier
	baseURL string
	apiKey  string
	model   string
}

func newBaseProvider(baseURL, apiKey, model string) baseProvider {
	return baseProvider{
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
		retrier: retry.NewDefaultRetrier(),
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
	}
}

// statusError is a non-2xx answer from the API.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("http %d: %s", e.code, e.body)
}

func retryable(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

// doJSON sends body and decodes a 200 response into out. Rate limits,
// server errors and transport failures are retried; anything else is not.
func (b *baseProvider) doJSON(ctx context.Context, method, path string, body any, headers map[string]string, out any) error {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal: %w", err)
		}
		payload = data
	}

	return b.retrier.Do(ctx, func() error {
		var bodyReader io.Reader
		if payload != nil {
			bodyReader = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, bodyReader)
		if err != nil {
			return retry.Permanent(fmt.Errorf("create request: %w", err))
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := b.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return retry.Permanent(ctx.Err())
			}
			return fmt.Errorf("request: %w", err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read body: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			serr := &statusError{code: resp.StatusCode, body: string(data)}
			if retryable(resp.StatusCode) {
				return serr
			}
			return retry.Permanent(serr)
		}

		if err := json.Unmarshal(data, out); err != nil {
			return retry.Permanent(fmt.Errorf("decode: %w", err))
		}
		return nil
	})
}
