package pricing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"tripbudget/internal/domain"
	"tripbudget/internal/utils"
)

// Source resolves a place name to its admission price pair. Implementations
// never fail the caller: after exhausting retries they return the zero
// quote with ok=false so telemetry can tell the degraded fallback apart
// from genuine free admission.
type Source interface {
	Lookup(ctx context.Context, place string) (domain.PriceQuote, bool)
}

// HTTPSource queries an upstream pricing endpoint. The upstream is an
// LLM-backed service that answers in prose around a JSON object, so the
// parser extracts the first object it can find rather than decoding the
// whole body.
type HTTPSource struct {
	URL       string
	Retries   int
	Backoff   time.Duration
	Client    *http.Client
	RequestID string
}

func NewHTTPSource(url string, retries int) *HTTPSource {
	return &HTTPSource{
		URL:     url,
		Retries: retries,
		Backoff: time.Second,
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
}

var quoteObjectRe = regexp.MustCompile(`(?s)\{.*?\}`)

type lookupRequest struct {
	Place string `json:"place"`
}

// Lookup retries on malformed or unparseable responses, not on valid zero
// prices. A free attraction is a real answer.
func (s *HTTPSource) Lookup(ctx context.Context, place string) (domain.PriceQuote, bool) {
	if s.URL == "" {
		utils.LogEvent(s.RequestID, "pricing", "lookup_disabled", fmt.Sprintf("place=%q", place))
		return domain.PriceQuote{}, false
	}

	attempts := s.Retries + 1
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-time.After(s.backoff()):
			case <-ctx.Done():
				utils.LogEvent(s.RequestID, "pricing", "lookup_cancelled", fmt.Sprintf("place=%q", place))
				return domain.PriceQuote{}, false
			}
		}

		quote, err := s.fetch(ctx, place)
		if err != nil {
			utils.LogEvent(s.RequestID, "pricing", "lookup_retry",
				fmt.Sprintf("place=%q attempt=%d err=%v", place, i+1, err))
			continue
		}
		return quote, true
	}

	utils.LogEvent(s.RequestID, "pricing", "lookup_degraded",
		fmt.Sprintf("place=%q fallback=zero after %d attempts", place, attempts))
	return domain.PriceQuote{}, false
}

func (s *HTTPSource) fetch(ctx context.Context, place string) (domain.PriceQuote, error) {
	body, err := json.Marshal(lookupRequest{Place: place})
	if err != nil {
		return domain.PriceQuote{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(body))
	if err != nil {
		return domain.PriceQuote{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client().Do(req)
	if err != nil {
		return domain.PriceQuote{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return domain.PriceQuote{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return domain.PriceQuote{}, fmt.Errorf("status %d", resp.StatusCode)
	}

	return ParseQuote(string(raw))
}

// ParseQuote extracts {"adult":N,"student":N} from a possibly chatty
// response body. Single quotes and trailing commas from the upstream are
// tolerated; negative prices are treated as malformed.
func ParseQuote(body string) (domain.PriceQuote, error) {
	m := quoteObjectRe.FindString(body)
	if m == "" {
		return domain.PriceQuote{}, fmt.Errorf("no JSON object in response")
	}
	m = strings.ReplaceAll(m, "'", `"`)
	m = regexp.MustCompile(`,\s*}`).ReplaceAllString(m, "}")

	var q domain.PriceQuote
	if err := json.Unmarshal([]byte(m), &q); err != nil {
		return domain.PriceQuote{}, fmt.Errorf("unparseable quote: %w", err)
	}
	if q.Adult < 0 || q.Student < 0 {
		return domain.PriceQuote{}, fmt.Errorf("negative price in quote")
	}
	return q, nil
}

func (s *HTTPSource) client() *http.Client {
	if s.Client != nil {
		return s.Client
	}
	return http.DefaultClient
}

func (s *HTTPSource) backoff() time.Duration {
	if s.Backoff > 0 {
		return s.Backoff
	}
	return time.Second
}
