package pricing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestSource(url string, retries int) *HTTPSource {
	s := NewHTTPSource(url, retries)
	s.Backoff = time.Millisecond
	return s
}

func TestParseQuoteChattyBody(t *testing.T) {
	q, err := ParseQuote(`Sure! The admission prices are {"adult": 120, "student": 60,} per person.`)
	if err != nil {
		t.Fatalf("ParseQuote error: %v", err)
	}
	if q.Adult != 120 || q.Student != 60 {
		t.Fatalf("quote = %+v", q)
	}
}

func TestParseQuoteSingleQuotes(t *testing.T) {
	q, err := ParseQuote(`{'adult': 0, 'student': 0}`)
	if err != nil {
		t.Fatalf("ParseQuote error: %v", err)
	}
	if q.Adult != 0 || q.Student != 0 {
		t.Fatalf("quote = %+v", q)
	}
}

func TestParseQuoteRejectsGarbage(t *testing.T) {
	if _, err := ParseQuote("no prices here"); err == nil {
		t.Fatalf("expected error for body without JSON")
	}
	if _, err := ParseQuote(`{"adult": -5, "student": 0}`); err == nil {
		t.Fatalf("expected error for negative price")
	}
}

func TestLookupRetriesThenSucceeds(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Write([]byte("I could not find that place"))
			return
		}
		w.Write([]byte(`{"adult": 80, "student": 40}`))
	}))
	defer srv.Close()

	q, ok := newTestSource(srv.URL, 2).Lookup(context.Background(), "Summer Palace")
	if !ok {
		t.Fatalf("expected resolved quote")
	}
	if q.Adult != 80 || q.Student != 40 {
		t.Fatalf("quote = %+v", q)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Fatalf("upstream called %d times, want 2", calls)
	}
}

func TestLookupDegradesToZeroAfterRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte("garbage"))
	}))
	defer srv.Close()

	q, ok := newTestSource(srv.URL, 2).Lookup(context.Background(), "Nowhere")
	if ok {
		t.Fatalf("expected degraded result")
	}
	if q.Adult != 0 || q.Student != 0 {
		t.Fatalf("degraded quote should be zero, got %+v", q)
	}
	if atomic.LoadInt32(&calls) != 3 {
		t.Fatalf("upstream called %d times, want 3 (1 + 2 retries)", calls)
	}
}

func TestLookupValidZeroIsNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`{"adult": 0, "student": 0}`))
	}))
	defer srv.Close()

	q, ok := newTestSource(srv.URL, 2).Lookup(context.Background(), "Free Park")
	if !ok {
		t.Fatalf("free admission is a valid answer, not a degradation")
	}
	if q.Adult != 0 || q.Student != 0 {
		t.Fatalf("quote = %+v", q)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("upstream called %d times, want 1", calls)
	}
}

func TestLookupNoURLDegrades(t *testing.T) {
	q, ok := newTestSource("", 2).Lookup(context.Background(), "Anywhere")
	if ok || q.Adult != 0 || q.Student != 0 {
		t.Fatalf("expected zero degraded quote, got %+v ok=%v", q, ok)
	}
}
