package agent

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type captured struct {
	path        string
	contentType string
	requestID   string
	body        map[string]any
}

func recordingServer(t *testing.T, status int, reply string) (*httptest.Server, *captured) {
	t.Helper()
	got := &captured{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.path = r.URL.Path
		got.contentType = r.Header.Get("Content-Type")
		got.requestID = r.Header.Get("X-Request-Id")
		_ = json.NewDecoder(r.Body).Decode(&got.body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(ts.Close)
	return ts, got
}

func TestQuerySendsJSON(t *testing.T) {
	t.Parallel()
	ts, got := recordingServer(t, http.StatusOK, `{"answer":"hello"}`)
	c := New(ts.URL, WithRequestIDs(func() string { return "req-1" }))

	ans, err := c.Query(context.Background(), QueryRequest{Query: "Hi"})
	require.NoError(t, err)
	require.Equal(t, Answer{Text: "hello"}, ans)
	require.Equal(t, PathQuery, got.path)
	require.Equal(t, "application/json", got.contentType)
	require.Equal(t, "req-1", got.requestID)
	require.Equal(t, map[string]any{"query": "Hi"}, got.body)
}

func TestBudgetSerializesNumbers(t *testing.T) {
	t.Parallel()
	ts, got := recordingServer(t, http.StatusOK, `{"budget_advice":"save more"}`)
	c := New(ts.URL)

	adv, err := c.Budget(context.Background(), BudgetRequest{
		Income: 5000,
		Spending: map[string]float64{
			"Rent": 1500, "Groceries": 400, "Dining": 200, "Travel": 0, "Subscriptions": 50,
		},
	})
	require.NoError(t, err)
	require.Equal(t, "save more", adv.Text)
	require.Equal(t, float64(5000), got.body["income"])
	require.Equal(t, map[string]any{
		"Rent": float64(1500), "Groceries": float64(400), "Dining": float64(200), "Travel": float64(0), "Subscriptions": float64(50),
	}, got.body["spending"])
}

func TestListingDecodes(t *testing.T) {
	t.Parallel()
	ts, got := recordingServer(t, http.StatusOK, `{"prompt":"p","listing":{"title":"T","bullet_points":["a","b"],"description":"D","meta_keywords":["k"]}}`)
	c := New(ts.URL)

	l, err := c.ProductListing(context.Background(), ListingRequest{ProductName: "Lamp", KeyFeatures: []string{"bright"}, TargetMarket: "students", Tone: "fun"})
	require.NoError(t, err)
	require.Equal(t, Listing{Title: "T", BulletPoints: []string{"a", "b"}, Description: "D", MetaKeywords: []string{"k"}}, l)
	require.Equal(t, []any{"bright"}, got.body["key_features"])
	require.Equal(t, "Lamp", got.body["product_name"])
}

func TestPayloadErrorIsNotAFailure(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name  string
		reply string
	}{
		{name: "top level", reply: `{"error":"quota exceeded"}`},
		{name: "inside envelope", reply: `{"review":{"error":"quota exceeded"}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ts, _ := recordingServer(t, http.StatusOK, tc.reply)
			r, err := New(ts.URL).ContractReview(context.Background(), ContractRequest{ContractText: "x", Jurisdiction: "NY"})
			require.NoError(t, err)
			require.Equal(t, "quota exceeded", r.Error)
		})
	}
}

func TestFailuresSurfaceAsErrors(t *testing.T) {
	t.Parallel()

	t.Run("non-2xx", func(t *testing.T) {
		t.Parallel()
		ts, _ := recordingServer(t, http.StatusInternalServerError, `{"detail":"boom"}`)
		_, err := New(ts.URL).Query(context.Background(), QueryRequest{Query: "x"})
		var se *StatusError
		require.ErrorAs(t, err, &se)
		require.Equal(t, http.StatusInternalServerError, se.Code)
		require.Equal(t, PathQuery, se.Path)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		t.Parallel()
		ts, _ := recordingServer(t, http.StatusOK, `<html>`)
		_, err := New(ts.URL).Budget(context.Background(), BudgetRequest{})
		require.Error(t, err)
	})

	t.Run("missing envelope", func(t *testing.T) {
		t.Parallel()
		ts, _ := recordingServer(t, http.StatusOK, `{"prompt":"only"}`)
		_, err := New(ts.URL).ProductListing(context.Background(), ListingRequest{})
		require.True(t, errors.Is(err, ErrMalformed), "got %v", err)
	})

	t.Run("trailing garbage", func(t *testing.T) {
		t.Parallel()
		ts, _ := recordingServer(t, http.StatusOK, `{"answer":"ok"} <html>oops</html>`)
		_, err := New(ts.URL).Query(context.Background(), QueryRequest{Query: "x"})
		require.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("second JSON value", func(t *testing.T) {
		t.Parallel()
		ts, _ := recordingServer(t, http.StatusOK, `{"budget_advice":"a"}{"budget_advice":"b"}`)
		_, err := New(ts.URL).Budget(context.Background(), BudgetRequest{})
		require.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("connection refused", func(t *testing.T) {
		t.Parallel()
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		addr := ln.Addr().String()
		require.NoError(t, ln.Close())

		_, err = New("http://"+addr).Query(context.Background(), QueryRequest{Query: "x"})
		require.Error(t, err)
	})
}

func TestTimeoutOption(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		ts.Close()
	})

	c := New(ts.URL, WithTimeout(50*time.Millisecond))
	_, err := c.Query(context.Background(), QueryRequest{Query: "slow"})
	require.Error(t, err)
}

func TestTimeoutAppliedAfterOptions(t *testing.T) {
	t.Parallel()
	c := New("http://example.test", WithTimeout(50*time.Millisecond), WithLogger(nil))
	require.Equal(t, 50*time.Millisecond, c.httpClient.Timeout)
	require.NotSame(t, http.DefaultClient, c.httpClient)
	require.Zero(t, http.DefaultClient.Timeout)
	require.Zero(t, New("http://example.test").httpClient.Timeout)
}

func TestBodyWithTrailingWhitespaceIsAccepted(t *testing.T) {
	t.Parallel()
	ts, _ := recordingServer(t, http.StatusOK, "{\"answer\":\"ok\"}\n\n")
	ans, err := New(ts.URL).Query(context.Background(), QueryRequest{Query: "x"})
	require.NoError(t, err)
	require.Equal(t, "ok", ans.Text)
}

func TestNewDefaultsBaseURL(t *testing.T) {
	t.Parallel()
	require.Equal(t, DefaultBaseURL, New("  ").BaseURL())
	require.Equal(t, "http://example.test", New("http://example.test/").BaseURL())
}
