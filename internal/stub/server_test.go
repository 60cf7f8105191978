package stub

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/jask/agentdesk/internal/agent"
)

func newTestServer(t *testing.T, opts Options) (*httptest.Server, *prometheus.Registry) {
	t.Helper()
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	s, err := New(opts)
	require.NoError(t, err)
	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)
	return ts, opts.Registry
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestRootReportsRunning(t *testing.T) {
	t.Parallel()
	ts, _ := newTestServer(t, Options{})

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Equal(t, runningMessage, out["message"])
}

func TestQueryMatchesKeywords(t *testing.T) {
	t.Parallel()
	ts, _ := newTestServer(t, Options{})

	resp := postJSON(t, ts.URL+agent.PathQuery, agent.QueryRequest{Query: "How do I RESET my password?"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Contains(t, out["answer"], "reset your password")
}

func TestQueryFallsBack(t *testing.T) {
	t.Parallel()
	ts, _ := newTestServer(t, Options{})

	resp := postJSON(t, ts.URL+agent.PathQuery, agent.QueryRequest{Query: "Hi"})
	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotEmpty(t, out["answer"])
	require.NotContains(t, out["answer"], "reset")
}

func TestListingDerivesFromRequest(t *testing.T) {
	t.Parallel()
	ts, _ := newTestServer(t, Options{})

	resp := postJSON(t, ts.URL+agent.PathProductListing, agent.ListingRequest{
		ProductName:  "Trail Bottle",
		KeyFeatures:  []string{"insulated", "leakproof"},
		TargetMarket: "hikers",
		Tone:         "friendly",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out listingReply
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Equal(t, "Trail Bottle - Best Quality & Features", out.Listing.Title)
	require.Len(t, out.Listing.BulletPoints, 5)
	require.Equal(t, "This Trail Bottle is perfect for hikers. It offers insulated, leakproof. Buy now to enjoy the benefits!", out.Listing.Description)
	require.Equal(t, []string{"insulated", "leakproof", "Trail Bottle", "e-commerce", "best product"}, out.Listing.MetaKeywords)
	require.Contains(t, out.Prompt, "Tone: friendly")
}

func TestBudgetPromptListsSpending(t *testing.T) {
	t.Parallel()
	ts, _ := newTestServer(t, Options{})

	resp := postJSON(t, ts.URL+agent.PathBudget, agent.BudgetRequest{
		Income:   5000,
		Spending: map[string]float64{"Rent": 1500, "Dining": 200.5},
	})
	var out budgetReply
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Equal(t, budgetAdvice, out.BudgetAdvice)
	require.Contains(t, out.Prompt, "earns $5000/month")
	require.Contains(t, out.Prompt, "- Dining: $200.5\n- Rent: $1500")
}

func TestContractReviewIsCanned(t *testing.T) {
	t.Parallel()
	ts, _ := newTestServer(t, Options{})

	resp := postJSON(t, ts.URL+agent.PathContractReview, agent.ContractRequest{ContractText: "Employee shall not compete for 3 years.", Jurisdiction: "CA"})
	var out reviewReply
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Equal(t, contractReview, out.Review)
	require.Contains(t, out.Prompt, "Jurisdiction: CA")
}

func TestInvalidBodyIsRejected(t *testing.T) {
	t.Parallel()
	ts, _ := newTestServer(t, Options{})

	resp, err := http.Post(ts.URL+agent.PathBudget, "application/json", strings.NewReader("{not json"))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestMetricsCountRequests(t *testing.T) {
	t.Parallel()
	ts, reg := newTestServer(t, Options{})

	postJSON(t, ts.URL+agent.PathQuery, agent.QueryRequest{Query: "refund"})
	postJSON(t, ts.URL+agent.PathQuery, agent.QueryRequest{Query: "shipping"})

	families, err := reg.Gather()
	require.NoError(t, err)
	var total float64
	for _, mf := range families {
		if mf.GetName() != "agentstub_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "route" && lp.GetValue() == agent.PathQuery {
					total += m.GetCounter().GetValue()
				}
			}
		}
	}
	require.Equal(t, float64(2), total)

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "agentstub_requests_total")
}

func TestParseAnswerBookRequiresFallback(t *testing.T) {
	t.Parallel()
	_, err := ParseAnswerBook([]byte("answers:\n  - keywords: [a]\n    answer: b\n"))
	require.Error(t, err)

	book, err := ParseAnswerBook([]byte("fallback: nope\nanswers:\n  - keywords: [late, delivery]\n    answer: tracking\n"))
	require.NoError(t, err)
	require.Equal(t, "tracking", book.Lookup("my delivery is late"))
	require.Equal(t, "nope", book.Lookup("delivery"))
}
