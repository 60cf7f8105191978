// Package stub serves canned agent responses on the same routes as the real
// backends so the client can be exercised without any model behind it.
package stub

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jask/agentdesk/internal/agent"
)

//go:embed answers.yaml
var defaultAnswers []byte

const runningMessage = "AI agent stub backend is running."

var listingBullets = []string{
	"High quality and durable",
	"Eco-friendly materials",
	"Portable and lightweight",
	"Easy to use and maintain",
	"Affordable price",
}

const budgetAdvice = "Based on your income and spending, consider reducing dining expenses by 10% and increasing savings by 15%."

var contractReview = agent.Review{
	Flags:       []string{"Potentially restrictive non-compete clause."},
	Suggestions: []string{"Consider limiting duration to 1 year."},
	Explanation: "Non-compete clauses longer than 1 year may be unenforceable in some jurisdictions.",
}

type Options struct {
	// Latency delays every agent reply, which makes overlapping submits observable.
	Latency time.Duration
	Logger  *slog.Logger
	// Registry receives the stub's metrics. A fresh registry is used when nil.
	Registry *prometheus.Registry
	// Answers overrides the embedded chat answer book (YAML).
	Answers []byte
}

type Server struct {
	router  chi.Router
	answers AnswerBook
	latency time.Duration
	logger  *slog.Logger
	metrics *metrics
}

func New(opts Options) (*Server, error) {
	raw := opts.Answers
	if len(raw) == 0 {
		raw = defaultAnswers
	}
	book, err := ParseAnswerBook(raw)
	if err != nil {
		return nil, fmt.Errorf("load answers: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	s := &Server{
		router:  chi.NewRouter(),
		answers: book,
		latency: opts.Latency,
		logger:  logger,
		metrics: newMetrics(reg),
	}
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	s.router.Use(s.observe)
	s.routes(reg)
	return s, nil
}

func (s *Server) Router() http.Handler { return s.router }

func (s *Server) routes(reg *prometheus.Registry) {
	s.router.Get("/", s.handleRoot)
	s.router.Get("/healthz", s.handleHealth)
	s.router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	s.router.Post(agent.PathQuery, s.handleQuery)
	s.router.Post(agent.PathProductListing, s.handleListing)
	s.router.Post(agent.PathBudget, s.handleBudget)
	s.router.Post(agent.PathContractReview, s.handleContractReview)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": runningMessage})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req agent.QueryRequest
	if !decode(w, r, &req) {
		return
	}
	if !s.wait(r.Context()) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"answer": s.answers.Lookup(req.Query)})
}

type listingReply struct {
	Prompt  string        `json:"prompt"`
	Listing agent.Listing `json:"listing"`
}

func (s *Server) handleListing(w http.ResponseWriter, r *http.Request) {
	var req agent.ListingRequest
	if !decode(w, r, &req) {
		return
	}
	if !s.wait(r.Context()) {
		return
	}
	features := strings.Join(req.KeyFeatures, ", ")
	keywords := make([]string, 0, len(req.KeyFeatures)+3)
	keywords = append(keywords, req.KeyFeatures...)
	keywords = append(keywords, req.ProductName, "e-commerce", "best product")
	writeJSON(w, http.StatusOK, listingReply{
		Prompt: fmt.Sprintf("You're an expert in e-commerce SEO. Create a high-converting product listing for:\n\n"+
			"Product: %s\nKey Features: %s\nTarget Market: %s\nTone: %s\n\n"+
			"Include: Title, 5 bullet points, description (300 words), and meta keywords.",
			req.ProductName, features, req.TargetMarket, req.Tone),
		Listing: agent.Listing{
			Title:        req.ProductName + " - Best Quality & Features",
			BulletPoints: append([]string(nil), listingBullets...),
			Description:  fmt.Sprintf("This %s is perfect for %s. It offers %s. Buy now to enjoy the benefits!", req.ProductName, req.TargetMarket, features),
			MetaKeywords: keywords,
		},
	})
}

type budgetReply struct {
	Prompt       string `json:"prompt"`
	BudgetAdvice string `json:"budget_advice"`
}

func (s *Server) handleBudget(w http.ResponseWriter, r *http.Request) {
	var req agent.BudgetRequest
	if !decode(w, r, &req) {
		return
	}
	if !s.wait(r.Context()) {
		return
	}
	var b strings.Builder
	b.WriteString("You are a smart financial advisor.\n")
	fmt.Fprintf(&b, "The user earns $%s/month. Here's their categorized spending:", formatAmount(req.Income))
	categories := make([]string, 0, len(req.Spending))
	for c := range req.Spending {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	for _, c := range categories {
		fmt.Fprintf(&b, "\n- %s: $%s", c, formatAmount(req.Spending[c]))
	}
	b.WriteString("\nGenerate a monthly budget that improves savings while preserving lifestyle.")
	writeJSON(w, http.StatusOK, budgetReply{Prompt: b.String(), BudgetAdvice: budgetAdvice})
}

type reviewReply struct {
	Prompt string       `json:"prompt"`
	Review agent.Review `json:"review"`
}

func (s *Server) handleContractReview(w http.ResponseWriter, r *http.Request) {
	var req agent.ContractRequest
	if !decode(w, r, &req) {
		return
	}
	if !s.wait(r.Context()) {
		return
	}
	writeJSON(w, http.StatusOK, reviewReply{
		Prompt: "You are a legal expert.\n\nReview the following contract clause and flag any red flags, " +
			"suggest improvements, and explain their legal implications.\n\nClause:\n" + req.ContractText +
			"\n\nJurisdiction: " + req.Jurisdiction,
		Review: contractReview,
	})
}

// wait applies the configured latency. It reports false if the client went away.
func (s *Server) wait(ctx context.Context) bool {
	if s.latency <= 0 {
		return true
	}
	t := time.NewTimer(s.latency)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

func decode(w http.ResponseWriter, r *http.Request, out any) bool {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "invalid JSON body"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
