package agent

// Endpoint paths on the agent backend.
const (
	PathQuery          = "/api/query"
	PathProductListing = "/api/product_listing"
	PathBudget         = "/api/budget"
	PathContractReview = "/api/contract_review"
)

// DefaultBaseURL is the local address every screen talks to.
const DefaultBaseURL = "http://localhost:8000"

type QueryRequest struct {
	Query string `json:"query"`
}

type QueryResponse struct {
	Answer *string `json:"answer,omitempty"`
	Error  string  `json:"error,omitempty"`
}

// Answer is the settled chat payload.
type Answer struct {
	Text  string
	Error string
}

type ListingRequest struct {
	ProductName  string   `json:"product_name"`
	KeyFeatures  []string `json:"key_features"`
	TargetMarket string   `json:"target_market"`
	Tone         string   `json:"tone"`
}

type Listing struct {
	Title        string   `json:"title"`
	BulletPoints []string `json:"bullet_points"`
	Description  string   `json:"description"`
	MetaKeywords []string `json:"meta_keywords"`
	Error        string   `json:"error,omitempty"`
}

type ListingResponse struct {
	Listing *Listing `json:"listing,omitempty"`
	Error   string   `json:"error,omitempty"`
}

type BudgetRequest struct {
	Income   float64            `json:"income"`
	Spending map[string]float64 `json:"spending"`
}

type BudgetResponse struct {
	BudgetAdvice *string `json:"budget_advice,omitempty"`
	Error        string  `json:"error,omitempty"`
}

// Advice is the settled budget payload.
type Advice struct {
	Text  string
	Error string
}

type ContractRequest struct {
	ContractText string `json:"contract_text"`
	Jurisdiction string `json:"jurisdiction"`
}

type Review struct {
	Flags       []string `json:"flags"`
	Suggestions []string `json:"suggestions"`
	Explanation string   `json:"explanation"`
	Error       string   `json:"error,omitempty"`
}

type ContractResponse struct {
	Review *Review `json:"review,omitempty"`
	Error  string  `json:"error,omitempty"`
}
