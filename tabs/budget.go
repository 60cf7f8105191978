package tabs

import (
	"context"
	"fmt"

	"github.com/jask/agentdesk/core"
	"github.com/jask/agentdesk/internal/agent"
	"github.com/jask/agentdesk/widgets"
)

const (
	FieldIncome = "income"

	BudgetFailure = "Error fetching budget advice."
)

// BudgetCategories are the spending fields, in display order. Their names
// double as the keys of the request's spending map.
var BudgetCategories = []string{"Rent", "Groceries", "Dining", "Travel", "Subscriptions"}

type BudgetClient interface {
	Budget(ctx context.Context, req agent.BudgetRequest) (agent.Advice, error)
}

type BudgetState = Submission[agent.Advice]

// BudgetRequestFrom coerces every numeric field; blank or invalid text is sent as 0.
func BudgetRequestFrom(f core.FormState) agent.BudgetRequest {
	spending := make(map[string]float64, len(BudgetCategories))
	for _, c := range BudgetCategories {
		spending[c] = f.Float(c)
	}
	return agent.BudgetRequest{Income: f.Float(FieldIncome), Spending: spending}
}

// SpendingChart plots the entered spending in category order.
func SpendingChart(f core.FormState, currency string) widgets.BarChart {
	data := make([]widgets.ChartPoint, 0, len(BudgetCategories))
	for _, c := range BudgetCategories {
		data = append(data, widgets.ChartPoint{Label: c, Value: f.Float(c)})
	}
	return widgets.BarChart{Title: fmt.Sprintf("Monthly Spending (%s)", currency), Data: data}
}

var budgetView = core.ResultView[agent.Advice]{
	PayloadError: func(a agent.Advice) string { return a.Error },
	Fields: func(a agent.Advice) []widgets.Fragment {
		return []widgets.Fragment{widgets.Field("Budget Advice", a.Text)}
	},
}

func BudgetDefinition(client BudgetClient, currency string) Definition[agent.Advice] {
	if currency == "" {
		currency = "$"
	}
	fields := []FieldSpec{{Key: FieldIncome, Label: fmt.Sprintf("Monthly Income (%s)", currency), Placeholder: "0", Kind: FieldNumber}}
	for _, c := range BudgetCategories {
		fields = append(fields, FieldSpec{Key: c, Label: c, Placeholder: "0", Kind: FieldNumber})
	}
	return Definition[agent.Advice]{
		ID:      "budget",
		Title:   "Budget",
		Scope:   core.ScopeBudget,
		Fields:  fields,
		Idle:    "Get Budget Advice",
		Busy:    "Calculating...",
		Failure: BudgetFailure,
		Empty:   "Enter income and monthly spending to get advice.",
		View:    budgetView,
		Call: func(ctx context.Context, f core.FormState) (agent.Advice, error) {
			return client.Budget(ctx, BudgetRequestFrom(f))
		},
	}
}

type BudgetTab struct {
	*formTab[agent.Advice]
	currency string
}

func NewBudgetTab(client BudgetClient, currency string, opts Options) *BudgetTab {
	def := BudgetDefinition(client, currency)
	if currency == "" {
		currency = "$"
	}
	return &BudgetTab{formTab: newFormTab(def, opts), currency: currency}
}

func (t *BudgetTab) Build(m *core.Model) widgets.Widget {
	chart := widgets.Pane{Title: "Spending", Body: SpendingChart(t.state.Form, t.currency)}
	right := widgets.VStack{Widgets: []widgets.Widget{t.resultPane(), chart}, Ratios: []float64{0.45, 0.55}}
	return widgets.HStack{
		Widgets: []widgets.Widget{t.formPane(m), right},
		Ratios:  []float64{0.45, 0.55},
		Gap:     1,
	}
}
