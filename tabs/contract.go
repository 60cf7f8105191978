package tabs

import (
	"context"

	"github.com/jask/agentdesk/core"
	"github.com/jask/agentdesk/internal/agent"
	"github.com/jask/agentdesk/widgets"
)

const (
	FieldContractText = "contract_text"
	FieldJurisdiction = "jurisdiction"

	ContractFailure = "Error fetching contract review."
)

type ContractClient interface {
	ContractReview(ctx context.Context, req agent.ContractRequest) (agent.Review, error)
}

type ContractState = Submission[agent.Review]

func ContractRequestFrom(f core.FormState) agent.ContractRequest {
	return agent.ContractRequest{
		ContractText: f.Get(FieldContractText),
		Jurisdiction: f.Get(FieldJurisdiction),
	}
}

var contractView = core.ResultView[agent.Review]{
	PayloadError: func(r agent.Review) string { return r.Error },
	Fields: func(r agent.Review) []widgets.Fragment {
		return []widgets.Fragment{
			widgets.List("Flags", r.Flags),
			widgets.List("Suggestions", r.Suggestions),
			widgets.Field("Explanation", r.Explanation),
		}
	},
}

func ContractDefinition(client ContractClient) Definition[agent.Review] {
	return Definition[agent.Review]{
		ID:    "contract",
		Title: "Contract",
		Scope: core.ScopeContract,
		Fields: []FieldSpec{
			{Key: FieldJurisdiction, Label: "Jurisdiction", Placeholder: "New York"},
			{Key: FieldContractText, Label: "Contract Text (ctrl+s to submit)", Placeholder: "Paste the contract here...", Kind: FieldMultiline},
		},
		Idle:    "Review Contract",
		Busy:    "Reviewing...",
		Failure: ContractFailure,
		Empty:   "Paste a contract and pick a jurisdiction to review it.",
		View:    contractView,
		Call: func(ctx context.Context, f core.FormState) (agent.Review, error) {
			return client.ContractReview(ctx, ContractRequestFrom(f))
		},
	}
}

type ContractTab struct {
	*formTab[agent.Review]
}

func NewContractTab(client ContractClient, opts Options) *ContractTab {
	return &ContractTab{formTab: newFormTab(ContractDefinition(client), opts)}
}
