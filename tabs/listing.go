package tabs

import (
	"context"
	"strings"

	"github.com/jask/agentdesk/core"
	"github.com/jask/agentdesk/internal/agent"
	"github.com/jask/agentdesk/widgets"
)

const (
	FieldProductName  = "product_name"
	FieldKeyFeatures  = "key_features"
	FieldTargetMarket = "target_market"
	FieldTone         = "tone"

	ListingFailure = "Error generating product listing."
)

type ListingClient interface {
	ProductListing(ctx context.Context, req agent.ListingRequest) (agent.Listing, error)
}

// ListingState is the listing screen's form and request lifecycle.
type ListingState = Submission[agent.Listing]

func ListingRequestFrom(f core.FormState) agent.ListingRequest {
	return agent.ListingRequest{
		ProductName:  f.Get(FieldProductName),
		KeyFeatures:  f.List(FieldKeyFeatures),
		TargetMarket: f.Get(FieldTargetMarket),
		Tone:         f.Get(FieldTone),
	}
}

var listingView = core.ResultView[agent.Listing]{
	PayloadError: func(l agent.Listing) string { return l.Error },
	Fields: func(l agent.Listing) []widgets.Fragment {
		return []widgets.Fragment{
			widgets.Field("Title", l.Title),
			widgets.List("Bullet Points", l.BulletPoints),
			widgets.Field("Description", l.Description),
			widgets.Field("Meta Keywords", strings.Join(l.MetaKeywords, ", ")),
		}
	},
}

func ListingDefinition(client ListingClient) Definition[agent.Listing] {
	return Definition[agent.Listing]{
		ID:    "listing",
		Title: "Listing",
		Scope: core.ScopeListing,
		Fields: []FieldSpec{
			{Key: FieldProductName, Label: "Product Name", Placeholder: "Bamboo desk lamp"},
			{Key: FieldKeyFeatures, Label: "Key Features (comma separated)", Placeholder: "dimmable, USB-C, foldable"},
			{Key: FieldTargetMarket, Label: "Target Market", Placeholder: "students"},
			{Key: FieldTone, Label: "Tone", Placeholder: "friendly"},
		},
		Idle:    "Generate Listing",
		Busy:    "Generating...",
		Failure: ListingFailure,
		Empty:   "Fill in the product details and generate a listing.",
		View:    listingView,
		Call: func(ctx context.Context, f core.FormState) (agent.Listing, error) {
			return client.ProductListing(ctx, ListingRequestFrom(f))
		},
	}
}

type ListingTab struct {
	*formTab[agent.Listing]
}

func NewListingTab(client ListingClient, opts Options) *ListingTab {
	return &ListingTab{formTab: newFormTab(ListingDefinition(client), opts)}
}
