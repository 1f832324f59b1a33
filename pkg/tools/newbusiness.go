package tools

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/advisorhub/mira/pkg/models"
	"github.com/advisorhub/mira/pkg/store"
)

// Quote is a quick premium and coverage estimate.
type Quote struct {
	ID         string  `json:"id"`
	ProductID  string  `json:"productId"`
	CustomerID string  `json:"customerId"`
	Premium    float64 `json:"premium"`
	Coverage   float64 `json:"coverage"`
}

// UnderwritingStatus tracks where a proposal sits in the underwriting queue.
type UnderwritingStatus struct {
	ProposalID string `json:"proposalId"`
	Status     string `json:"status"`
	Notes      string `json:"notes,omitempty"`
}

// RegisterNewBusinessTools adds the proposal, quote, and underwriting tools.
func RegisterNewBusinessTools(registry *Registry, st store.ProposalStore) {
	registry.Register(&Tool{
		Name:         "new_business__proposals.create",
		Description:  "Create a new proposal draft",
		Module:       models.ModuleNewBusiness,
		RequiresAuth: true,
		Schema: objectSchema([]string{"customerId", "productId"}, map[string]any{
			"customerId": stringProp("Customer id for the proposal"),
			"productId":  stringProp("Product id"),
			"premium":    numberProp("Annual premium"),
		}),
		Handler: func(ctx context.Context, args map[string]any, _ ToolContext) (any, error) {
			return st.CreateProposal(ctx, store.CreateProposalInput{
				CustomerID: argString(args, "customerId"),
				ProductID:  argString(args, "productId"),
				Premium:    argFloat(args, "premium"),
			})
		},
	})

	registry.Register(&Tool{
		Name:        "new_business__proposals.list",
		Description: "List proposals with filters",
		Module:      models.ModuleNewBusiness,
		Schema: objectSchema(nil, map[string]any{
			"status":     stringProp("Filter by proposal status"),
			"customerId": stringProp("Filter by customer id"),
		}),
		Handler: func(ctx context.Context, args map[string]any, _ ToolContext) (any, error) {
			return st.ListProposals(ctx, store.ProposalFilters{
				Status:     store.ProposalStatus(argString(args, "status")),
				CustomerID: argString(args, "customerId"),
			})
		},
	})

	registry.Register(&Tool{
		Name:        "new_business__proposals.get",
		Description: "Fetch a proposal by id",
		Module:      models.ModuleNewBusiness,
		Schema: objectSchema([]string{"id"}, map[string]any{
			"id": stringProp("Proposal id"),
		}),
		Handler: func(ctx context.Context, args map[string]any, _ ToolContext) (any, error) {
			return st.GetProposal(ctx, argString(args, "id"))
		},
	})

	registry.Register(&Tool{
		Name:        "new_business__quotes.generate",
		Description: "Generate a quick quote for a product and customer",
		Module:      models.ModuleNewBusiness,
		Schema: objectSchema([]string{"productId", "customerId"}, map[string]any{
			"productId":  stringProp("Product id"),
			"customerId": stringProp("Customer id"),
		}),
		Handler: func(ctx context.Context, args map[string]any, _ ToolContext) (any, error) {
			return Quote{
				ID:         fmt.Sprintf("Q-%d", rand.Intn(9000)+4000),
				ProductID:  argString(args, "productId"),
				CustomerID: argString(args, "customerId"),
				Premium:    float64(rand.Intn(2000) + 1000),
				Coverage:   float64(rand.Intn(200000) + 100000),
			}, nil
		},
	})

	registry.Register(&Tool{
		Name:         "new_business__underwriting.submit",
		Description:  "Submit proposal to underwriting",
		Module:       models.ModuleNewBusiness,
		RequiresAuth: true,
		Schema: objectSchema([]string{"proposalId"}, map[string]any{
			"proposalId": stringProp("Proposal id to submit"),
		}),
		Handler: func(ctx context.Context, args map[string]any, _ ToolContext) (any, error) {
			id := argString(args, "proposalId")

			if _, err := st.UpdateProposalStatus(ctx, id, store.ProposalSubmitted); err != nil {
				return nil, err
			}

			return UnderwritingStatus{
				ProposalID: id,
				Status:     "pending",
				Notes:      "Submitted to underwriting queue",
			}, nil
		},
	})

	registry.Register(&Tool{
		Name:        "new_business__underwriting.checkStatus",
		Description: "Check underwriting decision status",
		Module:      models.ModuleNewBusiness,
		Schema: objectSchema([]string{"proposalId"}, map[string]any{
			"proposalId": stringProp("Proposal id"),
		}),
		Handler: func(ctx context.Context, args map[string]any, _ ToolContext) (any, error) {
			id := argString(args, "proposalId")

			proposal, err := st.GetProposal(ctx, id)
			if err != nil {
				return nil, err
			}

			status := UnderwritingStatus{ProposalID: id, Status: "pending"}

			switch proposal.Status {
			case store.ProposalSubmitted:
				status.Status = "review"
				status.Notes = "Underwriter requested confirmation of income documents"
			case store.ProposalApproved:
				status.Status = "approved"
			case store.ProposalRejected:
				status.Status = "additional_info"
				status.Notes = "Additional information requested"
			case store.ProposalDraft:
				status.Notes = "Proposal has not been submitted yet"
			}

			return status, nil
		},
	})
}
