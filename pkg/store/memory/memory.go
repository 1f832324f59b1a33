// Package memory provides a seeded in-memory store used in development and
// tests. All methods are safe for concurrent use.
package memory

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/advisorhub/mira/pkg/store"
)

// Store keeps all CRM data in process. Seed data mirrors the demo dataset so
// development environments behave like the hosted sandbox.
type Store struct {
	mu         sync.RWMutex
	leads      []store.Lead
	customers  []store.Customer
	proposals  []store.Proposal
	products   []store.ProductDetail
	tasks      []store.Task
	broadcasts []store.Broadcast
}

// NewStore creates a store pre-seeded with demo data.
func NewStore() *Store {
	return &Store{
		leads: []store.Lead{
			{ID: "L-1001", Name: "Kim Tan", ContactNumber: "91234567", Status: store.LeadNew, LeadSource: "Event"},
			{ID: "L-1002", Name: "Amanda Lim", ContactNumber: "92345678", Status: store.LeadQualified, LeadSource: "Referral"},
			{ID: "L-1003", Name: "Wei Zhang", ContactNumber: "93456789", Status: store.LeadContacted, LeadSource: "Website"},
		},
		customers: []store.Customer{
			{ID: "C-2001", Name: "Kim Tan", Policies: 2, TotalPremium: 12500},
			{ID: "C-2002", Name: "Amanda Lim", Policies: 3, TotalPremium: 19800},
		},
		proposals: []store.Proposal{
			{ID: "P-3001", CustomerID: "C-2001", ProductID: "PR-1001", Premium: 2500, Status: store.ProposalDraft},
			{ID: "P-3002", CustomerID: "C-2002", ProductID: "PR-1002", Premium: 1800, Status: store.ProposalSubmitted},
		},
		products: []store.ProductDetail{
			{
				Product:     store.Product{ID: "PR-1001", Name: "LifeShield Prime", Category: "Protection", Premium: 120},
				Description: "Whole life protection with cash value",
				Riders:      []string{"Critical Illness", "Payor Benefit"},
				Coverage:    250000,
			},
			{
				Product:     store.Product{ID: "PR-1002", Name: "EduGrow Plus", Category: "Savings", Premium: 150},
				Description: "Education savings with guaranteed returns",
				Riders:      []string{"Waiver of Premium"},
				Coverage:    150000,
			},
		},
		tasks: []store.Task{
			{ID: "T-1", Title: "Call Kim about proposal", Status: store.TaskPending, DueDate: timePtr(time.Now())},
			{ID: "T-2", Title: "Prepare review deck", Status: store.TaskPending},
			{ID: "T-3", Title: "Submit compliance docs", Status: store.TaskCompleted},
		},
		broadcasts: []store.Broadcast{
			{ID: "B-1", Title: "Q4 Wealth Tips", Audience: "Existing clients", Status: store.BroadcastSent},
			{ID: "B-2", Title: "Term Promo", Audience: "Warm leads", Status: store.BroadcastDraft},
		},
	}
}

func (s *Store) ListLeads(ctx context.Context, filters store.LeadFilters) ([]store.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []store.Lead

	for _, lead := range s.leads {
		if filters.Status != "" && lead.Status != filters.Status {
			continue
		}

		if filters.LeadSource != "" && lead.LeadSource != filters.LeadSource {
			continue
		}

		out = append(out, lead)
	}

	return out, nil
}

func (s *Store) SearchLeads(ctx context.Context, query string) ([]store.Lead, error) {
	lower := strings.ToLower(query)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []store.Lead

	for _, lead := range s.leads {
		if strings.Contains(strings.ToLower(lead.Name), lower) ||
			strings.Contains(lead.ContactNumber, query) ||
			strings.Contains(strings.ToLower(lead.Email), lower) {
			out = append(out, lead)
		}
	}

	return out, nil
}

func (s *Store) CreateLead(ctx context.Context, input store.CreateLeadInput) (*store.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lead := store.Lead{
		ID:            fmt.Sprintf("L-%d", rand.Intn(9000)+1000),
		Name:          input.Name,
		ContactNumber: input.ContactNumber,
		Email:         input.Email,
		Status:        store.LeadNew,
		LeadSource:    input.LeadSource,
	}

	s.leads = append(s.leads, lead)

	return &lead, nil
}

func (s *Store) UpdateLead(ctx context.Context, id string, input store.UpdateLeadInput) (*store.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.leads {
		if s.leads[i].ID != id {
			continue
		}

		if input.Status != "" {
			s.leads[i].Status = input.Status
		}

		if input.Owner != "" {
			s.leads[i].Owner = input.Owner
		}

		lead := s.leads[i]

		return &lead, nil
	}

	return nil, fmt.Errorf("lead %s: %w", id, store.ErrNotFound)
}

func (s *Store) DeleteLead(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.leads {
		if s.leads[i].ID == id {
			s.leads = append(s.leads[:i], s.leads[i+1:]...)

			return nil
		}
	}

	return fmt.Errorf("lead %s: %w", id, store.ErrNotFound)
}

func (s *Store) GetCustomer(ctx context.Context, id string) (*store.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.customers {
		if c.ID == id {
			customer := c

			return &customer, nil
		}
	}

	return nil, fmt.Errorf("customer %s: %w", id, store.ErrNotFound)
}

func (s *Store) ListProposals(ctx context.Context, filters store.ProposalFilters) ([]store.Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []store.Proposal

	for _, p := range s.proposals {
		if filters.Status != "" && p.Status != filters.Status {
			continue
		}

		if filters.CustomerID != "" && p.CustomerID != filters.CustomerID {
			continue
		}

		out = append(out, p)
	}

	return out, nil
}

func (s *Store) GetProposal(ctx context.Context, id string) (*store.Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.proposals {
		if p.ID == id {
			proposal := p

			return &proposal, nil
		}
	}

	return nil, fmt.Errorf("proposal %s: %w", id, store.ErrNotFound)
}

func (s *Store) CreateProposal(ctx context.Context, input store.CreateProposalInput) (*store.Proposal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	proposal := store.Proposal{
		ID:         fmt.Sprintf("P-%d", rand.Intn(9000)+3000),
		CustomerID: input.CustomerID,
		ProductID:  input.ProductID,
		Premium:    input.Premium,
		Status:     store.ProposalDraft,
	}

	s.proposals = append(s.proposals, proposal)

	return &proposal, nil
}

func (s *Store) UpdateProposalStatus(ctx context.Context, id string, status store.ProposalStatus) (*store.Proposal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.proposals {
		if s.proposals[i].ID == id {
			s.proposals[i].Status = status
			proposal := s.proposals[i]

			return &proposal, nil
		}
	}

	return nil, fmt.Errorf("proposal %s: %w", id, store.ErrNotFound)
}

func (s *Store) DeleteProposal(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.proposals {
		if s.proposals[i].ID == id {
			s.proposals = append(s.proposals[:i], s.proposals[i+1:]...)

			return nil
		}
	}

	return fmt.Errorf("proposal %s: %w", id, store.ErrNotFound)
}

func (s *Store) SearchProducts(ctx context.Context, keyword, category string) ([]store.Product, error) {
	lower := strings.ToLower(keyword)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []store.Product

	for _, p := range s.products {
		if category != "" && p.Category != category {
			continue
		}

		if !strings.Contains(strings.ToLower(p.Name), lower) {
			continue
		}

		out = append(out, p.Product)
	}

	return out, nil
}

func (s *Store) GetProduct(ctx context.Context, id string) (*store.ProductDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.ID == id {
			product := p

			return &product, nil
		}
	}

	return nil, fmt.Errorf("product %s: %w", id, store.ErrNotFound)
}

func (s *Store) ListProductCategories(ctx context.Context) ([]store.ProductCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)

	var out []store.ProductCategory

	for _, p := range s.products {
		if !seen[p.Category] {
			seen[p.Category] = true

			out = append(out, store.ProductCategory{ID: p.Category, Name: p.Category})
		}
	}

	return out, nil
}

func (s *Store) Performance(ctx context.Context, advisorID, period string) (*store.Performance, error) {
	return &store.Performance{
		AdvisorID:      advisorID,
		Period:         period,
		Premium:        48000,
		Proposals:      38,
		ConversionRate: 0.42,
	}, nil
}

func (s *Store) MonthlyTrend(ctx context.Context, advisorID string) (*store.TrendData, error) {
	return &store.TrendData{
		Months:   []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"},
		Premiums: []float64{32000, 38000, 41000, 39000, 45000, 48000},
	}, nil
}

func (s *Store) TeamStats(ctx context.Context) (*store.TeamStats, error) {
	return &store.TeamStats{
		AveragePremium: 38000,
		TopAdvisor:     "Gina Wong",
		Leaderboard: []store.LeaderboardEntry{
			{Advisor: "Gina Wong", Premium: 56000},
			{Advisor: "Faizal Rahman", Premium: 51000},
			{Advisor: "Kim Tan", Premium: 48000},
		},
	}, nil
}

func (s *Store) Funnel(ctx context.Context, period string) (*store.Funnel, error) {
	return &store.Funnel{
		Stages: []store.FunnelStage{
			{Stage: "Leads", Count: 120},
			{Stage: "Opportunities", Count: 60},
			{Stage: "Proposals", Count: 32},
			{Stage: "Policies", Count: 18},
		},
	}, nil
}

func (s *Store) ListTasks(ctx context.Context, filters store.TaskFilters) ([]store.Task, error) {
	now := time.Now()

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []store.Task

	for _, t := range s.tasks {
		if filters.Status != "" && t.Status != filters.Status {
			continue
		}

		if filters.Overdue && (t.DueDate == nil || t.DueDate.After(now)) {
			continue
		}

		out = append(out, t)
	}

	return out, nil
}

func (s *Store) CreateTask(ctx context.Context, input store.CreateTaskInput) (*store.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := store.Task{
		ID:         fmt.Sprintf("T-%d", len(s.tasks)+1),
		Title:      input.Title,
		Status:     store.TaskPending,
		DueDate:    input.DueDate,
		CustomerID: input.CustomerID,
	}

	s.tasks = append(s.tasks, task)

	return &task, nil
}

func (s *Store) UpdateTask(ctx context.Context, id string, input store.UpdateTaskInput) (*store.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}

		if input.Title != "" {
			s.tasks[i].Title = input.Title
		}

		if input.DueDate != nil {
			s.tasks[i].DueDate = input.DueDate
		}

		if input.Status != "" {
			s.tasks[i].Status = input.Status
		}

		task := s.tasks[i]

		return &task, nil
	}

	return nil, fmt.Errorf("task %s: %w", id, store.ErrNotFound)
}

func (s *Store) DeleteTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)

			return nil
		}
	}

	return fmt.Errorf("task %s: %w", id, store.ErrNotFound)
}

func (s *Store) CalendarEvents(ctx context.Context, start, end time.Time) ([]store.CalendarEvent, error) {
	return []store.CalendarEvent{
		{ID: "EV-1", Title: "FNA review", Start: start, End: end},
		{ID: "EV-2", Title: "Roadshow", Start: start, End: end},
	}, nil
}

func (s *Store) ListBroadcasts(ctx context.Context, filters store.BroadcastFilters) ([]store.Broadcast, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []store.Broadcast

	for _, b := range s.broadcasts {
		if filters.Status != "" && b.Status != filters.Status {
			continue
		}

		out = append(out, b)
	}

	return out, nil
}

func (s *Store) GetBroadcast(ctx context.Context, id string) (*store.Broadcast, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.broadcasts {
		if b.ID == id {
			broadcast := b

			return &broadcast, nil
		}
	}

	return nil, fmt.Errorf("broadcast %s: %w", id, store.ErrNotFound)
}

func (s *Store) CreateBroadcast(ctx context.Context, input store.CreateBroadcastInput) (*store.Broadcast, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := store.BroadcastDraft
	if input.ScheduledAt != nil {
		status = store.BroadcastScheduled
	}

	broadcast := store.Broadcast{
		ID:          fmt.Sprintf("B-%d", len(s.broadcasts)+1),
		Title:       input.Title,
		Audience:    input.Audience,
		Status:      status,
		ScheduledAt: input.ScheduledAt,
	}

	s.broadcasts = append(s.broadcasts, broadcast)

	return &broadcast, nil
}

func (s *Store) DeleteBroadcast(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.broadcasts {
		if s.broadcasts[i].ID == id {
			s.broadcasts = append(s.broadcasts[:i], s.broadcasts[i+1:]...)

			return nil
		}
	}

	return fmt.Errorf("broadcast %s: %w", id, store.ErrNotFound)
}

func (s *Store) Scenarios(ctx context.Context, customerID string) ([]store.Scenario, error) {
	return []store.Scenario{
		{ID: customerID + "-S1", Name: "Balanced growth", GrowthRate: 0.06, Premium: 800},
		{ID: customerID + "-S2", Name: "Aggressive growth", GrowthRate: 0.08, Premium: 900},
	}, nil
}

func (s *Store) HealthCheck(ctx context.Context) error {
	return nil
}

func (s *Store) Close() error {
	return nil
}

func timePtr(t time.Time) *time.Time {
	return &t
}
