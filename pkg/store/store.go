// Package store defines the CRM data access contract shared by the tool
// handlers, plus the typed errors implementations translate into.
package store

import (
	"context"
	"time"
)

// Store is the persistence interface behind the tool registry. Implementations
// must translate backend failures into the typed errors of this package so
// callers can categorize them.
type Store interface {
	LeadStore
	ProposalStore
	ProductStore
	AnalyticsStore
	TaskStore
	BroadcastStore
	ScenarioStore

	HealthCheck(ctx context.Context) error
	Close() error
}

// LeadStore covers lead and customer access for the customer module.
type LeadStore interface {
	ListLeads(ctx context.Context, filters LeadFilters) ([]Lead, error)
	SearchLeads(ctx context.Context, query string) ([]Lead, error)
	CreateLead(ctx context.Context, input CreateLeadInput) (*Lead, error)
	UpdateLead(ctx context.Context, id string, input UpdateLeadInput) (*Lead, error)
	DeleteLead(ctx context.Context, id string) error
	GetCustomer(ctx context.Context, id string) (*Customer, error)
}

// ProposalStore covers proposal lifecycle access for the new-business module.
type ProposalStore interface {
	ListProposals(ctx context.Context, filters ProposalFilters) ([]Proposal, error)
	GetProposal(ctx context.Context, id string) (*Proposal, error)
	CreateProposal(ctx context.Context, input CreateProposalInput) (*Proposal, error)
	UpdateProposalStatus(ctx context.Context, id string, status ProposalStatus) (*Proposal, error)
	DeleteProposal(ctx context.Context, id string) error
}

// ProductStore covers the read-only product shelf.
type ProductStore interface {
	SearchProducts(ctx context.Context, keyword, category string) ([]Product, error)
	GetProduct(ctx context.Context, id string) (*ProductDetail, error)
	ListProductCategories(ctx context.Context) ([]ProductCategory, error)
}

// AnalyticsStore covers advisor performance aggregates.
type AnalyticsStore interface {
	Performance(ctx context.Context, advisorID, period string) (*Performance, error)
	MonthlyTrend(ctx context.Context, advisorID string) (*TrendData, error)
	TeamStats(ctx context.Context) (*TeamStats, error)
	Funnel(ctx context.Context, period string) (*Funnel, error)
}

// TaskStore covers tasks and calendar access for the todo module.
type TaskStore interface {
	ListTasks(ctx context.Context, filters TaskFilters) ([]Task, error)
	CreateTask(ctx context.Context, input CreateTaskInput) (*Task, error)
	UpdateTask(ctx context.Context, id string, input UpdateTaskInput) (*Task, error)
	DeleteTask(ctx context.Context, id string) error
	CalendarEvents(ctx context.Context, start, end time.Time) ([]CalendarEvent, error)
}

// BroadcastStore covers campaign access for the broadcast module.
type BroadcastStore interface {
	ListBroadcasts(ctx context.Context, filters BroadcastFilters) ([]Broadcast, error)
	GetBroadcast(ctx context.Context, id string) (*Broadcast, error)
	CreateBroadcast(ctx context.Context, input CreateBroadcastInput) (*Broadcast, error)
	DeleteBroadcast(ctx context.Context, id string) error
}

// ScenarioStore covers saved planning scenarios for the visualizer module.
type ScenarioStore interface {
	Scenarios(ctx context.Context, customerID string) ([]Scenario, error)
}
