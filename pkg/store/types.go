package store

import "time"

// LeadStatus is the pipeline stage of a lead.
type LeadStatus string

const (
	LeadNew       LeadStatus = "new"
	LeadContacted LeadStatus = "contacted"
	LeadQualified LeadStatus = "qualified"
	LeadWon       LeadStatus = "won"
	LeadLost      LeadStatus = "lost"
)

// Lead is a prospective customer record.
type Lead struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	ContactNumber string     `json:"contact_number"`
	Email         string     `json:"email,omitempty"`
	Status        LeadStatus `json:"status"`
	LeadSource    string     `json:"lead_source,omitempty"`
	Owner         string     `json:"owner,omitempty"`
}

// LeadFilters narrows lead listings.
type LeadFilters struct {
	Status     LeadStatus `json:"status,omitempty"`
	LeadSource string     `json:"lead_source,omitempty"`
}

// CreateLeadInput holds the fields for a new lead; status starts at "new".
type CreateLeadInput struct {
	Name          string `json:"name"           validate:"required"`
	ContactNumber string `json:"contact_number" validate:"required"`
	Email         string `json:"email,omitempty"`
	LeadSource    string `json:"lead_source,omitempty"`
}

// UpdateLeadInput holds the mutable lead fields; empty values are skipped.
type UpdateLeadInput struct {
	Status LeadStatus `json:"status,omitempty"`
	Owner  string     `json:"owner,omitempty"`
}

// Customer is an existing client summary.
type Customer struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Policies     int     `json:"policies"`
	TotalPremium float64 `json:"total_premium"`
}

// ProposalStatus is the review state of a proposal.
type ProposalStatus string

const (
	ProposalDraft     ProposalStatus = "draft"
	ProposalSubmitted ProposalStatus = "submitted"
	ProposalApproved  ProposalStatus = "approved"
	ProposalRejected  ProposalStatus = "rejected"
)

// Proposal is an insurance proposal draft or submission.
type Proposal struct {
	ID         string         `json:"id"`
	CustomerID string         `json:"customerId"`
	ProductID  string         `json:"productId"`
	Premium    float64        `json:"premium"`
	Status     ProposalStatus `json:"status"`
}

// ProposalFilters narrows proposal listings.
type ProposalFilters struct {
	Status     ProposalStatus `json:"status,omitempty"`
	CustomerID string         `json:"customerId,omitempty"`
}

// CreateProposalInput holds the fields for a new draft proposal.
type CreateProposalInput struct {
	CustomerID string  `json:"customerId" validate:"required"`
	ProductID  string  `json:"productId"  validate:"required"`
	Premium    float64 `json:"premium"`
}

// Product is a shelf product summary.
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Premium  float64 `json:"premium"`
}

// ProductDetail adds full product information to the summary.
type ProductDetail struct {
	Product

	Description string   `json:"description"`
	Riders      []string `json:"riders,omitempty"`
	Coverage    float64  `json:"coverage"`
}

// ProductCategory is a shelf grouping.
type ProductCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Performance is an advisor's aggregate for one period.
type Performance struct {
	AdvisorID      string  `json:"advisorId"`
	Period         string  `json:"period"`
	Premium        float64 `json:"premium"`
	Proposals      int     `json:"proposals"`
	ConversionRate float64 `json:"conversionRate"`
}

// TrendData is a month-by-month premium series.
type TrendData struct {
	Months   []string  `json:"months"`
	Premiums []float64 `json:"premiums"`
}

// TeamStats compares the advisor against the team.
type TeamStats struct {
	AveragePremium float64            `json:"averagePremium"`
	TopAdvisor     string             `json:"topAdvisor"`
	Leaderboard    []LeaderboardEntry `json:"leaderboard"`
}

// LeaderboardEntry is one row of the team leaderboard.
type LeaderboardEntry struct {
	Advisor string  `json:"advisor"`
	Premium float64 `json:"premium"`
}

// Funnel is the lead-to-policy conversion breakdown.
type Funnel struct {
	Stages []FunnelStage `json:"stages"`
}

// FunnelStage is one stage count in the funnel.
type FunnelStage struct {
	Stage string `json:"stage"`
	Count int    `json:"count"`
}

// TaskStatus is the completion state of a task.
type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskCompleted TaskStatus = "completed"
)

// Task is an advisor todo item.
type Task struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Status     TaskStatus `json:"status"`
	DueDate    *time.Time `json:"dueDate,omitempty"`
	CustomerID string     `json:"customerId,omitempty"`
}

// TaskFilters narrows task listings. Overdue selects pending tasks whose due
// date has passed.
type TaskFilters struct {
	Status  TaskStatus `json:"status,omitempty"`
	Overdue bool       `json:"overdue,omitempty"`
}

// CreateTaskInput holds the fields for a new pending task.
type CreateTaskInput struct {
	Title      string     `json:"title" validate:"required"`
	DueDate    *time.Time `json:"dueDate,omitempty"`
	CustomerID string     `json:"customerId,omitempty"`
}

// UpdateTaskInput holds the mutable task fields; zero values are skipped.
type UpdateTaskInput struct {
	Title   string     `json:"title,omitempty"`
	DueDate *time.Time `json:"dueDate,omitempty"`
	Status  TaskStatus `json:"status,omitempty"`
}

// CalendarEvent is one scheduled entry in the advisor calendar.
type CalendarEvent struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// BroadcastStatus is the delivery state of a campaign.
type BroadcastStatus string

const (
	BroadcastDraft     BroadcastStatus = "draft"
	BroadcastScheduled BroadcastStatus = "scheduled"
	BroadcastSent      BroadcastStatus = "sent"
)

// Broadcast is a message campaign.
type Broadcast struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Audience    string          `json:"audience"`
	Status      BroadcastStatus `json:"status"`
	ScheduledAt *time.Time      `json:"scheduledAt,omitempty"`
}

// BroadcastFilters narrows campaign listings.
type BroadcastFilters struct {
	Status BroadcastStatus `json:"status,omitempty"`
}

// CreateBroadcastInput holds the fields for a new draft campaign.
type CreateBroadcastInput struct {
	Title       string     `json:"title"    validate:"required"`
	Audience    string     `json:"audience" validate:"required"`
	ScheduledAt *time.Time `json:"scheduledAt,omitempty"`
}

// Scenario is a saved planning scenario for the visualizer.
type Scenario struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	GrowthRate float64 `json:"growthRate"`
	Premium    float64 `json:"premium"`
}
