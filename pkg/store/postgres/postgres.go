// Package postgres implements the CRM store on PostgreSQL using database/sql
// and lib/pq. Backend failures are translated into the typed errors of the
// store package.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/advisorhub/mira/pkg/store"
)

// Store is a PostgreSQL-backed CRM store.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewStore connects, pings, and bootstraps the schema.
func NewStore(ctx context.Context, logger *slog.Logger, databaseURL string) (*Store, error) {
	database, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL database: %w", err)
	}

	if err := database.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{
		db:     database,
		logger: logger.With("component", "postgres_store"),
	}

	if err := s.migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.InfoContext(ctx, "PostgreSQL store initialized successfully")

	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS leads (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			contact_number TEXT NOT NULL,
			email TEXT,
			status TEXT NOT NULL DEFAULT 'new',
			lead_source TEXT,
			owner TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS customers (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			policies INTEGER NOT NULL DEFAULT 0,
			total_premium NUMERIC NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS proposals (
			id TEXT PRIMARY KEY,
			customer_id TEXT NOT NULL REFERENCES customers(id),
			product_id TEXT NOT NULL,
			premium NUMERIC NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'draft',
			advisor_id TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			premium NUMERIC NOT NULL DEFAULT 0,
			description TEXT NOT NULL DEFAULT '',
			riders TEXT[] NOT NULL DEFAULT '{}',
			coverage NUMERIC NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			due_date TIMESTAMPTZ,
			customer_id TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS broadcasts (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			audience TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'draft',
			scheduled_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS scenarios (
			id TEXT PRIMARY KEY,
			customer_id TEXT NOT NULL,
			name TEXT NOT NULL,
			growth_rate NUMERIC NOT NULL,
			premium NUMERIC NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS calendar_events (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			start_at TIMESTAMPTZ NOT NULL,
			end_at TIMESTAMPTZ NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	return nil
}

// translate maps driver errors onto the store's typed errors. Unmapped errors
// pass through untouched.
func translate(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", store.ErrTimeout, err.Error())
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case "08000", "08003", "08006":
			return fmt.Errorf("%w: %s", store.ErrConnection, pqErr.Message)
		case "57014":
			return fmt.Errorf("%w: %s", store.ErrTimeout, pqErr.Message)
		case "23503":
			return fmt.Errorf("%w: %s", store.ErrForeignKey, pqErr.Message)
		case "23505":
			return fmt.Errorf("%w: %s", store.ErrDuplicate, pqErr.Message)
		case "42501":
			return fmt.Errorf("%w: %s", store.ErrPermission, pqErr.Message)
		}
	}

	return err
}

func (s *Store) ListLeads(ctx context.Context, filters store.LeadFilters) ([]store.Lead, error) {
	query := `SELECT id, name, contact_number, COALESCE(email, ''), status, COALESCE(lead_source, ''), COALESCE(owner, '')
		FROM leads WHERE 1=1`

	args := []any{}

	if filters.Status != "" {
		args = append(args, string(filters.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}

	if filters.LeadSource != "" {
		args = append(args, filters.LeadSource)
		query += fmt.Sprintf(" AND lead_source = $%d", len(args))
	}

	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	return scanLeads(rows)
}

func (s *Store) SearchLeads(ctx context.Context, query string) ([]store.Lead, error) {
	like := "%" + strings.ToLower(query) + "%"

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, contact_number, COALESCE(email, ''), status, COALESCE(lead_source, ''), COALESCE(owner, '')
		FROM leads
		WHERE lower(name) LIKE $1 OR contact_number LIKE $2 OR lower(COALESCE(email, '')) LIKE $1
		ORDER BY created_at DESC`,
		like, "%"+query+"%")
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	return scanLeads(rows)
}

func (s *Store) CreateLead(ctx context.Context, input store.CreateLeadInput) (*store.Lead, error) {
	lead := store.Lead{
		ID:            fmt.Sprintf("L-%d", rand.Intn(9000)+1000),
		Name:          input.Name,
		ContactNumber: input.ContactNumber,
		Email:         input.Email,
		Status:        store.LeadNew,
		LeadSource:    input.LeadSource,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO leads (id, name, contact_number, email, status, lead_source) VALUES ($1, $2, $3, $4, $5, $6)`,
		lead.ID, lead.Name, lead.ContactNumber, nullable(lead.Email), string(lead.Status), nullable(lead.LeadSource))
	if err != nil {
		return nil, translate(err)
	}

	return &lead, nil
}

func (s *Store) UpdateLead(ctx context.Context, id string, input store.UpdateLeadInput) (*store.Lead, error) {
	row := s.db.QueryRowContext(ctx,
		`UPDATE leads SET
			status = COALESCE(NULLIF($2, ''), status),
			owner = COALESCE(NULLIF($3, ''), owner)
		WHERE id = $1
		RETURNING id, name, contact_number, COALESCE(email, ''), status, COALESCE(lead_source, ''), COALESCE(owner, '')`,
		id, string(input.Status), input.Owner)

	var lead store.Lead
	if err := row.Scan(&lead.ID, &lead.Name, &lead.ContactNumber, &lead.Email, &lead.Status, &lead.LeadSource, &lead.Owner); err != nil {
		return nil, translate(err)
	}

	return &lead, nil
}

func (s *Store) DeleteLead(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}

	return requireAffected(res)
}

func (s *Store) GetCustomer(ctx context.Context, id string) (*store.Customer, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, policies, total_premium FROM customers WHERE id = $1`, id)

	var c store.Customer
	if err := row.Scan(&c.ID, &c.Name, &c.Policies, &c.TotalPremium); err != nil {
		return nil, translate(err)
	}

	return &c, nil
}

func (s *Store) ListProposals(ctx context.Context, filters store.ProposalFilters) ([]store.Proposal, error) {
	query := `SELECT id, customer_id, product_id, premium, status FROM proposals WHERE 1=1`

	args := []any{}

	if filters.Status != "" {
		args = append(args, string(filters.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}

	if filters.CustomerID != "" {
		args = append(args, filters.CustomerID)
		query += fmt.Sprintf(" AND customer_id = $%d", len(args))
	}

	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var out []store.Proposal

	for rows.Next() {
		var p store.Proposal
		if err := rows.Scan(&p.ID, &p.CustomerID, &p.ProductID, &p.Premium, &p.Status); err != nil {
			return nil, translate(err)
		}

		out = append(out, p)
	}

	return out, translate(rows.Err())
}

func (s *Store) GetProposal(ctx context.Context, id string) (*store.Proposal, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, customer_id, product_id, premium, status FROM proposals WHERE id = $1`, id)

	var p store.Proposal
	if err := row.Scan(&p.ID, &p.CustomerID, &p.ProductID, &p.Premium, &p.Status); err != nil {
		return nil, translate(err)
	}

	return &p, nil
}

func (s *Store) CreateProposal(ctx context.Context, input store.CreateProposalInput) (*store.Proposal, error) {
	proposal := store.Proposal{
		ID:         fmt.Sprintf("P-%d", rand.Intn(9000)+3000),
		CustomerID: input.CustomerID,
		ProductID:  input.ProductID,
		Premium:    input.Premium,
		Status:     store.ProposalDraft,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO proposals (id, customer_id, product_id, premium, status) VALUES ($1, $2, $3, $4, $5)`,
		proposal.ID, proposal.CustomerID, proposal.ProductID, proposal.Premium, string(proposal.Status))
	if err != nil {
		return nil, translate(err)
	}

	return &proposal, nil
}

func (s *Store) UpdateProposalStatus(ctx context.Context, id string, status store.ProposalStatus) (*store.Proposal, error) {
	row := s.db.QueryRowContext(ctx,
		`UPDATE proposals SET status = $2 WHERE id = $1
		RETURNING id, customer_id, product_id, premium, status`,
		id, string(status))

	var p store.Proposal
	if err := row.Scan(&p.ID, &p.CustomerID, &p.ProductID, &p.Premium, &p.Status); err != nil {
		return nil, translate(err)
	}

	return &p, nil
}

func (s *Store) DeleteProposal(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM proposals WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}

	return requireAffected(res)
}

func (s *Store) SearchProducts(ctx context.Context, keyword, category string) ([]store.Product, error) {
	query := `SELECT id, name, category, premium FROM products WHERE lower(name) LIKE $1`
	args := []any{"%" + strings.ToLower(keyword) + "%"}

	if category != "" {
		args = append(args, category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var out []store.Product

	for rows.Next() {
		var p store.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Premium); err != nil {
			return nil, translate(err)
		}

		out = append(out, p)
	}

	return out, translate(rows.Err())
}

func (s *Store) GetProduct(ctx context.Context, id string) (*store.ProductDetail, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, category, premium, description, riders, coverage FROM products WHERE id = $1`, id)

	var p store.ProductDetail
	if err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Premium, &p.Description, pq.Array(&p.Riders), &p.Coverage); err != nil {
		return nil, translate(err)
	}

	return &p, nil
}

func (s *Store) ListProductCategories(ctx context.Context) ([]store.ProductCategory, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT category FROM products ORDER BY category`)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var out []store.ProductCategory

	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, translate(err)
		}

		out = append(out, store.ProductCategory{ID: category, Name: category})
	}

	return out, translate(rows.Err())
}

func (s *Store) Performance(ctx context.Context, advisorID, period string) (*store.Performance, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(premium), 0), COUNT(*) FROM proposals WHERE advisor_id = $1`, advisorID)

	perf := store.Performance{AdvisorID: advisorID, Period: period}

	if err := row.Scan(&perf.Premium, &perf.Proposals); err != nil {
		return nil, translate(err)
	}

	row = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FILTER (WHERE status = 'approved'), COUNT(*) FROM proposals WHERE advisor_id = $1`, advisorID)

	var approved, total int
	if err := row.Scan(&approved, &total); err != nil {
		return nil, translate(err)
	}

	if total > 0 {
		perf.ConversionRate = float64(approved) / float64(total)
	}

	return &perf, nil
}

func (s *Store) MonthlyTrend(ctx context.Context, advisorID string) (*store.TrendData, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT to_char(date_trunc('month', created_at), 'Mon'), COALESCE(SUM(premium), 0)
		FROM proposals
		WHERE advisor_id = $1 AND created_at >= date_trunc('month', now()) - INTERVAL '5 months'
		GROUP BY date_trunc('month', created_at)
		ORDER BY date_trunc('month', created_at)`,
		advisorID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	trend := &store.TrendData{}

	for rows.Next() {
		var (
			month   string
			premium float64
		)

		if err := rows.Scan(&month, &premium); err != nil {
			return nil, translate(err)
		}

		trend.Months = append(trend.Months, month)
		trend.Premiums = append(trend.Premiums, premium)
	}

	return trend, translate(rows.Err())
}

func (s *Store) TeamStats(ctx context.Context) (*store.TeamStats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT COALESCE(advisor_id, 'unassigned'), COALESCE(SUM(premium), 0)
		FROM proposals
		GROUP BY advisor_id
		ORDER BY SUM(premium) DESC
		LIMIT 10`)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	stats := &store.TeamStats{}

	var totalPremium float64

	for rows.Next() {
		var entry store.LeaderboardEntry
		if err := rows.Scan(&entry.Advisor, &entry.Premium); err != nil {
			return nil, translate(err)
		}

		stats.Leaderboard = append(stats.Leaderboard, entry)
		totalPremium += entry.Premium
	}

	if err := rows.Err(); err != nil {
		return nil, translate(err)
	}

	if len(stats.Leaderboard) > 0 {
		stats.TopAdvisor = stats.Leaderboard[0].Advisor
		stats.AveragePremium = totalPremium / float64(len(stats.Leaderboard))
	}

	return stats, nil
}

func (s *Store) Funnel(ctx context.Context, period string) (*store.Funnel, error) {
	var (
		leads     int
		qualified int
		proposals int
		policies  int
	)

	row := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE status IN ('qualified', 'won')) FROM leads`)
	if err := row.Scan(&leads, &qualified); err != nil {
		return nil, translate(err)
	}

	row = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'approved') FROM proposals`)
	if err := row.Scan(&proposals, &policies); err != nil {
		return nil, translate(err)
	}

	return &store.Funnel{
		Stages: []store.FunnelStage{
			{Stage: "Leads", Count: leads},
			{Stage: "Opportunities", Count: qualified},
			{Stage: "Proposals", Count: proposals},
			{Stage: "Policies", Count: policies},
		},
	}, nil
}

func (s *Store) ListTasks(ctx context.Context, filters store.TaskFilters) ([]store.Task, error) {
	query := `SELECT id, title, status, due_date, COALESCE(customer_id, '') FROM tasks WHERE 1=1`

	args := []any{}

	if filters.Status != "" {
		args = append(args, string(filters.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}

	if filters.Overdue {
		query += " AND due_date IS NOT NULL AND due_date <= now()"
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var out []store.Task

	for rows.Next() {
		var (
			t   store.Task
			due sql.NullTime
		)

		if err := rows.Scan(&t.ID, &t.Title, &t.Status, &due, &t.CustomerID); err != nil {
			return nil, translate(err)
		}

		if due.Valid {
			t.DueDate = &due.Time
		}

		out = append(out, t)
	}

	return out, translate(rows.Err())
}

func (s *Store) CreateTask(ctx context.Context, input store.CreateTaskInput) (*store.Task, error) {
	task := store.Task{
		ID:         "T-" + fmt.Sprintf("%d", time.Now().UnixNano()%1000000),
		Title:      input.Title,
		Status:     store.TaskPending,
		DueDate:    input.DueDate,
		CustomerID: input.CustomerID,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (id, title, status, due_date, customer_id) VALUES ($1, $2, $3, $4, $5)`,
		task.ID, task.Title, string(task.Status), task.DueDate, nullable(task.CustomerID))
	if err != nil {
		return nil, translate(err)
	}

	return &task, nil
}

func (s *Store) UpdateTask(ctx context.Context, id string, input store.UpdateTaskInput) (*store.Task, error) {
	row := s.db.QueryRowContext(ctx,
		`UPDATE tasks SET
			title = COALESCE(NULLIF($2, ''), title),
			status = COALESCE(NULLIF($3, ''), status),
			due_date = COALESCE($4, due_date)
		WHERE id = $1
		RETURNING id, title, status, due_date, COALESCE(customer_id, '')`,
		id, input.Title, string(input.Status), input.DueDate)

	var (
		t   store.Task
		due sql.NullTime
	)

	if err := row.Scan(&t.ID, &t.Title, &t.Status, &due, &t.CustomerID); err != nil {
		return nil, translate(err)
	}

	if due.Valid {
		t.DueDate = &due.Time
	}

	return &t, nil
}

func (s *Store) DeleteTask(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}

	return requireAffected(res)
}

func (s *Store) CalendarEvents(ctx context.Context, start, end time.Time) ([]store.CalendarEvent, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, start_at, end_at FROM calendar_events
		WHERE start_at >= $1 AND end_at <= $2
		ORDER BY start_at`,
		start, end)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var out []store.CalendarEvent

	for rows.Next() {
		var ev store.CalendarEvent
		if err := rows.Scan(&ev.ID, &ev.Title, &ev.Start, &ev.End); err != nil {
			return nil, translate(err)
		}

		out = append(out, ev)
	}

	return out, translate(rows.Err())
}

func (s *Store) ListBroadcasts(ctx context.Context, filters store.BroadcastFilters) ([]store.Broadcast, error) {
	query := `SELECT id, title, audience, status, scheduled_at FROM broadcasts WHERE 1=1`

	args := []any{}

	if filters.Status != "" {
		args = append(args, string(filters.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var out []store.Broadcast

	for rows.Next() {
		b, err := scanBroadcast(rows)
		if err != nil {
			return nil, err
		}

		out = append(out, *b)
	}

	return out, translate(rows.Err())
}

func (s *Store) GetBroadcast(ctx context.Context, id string) (*store.Broadcast, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, audience, status, scheduled_at FROM broadcasts WHERE id = $1`, id)

	var (
		b         store.Broadcast
		scheduled sql.NullTime
	)

	if err := row.Scan(&b.ID, &b.Title, &b.Audience, &b.Status, &scheduled); err != nil {
		return nil, translate(err)
	}

	if scheduled.Valid {
		b.ScheduledAt = &scheduled.Time
	}

	return &b, nil
}

func (s *Store) CreateBroadcast(ctx context.Context, input store.CreateBroadcastInput) (*store.Broadcast, error) {
	status := store.BroadcastDraft
	if input.ScheduledAt != nil {
		status = store.BroadcastScheduled
	}

	broadcast := store.Broadcast{
		ID:          "B-" + fmt.Sprintf("%d", time.Now().UnixNano()%1000000),
		Title:       input.Title,
		Audience:    input.Audience,
		Status:      status,
		ScheduledAt: input.ScheduledAt,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO broadcasts (id, title, audience, status, scheduled_at) VALUES ($1, $2, $3, $4, $5)`,
		broadcast.ID, broadcast.Title, broadcast.Audience, string(broadcast.Status), broadcast.ScheduledAt)
	if err != nil {
		return nil, translate(err)
	}

	return &broadcast, nil
}

func (s *Store) DeleteBroadcast(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM broadcasts WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}

	return requireAffected(res)
}

func (s *Store) Scenarios(ctx context.Context, customerID string) ([]store.Scenario, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, growth_rate, premium FROM scenarios WHERE customer_id = $1 ORDER BY id`,
		customerID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var out []store.Scenario

	for rows.Next() {
		var sc store.Scenario
		if err := rows.Scan(&sc.ID, &sc.Name, &sc.GrowthRate, &sc.Premium); err != nil {
			return nil, translate(err)
		}

		out = append(out, sc)
	}

	return out, translate(rows.Err())
}

func (s *Store) HealthCheck(ctx context.Context) error {
	return translate(s.db.PingContext(ctx))
}

func (s *Store) Close() error {
	return s.db.Close()
}

func scanLeads(rows *sql.Rows) ([]store.Lead, error) {
	var out []store.Lead

	for rows.Next() {
		var lead store.Lead
		if err := rows.Scan(&lead.ID, &lead.Name, &lead.ContactNumber, &lead.Email, &lead.Status, &lead.LeadSource, &lead.Owner); err != nil {
			return nil, translate(err)
		}

		out = append(out, lead)
	}

	return out, translate(rows.Err())
}

func scanBroadcast(rows *sql.Rows) (*store.Broadcast, error) {
	var (
		b         store.Broadcast
		scheduled sql.NullTime
	)

	if err := rows.Scan(&b.ID, &b.Title, &b.Audience, &b.Status, &scheduled); err != nil {
		return nil, translate(err)
	}

	if scheduled.Valid {
		b.ScheduledAt = &scheduled.Time
	}

	return &b, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return translate(err)
	}

	if affected == 0 {
		return store.ErrNotFound
	}

	return nil
}
