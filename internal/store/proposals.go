package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/Simplici0/costsheet/internal/costsheet"
)

// Proposal is a calculated proposal kept verbatim. Reading it back never recalculates,
// so later rate changes do not alter stored results.
type Proposal struct {
	ID        uuid.UUID                `json:"id"`
	CreatedAt time.Time                `json:"createdAt"`
	Title     string                   `json:"title"`
	Notes     string                   `json:"notes"`
	Params    costsheet.GlobalParams   `json:"params"`
	Services  []costsheet.ServiceInput `json:"services"`
	Result    costsheet.GlobalResult   `json:"result"`
}

// ProposalSummary is the list view of a proposal.
type ProposalSummary struct {
	ID             uuid.UUID        `json:"id"`
	CreatedAt      time.Time        `json:"createdAt"`
	Title          string           `json:"title"`
	Notes          string           `json:"notes"`
	Regime         costsheet.Regime `json:"regime"`
	ContractMonths int              `json:"contractMonths"`
	TotalMonthly   decimal.Decimal  `json:"totalMonthly"`
	GlobalValue    decimal.Decimal  `json:"globalValue"`
}

type summaryRow struct {
	ID             uuid.UUID       `db:"id"`
	CreatedAt      string          `db:"created_at"`
	Title          string          `db:"title"`
	Notes          string          `db:"notes"`
	Regime         string          `db:"regime"`
	ContractMonths int             `db:"contract_months"`
	TotalMonthly   decimal.Decimal `db:"total_monthly"`
	GlobalValue    decimal.Decimal `db:"global_value"`
}

type proposalRow struct {
	summaryRow
	ParamsJSON   string `db:"params_json"`
	ServicesJSON string `db:"services_json"`
	ResultJSON   string `db:"result_json"`
}

type ProposalStore struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewProposalStore(db *sqlx.DB) *ProposalStore {
	return &ProposalStore{db: db, now: time.Now}
}

// Save stores p. A zero ID or CreatedAt is filled in before writing.
func (s *ProposalStore) Save(ctx context.Context, p *Proposal) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.now()
	}
	p.CreatedAt = p.CreatedAt.UTC().Truncate(time.Microsecond)

	params, err := json.Marshal(p.Params)
	if err != nil {
		return fmt.Errorf("encode proposal params: %w", err)
	}
	services, err := json.Marshal(p.Services)
	if err != nil {
		return fmt.Errorf("encode proposal services: %w", err)
	}
	result, err := json.Marshal(p.Result)
	if err != nil {
		return fmt.Errorf("encode proposal result: %w", err)
	}

	row := proposalRow{
		summaryRow: summaryRow{
			ID:             p.ID,
			CreatedAt:      FormatTime(p.CreatedAt),
			Title:          p.Title,
			Notes:          p.Notes,
			Regime:         string(p.Params.Regime),
			ContractMonths: p.Params.ContractMonths,
			TotalMonthly:   p.Result.TotalMonthlyAllServices,
			GlobalValue:    p.Result.GlobalProposalValue,
		},
		ParamsJSON:   string(params),
		ServicesJSON: string(services),
		ResultJSON:   string(result),
	}

	if _, err := s.db.NamedExecContext(ctx, `
		INSERT INTO proposals (
			id,
			created_at,
			title,
			notes,
			regime,
			contract_months,
			params_json,
			services_json,
			result_json,
			total_monthly,
			global_value
		) VALUES (
			:id,
			:created_at,
			:title,
			:notes,
			:regime,
			:contract_months,
			:params_json,
			:services_json,
			:result_json,
			:total_monthly,
			:global_value
		)
	`, row); err != nil {
		return fmt.Errorf("insert proposal: %w", err)
	}
	return nil
}

// Get returns the snapshot stored under id.
func (s *ProposalStore) Get(ctx context.Context, id uuid.UUID) (Proposal, error) {
	var row proposalRow
	err := s.db.GetContext(ctx, &row, `
		SELECT
			id,
			created_at,
			title,
			notes,
			regime,
			contract_months,
			params_json,
			services_json,
			result_json,
			total_monthly,
			global_value
		FROM proposals
		WHERE id = ?
	`, id.String())
	if errors.Is(err, sql.ErrNoRows) {
		return Proposal{}, ErrNotFound
	}
	if err != nil {
		return Proposal{}, fmt.Errorf("query proposal: %w", err)
	}

	createdAt, err := parseTime(row.CreatedAt)
	if err != nil {
		return Proposal{}, err
	}

	p := Proposal{
		ID:        row.ID,
		CreatedAt: createdAt,
		Title:     row.Title,
		Notes:     row.Notes,
	}
	if err := json.Unmarshal([]byte(row.ParamsJSON), &p.Params); err != nil {
		return Proposal{}, fmt.Errorf("decode proposal params: %w", err)
	}
	if err := json.Unmarshal([]byte(row.ServicesJSON), &p.Services); err != nil {
		return Proposal{}, fmt.Errorf("decode proposal services: %w", err)
	}
	if err := json.Unmarshal([]byte(row.ResultJSON), &p.Result); err != nil {
		return Proposal{}, fmt.Errorf("decode proposal result: %w", err)
	}
	return p, nil
}

// List returns proposals newest first. A non-empty query filters on title and notes.
func (s *ProposalStore) List(ctx context.Context, query string) ([]ProposalSummary, error) {
	search := "%" + query + "%"
	var rows []summaryRow
	if err := s.db.SelectContext(ctx, &rows, `
		SELECT
			id,
			created_at,
			title,
			notes,
			regime,
			contract_months,
			total_monthly,
			global_value
		FROM proposals
		WHERE (? = '' OR title LIKE ? OR notes LIKE ?)
		ORDER BY created_at DESC, id DESC
	`, query, search, search); err != nil {
		return nil, fmt.Errorf("query proposals: %w", err)
	}

	out := make([]ProposalSummary, 0, len(rows))
	for _, row := range rows {
		createdAt, err := parseTime(row.CreatedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, ProposalSummary{
			ID:             row.ID,
			CreatedAt:      createdAt,
			Title:          row.Title,
			Notes:          row.Notes,
			Regime:         costsheet.Regime(row.Regime),
			ContractMonths: row.ContractMonths,
			TotalMonthly:   row.TotalMonthly,
			GlobalValue:    row.GlobalValue,
		})
	}
	return out, nil
}
