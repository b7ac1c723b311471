package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ciroschultz/Renovacampo/internal/core/domain"
	"github.com/ciroschultz/Renovacampo/internal/core/port"
)

// CampaignRepository implements port.CampaignRepository on PostgreSQL.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository returns a new repository instance.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

func collectCampaigns(rows pgx.Rows) ([]domain.Campaign, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Campaign, error) {
		var c domain.Campaign
		err := row.Scan(
			&c.ID, &c.Name, &c.Description, &c.PropertyID, &c.ProjectID,
			&c.RequiredAmount, &c.RaisedAmount, &c.ExpectedReturn, &c.MinimumContribution,
			&c.LaunchDate, &c.FundingDeadline, &c.ExpectedCompletion,
			&c.Status, &c.Active, &c.CreatedAt, &c.UpdatedAt,
		)
		return c, err
	})
}

// CreateCampaign inserts a campaign and fills its id and timestamps.
func (r *CampaignRepository) CreateCampaign(ctx context.Context, c *domain.Campaign) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO campaign (name, description, property_id, project_id,
			required_amount, raised_amount, expected_return, minimum_contribution,
			launch_date, funding_deadline, expected_completion, status, active)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		 RETURNING id, created_at, updated_at`,
		c.Name, c.Description, c.PropertyID, c.ProjectID,
		c.RequiredAmount, c.RaisedAmount, c.ExpectedReturn, c.MinimumContribution,
		c.LaunchDate, c.FundingDeadline, c.ExpectedCompletion, c.Status, c.Active).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// GetActiveCampaign returns the campaign by id, nil when missing or
// soft-deleted.
func (r *CampaignRepository) GetActiveCampaign(ctx context.Context, id int64) (*domain.Campaign, error) {
	c, err := scanCampaign(r.pool.QueryRow(ctx,
		`SELECT `+campaignColumns+` FROM campaign WHERE id = $1 AND active = true`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

// ListActiveCampaigns returns active campaigns, newest first.
func (r *CampaignRepository) ListActiveCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+campaignColumns+` FROM campaign WHERE active = true ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return collectCampaigns(rows)
}

// ListAllCampaigns returns every campaign including deactivated ones.
func (r *CampaignRepository) ListAllCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+campaignColumns+` FROM campaign ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return collectCampaigns(rows)
}

// UpdateCampaign applies the non-nil fields of u. The raised amount is not
// part of the update set; only the ledger touches it.
func (r *CampaignRepository) UpdateCampaign(ctx context.Context, u *domain.CampaignUpdate) error {
	set := []string{"updated_at = now()"}
	args := []any{u.ID}
	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if u.Name != nil {
		add("name", *u.Name)
	}
	if u.Description != nil {
		add("description", *u.Description)
	}
	if u.PropertyID != nil {
		add("property_id", *u.PropertyID)
	}
	if u.ProjectID != nil {
		add("project_id", *u.ProjectID)
	}
	if u.RequiredAmount != nil {
		add("required_amount", *u.RequiredAmount)
	}
	if u.ExpectedReturn != nil {
		add("expected_return", *u.ExpectedReturn)
	}
	if u.MinimumContribution != nil {
		add("minimum_contribution", *u.MinimumContribution)
	}
	if u.LaunchDate != nil {
		add("launch_date", *u.LaunchDate)
	}
	if u.FundingDeadline != nil {
		add("funding_deadline", *u.FundingDeadline)
	}
	if u.ExpectedCompletion != nil {
		add("expected_completion", *u.ExpectedCompletion)
	}
	if u.Status != nil {
		add("status", *u.Status)
	}
	if u.Active != nil {
		add("active", *u.Active)
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE campaign SET `+strings.Join(set, ", ")+` WHERE id = $1`, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return port.ErrCampaignNotFound
	}
	return nil
}

// DeactivateCampaign soft-deletes the campaign.
func (r *CampaignRepository) DeactivateCampaign(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE campaign SET active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return port.ErrCampaignNotFound
	}
	return nil
}

// DeleteCampaign removes the row; contributions cascade at the schema level.
func (r *CampaignRepository) DeleteCampaign(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM campaign WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return port.ErrCampaignNotFound
	}
	return nil
}

// ListCampaignsByStatus returns active campaigns in the given state.
func (r *CampaignRepository) ListCampaignsByStatus(ctx context.Context, status domain.CampaignStatus) ([]domain.Campaign, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+campaignColumns+` FROM campaign
		  WHERE active = true AND status = $1 ORDER BY created_at DESC`, status)
	if err != nil {
		return nil, err
	}
	return collectCampaigns(rows)
}

// ListCampaignsByProperty returns active campaigns raised for a property.
func (r *CampaignRepository) ListCampaignsByProperty(ctx context.Context, propertyID int64) ([]domain.Campaign, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+campaignColumns+` FROM campaign
		  WHERE active = true AND property_id = $1 ORDER BY created_at DESC`, propertyID)
	if err != nil {
		return nil, err
	}
	return collectCampaigns(rows)
}

// ListCampaignsByProject returns active campaigns funding a project.
func (r *CampaignRepository) ListCampaignsByProject(ctx context.Context, projectID int64) ([]domain.Campaign, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+campaignColumns+` FROM campaign
		  WHERE active = true AND project_id = $1 ORDER BY created_at DESC`, projectID)
	if err != nil {
		return nil, err
	}
	return collectCampaigns(rows)
}

// ListOpenFunding returns active campaigns whose deadline is today or
// later, nearest deadline first.
func (r *CampaignRepository) ListOpenFunding(ctx context.Context, today time.Time) ([]domain.Campaign, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+campaignColumns+` FROM campaign
		  WHERE active = true AND funding_deadline >= $1 ORDER BY funding_deadline ASC`,
		domain.DateOnly(today))
	if err != nil {
		return nil, err
	}
	return collectCampaigns(rows)
}

// ListOverdueFunding returns active campaigns whose deadline passed without
// reaching a terminal state.
func (r *CampaignRepository) ListOverdueFunding(ctx context.Context, today time.Time) ([]domain.Campaign, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+campaignColumns+` FROM campaign
		  WHERE active = true AND funding_deadline < $1
		    AND status NOT IN ('COMPLETED', 'CANCELLED')`,
		domain.DateOnly(today))
	if err != nil {
		return nil, err
	}
	return collectCampaigns(rows)
}

// ListUnderfunded returns active campaigns still short of their target,
// nearest deadline first.
func (r *CampaignRepository) ListUnderfunded(ctx context.Context) ([]domain.Campaign, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+campaignColumns+` FROM campaign
		  WHERE active = true AND raised_amount < required_amount
		  ORDER BY funding_deadline ASC NULLS LAST`)
	if err != nil {
		return nil, err
	}
	return collectCampaigns(rows)
}

// SearchCampaigns matches term against campaign name, description and the
// linked property's name, case-insensitively.
func (r *CampaignRepository) SearchCampaigns(ctx context.Context, term string) ([]domain.Campaign, error) {
	pattern := "%" + term + "%"
	rows, err := r.pool.Query(ctx,
		`SELECT c.id, c.name, c.description, c.property_id, c.project_id,
		        c.required_amount, c.raised_amount, c.expected_return, c.minimum_contribution,
		        c.launch_date, c.funding_deadline, c.expected_completion,
		        c.status, c.active, c.created_at, c.updated_at
		   FROM campaign c
		   JOIN property p ON p.id = c.property_id
		  WHERE c.active = true
		    AND (c.name ILIKE $1 OR c.description ILIKE $1 OR p.name ILIKE $1)
		  ORDER BY c.created_at DESC`, pattern)
	if err != nil {
		return nil, err
	}
	return collectCampaigns(rows)
}
