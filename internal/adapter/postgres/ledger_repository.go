package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ciroschultz/Renovacampo/internal/core/domain"
	"github.com/ciroschultz/Renovacampo/internal/core/port"
)

const uniqueViolation = "23505"

// LedgerRepository implements port.LedgerRepository on PostgreSQL. The
// admission path runs in a Serializable transaction that locks the campaign
// row, so the headroom check and the raised-amount update cannot interleave
// with a concurrent admission.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository returns a new repository instance.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

const campaignColumns = `id, name, description, property_id, project_id,
	required_amount, raised_amount, expected_return, minimum_contribution,
	launch_date, funding_deadline, expected_completion,
	status, active, created_at, updated_at`

func scanCampaign(row pgx.Row) (*domain.Campaign, error) {
	var c domain.Campaign
	err := row.Scan(
		&c.ID, &c.Name, &c.Description, &c.PropertyID, &c.ProjectID,
		&c.RequiredAmount, &c.RaisedAmount, &c.ExpectedReturn, &c.MinimumContribution,
		&c.LaunchDate, &c.FundingDeadline, &c.ExpectedCompletion,
		&c.Status, &c.Active, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetActiveCampaign returns the campaign by id, or nil when it is missing
// or soft-deleted.
func (r *LedgerRepository) GetActiveCampaign(ctx context.Context, id int64) (*domain.Campaign, error) {
	c, err := scanCampaign(r.pool.QueryRow(ctx,
		`SELECT `+campaignColumns+` FROM campaign WHERE id = $1 AND active = true`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

// ContributionExists reports whether the (campaign, investor) pair already
// holds a contribution.
func (r *LedgerRepository) ContributionExists(ctx context.Context, campaignID, investorID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM contribution WHERE campaign_id = $1 AND investor_id = $2)`,
		campaignID, investorID).Scan(&exists)
	return exists, err
}

// AdmitContribution locks the campaign row, re-checks eligibility and
// headroom, inserts the contribution and raises the running total in one
// transaction. The campaign flips ACTIVE -> COMPLETED in the same update
// when the target is reached. A concurrent admission that consumed the
// headroom surfaces as ErrCampaignNotAccepting.
func (r *LedgerRepository) AdmitContribution(ctx context.Context, c *domain.Contribution) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	var (
		required, raised decimal.Decimal
		status           domain.CampaignStatus
		deadline         *time.Time
		active           bool
	)
	err = tx.QueryRow(ctx,
		`SELECT required_amount, raised_amount, status, funding_deadline, active
		   FROM campaign WHERE id = $1 FOR UPDATE`, c.CampaignID).
		Scan(&required, &raised, &status, &deadline, &active)
	if errors.Is(err, pgx.ErrNoRows) {
		err = port.ErrCampaignNotFound
		return err
	}
	if err != nil {
		return err
	}

	if !active || status != domain.StatusActive {
		err = port.ErrCampaignNotAccepting
		return err
	}
	if deadline != nil && deadline.Before(domain.DateOnly(time.Now())) {
		err = port.ErrCampaignNotAccepting
		return err
	}
	newTotal := raised.Add(c.Amount)
	if newTotal.GreaterThan(required) {
		err = port.ErrCampaignNotAccepting
		return err
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO contribution (campaign_id, investor_id, amount, shareholding_percentage, contributed_at)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		c.CampaignID, c.InvestorID, c.Amount, c.ShareholdingPercentage, c.ContributedAt).
		Scan(&c.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			err = port.ErrDuplicateContribution
		}
		return err
	}

	newStatus := status
	if !newTotal.LessThan(required) {
		newStatus = domain.StatusCompleted
	}
	_, err = tx.Exec(ctx,
		`UPDATE campaign SET raised_amount = $1, status = $2, updated_at = now() WHERE id = $3`,
		newTotal, newStatus, c.CampaignID)
	return err
}

// WithdrawContribution deletes the pair's contribution and lowers the
// campaign's raised amount, floored at zero. Absent pairs are a no-op and
// the campaign status is never reverted.
func (r *LedgerRepository) WithdrawContribution(ctx context.Context, campaignID, investorID int64) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	var (
		contributionID int64
		amount         decimal.Decimal
	)
	err = tx.QueryRow(ctx,
		`SELECT id, amount FROM contribution WHERE campaign_id = $1 AND investor_id = $2 FOR UPDATE`,
		campaignID, investorID).Scan(&contributionID, &amount)
	if errors.Is(err, pgx.ErrNoRows) {
		err = nil
		return nil
	}
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`UPDATE campaign SET raised_amount = GREATEST(raised_amount - $1, 0), updated_at = now() WHERE id = $2`,
		amount, campaignID)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `DELETE FROM contribution WHERE id = $1`, contributionID)
	return err
}

const contributionColumns = `id, campaign_id, investor_id, amount, shareholding_percentage, contributed_at`

func collectContributions(rows pgx.Rows) ([]domain.Contribution, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Contribution, error) {
		var c domain.Contribution
		err := row.Scan(&c.ID, &c.CampaignID, &c.InvestorID, &c.Amount, &c.ShareholdingPercentage, &c.ContributedAt)
		return c, err
	})
}

// CampaignContributions lists a campaign's contributions, newest first.
func (r *LedgerRepository) CampaignContributions(ctx context.Context, campaignID int64) ([]domain.Contribution, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+contributionColumns+` FROM contribution WHERE campaign_id = $1 ORDER BY contributed_at DESC`,
		campaignID)
	if err != nil {
		return nil, err
	}
	return collectContributions(rows)
}

// InvestorContributions lists one investor's contributions, newest first.
func (r *LedgerRepository) InvestorContributions(ctx context.Context, investorID int64) ([]domain.Contribution, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+contributionColumns+` FROM contribution WHERE investor_id = $1 ORDER BY contributed_at DESC`,
		investorID)
	if err != nil {
		return nil, err
	}
	return collectContributions(rows)
}

// CampaignContributionTotal sums the admitted amounts of one campaign.
func (r *LedgerRepository) CampaignContributionTotal(ctx context.Context, campaignID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM contribution WHERE campaign_id = $1`, campaignID).
		Scan(&total)
	return total, err
}

// InvestorContributionTotal sums one investor's amounts across campaigns.
func (r *LedgerRepository) InvestorContributionTotal(ctx context.Context, investorID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM contribution WHERE investor_id = $1`, investorID).
		Scan(&total)
	return total, err
}

// CountCampaignInvestors counts distinct investors in a campaign.
func (r *LedgerRepository) CountCampaignInvestors(ctx context.Context, campaignID int64) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(DISTINCT investor_id) FROM contribution WHERE campaign_id = $1`, campaignID).
		Scan(&n)
	return n, err
}

// CountInvestorCampaigns counts the campaigns an investor participates in.
func (r *LedgerRepository) CountInvestorCampaigns(ctx context.Context, investorID int64) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(DISTINCT campaign_id) FROM contribution WHERE investor_id = $1`, investorID).
		Scan(&n)
	return n, err
}

// TotalRequired sums the targets of active campaigns.
func (r *LedgerRepository) TotalRequired(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(required_amount), 0) FROM campaign WHERE active = true`).Scan(&total)
	return total, err
}

// TotalRaised sums the raised amounts of active campaigns.
func (r *LedgerRepository) TotalRaised(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(raised_amount), 0) FROM campaign WHERE active = true`).Scan(&total)
	return total, err
}

// CountActiveCampaigns counts campaigns not soft-deleted.
func (r *LedgerRepository) CountActiveCampaigns(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM campaign WHERE active = true`).Scan(&n)
	return n, err
}

// AverageExpectedReturn averages the declared expected returns of active
// campaigns; zero when none declare one.
func (r *LedgerRepository) AverageExpectedReturn(ctx context.Context) (decimal.Decimal, error) {
	var avg decimal.Decimal
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(ROUND(AVG(expected_return), 2), 0)
		   FROM campaign WHERE active = true AND expected_return IS NOT NULL`).Scan(&avg)
	return avg, err
}
