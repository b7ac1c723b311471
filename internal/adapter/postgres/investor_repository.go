package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ciroschultz/Renovacampo/internal/core/domain"
	"github.com/ciroschultz/Renovacampo/internal/core/port"
)

// InvestorRepository implements port.InvestorRepository on PostgreSQL.
type InvestorRepository struct {
	pool *pgxpool.Pool
}

// NewInvestorRepository returns a new repository instance.
func NewInvestorRepository(pool *pgxpool.Pool) *InvestorRepository {
	return &InvestorRepository{pool: pool}
}

const investorColumns = `id, name, tax_id, email, phone, address, city, state,
	total_funds, invested_funds, description, active, created_at, updated_at`

func scanInvestor(row pgx.Row) (*domain.Investor, error) {
	var inv domain.Investor
	err := row.Scan(
		&inv.ID, &inv.Name, &inv.TaxID, &inv.Email, &inv.Phone,
		&inv.Address, &inv.City, &inv.State,
		&inv.TotalFunds, &inv.InvestedFunds, &inv.Description,
		&inv.Active, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// CreateInvestor inserts an investor and fills its id and timestamps.
func (r *InvestorRepository) CreateInvestor(ctx context.Context, inv *domain.Investor) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO investor (name, tax_id, email, phone, address, city, state,
			total_funds, invested_funds, description, active)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		 RETURNING id, created_at, updated_at`,
		inv.Name, inv.TaxID, inv.Email, inv.Phone, inv.Address, inv.City, inv.State,
		inv.TotalFunds, inv.InvestedFunds, inv.Description, inv.Active).
		Scan(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)
}

// GetInvestor returns the investor by id, nil when absent.
func (r *InvestorRepository) GetInvestor(ctx context.Context, id int64) (*domain.Investor, error) {
	inv, err := scanInvestor(r.pool.QueryRow(ctx,
		`SELECT `+investorColumns+` FROM investor WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return inv, err
}

// GetInvestorByTaxID returns the investor holding the tax id, nil when none.
func (r *InvestorRepository) GetInvestorByTaxID(ctx context.Context, taxID string) (*domain.Investor, error) {
	inv, err := scanInvestor(r.pool.QueryRow(ctx,
		`SELECT `+investorColumns+` FROM investor WHERE tax_id = $1`, taxID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return inv, err
}

// ListInvestors returns investors ordered by name.
func (r *InvestorRepository) ListInvestors(ctx context.Context, activeOnly bool) ([]domain.Investor, error) {
	query := `SELECT ` + investorColumns + ` FROM investor ORDER BY name ASC`
	if activeOnly {
		query = `SELECT ` + investorColumns + ` FROM investor WHERE active = true ORDER BY name ASC`
	}
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Investor, error) {
		inv, err := scanInvestor(row)
		if err != nil {
			return domain.Investor{}, err
		}
		return *inv, nil
	})
}

// UpdateInvestor applies the non-nil fields of u.
func (r *InvestorRepository) UpdateInvestor(ctx context.Context, u *domain.InvestorUpdate) error {
	set := []string{"updated_at = now()"}
	args := []any{u.ID}
	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if u.Name != nil {
		add("name", *u.Name)
	}
	if u.TaxID != nil {
		add("tax_id", *u.TaxID)
	}
	if u.Email != nil {
		add("email", *u.Email)
	}
	if u.Phone != nil {
		add("phone", *u.Phone)
	}
	if u.Address != nil {
		add("address", *u.Address)
	}
	if u.City != nil {
		add("city", *u.City)
	}
	if u.State != nil {
		add("state", *u.State)
	}
	if u.TotalFunds != nil {
		add("total_funds", *u.TotalFunds)
	}
	if u.InvestedFunds != nil {
		add("invested_funds", *u.InvestedFunds)
	}
	if u.Description != nil {
		add("description", *u.Description)
	}
	if u.Active != nil {
		add("active", *u.Active)
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE investor SET `+strings.Join(set, ", ")+` WHERE id = $1`, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return port.ErrInvestorNotFound
	}
	return nil
}

// SetInvestorActive toggles the soft-delete flag.
func (r *InvestorRepository) SetInvestorActive(ctx context.Context, id int64, active bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE investor SET active = $1, updated_at = now() WHERE id = $2`, active, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return port.ErrInvestorNotFound
	}
	return nil
}

// DeleteInvestor removes the row. The usecase refuses deletion while
// contributions reference the investor; the FK backs that up.
func (r *InvestorRepository) DeleteInvestor(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM investor WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return port.ErrInvestorNotFound
	}
	return nil
}
