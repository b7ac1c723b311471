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

// ProjectRepository implements port.ProjectRepository on PostgreSQL.
type ProjectRepository struct {
	pool *pgxpool.Pool
}

// NewProjectRepository returns a new repository instance.
func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

const projectColumns = `id, name, category, description, start_date, estimated_end, end_date,
	estimated_costs, total_costs, estimated_return, status, active, created_at, updated_at`

func scanProject(row pgx.Row) (*domain.Project, error) {
	var p domain.Project
	err := row.Scan(
		&p.ID, &p.Name, &p.Category, &p.Description,
		&p.StartDate, &p.EstimatedEnd, &p.EndDate,
		&p.EstimatedCosts, &p.TotalCosts, &p.EstimatedReturn,
		&p.Status, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProject inserts a project and fills its id and timestamps.
func (r *ProjectRepository) CreateProject(ctx context.Context, p *domain.Project) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO project (name, category, description, start_date, estimated_end, end_date,
			estimated_costs, total_costs, estimated_return, status, active)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		 RETURNING id, created_at, updated_at`,
		p.Name, p.Category, p.Description, p.StartDate, p.EstimatedEnd, p.EndDate,
		p.EstimatedCosts, p.TotalCosts, p.EstimatedReturn, p.Status, p.Active).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// GetProject returns the project by id, nil when absent.
func (r *ProjectRepository) GetProject(ctx context.Context, id int64) (*domain.Project, error) {
	p, err := scanProject(r.pool.QueryRow(ctx,
		`SELECT `+projectColumns+` FROM project WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

// ListProjects returns projects ordered by name.
func (r *ProjectRepository) ListProjects(ctx context.Context, activeOnly bool) ([]domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM project ORDER BY name ASC`
	if activeOnly {
		query = `SELECT ` + projectColumns + ` FROM project WHERE active = true ORDER BY name ASC`
	}
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Project, error) {
		p, err := scanProject(row)
		if err != nil {
			return domain.Project{}, err
		}
		return *p, nil
	})
}

// UpdateProject applies the non-nil fields of u.
func (r *ProjectRepository) UpdateProject(ctx context.Context, u *domain.ProjectUpdate) error {
	set := []string{"updated_at = now()"}
	args := []any{u.ID}
	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if u.Name != nil {
		add("name", *u.Name)
	}
	if u.Category != nil {
		add("category", *u.Category)
	}
	if u.Description != nil {
		add("description", *u.Description)
	}
	if u.StartDate != nil {
		add("start_date", *u.StartDate)
	}
	if u.EstimatedEnd != nil {
		add("estimated_end", *u.EstimatedEnd)
	}
	if u.EndDate != nil {
		add("end_date", *u.EndDate)
	}
	if u.EstimatedCosts != nil {
		add("estimated_costs", *u.EstimatedCosts)
	}
	if u.TotalCosts != nil {
		add("total_costs", *u.TotalCosts)
	}
	if u.EstimatedReturn != nil {
		add("estimated_return", *u.EstimatedReturn)
	}
	if u.Status != nil {
		add("status", *u.Status)
	}
	if u.Active != nil {
		add("active", *u.Active)
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE project SET `+strings.Join(set, ", ")+` WHERE id = $1`, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return port.ErrProjectNotFound
	}
	return nil
}

// DeleteProject removes the row.
func (r *ProjectRepository) DeleteProject(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM project WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return port.ErrProjectNotFound
	}
	return nil
}
