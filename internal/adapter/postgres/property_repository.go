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

// PropertyRepository implements port.PropertyRepository on PostgreSQL.
type PropertyRepository struct {
	pool *pgxpool.Pool
}

// NewPropertyRepository returns a new repository instance.
func NewPropertyRepository(pool *pgxpool.Pool) *PropertyRepository {
	return &PropertyRepository{pool: pool}
}

const propertyColumns = `id, name, description, total_area, available_area, type,
	address, city, state, latitude, longitude, active, created_at, updated_at`

func scanProperty(row pgx.Row) (*domain.Property, error) {
	var p domain.Property
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.TotalArea, &p.AvailableArea, &p.Type,
		&p.Address, &p.City, &p.State, &p.Latitude, &p.Longitude,
		&p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProperty inserts a property and fills its id and timestamps.
func (r *PropertyRepository) CreateProperty(ctx context.Context, p *domain.Property) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO property (name, description, total_area, available_area, type,
			address, city, state, latitude, longitude, active)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		 RETURNING id, created_at, updated_at`,
		p.Name, p.Description, p.TotalArea, p.AvailableArea, p.Type,
		p.Address, p.City, p.State, p.Latitude, p.Longitude, p.Active).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// GetProperty returns the property by id, nil when absent.
func (r *PropertyRepository) GetProperty(ctx context.Context, id int64) (*domain.Property, error) {
	p, err := scanProperty(r.pool.QueryRow(ctx,
		`SELECT `+propertyColumns+` FROM property WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

// ListProperties returns properties ordered by name.
func (r *PropertyRepository) ListProperties(ctx context.Context, activeOnly bool) ([]domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM property ORDER BY name ASC`
	if activeOnly {
		query = `SELECT ` + propertyColumns + ` FROM property WHERE active = true ORDER BY name ASC`
	}
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Property, error) {
		p, err := scanProperty(row)
		if err != nil {
			return domain.Property{}, err
		}
		return *p, nil
	})
}

// UpdateProperty applies the non-nil fields of u.
func (r *PropertyRepository) UpdateProperty(ctx context.Context, u *domain.PropertyUpdate) error {
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
	if u.TotalArea != nil {
		add("total_area", *u.TotalArea)
	}
	if u.AvailableArea != nil {
		add("available_area", *u.AvailableArea)
	}
	if u.Type != nil {
		add("type", *u.Type)
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
	if u.Latitude != nil {
		add("latitude", *u.Latitude)
	}
	if u.Longitude != nil {
		add("longitude", *u.Longitude)
	}
	if u.Active != nil {
		add("active", *u.Active)
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE property SET `+strings.Join(set, ", ")+` WHERE id = $1`, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return port.ErrPropertyNotFound
	}
	return nil
}

// DeleteProperty removes the row.
func (r *PropertyRepository) DeleteProperty(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM property WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return port.ErrPropertyNotFound
	}
	return nil
}
