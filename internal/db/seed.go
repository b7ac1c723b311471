package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed inserts demo data: a handful of properties with renovation projects,
// investors, and funding campaigns in assorted states. Inserts use fixed ids
// with ON CONFLICT DO NOTHING so reseeding an existing database is harmless.
func Seed(ctx context.Context, db *pgxpool.Pool) error {
	properties := []struct {
		name, propType, city, state string
		totalArea, availableArea    int
	}{
		{"Fazenda Boa Vista", "RURAL", "Uberaba", "MG", 420, 320},
		{"Sitio das Palmeiras", "RURAL", "Ribeirao Preto", "SP", 85, 85},
		{"Chacara Santa Rita", "MIXED", "Goiania", "GO", 30, 12},
	}
	for i, p := range properties {
		_, err := db.Exec(ctx, `INSERT INTO property
    (id, name, description, total_area, available_area, type, address, city, state, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,now(),now()) ON CONFLICT DO NOTHING`,
			i+1, p.name, fmt.Sprintf("Demo property in %s/%s", p.city, p.state),
			p.totalArea, p.availableArea, p.propType, "Zona rural, s/n", p.city, p.state)
		if err != nil {
			return err
		}
	}

	projects := []struct {
		name, category            string
		estimatedCosts, estReturn string
		status                    string
	}{
		{"Irrigation overhaul", "INFRASTRUCTURE", "250000.00", "14.50", "IN_PROGRESS"},
		{"Soil recovery program", "AGRICULTURE", "90000.00", "11.00", "PLANNED"},
		{"Storage barn construction", "CONSTRUCTION", "180000.00", "9.75", "PLANNED"},
	}
	for i, p := range projects {
		start := time.Now().AddDate(0, -1, 0)
		estimatedEnd := time.Now().AddDate(1, 0, 0)
		_, err := db.Exec(ctx, `INSERT INTO project
    (id, name, category, description, start_date, estimated_end, estimated_costs, estimated_return, status, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,now(),now()) ON CONFLICT DO NOTHING`,
			i+1, p.name, p.category, "Demo renovation project",
			start, estimatedEnd, p.estimatedCosts, p.estReturn, p.status)
		if err != nil {
			return err
		}
	}

	investors := []struct {
		name, taxID, email, totalFunds string
	}{
		{"Ana Ferreira", "111.444.777-35", "ana@example.com", "500000.00"},
		{"Bruno Castro", "222.555.888-01", "bruno@example.com", "120000.00"},
		{"Clara Nogueira", "333.666.999-22", "clara@example.com", "75000.00"},
		{"Diego Martins", "444.777.000-18", "diego@example.com", "300000.00"},
	}
	for i, inv := range investors {
		_, err := db.Exec(ctx, `INSERT INTO investor
    (id, name, tax_id, email, total_funds, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,now(),now()) ON CONFLICT DO NOTHING`,
			i+1, inv.name, inv.taxID, inv.email, inv.totalFunds)
		if err != nil {
			return err
		}
	}

	campaigns := []struct {
		name                  string
		propertyID, projectID int
		required, minimum     string
		expectedReturn        string
		status                string
		deadlineOffsetDays    int
	}{
		{"Boa Vista irrigation round", 1, 1, "250000.00", "5000.00", "14.50", "ACTIVE", 45},
		{"Palmeiras soil recovery", 2, 2, "90000.00", "1000.00", "11.00", "ACTIVE", 20},
		{"Santa Rita barn fund", 3, 3, "180000.00", "2500.00", "9.75", "PLANNING", 90},
	}
	for i, c := range campaigns {
		launch := time.Now().AddDate(0, 0, -10)
		deadline := time.Now().AddDate(0, 0, c.deadlineOffsetDays)
		completion := time.Now().AddDate(1, 6, 0)
		_, err := db.Exec(ctx, `INSERT INTO campaign
    (id, name, description, property_id, project_id, required_amount, raised_amount,
     expected_return, minimum_contribution, launch_date, funding_deadline, expected_completion,
     status, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,0,$7,$8,$9,$10,$11,$12,now(),now()) ON CONFLICT DO NOTHING`,
			i+1, c.name, "Demo funding campaign", c.propertyID, c.projectID,
			c.required, c.expectedReturn, c.minimum, launch, deadline, completion, c.status)
		if err != nil {
			return err
		}
	}

	// keep the sequences ahead of the fixed ids used above
	for _, seq := range []string{"property", "project", "investor", "campaign"} {
		_, err := db.Exec(ctx,
			fmt.Sprintf(`SELECT setval(pg_get_serial_sequence('%s', 'id'), (SELECT COALESCE(MAX(id), 1) FROM %s))`, seq, seq))
		if err != nil {
			return err
		}
	}
	return nil
}
