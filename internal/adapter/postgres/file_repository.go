package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ciroschultz/Renovacampo/internal/core/domain"
	"github.com/ciroschultz/Renovacampo/internal/core/port"
)

// FileRepository implements port.FileRepository on PostgreSQL.
type FileRepository struct {
	pool *pgxpool.Pool
}

// NewFileRepository returns a new repository instance.
func NewFileRepository(pool *pgxpool.Pool) *FileRepository {
	return &FileRepository{pool: pool}
}

const fileColumns = `id, entity_type, entity_id, file_name, stored_name, content_type, size_bytes, uploaded_at`

// CreateFile inserts file metadata and fills its id.
func (r *FileRepository) CreateFile(ctx context.Context, f *domain.StoredFile) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO stored_file (entity_type, entity_id, file_name, stored_name, content_type, size_bytes, uploaded_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id`,
		f.EntityType, f.EntityID, f.FileName, f.StoredName, f.ContentType, f.SizeBytes, f.UploadedAt).
		Scan(&f.ID)
}

// GetFile returns the metadata row by id, nil when absent.
func (r *FileRepository) GetFile(ctx context.Context, id int64) (*domain.StoredFile, error) {
	var f domain.StoredFile
	err := r.pool.QueryRow(ctx,
		`SELECT `+fileColumns+` FROM stored_file WHERE id = $1`, id).
		Scan(&f.ID, &f.EntityType, &f.EntityID, &f.FileName, &f.StoredName,
			&f.ContentType, &f.SizeBytes, &f.UploadedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// ListFiles returns the attachments of one entity, newest first.
func (r *FileRepository) ListFiles(ctx context.Context, owner domain.AttachmentOwner, entityID int64) ([]domain.StoredFile, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+fileColumns+` FROM stored_file
		  WHERE entity_type = $1 AND entity_id = $2 ORDER BY uploaded_at DESC`,
		owner, entityID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.StoredFile, error) {
		var f domain.StoredFile
		err := row.Scan(&f.ID, &f.EntityType, &f.EntityID, &f.FileName, &f.StoredName,
			&f.ContentType, &f.SizeBytes, &f.UploadedAt)
		return f, err
	})
}

// DeleteFile removes the metadata row.
func (r *FileRepository) DeleteFile(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM stored_file WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return port.ErrFileNotFound
	}
	return nil
}
