package port

import (
	"context"
	"io"

	"github.com/ciroschultz/Renovacampo/internal/core/domain"
)

// FileRepository persists attachment metadata. The bytes live on disk
// under the stored name; see the storage package.
type FileRepository interface {
	CreateFile(ctx context.Context, f *domain.StoredFile) error
	GetFile(ctx context.Context, id int64) (*domain.StoredFile, error)
	ListFiles(ctx context.Context, owner domain.AttachmentOwner, entityID int64) ([]domain.StoredFile, error)
	DeleteFile(ctx context.Context, id int64) error
}

// FileUseCase is the inbound port for entity attachments.
type FileUseCase interface {
	// Upload stores the content on disk and records its metadata. The
	// returned StoredFile carries the generated id and stored name.
	Upload(ctx context.Context, owner domain.AttachmentOwner, entityID int64, fileName, contentType string, content io.Reader) (*domain.StoredFile, error)
	// Open returns the metadata and a reader over the stored bytes. The
	// caller closes the reader.
	Open(ctx context.Context, id int64) (*domain.StoredFile, io.ReadCloser, error)
	List(ctx context.Context, owner domain.AttachmentOwner, entityID int64) ([]domain.StoredFile, error)
	// Delete removes the metadata row and the on-disk file.
	Delete(ctx context.Context, id int64) error
}
