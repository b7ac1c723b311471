package usecase

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ciroschultz/Renovacampo/internal/core/domain"
	"github.com/ciroschultz/Renovacampo/internal/core/port"
	"github.com/ciroschultz/Renovacampo/internal/storage"
)

// FileUseCase implements entity attachments: bytes on disk, metadata in
// the file repository.
type FileUseCase struct {
	repo port.FileRepository
	disk *storage.Disk
}

// NewFileUseCase wires the attachment service.
func NewFileUseCase(repo port.FileRepository, disk *storage.Disk) *FileUseCase {
	return &FileUseCase{repo: repo, disk: disk}
}

func validOwner(owner domain.AttachmentOwner) bool {
	switch owner {
	case domain.OwnerProperty, domain.OwnerProject, domain.OwnerCampaign, domain.OwnerInvestor:
		return true
	}
	return false
}

// Upload stores content on disk under a generated name and records its
// metadata. The disk file is removed again if the metadata insert fails.
func (u *FileUseCase) Upload(ctx context.Context, owner domain.AttachmentOwner, entityID int64, fileName, contentType string, content io.Reader) (*domain.StoredFile, error) {
	if !validOwner(owner) {
		return nil, fmt.Errorf("%w: unknown entity type %q", port.ErrInvalidInput, owner)
	}
	if entityID == 0 || fileName == "" {
		return nil, fmt.Errorf("%w: entity id and file name are required", port.ErrInvalidInput)
	}

	storedName, size, err := u.disk.Save(fileName, content)
	if err != nil {
		return nil, fmt.Errorf("store file: %w", err)
	}

	f := &domain.StoredFile{
		EntityType:  owner,
		EntityID:    entityID,
		FileName:    fileName,
		StoredName:  storedName,
		ContentType: contentType,
		SizeBytes:   size,
		UploadedAt:  time.Now().UTC(),
	}
	if err := u.repo.CreateFile(ctx, f); err != nil {
		_ = u.disk.Remove(storedName)
		return nil, fmt.Errorf("record file: %w", err)
	}
	return f, nil
}

// Open returns the metadata and a reader over the stored bytes.
func (u *FileUseCase) Open(ctx context.Context, id int64) (*domain.StoredFile, io.ReadCloser, error) {
	f, err := u.repo.GetFile(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if f == nil {
		return nil, nil, port.ErrFileNotFound
	}
	rc, err := u.disk.Open(f.StoredName)
	if err != nil {
		return nil, nil, fmt.Errorf("open stored file: %w", err)
	}
	return f, rc, nil
}

// List returns the attachments of one entity.
func (u *FileUseCase) List(ctx context.Context, owner domain.AttachmentOwner, entityID int64) ([]domain.StoredFile, error) {
	if !validOwner(owner) {
		return nil, fmt.Errorf("%w: unknown entity type %q", port.ErrInvalidInput, owner)
	}
	return u.repo.ListFiles(ctx, owner, entityID)
}

// Delete removes the metadata row first, then the disk file.
func (u *FileUseCase) Delete(ctx context.Context, id int64) error {
	f, err := u.repo.GetFile(ctx, id)
	if err != nil {
		return err
	}
	if f == nil {
		return port.ErrFileNotFound
	}
	if err := u.repo.DeleteFile(ctx, id); err != nil {
		return err
	}
	return u.disk.Remove(f.StoredName)
}
