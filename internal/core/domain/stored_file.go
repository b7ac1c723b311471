package domain

import "time"

// AttachmentOwner names the entity kind a stored file is attached to.
type AttachmentOwner string

const (
	OwnerProperty AttachmentOwner = "PROPERTY"
	OwnerProject  AttachmentOwner = "PROJECT"
	OwnerCampaign AttachmentOwner = "CAMPAIGN"
	OwnerInvestor AttachmentOwner = "INVESTOR"
)

// StoredFile is the metadata row for an attachment kept on disk. StoredName
// is the opaque on-disk name; FileName is the name the client uploaded.
type StoredFile struct {
	ID          int64
	EntityType  AttachmentOwner
	EntityID    int64
	FileName    string
	StoredName  string
	ContentType string
	SizeBytes   int64
	UploadedAt  time.Time
}
