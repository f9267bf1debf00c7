package models

import (
	"fmt"
	"regexp"

	"github.com/google/uuid"
)

// MaxTitleLength bounds asset titles
const MaxTitleLength = 100

// contentHashPattern matches a 64-character hex digest (either case)
var contentHashPattern = regexp.MustCompile(`^[0-9a-fA-F]{64}$`)

// CreateAssetRequest carries the fields needed to register a new asset
type CreateAssetRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	AssetType   AssetType `json:"asset_type"`
	CreatorID   string    `json:"creator_id"`
	ContentHash string    `json:"content_hash"`
	Metadata    *Metadata `json:"metadata"`
}

// Validate checks the request against the registration preconditions
func (r *CreateAssetRequest) Validate() error {
	if r.Title == "" {
		return fmt.Errorf("title is required")
	}
	if len(r.Title) > MaxTitleLength {
		return fmt.Errorf("title exceeds %d characters", MaxTitleLength)
	}
	if _, err := uuid.Parse(r.CreatorID); err != nil {
		return fmt.Errorf("creator_id must be a valid UUID")
	}
	if !contentHashPattern.MatchString(r.ContentHash) {
		return fmt.Errorf("content_hash must be a 64-character hex digest")
	}
	if !r.AssetType.Valid() {
		return fmt.Errorf("unknown asset_type: %s", r.AssetType)
	}
	if r.Metadata == nil {
		return fmt.Errorf("metadata is required")
	}
	return nil
}

// TransferAssetRequest carries the fields of a transfer operation
type TransferAssetRequest struct {
	FromID       string       `json:"from_id"`
	ToID         string       `json:"to_id"`
	TransferType TransferType `json:"transfer_type"`
}

// Validate checks identifier formats and the transfer type
func (r *TransferAssetRequest) Validate() error {
	if _, err := uuid.Parse(r.FromID); err != nil {
		return fmt.Errorf("from_id must be a valid UUID")
	}
	if _, err := uuid.Parse(r.ToID); err != nil {
		return fmt.Errorf("to_id must be a valid UUID")
	}
	if !r.TransferType.Valid() {
		return fmt.Errorf("unknown transfer_type: %s", r.TransferType)
	}
	return nil
}

// MetadataUpdate is a partial metadata document. Nil fields are omitted
// from the merge and keep their stored values; supplied fields overwrite.
// Dimensions, when supplied, replaces the stored value wholesale.
// AdditionalTags is a pointer so a supplied empty array clears the stored
// tags instead of being dropped as a zero value.
type MetadataUpdate struct {
	FileFormat     *string     `json:"file_format,omitempty"`
	FileSize       *int64      `json:"file_size,omitempty"`
	Dimensions     *Dimensions `json:"dimensions,omitempty"`
	Duration       *float64    `json:"duration,omitempty"`
	AdditionalTags *[]string   `json:"additional_tags,omitempty"`
}
