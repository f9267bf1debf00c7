package models

import "time"

// AssetType classifies the registered content. Fixed at creation.
type AssetType string

const (
	AssetTypeImage    AssetType = "IMAGE"
	AssetTypeAudio    AssetType = "AUDIO"
	AssetTypeVideo    AssetType = "VIDEO"
	AssetTypeDocument AssetType = "DOCUMENT"
	AssetTypeCode     AssetType = "CODE"
)

// Valid reports whether t is one of the enumerated asset types
func (t AssetType) Valid() bool {
	switch t {
	case AssetTypeImage, AssetTypeAudio, AssetTypeVideo, AssetTypeDocument, AssetTypeCode:
		return true
	}
	return false
}

// AssetStatus is the asset's lifecycle state.
//
// ACTIVE is the initial state. A FULL transfer moves the asset to
// TRANSFERRED, after which it cannot be transferred again. Revoke moves any
// non-revoked asset to REVOKED. Delete moves any asset to DELETED and is
// the only flag used for removal; records are never physically deleted.
type AssetStatus string

const (
	StatusActive      AssetStatus = "ACTIVE"
	StatusTransferred AssetStatus = "TRANSFERRED"
	StatusRevoked     AssetStatus = "REVOKED"
	StatusDeleted     AssetStatus = "DELETED"
)

// Dimensions holds pixel dimensions for visual assets
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Metadata holds the freely updatable descriptive fields of an asset
type Metadata struct {
	FileFormat     string      `json:"file_format"`
	FileSize       int64       `json:"file_size"`
	Dimensions     *Dimensions `json:"dimensions,omitempty"`
	Duration       *float64    `json:"duration,omitempty"` // seconds
	AdditionalTags []string    `json:"additional_tags"`
}

// Asset is a registered digital-asset record.
//
// ID, ContentHash, AssetType and RegistrationDate are immutable after
// creation. CreatorID changes only through a FULL transfer.
// TransferHistory is append-only.
type Asset struct {
	ID               string      `json:"id"`
	Title            string      `json:"title"`
	Description      string      `json:"description"`
	AssetType        AssetType   `json:"asset_type"`
	CreatorID        string      `json:"creator_id"`
	ContentHash      string      `json:"content_hash"`
	RegistrationDate time.Time   `json:"registration_date"`
	LastModified     time.Time   `json:"last_modified"`
	TransferHistory  []Transfer  `json:"transfer_history"`
	Status           AssetStatus `json:"status"`
	Metadata         Metadata    `json:"metadata"`
}

// AssetPage is one page of a creator's assets
type AssetPage struct {
	Assets []*Asset `json:"assets"`
	Total  int      `json:"total"`
	Page   int      `json:"page"`
	Limit  int      `json:"limit"`
}
