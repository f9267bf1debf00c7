package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateRequest() *CreateAssetRequest {
	return &CreateAssetRequest{
		Title:       "Mona Lisa Digital",
		Description: "a study",
		AssetType:   AssetTypeImage,
		CreatorID:   "7f2c1a90-27a8-4d4f-9a36-02f3ab43d59c",
		ContentHash: strings.Repeat("0", 64),
		Metadata:    &Metadata{FileFormat: "png", FileSize: 1024},
	}
}

func TestCreateAssetRequestValidate(t *testing.T) {
	require.NoError(t, validCreateRequest().Validate())

	tests := []struct {
		name   string
		mutate func(*CreateAssetRequest)
	}{
		{"empty title", func(r *CreateAssetRequest) { r.Title = "" }},
		{"title too long", func(r *CreateAssetRequest) { r.Title = strings.Repeat("x", MaxTitleLength+1) }},
		{"bad creator id", func(r *CreateAssetRequest) { r.CreatorID = "not-a-uuid" }},
		{"short hash", func(r *CreateAssetRequest) { r.ContentHash = "abc123" }},
		{"non-hex hash", func(r *CreateAssetRequest) { r.ContentHash = strings.Repeat("z", 64) }},
		{"unknown type", func(r *CreateAssetRequest) { r.AssetType = "SCULPTURE" }},
		{"missing metadata", func(r *CreateAssetRequest) { r.Metadata = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(req)
			assert.Error(t, req.Validate())
		})
	}
}

func TestCreateAssetRequestAcceptsUppercaseHash(t *testing.T) {
	req := validCreateRequest()
	req.ContentHash = strings.Repeat("A", 32) + strings.Repeat("f", 32)
	assert.NoError(t, req.Validate())
}

func TestTransferAssetRequestValidate(t *testing.T) {
	valid := TransferAssetRequest{
		FromID:       "7f2c1a90-27a8-4d4f-9a36-02f3ab43d59c",
		ToID:         "7b7e4b6e-44cb-4198-9f60-1b30bbbab1f4",
		TransferType: TransferFull,
	}
	require.NoError(t, valid.Validate())

	bad := valid
	bad.TransferType = "PARTIAL"
	assert.Error(t, bad.Validate())

	bad = valid
	bad.FromID = "nope"
	assert.Error(t, bad.Validate())

	bad = valid
	bad.ToID = ""
	assert.Error(t, bad.Validate())
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, AssetTypeCode.Valid())
	assert.False(t, AssetType("GIF").Valid())
	assert.True(t, TransferLicense.Valid())
	assert.False(t, TransferType("").Valid())
}
