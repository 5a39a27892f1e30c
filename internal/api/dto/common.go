package dto

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
)

// ImageField is a base64-encoded image in a JSON body. It distinguishes an
// absent field from an explicit null, which on update clears the stored
// image.
type ImageField struct {
	raw json.RawMessage
}

var nullLiteral = []byte("null")

// UnmarshalJSON records the raw value so presence can be inspected later.
func (f *ImageField) UnmarshalJSON(data []byte) error {
	f.raw = append(f.raw[:0], data...)
	return nil
}

// Provided reports whether the field appeared in the body at all.
func (f ImageField) Provided() bool {
	return len(f.raw) > 0
}

// Clear reports an explicit "image": null.
func (f ImageField) Clear() bool {
	return bytes.Equal(bytes.TrimSpace(f.raw), nullLiteral)
}

// Bytes decodes the base64 payload. It returns nil when the field is absent
// or null.
func (f ImageField) Bytes() ([]byte, error) {
	if !f.Provided() || f.Clear() {
		return nil, nil
	}
	var encoded string
	if err := json.Unmarshal(f.raw, &encoded); err != nil {
		return nil, errors.New("image must be a base64 string or null")
	}
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, errors.New("image is not valid base64")
	}
	return decoded, nil
}

// PaginationResponse mirrors the list envelope pagination block.
type PaginationResponse struct {
	TotalCount  int64 `json:"total_count"`
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	PerPage     int   `json:"per_page"`
}

// DeleteRequest carries the acting admin's password for the confirm gate on
// destructive routes.
type DeleteRequest struct {
	Password string `json:"password"`
}
