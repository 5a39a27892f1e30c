package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageRefPresent(t *testing.T) {
	var ref ImageRef
	assert.False(t, ref.Present())

	key := "departments/abc.jpg"
	ref.StorageKey = &key
	assert.True(t, ref.Present())
}

func TestImageRefClear(t *testing.T) {
	key := "departments/abc.jpg"
	url := "https://bucket.example.com/departments/abc.jpg?sig=x"
	ref := ImageRef{StorageKey: &key, AccessURL: &url}

	ref.Clear()
	assert.Nil(t, ref.StorageKey)
	assert.Nil(t, ref.AccessURL)
}

func TestImageRefHasNoWireForm(t *testing.T) {
	key := "departments/abc.jpg"
	url := "https://bucket.example.com/departments/abc.jpg?sig=x"
	data, err := json.Marshal(ImageRef{StorageKey: &key, AccessURL: &url})
	require.NoError(t, err)

	// The storage key is internal; only the dto layer defines how images
	// appear on the wire.
	assert.NotContains(t, string(data), "image_key")
	assert.NotContains(t, string(data), "image_url")
}

func TestNormalizeName(t *testing.T) {
	cases := map[string]string{
		"Finance":          "finance",
		"finance":          "finance",
		"Human Resources":  "humanresources",
		"human-resources":  "humanresources",
		" HUMAN-RESOURCES": "humanresources",
	}
	for input, want := range cases {
		assert.Equal(t, want, NormalizeName(input), "input %q", input)
	}
}
