package domain

// ImageRef points at an image object held in remote storage.
//
// StorageKey and AccessURL are either both nil or both set. Only StorageKey
// is ever persisted; AccessURL carries a freshly signed, time-limited URL
// attached to the in-memory value for the current response. The key is
// internal and deliberately carries no JSON tag; responses expose only the
// signed URL through the dto layer.
type ImageRef struct {
	StorageKey *string
	AccessURL  *string
}

// Present reports whether an image object is attached.
func (r ImageRef) Present() bool {
	return r.StorageKey != nil
}

// Clear drops both the key and the URL.
func (r *ImageRef) Clear() {
	r.StorageKey = nil
	r.AccessURL = nil
}

// AuditFields records which admin created and last modified a record.
// Either reference may be nulled out when the owning admin is deleted.
type AuditFields struct {
	CreatedBy *string `json:"created_by"`
	UpdatedBy *string `json:"updated_by"`
}

// SocialLinks holds an employee's public profile links.
type SocialLinks struct {
	Facebook  string `json:"facebook"`
	Twitter   string `json:"twitter"`
	Instagram string `json:"instagram"`
	YouTube   string `json:"youtube"`
}
