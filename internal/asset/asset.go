package asset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"time"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
	"go.uber.org/zap"

	"github.com/spec-kit/workforce-directory/internal/domain"
	"github.com/spec-kit/workforce-directory/internal/storage"
	apperrors "github.com/spec-kit/workforce-directory/pkg/util/errorutil"
)

const (
	// Uploaded images are bounded to maxDimension on both axes and
	// re-encoded as JPEG to cap storage cost and serving size.
	maxDimension = 512
	jpegQuality  = 80
	contentType  = "image/jpeg"
)

// Manager owns the lifecycle of entity image assets: upload, replace,
// remove, and on-demand signed access.
type Manager struct {
	store   storage.ObjectStore
	logger  *zap.Logger
	signTTL time.Duration
}

// NewManager builds an asset manager over the given object store.
func NewManager(store storage.ObjectStore, logger *zap.Logger, signTTL time.Duration) *Manager {
	if signTTL <= 0 {
		signTTL = time.Hour
	}
	return &Manager{store: store, logger: logger, signTTL: signTTL}
}

// Upload normalizes and stores a new image, returning its reference.
// The returned ref carries no access URL; callers attach one per response
// via AttachURL.
func (m *Manager) Upload(ctx context.Context, data []byte, namePrefix string) (domain.ImageRef, error) {
	normalized, err := normalizeImage(data)
	if err != nil {
		return domain.ImageRef{}, apperrors.NewValidationError("unsupported or corrupt image", nil)
	}

	key := fmt.Sprintf("%s/%s.jpg", namePrefix, uuid.NewString())
	if err := m.store.Put(ctx, key, normalized, contentType); err != nil {
		return domain.ImageRef{}, apperrors.NewUpstreamStorage("image upload failed", err)
	}
	return domain.ImageRef{StorageKey: &key}, nil
}

// Replace swaps an entity's image for a new one. The new object is uploaded
// first and the reference swapped before the old object is deleted, so a
// mid-failure leaves the previous image intact. Deleting the old object is
// best-effort.
func (m *Manager) Replace(ctx context.Context, ref *domain.ImageRef, data []byte, namePrefix string) error {
	uploaded, err := m.Upload(ctx, data, namePrefix)
	if err != nil {
		return err
	}

	oldKey := ref.StorageKey
	*ref = uploaded

	if oldKey != nil {
		m.deleteBestEffort(ctx, *oldKey)
	}
	return nil
}

// Remove deletes the stored object if present and nulls the reference.
// The delete is best-effort; a failure leaves an orphaned object behind,
// which is accepted at this system's scale.
func (m *Manager) Remove(ctx context.Context, ref *domain.ImageRef) {
	if ref.StorageKey != nil {
		m.deleteBestEffort(ctx, *ref.StorageKey)
	}
	ref.Clear()
}

// AttachURL sets a freshly signed, time-limited access URL on the in-memory
// reference for the current response. Nothing is persisted. A signing
// failure leaves the URL nil rather than failing the read.
func (m *Manager) AttachURL(ctx context.Context, ref *domain.ImageRef) {
	if ref.StorageKey == nil {
		return
	}
	url, err := m.store.SignedGetURL(ctx, *ref.StorageKey, m.signTTL)
	if err != nil {
		m.logger.Warn("failed to sign image url",
			zap.String("key", *ref.StorageKey),
			zap.Error(err))
		ref.AccessURL = nil
		return
	}
	ref.AccessURL = &url
}

func (m *Manager) deleteBestEffort(ctx context.Context, key string) {
	err := m.store.Delete(ctx, key)
	if err == nil || errors.Is(err, storage.ErrNotFound) {
		return
	}
	m.logger.Warn("failed to delete stored image; object orphaned",
		zap.String("key", key),
		zap.Error(err))
}

// normalizeImage bounds the image to maxDimension (preserving aspect ratio,
// never enlarging) and re-encodes it as JPEG.
func normalizeImage(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	// Thumbnail scales down to fit inside the bounds and leaves smaller
	// images untouched.
	img = resize.Thumbnail(maxDimension, maxDimension, img, resize.Lanczos3)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), nil
}
