package store

import (
	"fmt"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

// BlobStore holds the binary halves of the journal: attachment data,
// thumbnails, and artwork images. Rows in SQLite carry the keys.
type BlobStore struct {
	d *diskv.Diskv
}

// NewBlobStore creates a diskv-backed blob store rooted at basePath.
func NewBlobStore(basePath string) *BlobStore {
	return &BlobStore{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: blobKeyToPath,
		InverseTransform:  blobPathToKey,
		CacheSizeMax:      8 * 1024 * 1024,
	})}
}

// AttachmentKey returns the blob key for an attachment's data.
func AttachmentKey(id string) string { return "att-" + id }

// ThumbnailKey returns the blob key for an attachment's thumbnail.
func ThumbnailKey(id string) string { return "thumb-" + id }

// ArtworkKey returns the blob key for an artwork image.
func ArtworkKey(id string) string { return "art-" + id }

// Put writes data under key.
func (b *BlobStore) Put(key string, data []byte) error {
	if err := b.d.Write(key, data); err != nil {
		return fmt.Errorf("blob write %s: %w", key, err)
	}
	return nil
}

// Get reads the blob for key. A missing key returns nil bytes, not an
// error, matching the delete-if-exists posture of the row store.
func (b *BlobStore) Get(key string) ([]byte, error) {
	if !b.d.Has(key) {
		return nil, nil
	}
	data, err := b.d.Read(key)
	if err != nil {
		return nil, fmt.Errorf("blob read %s: %w", key, err)
	}
	return data, nil
}

// Delete erases the blob for key if present.
func (b *BlobStore) Delete(key string) error {
	if !b.d.Has(key) {
		return nil
	}
	if err := b.d.Erase(key); err != nil {
		return fmt.Errorf("blob erase %s: %w", key, err)
	}
	return nil
}

// blobKeyToPath shards keys as `<prefix>-<id>` into a directory per prefix.
func blobKeyToPath(s string) *diskv.PathKey {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return &diskv.PathKey{FileName: s}
	}
	return &diskv.PathKey{Path: []string{parts[0]}, FileName: parts[1]}
}

func blobPathToKey(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}
