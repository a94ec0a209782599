package media

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/google/uuid"
)

// ErrAssetUnreadable marks a stored asset whose bytes cannot be read back.
var ErrAssetUnreadable = errors.New("asset unreadable")

// AssetRef is an opaque handle to one stored upload. Name is random and
// independent of whatever filename the client sent.
type AssetRef struct {
	Name string
	Path string
}

// Store persists uploads on local disk under a single base directory and
// produces transport encodings for the model call. Assets are immutable,
// so encodings are memoized.
type Store struct {
	baseDir     string
	encodeCache *gocache.Cache
}

func NewStore(baseDir string, encodeCacheTTL time.Duration) (*Store, error) {
	if strings.TrimSpace(baseDir) == "" {
		return nil, fmt.Errorf("media base dir is required")
	}
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &Store{
		baseDir:     baseDir,
		encodeCache: gocache.New(encodeCacheTTL, 2*encodeCacheTTL),
	}, nil
}

// Store writes raw bytes under a freshly generated name. The write is
// flushed to disk before the ref is returned.
func (s *Store) Store(ownerId uuid.UUID, raw []byte, originalExtension string) (*AssetRef, error) {
	name := uuid.New().String() + normalizeExtension(originalExtension)
	path := filepath.Join(s.baseDir, name)

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, fmt.Errorf("create asset file: %w", err)
	}

	if _, err := file.Write(raw); err != nil {
		file.Close()
		os.Remove(path)
		return nil, fmt.Errorf("write asset: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(path)
		return nil, fmt.Errorf("flush asset: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("close asset: %w", err)
	}

	return &AssetRef{Name: name, Path: path}, nil
}

// EncodeForModel re-reads the stored asset and returns its base64 transport
// encoding.
func (s *Store) EncodeForModel(ref *AssetRef) (string, error) {
	if cached, found := s.encodeCache.Get(ref.Name); found {
		return cached.(string), nil
	}

	raw, err := os.ReadFile(ref.Path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssetUnreadable, err)
	}

	encoded := base64.StdEncoding.EncodeToString(raw)
	s.encodeCache.SetDefault(ref.Name, encoded)
	return encoded, nil
}

// Read returns the stored bytes, for replay.
func (s *Store) Read(ref *AssetRef) ([]byte, error) {
	raw, err := os.ReadFile(ref.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetUnreadable, err)
	}
	return raw, nil
}

// Remove deletes the stored bytes. Used only to clean up after a failed
// interaction; committed assets are never deleted.
func (s *Store) Remove(ref *AssetRef) error {
	s.encodeCache.Delete(ref.Name)
	return os.Remove(ref.Path)
}

// MimeType maps an upload extension to the transport mime type. Unknown
// extensions fall back to JPEG, matching the model's most permissive input.
func MimeType(originalExtension string) string {
	switch strings.ToLower(strings.TrimPrefix(originalExtension, ".")) {
	case "png":
		return "image/png"
	case "webp":
		return "image/webp"
	case "gif":
		return "image/gif"
	default:
		return "image/jpeg"
	}
}

func normalizeExtension(ext string) string {
	ext = strings.TrimSpace(strings.ToLower(ext))
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	// Client-controlled input: keep only the last extension segment.
	return filepath.Ext(filepath.Base(ext))
}
