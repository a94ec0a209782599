package media

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir(), time.Minute)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	return store
}

func TestStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	raw := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}

	ref, err := store.Store(uuid.New(), raw, "jpg")
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	got, err := store.Read(ref)
	assert.NoError(t, err)
	assert.Equal(t, raw, got, "stored bytes must read back identical")
}

func TestStoreGeneratesIndependentNames(t *testing.T) {
	store := newTestStore(t)

	ref, err := store.Store(uuid.New(), []byte("data"), "jpg")
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	assert.NotEqual(t, "../../etc/passwd.jpg", ref.Name)
	assert.True(t, strings.HasSuffix(ref.Name, ".jpg"))
	// Name minus extension must parse as a random uuid.
	_, err = uuid.Parse(strings.TrimSuffix(ref.Name, ".jpg"))
	assert.NoError(t, err)

	second, err := store.Store(uuid.New(), []byte("data"), "jpg")
	assert.NoError(t, err)
	assert.NotEqual(t, ref.Name, second.Name, "identical content must still get fresh names")
}

func TestStoreSanitizesExtension(t *testing.T) {
	store := newTestStore(t)

	ref, err := store.Store(uuid.New(), []byte("data"), "../../evil.png")
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	assert.False(t, strings.Contains(ref.Name, "/"), "name must not contain path separators")
	assert.True(t, strings.HasSuffix(ref.Name, ".png"))
}

func TestEncodeForModel(t *testing.T) {
	store := newTestStore(t)
	raw := []byte("image-bytes")

	ref, err := store.Store(uuid.New(), raw, "png")
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	encoded, err := store.EncodeForModel(ref)
	assert.NoError(t, err)
	assert.Equal(t, base64.StdEncoding.EncodeToString(raw), encoded)

	// Memoized path returns the same encoding.
	again, err := store.EncodeForModel(ref)
	assert.NoError(t, err)
	assert.Equal(t, encoded, again)
}

func TestEncodeForModelMissingAsset(t *testing.T) {
	store := newTestStore(t)

	ref, err := store.Store(uuid.New(), []byte("data"), "jpg")
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if err := store.Remove(ref); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	_, err = store.EncodeForModel(ref)
	assert.True(t, errors.Is(err, ErrAssetUnreadable), "err = %v", err)
}

func TestMimeType(t *testing.T) {
	tests := []struct {
		ext  string
		want string
	}{
		{"png", "image/png"},
		{".png", "image/png"},
		{"webp", "image/webp"},
		{"jpg", "image/jpeg"},
		{"jpeg", "image/jpeg"},
		{"", "image/jpeg"},
		{"bin", "image/jpeg"},
	}

	for _, tt := range tests {
		if got := MimeType(tt.ext); got != tt.want {
			t.Errorf("MimeType(%q) = %q, want %q", tt.ext, got, tt.want)
		}
	}
}
