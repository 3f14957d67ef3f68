package media

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/DukeRupert/nhcadvocate/internal/site"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// =============================================================================
// LocalStore
// =============================================================================

func newTestLocalStore(t *testing.T) (*LocalStore, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hero.jpg"), []byte("jpeg"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "folder"), 0o755))

	store, err := NewLocalStore(dir, "/media/", testLogger())
	require.NoError(t, err)
	return store, dir
}

func TestNewLocalStore_MissingDirectory(t *testing.T) {
	_, err := NewLocalStore(filepath.Join(t.TempDir(), "nope"), "/media", testLogger())
	assert.Error(t, err)
}

func TestLocalStore_Exists(t *testing.T) {
	store, _ := newTestLocalStore(t)
	ctx := context.Background()

	ok, err := store.Exists(ctx, "hero.jpg")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Exists(ctx, "missing.jpg")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = store.Exists(ctx, "folder")
	require.NoError(t, err)
	assert.False(t, ok, "directories are not images")
}

func TestLocalStore_RejectsTraversal(t *testing.T) {
	store, _ := newTestLocalStore(t)
	ctx := context.Background()

	for _, key := range []string{"", "../etc/passwd", "a/../../b", "/etc/passwd"} {
		_, err := store.Exists(ctx, key)
		assert.ErrorIs(t, err, ErrInvalidKey, key)

		_, err = store.URL(ctx, key)
		assert.ErrorIs(t, err, ErrInvalidKey, key)
	}
}

func TestLocalStore_URL(t *testing.T) {
	store, _ := newTestLocalStore(t)

	u, err := store.URL(context.Background(), "hero.jpg")
	require.NoError(t, err)
	assert.Equal(t, "/media/hero.jpg", u)
}

func TestLocalStore_Handler(t *testing.T) {
	store, _ := newTestLocalStore(t)
	h := http.StripPrefix("/media/", store.Handler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/media/hero.jpg", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "jpeg", rec.Body.String())
}

// =============================================================================
// RemoteStore
// =============================================================================

func TestRemoteStore_Exists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		switch r.URL.Path {
		case "/ok.jpg":
			w.WriteHeader(http.StatusOK)
		case "/nohead.jpg":
			w.WriteHeader(http.StatusMethodNotAllowed)
		case "/forbidden.jpg":
			w.WriteHeader(http.StatusForbidden)
		case "/broken.jpg":
			w.WriteHeader(http.StatusBadGateway)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	store := NewRemoteStore(map[string]string{
		"ok":        srv.URL + "/ok.jpg",
		"nohead":    srv.URL + "/nohead.jpg",
		"gone":      srv.URL + "/gone.jpg",
		"forbidden": srv.URL + "/forbidden.jpg",
		"broken":    srv.URL + "/broken.jpg",
	}, srv.Client(), testLogger())
	ctx := context.Background()

	tests := []struct {
		object  string
		want    bool
		wantErr error
	}{
		{"ok", true, nil},
		{"nohead", true, nil},
		{"gone", false, nil},
		{"unknown", false, nil},
		{"forbidden", false, ErrAccessDenied},
	}
	for _, tt := range tests {
		t.Run(tt.object, func(t *testing.T) {
			ok, err := store.Exists(ctx, tt.object)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, ok)
		})
	}

	ok, err := store.Exists(ctx, "broken")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestRemoteStore_URL(t *testing.T) {
	store := NewRemoteStore(map[string]string{"a": "https://img.example/a.jpg"}, nil, testLogger())

	u, err := store.URL(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/a.jpg", u)

	_, err = store.URL(context.Background(), "b")
	assert.True(t, IsNotFound(err))
}

// =============================================================================
// R2 helpers
// =============================================================================

func TestWrapS3Error(t *testing.T) {
	assert.Nil(t, wrapS3Error(nil))
	assert.ErrorIs(t, wrapS3Error(&smithy.GenericAPIError{Code: "NoSuchKey"}), ErrNotFound)
	assert.ErrorIs(t, wrapS3Error(&smithy.GenericAPIError{Code: "NotFound"}), ErrNotFound)
	assert.ErrorIs(t, wrapS3Error(&smithy.GenericAPIError{Code: "AccessDenied"}), ErrAccessDenied)

	err := wrapS3Error(errors.New("connection reset"))
	assert.Contains(t, err.Error(), "R2 operation failed")
	assert.False(t, IsNotFound(err))
}

func TestNewR2Store_RequiresBucket(t *testing.T) {
	_, err := NewR2Store(R2Config{AccountID: "acc"}, testLogger())
	assert.Error(t, err)
}

func TestR2Store_PublicURL(t *testing.T) {
	store, err := NewR2Store(R2Config{
		AccountID:  "acc",
		BucketName: "site",
		PublicURL:  "https://media.example.in/",
	}, testLogger())
	require.NoError(t, err)

	u, err := store.URL(context.Background(), "hero.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://media.example.in/hero.jpg", u)

	_, err = store.URL(context.Background(), "../hero.jpg")
	assert.ErrorIs(t, err, ErrInvalidKey)
}

// =============================================================================
// Resolver
// =============================================================================

type fakeStore struct {
	present map[string]bool
	failing map[string]bool
}

func (f *fakeStore) URL(_ context.Context, object string) (string, error) {
	return "https://cdn.example/" + object, nil
}

func (f *fakeStore) Exists(_ context.Context, object string) (bool, error) {
	if f.failing[object] {
		return false, errors.New("timeout")
	}
	return f.present[object], nil
}

func TestResolver_BeforeRefreshUsesFallback(t *testing.T) {
	r := NewResolver(&fakeStore{}, Catalog, testLogger())

	img := r.Image(site.MediaHero)
	assert.False(t, img.Available)
	assert.Empty(t, img.URL)
	assert.Equal(t, site.AdvocateName, img.Fallback)
}

func TestResolver_Refresh(t *testing.T) {
	store := &fakeStore{
		present: map[string]bool{"hero.jpg": true, "portrait.jpg": true},
		failing: map[string]bool{"court.jpg": true},
	}
	r := NewResolver(store, Catalog, testLogger())

	n := r.Refresh(context.Background())
	assert.Equal(t, 2, n)

	hero := r.Image(site.MediaHero)
	assert.True(t, hero.Available)
	assert.Equal(t, "https://cdn.example/hero.jpg", hero.URL)
	assert.Equal(t, site.AdvocateName, hero.Alt)

	court := r.Image(site.MediaCourt)
	assert.False(t, court.Available)
	assert.Equal(t, "Professional Photo", court.Fallback)

	logo := r.Image(site.MediaLogo)
	assert.False(t, logo.Available)
	assert.Empty(t, logo.URL)
}

func TestResolver_UnknownKey(t *testing.T) {
	r := NewResolver(&fakeStore{}, Catalog, testLogger())
	img := r.Image("nope")
	assert.False(t, img.Available)
	assert.Equal(t, "nope", img.Fallback)
}

func TestCatalog_CoversSiteKeys(t *testing.T) {
	keys := map[string]bool{}
	for _, a := range Catalog {
		keys[a.Key] = true
		assert.NotEmpty(t, a.Object)
		assert.NotEmpty(t, a.RemoteURL)
		assert.NotEmpty(t, a.Fallback)
	}
	for _, k := range []string{site.MediaHero, site.MediaPortrait, site.MediaCourt, site.MediaCases, site.MediaLogo} {
		assert.True(t, keys[k], k)
	}

	urls := RemoteURLs(Catalog)
	assert.Len(t, urls, len(Catalog))
}

func TestResolver_OnRefresh(t *testing.T) {
	r := NewResolver(&fakeStore{present: map[string]bool{"logo.jpg": true}}, Catalog, testLogger())

	var got int
	r.OnRefresh(func(available int) { got = available })
	r.Refresh(context.Background())

	assert.Equal(t, 1, got)
}

func TestResolver_ImagesSnapshot(t *testing.T) {
	r := NewResolver(&fakeStore{present: map[string]bool{"hero.jpg": true}}, Catalog, testLogger())
	r.Refresh(context.Background())

	images := r.Images()
	assert.Len(t, images, len(Catalog))
	assert.True(t, images[site.MediaHero].Available)

	delete(images, site.MediaHero)
	assert.True(t, r.Image(site.MediaHero).Available)
}

func TestResolver_RunRefreshesUntilCancelled(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	r := NewResolver(&fakeStore{present: map[string]bool{"hero.jpg": true}}, Catalog, testLogger())

	var refreshes atomic.Int32
	r.OnRefresh(func(int) { refreshes.Add(1) })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return refreshes.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done

	assert.True(t, r.Image(site.MediaHero).Available)
}

func TestResolver_RunDisabled(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	r := NewResolver(&fakeStore{}, Catalog, testLogger())
	r.Run(context.Background(), 0)
}
