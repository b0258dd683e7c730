// internal/media/sync_test.go
package media

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"turbo-admin/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticConfigSource struct {
	cfg *models.CloudinaryConfiguration
	err error
}

func (s staticConfigSource) CloudinaryConfig(ctx context.Context) (*models.CloudinaryConfiguration, error) {
	return s.cfg, s.err
}

// mediaHost fakes the upload/destroy endpoints and records call order.
type mediaHost struct {
	mu        sync.Mutex
	calls     []string // "upload" / "destroy:<public_id>"
	failNext  bool
	uploadURL string
	srv       *httptest.Server
}

func newMediaHost(t *testing.T) *mediaHost {
	t.Helper()
	h := &mediaHost{uploadURL: "https://res.cloudinary.com/demo/image/upload/v2/synced.jpg"}
	h.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.mu.Lock()
		defer h.mu.Unlock()
		switch {
		case strings.HasSuffix(r.URL.Path, "/image/upload"):
			h.calls = append(h.calls, "upload")
			if h.failNext {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write([]byte(`{"secure_url":"` + h.uploadURL + `"}`))
		case strings.HasSuffix(r.URL.Path, "/image/destroy"):
			require.NoError(t, r.ParseForm())
			h.calls = append(h.calls, "destroy:"+r.FormValue("public_id"))
			_, _ = w.Write([]byte(`{"result":"ok"}`))
		default:
			t.Errorf("unexpected request to %s", r.URL.Path)
		}
	}))
	t.Cleanup(h.srv.Close)
	return h
}

func newTestSyncer(t *testing.T, host *mediaHost, cfg *models.CloudinaryConfiguration) (*Syncer, *Staging) {
	t.Helper()
	staging, err := NewStaging(t.TempDir())
	require.NoError(t, err)
	client := NewClientWithBaseURL(host.srv.URL)
	return NewSyncer(staticConfigSource{cfg: cfg}, client, staging), staging
}

func stageFile(t *testing.T, staging *Staging, content string) string {
	t.Helper()
	ref, err := staging.Save("photo.jpg", strings.NewReader(content))
	require.NoError(t, err)
	return ref
}

func TestSyncNoopWithoutNewFile(t *testing.T) {
	host := newMediaHost(t)
	syncer, _ := newTestSyncer(t, host, mediaConfig())
	ctx := context.Background()

	// No file attached.
	state := syncer.Sync(ctx, MediaState{RemoteURL: "https://host/image/upload/v1/a.jpg"}, MediaState{}, "blog/featured")
	assert.Equal(t, MediaState{RemoteURL: "https://host/image/upload/v1/a.jpg"}, state)

	// File reference unchanged since the last save.
	same := MediaState{FileRef: "abc_1.jpg", RemoteURL: "https://host/image/upload/v1/a.jpg"}
	state = syncer.Sync(ctx, same, same, "blog/featured")
	assert.Equal(t, same, state)

	assert.Empty(t, host.calls, "no-op saves must not touch the media host")
}

func TestSyncUploadsNewFile(t *testing.T) {
	host := newMediaHost(t)
	syncer, staging := newTestSyncer(t, host, mediaConfig())
	ref := stageFile(t, staging, "raw-bytes")

	state := syncer.Sync(context.Background(), MediaState{FileRef: ref}, MediaState{}, "blog/featured")

	assert.Equal(t, MediaState{RemoteURL: host.uploadURL}, state, "file ref must be cleared and the remote URL set")
	assert.Equal(t, []string{"upload"}, host.calls)

	_, err := staging.Open(ref)
	assert.True(t, os.IsNotExist(err), "synced file must be removed from staging")
}

func TestSyncReplacementDeletesBeforeUpload(t *testing.T) {
	host := newMediaHost(t)
	syncer, staging := newTestSyncer(t, host, mediaConfig())
	ref := stageFile(t, staging, "new-bytes")

	previous := MediaState{RemoteURL: "https://res.cloudinary.com/demo/image/upload/v1/blog/featured/old.jpg"}
	state := syncer.Sync(context.Background(), MediaState{FileRef: ref, RemoteURL: previous.RemoteURL}, previous, "blog/featured")

	assert.Equal(t, MediaState{RemoteURL: host.uploadURL}, state)
	assert.Equal(t, []string{"destroy:blog/featured/old", "upload"}, host.calls,
		"the superseded asset is submitted for deletion before the new upload")
}

func TestSyncUploadFailureKeepsState(t *testing.T) {
	host := newMediaHost(t)
	host.failNext = true
	syncer, staging := newTestSyncer(t, host, mediaConfig())
	ref := stageFile(t, staging, "raw-bytes")

	submitted := MediaState{FileRef: ref, RemoteURL: "https://host/image/upload/v1/keep.jpg"}
	state := syncer.Sync(context.Background(), submitted, MediaState{RemoteURL: "https://host/image/upload/v1/keep.jpg"}, "blog/featured")

	assert.Equal(t, submitted, state, "a failed upload must leave the submitted state untouched")

	f, err := staging.Open(ref)
	require.NoError(t, err, "staged file survives a failed upload for the next attempt")
	f.Close()
}

func TestSyncWithoutMediaConfig(t *testing.T) {
	host := newMediaHost(t)
	staging, err := NewStaging(t.TempDir())
	require.NoError(t, err)
	syncer := NewSyncer(staticConfigSource{cfg: nil}, NewClientWithBaseURL(host.srv.URL), staging)
	ref := stageFile(t, staging, "raw-bytes")

	submitted := MediaState{FileRef: ref}
	state := syncer.Sync(context.Background(), submitted, MediaState{}, "blog/featured")

	assert.Equal(t, submitted, state, "unconfigured media host keeps the staged reference")
	assert.Empty(t, host.calls)
}

func TestStagingRejectsTraversal(t *testing.T) {
	staging, err := NewStaging(t.TempDir())
	require.NoError(t, err)

	_, err = staging.Open("../outside.txt")
	assert.Error(t, err)
	_, err = staging.Open("/etc/passwd")
	assert.Error(t, err)
	assert.Error(t, staging.Remove("../../x"))
}

func TestStagingSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	staging, err := NewStaging(dir)
	require.NoError(t, err)

	ref, err := staging.Save("avatar.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, ".png", filepath.Ext(ref))

	f, err := staging.Open(ref)
	require.NoError(t, err)
	defer f.Close()
	buf := make([]byte, 16)
	n, _ := f.Read(buf)
	assert.Equal(t, "png-bytes", string(buf[:n]))
}
