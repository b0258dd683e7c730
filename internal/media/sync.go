// internal/media/sync.go
package media

import (
	"context"
	"log"
	"path/filepath"

	"turbo-admin/pkg/models"
)

// MediaState is the (file reference, remote URL) column pair on an entity that
// owns an uploadable asset.
type MediaState struct {
	FileRef   string
	RemoteURL string
}

// ConfigSource yields the media host configuration, nil when not configured.
type ConfigSource interface {
	CloudinaryConfig(ctx context.Context) (*models.CloudinaryConfiguration, error)
}

// Syncer shuttles a staged upload to the media host before the owning entity
// is persisted. Callers invoke Sync explicitly with the entity's current and
// previously stored media columns; the returned state is what gets saved.
type Syncer struct {
	configs ConfigSource
	client  *Client
	staging *Staging
}

func NewSyncer(configs ConfigSource, client *Client, staging *Staging) *Syncer {
	return &Syncer{configs: configs, client: client, staging: staging}
}

// Sync applies the media rules for one save attempt:
//
//   - no file attached, or the file reference is unchanged → no action;
//   - a newly attached file is uploaded under folder; on success the remote
//     URL is replaced and the file reference cleared, and the superseded
//     remote asset (if any) was first submitted for best-effort deletion;
//   - any upload or delete failure leaves the state as submitted and is
//     logged. A media host outage never blocks saving the entity.
func (s *Syncer) Sync(ctx context.Context, current, previous MediaState, folder string) MediaState {
	if current.FileRef == "" || current.FileRef == previous.FileRef {
		return current
	}

	cfg, err := s.configs.CloudinaryConfig(ctx)
	if err != nil {
		log.Printf("❌ [MEDIA-SYNC] Loading media config failed: %v", err)
		return current
	}
	if cfg == nil {
		log.Printf("⚠️ [MEDIA-SYNC] Media host not configured, keeping staged file %q", current.FileRef)
		return current
	}

	// Replacement: submit the old asset for deletion before uploading the new
	// one. Failure here is logged and never blocks the save.
	if previous.RemoteURL != "" {
		if !s.client.Destroy(ctx, cfg, previous.RemoteURL) {
			log.Printf("⚠️ [MEDIA-SYNC] Could not delete superseded asset %s", previous.RemoteURL)
		}
	}

	f, err := s.staging.Open(current.FileRef)
	if err != nil {
		log.Printf("❌ [MEDIA-SYNC] Staged file %q unreadable: %v", current.FileRef, err)
		return current
	}
	defer f.Close()

	uploadedURL := s.client.Upload(ctx, cfg, f, filepath.Base(current.FileRef), folder)
	if uploadedURL == "" {
		return current
	}

	if err := s.staging.Remove(current.FileRef); err != nil {
		log.Printf("⚠️ [MEDIA-SYNC] Could not remove staged file %q: %v", current.FileRef, err)
	}
	return MediaState{RemoteURL: uploadedURL}
}
