// internal/service/account.go
package service

import (
	"context"

	"turbo-admin/internal/media"
	"turbo-admin/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProfilePictureFolder is where user avatars live on the media host.
const ProfilePictureFolder = "users/profile_pictures"

// AccountService owns user accounts. Profile picture uploads are synced to
// the media host before the row is written.
type AccountService struct {
	db     *gorm.DB
	syncer *media.Syncer
}

func NewAccountService(db *gorm.DB, syncer *media.Syncer) *AccountService {
	return &AccountService{db: db, syncer: syncer}
}

func (s *AccountService) SaveUser(ctx context.Context, user *models.User) error {
	previous := media.MediaState{}
	if user.ID != uuid.Nil {
		var stored models.User
		err := s.db.WithContext(ctx).Select("profile_picture", "profile_picture_url").
			First(&stored, "id = ?", user.ID).Error
		switch err {
		case nil:
			previous = media.MediaState{FileRef: stored.ProfilePicture, RemoteURL: stored.ProfilePictureURL}
		case gorm.ErrRecordNotFound:
		default:
			return err
		}
	}

	state := s.syncer.Sync(ctx,
		media.MediaState{FileRef: user.ProfilePicture, RemoteURL: user.ProfilePictureURL},
		previous, ProfilePictureFolder)
	user.ProfilePicture = state.FileRef
	user.ProfilePictureURL = state.RemoteURL

	return s.db.WithContext(ctx).Save(user).Error
}

func (s *AccountService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *AccountService) ListUsers(ctx context.Context) ([]models.User, error) {
	var out []models.User
	err := s.db.WithContext(ctx).Order("username ASC").Find(&out).Error
	return out, err
}

func (s *AccountService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id).Error
}
