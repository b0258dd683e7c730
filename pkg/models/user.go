// pkg/models/user.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an admin/author account. ProfilePicture holds a staged local file
// reference until the media sync uploads it and rewrites ProfilePictureURL.
type User struct {
	ID                uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Username          string    `json:"username" gorm:"type:varchar(100);uniqueIndex;not null"`
	Email             string    `json:"email" gorm:"type:varchar(255);index;not null"`
	FirstName         *string   `json:"first_name,omitempty" gorm:"type:varchar(100)"`
	LastName          *string   `json:"last_name,omitempty" gorm:"type:varchar(100)"`
	IsStaff           bool      `json:"is_staff" gorm:"not null;default:false"`
	ProfilePicture    string    `json:"profile_picture,omitempty" gorm:"type:varchar(500)"`
	ProfilePictureURL string    `json:"profile_picture_url,omitempty" gorm:"type:varchar(500)"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
