package users

import (
	"strings"
	"time"
)

// User is the persistent record behind a federated identity. One row per
// email; created on first successful login and updated on every
// subsequent one. This subsystem never deletes users.
type User struct {
	ID          string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	Email       string    `gorm:"column:email;size:320;not null;uniqueIndex" json:"email"`
	Name        string    `gorm:"column:name;size:320" json:"name"`
	AvatarURL   string    `gorm:"column:avatar_url;size:512" json:"avatarUrl"`
	Provider    string    `gorm:"column:provider;size:32;not null" json:"provider"`
	ProviderID  string    `gorm:"column:provider_id;size:190;not null" json:"-"`
	IsAdmin     bool      `gorm:"column:is_admin;not null" json:"isAdmin"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	LastLoginAt time.Time `gorm:"column:last_login_at" json:"lastLoginAt"`
}

// TableName exposes the table backing users.
func (User) TableName() string {
	return "users"
}

func normalize(value string) string {
	return strings.TrimSpace(value)
}
