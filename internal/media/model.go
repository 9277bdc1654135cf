package media

import "time"

// Kind distinguishes stored media files.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// Media is one uploaded file. Path is relative to the upload root and
// doubles as the public URL suffix.
type Media struct {
	ID           string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	Path         string    `gorm:"column:path;size:512;not null;uniqueIndex" json:"path"`
	OriginalName string    `gorm:"column:original_name;size:320" json:"originalName"`
	MimeType     string    `gorm:"column:mime_type;size:128;not null" json:"mimeType"`
	Kind         Kind      `gorm:"column:kind;size:16;not null" json:"kind"`
	PostID       string    `gorm:"column:post_id;size:36;index" json:"postId"`
	SizeBytes    int64     `gorm:"column:size_bytes;not null" json:"sizeBytes"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

// TableName exposes the table backing media records.
func (Media) TableName() string {
	return "media"
}
