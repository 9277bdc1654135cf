package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound indicates the requested media record does not exist.
var ErrNotFound = errors.New("media: not found")

// ErrTypeNotAllowed indicates the upload's mime type is outside the
// configured allow-list.
var ErrTypeNotAllowed = errors.New("media: file type not allowed")

// ServiceConfig describes the dependencies of the media service.
type ServiceConfig struct {
	Database *gorm.DB
	// UploadDir is the root directory for stored files.
	UploadDir string
	// AllowedTypes is a comma-separated mime allow-list,
	// e.g. "image/png,image/jpeg,video/mp4".
	AllowedTypes string
}

// Service stores uploaded files on local disk and tracks them in the
// database. Files are renamed to uuid-based names under a per-kind
// subdirectory; the original name is kept only as metadata.
type Service struct {
	db        *gorm.DB
	uploadDir string
	allowed   map[string]struct{}
}

// NewService constructs the media service and ensures the upload root
// exists.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Database == nil {
		return nil, fmt.Errorf("media: database connection required")
	}
	if strings.TrimSpace(cfg.UploadDir) == "" {
		return nil, fmt.Errorf("media: upload directory required")
	}
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("media: failed to create upload directory: %w", err)
	}

	allowed := make(map[string]struct{})
	for _, entry := range strings.Split(cfg.AllowedTypes, ",") {
		mime := strings.ToLower(strings.TrimSpace(entry))
		if mime != "" {
			allowed[mime] = struct{}{}
		}
	}

	return &Service{db: cfg.Database, uploadDir: cfg.UploadDir, allowed: allowed}, nil
}

// Store persists the uploaded content and records it. The stored path is
// {kind}s/{uuid}{ext}.
func (s *Service) Store(ctx context.Context, reader io.Reader, originalName, mimeType, postID string) (Media, error) {
	mime := strings.ToLower(strings.TrimSpace(mimeType))
	if _, ok := s.allowed[mime]; !ok {
		return Media{}, fmt.Errorf("%w: %s", ErrTypeNotAllowed, mimeType)
	}

	kind := KindImage
	if strings.HasPrefix(mime, "video/") {
		kind = KindVideo
	}

	subDir := string(kind) + "s"
	if err := os.MkdirAll(filepath.Join(s.uploadDir, subDir), 0o755); err != nil {
		return Media{}, fmt.Errorf("media: failed to create %s directory: %w", subDir, err)
	}

	filename := uuid.NewString() + strings.ToLower(filepath.Ext(originalName))
	relPath := filepath.ToSlash(filepath.Join(subDir, filename))
	absPath := filepath.Join(s.uploadDir, subDir, filename)

	file, err := os.Create(absPath)
	if err != nil {
		return Media{}, fmt.Errorf("media: failed to create file: %w", err)
	}
	written, err := io.Copy(file, reader)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(absPath)
		return Media{}, fmt.Errorf("media: failed to write file: %w", err)
	}

	record := Media{
		ID:           uuid.NewString(),
		Path:         relPath,
		OriginalName: filepath.Base(originalName),
		MimeType:     mime,
		Kind:         kind,
		PostID:       postID,
		SizeBytes:    written,
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		_ = os.Remove(absPath)
		return Media{}, err
	}
	return record, nil
}

// List returns all media records, newest first.
func (s *Service) List(ctx context.Context) ([]Media, error) {
	var records []Media
	err := s.db.WithContext(ctx).Order("created_at desc").Find(&records).Error
	return records, err
}

// Get returns a media record by id.
func (s *Service) Get(ctx context.Context, id string) (Media, error) {
	var record Media
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Media{}, ErrNotFound
	}
	return record, err
}

// Delete removes the record and its file. A missing file is not an
// error; the row is authoritative.
func (s *Service) Delete(ctx context.Context, id string) error {
	record, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&Media{}).Error; err != nil {
		return err
	}
	if removeErr := os.Remove(s.AbsolutePath(record.Path)); removeErr != nil && !os.IsNotExist(removeErr) {
		return fmt.Errorf("media: failed to remove file: %w", removeErr)
	}
	return nil
}

// AbsolutePath resolves a stored relative path under the upload root.
func (s *Service) AbsolutePath(relPath string) string {
	return filepath.Join(s.uploadDir, filepath.FromSlash(relPath))
}

// UploadDir returns the upload root, used to mount the static file route.
func (s *Service) UploadDir() string {
	return s.uploadDir
}
