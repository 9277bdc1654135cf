package media

import (
	"context"
	"os"
	"strings"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newTestMediaService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&Media{}); err != nil {
		t.Fatalf("failed to migrate media schema: %v", err)
	}
	service, err := NewService(ServiceConfig{
		Database:     db,
		UploadDir:    t.TempDir(),
		AllowedTypes: "image/png,image/jpeg,video/mp4",
	})
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	return service
}

func TestStoreWritesFileAndRecord(t *testing.T) {
	service := newTestMediaService(t)
	ctx := context.Background()

	record, err := service.Store(ctx, strings.NewReader("png-bytes"), "screenshot.PNG", "image/png", "")
	if err != nil {
		t.Fatalf("store failed: %v", err)
	}
	if record.Kind != KindImage {
		t.Fatalf("unexpected kind %s", record.Kind)
	}
	if !strings.HasPrefix(record.Path, "images/") || !strings.HasSuffix(record.Path, ".png") {
		t.Fatalf("unexpected stored path %s", record.Path)
	}
	if record.SizeBytes != int64(len("png-bytes")) {
		t.Fatalf("unexpected size %d", record.SizeBytes)
	}

	data, err := os.ReadFile(service.AbsolutePath(record.Path))
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Fatalf("unexpected file contents %q", data)
	}
}

func TestStoreClassifiesVideos(t *testing.T) {
	service := newTestMediaService(t)

	record, err := service.Store(context.Background(), strings.NewReader("mp4"), "demo.mp4", "video/mp4", "post-1")
	if err != nil {
		t.Fatalf("store failed: %v", err)
	}
	if record.Kind != KindVideo {
		t.Fatalf("unexpected kind %s", record.Kind)
	}
	if record.PostID != "post-1" {
		t.Fatalf("expected post association to be recorded")
	}
}

func TestStoreRejectsDisallowedType(t *testing.T) {
	service := newTestMediaService(t)

	_, err := service.Store(context.Background(), strings.NewReader("elf"), "payload.bin", "application/octet-stream", "")
	if err == nil {
		t.Fatalf("expected mime rejection")
	}
}

func TestDeleteRemovesRecordAndFile(t *testing.T) {
	service := newTestMediaService(t)
	ctx := context.Background()

	record, err := service.Store(ctx, strings.NewReader("png"), "a.png", "image/png", "")
	if err != nil {
		t.Fatalf("store failed: %v", err)
	}

	if err := service.Delete(ctx, record.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := os.Stat(service.AbsolutePath(record.Path)); !os.IsNotExist(err) {
		t.Fatalf("expected file to be removed")
	}
	if err := service.Delete(ctx, record.ID); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
