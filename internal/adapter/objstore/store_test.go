package objstore

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"gitlab.com/clawgames.net/internal/config"
)

func TestSanitizeKey(t *testing.T) {
	tests := map[string]string{
		"games/a/b.html":        "games/a/b.html",
		"/games//a/./b.html":    "games/a/b.html",
		"../../etc/passwd":      "etc/passwd",
		"games/../../../x.html": "games/x.html",
		"":                      "",
	}
	for in, want := range tests {
		if got := sanitizeKey(in); got != want {
			t.Errorf("sanitizeKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.StorageConfig
		wantErr string
	}{
		{"missing driver", config.StorageConfig{}, "STORAGE_DRIVER not set"},
		{"unknown driver", config.StorageConfig{Driver: "ftp"}, "unknown storage driver"},
		{"s3 without bucket", config.StorageConfig{Driver: "s3"}, "bucket required"},
		{"oss without endpoint", config.StorageConfig{Driver: "oss", Bucket: "b"}, "endpoint required"},
		{"cos without keys", config.StorageConfig{Driver: "cos", Bucket: "b", Region: "ap-guangzhou"}, "access_key/secret_key"},
		{"memory", config.StorageConfig{Driver: "mem"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestBuildS3URL(t *testing.T) {
	got := buildS3URL(&config.StorageConfig{Bucket: "games", Region: "us-east-1", ForcePathStyle: true})
	if got != "s3://games?region=us-east-1&s3ForcePathStyle=true" {
		t.Fatalf("url = %s", got)
	}
}

func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()
	key := "games/owner-1/snake-k9x.html"
	body := "<html><head></head><body>ok</body></html>"

	if ok, err := store.Exists(ctx, key); err != nil || ok {
		t.Fatalf("Exists before put = %v, %v", ok, err)
	}
	if err := store.Put(ctx, key, strings.NewReader(body), int64(len(body)), "text/html"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if ok, err := store.Exists(ctx, key); err != nil || !ok {
		t.Fatalf("Exists after put = %v, %v", ok, err)
	}

	infos, err := store.List(ctx, "games/")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(infos) != 1 || infos[0].Key != key || infos[0].ModTime.IsZero() {
		t.Fatalf("List = %+v", infos)
	}

	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if ok, _ := store.Exists(ctx, key); ok {
		t.Fatal("artifact survived delete")
	}
	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	store, err := Open(context.Background(), &config.StorageConfig{Driver: "mem"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()
	exerciseStore(t, store)
}

func TestFileStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "game-files")
	store, err := Open(context.Background(), &config.StorageConfig{Driver: "file", BaseDir: dir})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()
	exerciseStore(t, store)
}
