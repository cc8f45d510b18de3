// Package objstore holds sanitized game documents in object storage. Drivers
// cover S3, local files and memory (through gocloud blob), Aliyun OSS and
// Tencent COS.
package objstore

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gitlab.com/clawgames.net/internal/config"
	"gitlab.com/clawgames.net/internal/core/ports/secondary"
)

const (
	DriverS3     = "s3"
	DriverFile   = "file"
	DriverMemory = "mem"
	DriverOSS    = "oss"
	DriverCOS    = "cos"
)

// Store is an artifact store that owns a connection
type Store interface {
	secondary.ArtifactStore
	Close() error
}

// Open validates c and opens the configured driver
func Open(ctx context.Context, c *config.StorageConfig) (Store, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}
	switch strings.ToLower(c.Driver) {
	case DriverS3:
		return openBlob(ctx, buildS3URL(c))
	case DriverFile:
		abs, err := filepath.Abs(c.BaseDir)
		if err != nil {
			return nil, fmt.Errorf("resolve base_dir: %w", err)
		}
		return openBlob(ctx, "file://"+filepath.ToSlash(abs))
	case DriverMemory:
		return openBlob(ctx, "mem://")
	case DriverOSS:
		return openOSS(c)
	case DriverCOS:
		return openCOS(c)
	}
	return nil, fmt.Errorf("unknown storage driver: %s", c.Driver)
}

func Validate(c *config.StorageConfig) error {
	switch strings.ToLower(c.Driver) {
	case DriverS3:
		if c.Bucket == "" {
			return errors.New("bucket required for s3 driver")
		}
		// credentials come from the AWS environment or IAM
	case DriverOSS:
		if c.Bucket == "" {
			return errors.New("bucket required for oss driver")
		}
		if c.Endpoint == "" {
			return errors.New("endpoint required for oss driver")
		}
		if c.AccessKey == "" || c.SecretKey == "" {
			return errors.New("access_key/secret_key required for oss driver")
		}
	case DriverCOS:
		if c.Bucket == "" {
			return errors.New("bucket required for cos driver")
		}
		if c.Region == "" && c.Endpoint == "" {
			return errors.New("region or endpoint required for cos driver")
		}
		if c.AccessKey == "" || c.SecretKey == "" {
			return errors.New("access_key/secret_key required for cos driver")
		}
	case DriverFile:
		if c.BaseDir == "" {
			return errors.New("base_dir required for file driver")
		}
		if err := os.MkdirAll(c.BaseDir, 0o755); err != nil {
			return fmt.Errorf("ensure base_dir: %w", err)
		}
	case DriverMemory:
	case "":
		return errors.New("STORAGE_DRIVER not set")
	default:
		return fmt.Errorf("unknown storage driver: %s", c.Driver)
	}
	return nil
}

// sanitizeKey prevents path traversal
func sanitizeKey(key string) string {
	key = filepath.ToSlash(key)
	key = strings.TrimLeft(key, "/")
	parts := strings.Split(key, "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" || p == "." || p == ".." {
			continue
		}
		out = append(out, p)
	}
	return strings.Join(out, "/")
}

// buildS3URL constructs a gocloud s3 URL with query params
func buildS3URL(c *config.StorageConfig) string {
	u := url.URL{Scheme: "s3", Host: c.Bucket}
	q := url.Values{}
	if c.Region != "" {
		q.Set("region", c.Region)
	}
	if c.Endpoint != "" {
		q.Set("endpoint", c.Endpoint)
	}
	if c.ForcePathStyle {
		q.Set("s3ForcePathStyle", "true")
	}
	u.RawQuery = q.Encode()
	return u.String()
}
