package objstore

import (
	"context"
	"io"

	oss "github.com/aliyun/aliyun-oss-go-sdk/oss"

	"gitlab.com/clawgames.net/internal/config"
	"gitlab.com/clawgames.net/internal/core/ports/secondary"
)

type ossStore struct {
	bk *oss.Bucket
}

func openOSS(c *config.StorageConfig) (Store, error) {
	cli, err := oss.New(c.Endpoint, c.AccessKey, c.SecretKey)
	if err != nil {
		return nil, err
	}
	bk, err := cli.Bucket(c.Bucket)
	if err != nil {
		return nil, err
	}
	return &ossStore{bk: bk}, nil
}

func (s *ossStore) Put(_ context.Context, key string, r io.ReadSeeker, _ int64, contentType string) error {
	key = sanitizeKey(key)
	opts := []oss.Option{oss.ForbidOverWrite(true)}
	if contentType != "" {
		opts = append(opts, oss.ContentType(contentType))
	}
	return s.bk.PutObject(key, r, opts...)
}

func (s *ossStore) Exists(_ context.Context, key string) (bool, error) {
	return s.bk.IsObjectExist(sanitizeKey(key))
}

func (s *ossStore) Delete(_ context.Context, key string) error {
	return s.bk.DeleteObject(sanitizeKey(key))
}

func (s *ossStore) List(_ context.Context, prefix string) ([]secondary.ArtifactInfo, error) {
	out := make([]secondary.ArtifactInfo, 0)
	marker := ""
	for {
		res, err := s.bk.ListObjects(oss.Prefix(sanitizeKey(prefix)), oss.Marker(marker), oss.MaxKeys(1000))
		if err != nil {
			return nil, err
		}
		for _, obj := range res.Objects {
			out = append(out, secondary.ArtifactInfo{Key: obj.Key, ModTime: obj.LastModified})
		}
		if !res.IsTruncated {
			break
		}
		marker = res.NextMarker
	}
	return out, nil
}

func (s *ossStore) Close() error {
	return nil
}
