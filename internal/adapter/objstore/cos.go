package objstore

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	cos "github.com/tencentyun/cos-go-sdk-v5"

	"gitlab.com/clawgames.net/internal/config"
	"gitlab.com/clawgames.net/internal/core/ports/secondary"
)

type cosStore struct {
	cli *cos.Client
}

func openCOS(c *config.StorageConfig) (Store, error) {
	var bucketURL *url.URL
	if c.Endpoint != "" {
		u, err := url.Parse(c.Endpoint)
		if err != nil {
			return nil, err
		}
		// path-style when the host does not carry the bucket
		if !strings.Contains(u.Host, c.Bucket) && !strings.HasSuffix(u.Path, "/"+c.Bucket) {
			u.Path = "/" + c.Bucket
		}
		bucketURL = u
	} else {
		u, err := url.Parse(fmt.Sprintf("https://%s.cos.%s.myqcloud.com", c.Bucket, c.Region))
		if err != nil {
			return nil, err
		}
		bucketURL = u
	}
	b := &cos.BaseURL{BucketURL: bucketURL}
	cli := cos.NewClient(b, &http.Client{Transport: &cos.AuthorizationTransport{SecretID: c.AccessKey, SecretKey: c.SecretKey}})
	return &cosStore{cli: cli}, nil
}

func (s *cosStore) Put(ctx context.Context, key string, r io.ReadSeeker, _ int64, contentType string) error {
	key = sanitizeKey(key)
	opt := &cos.ObjectPutOptions{}
	if contentType != "" {
		opt.ObjectPutHeaderOptions = &cos.ObjectPutHeaderOptions{ContentType: contentType}
	}
	_, err := s.cli.Object.Put(ctx, key, r, opt)
	return err
}

func (s *cosStore) Exists(ctx context.Context, key string) (bool, error) {
	return s.cli.Object.IsExist(ctx, sanitizeKey(key))
}

func (s *cosStore) Delete(ctx context.Context, key string) error {
	_, err := s.cli.Object.Delete(ctx, sanitizeKey(key))
	return err
}

func (s *cosStore) List(ctx context.Context, prefix string) ([]secondary.ArtifactInfo, error) {
	out := make([]secondary.ArtifactInfo, 0)
	marker := ""
	for {
		res, _, err := s.cli.Bucket.Get(ctx, &cos.BucketGetOptions{
			Prefix:  sanitizeKey(prefix),
			Marker:  marker,
			MaxKeys: 1000,
		})
		if err != nil {
			return nil, err
		}
		for _, obj := range res.Contents {
			modTime, err := time.Parse(time.RFC3339, obj.LastModified)
			if err != nil {
				return nil, fmt.Errorf("parse modification time of %s: %w", obj.Key, err)
			}
			out = append(out, secondary.ArtifactInfo{Key: obj.Key, ModTime: modTime})
		}
		if !res.IsTruncated {
			break
		}
		marker = res.NextMarker
	}
	return out, nil
}

func (s *cosStore) Close() error {
	return nil
}
