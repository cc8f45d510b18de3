package objstore

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
	"gocloud.dev/gcerrors"

	"gitlab.com/clawgames.net/internal/core/ports/secondary"
)

type blobStore struct {
	bk *blob.Bucket
}

func openBlob(ctx context.Context, bucketURL string) (Store, error) {
	bk, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, fmt.Errorf("open bucket: %w", err)
	}
	return &blobStore{bk: bk}, nil
}

func (s *blobStore) Put(ctx context.Context, key string, r io.ReadSeeker, _ int64, contentType string) error {
	key = sanitizeKey(key)
	w, err := s.bk.NewWriter(ctx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

func (s *blobStore) Exists(ctx context.Context, key string) (bool, error) {
	return s.bk.Exists(ctx, sanitizeKey(key))
}

func (s *blobStore) Delete(ctx context.Context, key string) error {
	err := s.bk.Delete(ctx, sanitizeKey(key))
	if gcerrors.Code(err) == gcerrors.NotFound {
		return nil
	}
	return err
}

func (s *blobStore) List(ctx context.Context, prefix string) ([]secondary.ArtifactInfo, error) {
	iter := s.bk.List(&blob.ListOptions{Prefix: sanitizeKey(prefix)})
	out := make([]secondary.ArtifactInfo, 0)
	for {
		obj, err := iter.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if obj.IsDir {
			continue
		}
		out = append(out, secondary.ArtifactInfo{Key: obj.Key, ModTime: obj.ModTime})
	}
	return out, nil
}

func (s *blobStore) Close() error {
	return s.bk.Close()
}
