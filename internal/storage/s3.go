package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Store keeps uploads in Amazon S3 (or compatible APIs) under a key prefix.
type S3Store struct {
	client    *s3.Client
	uploader  *manager.Uploader
	bucket    string
	keyPrefix string
}

func NewS3Store(client *s3.Client, bucket, keyPrefix string) (*S3Store, error) {
	if bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}
	return &S3Store{
		client:    client,
		uploader:  manager.NewUploader(client),
		bucket:    bucket,
		keyPrefix: strings.Trim(keyPrefix, "/"),
	}, nil
}

func (s *S3Store) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	ref := SanitizeFilename(name)
	if ref == "" {
		return "", ErrInvalidName
	}

	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objectKey(s.keyPrefix, ref)),
		Body:        r,
		ContentType: aws.String(contentTypeFor(ref)),
		ACL:         types.ObjectCannedACLPrivate,
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", ref, err)
	}
	return ref, nil
}

func (s *S3Store) Open(ctx context.Context, ref string) (*Object, error) {
	if ref == "" {
		return nil, fmt.Errorf("%q: %w", ref, ErrObjectNotFound)
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey(s.keyPrefix, ref)),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, fmt.Errorf("%q: %w", ref, ErrObjectNotFound)
		}
		return nil, fmt.Errorf("get object %s: %w", ref, err)
	}

	size := int64(-1)
	if out.ContentLength != nil {
		size = *out.ContentLength
	}
	contentType := aws.ToString(out.ContentType)
	if contentType == "" {
		contentType = contentTypeFor(ref)
	}
	return &Object{
		Body:        out.Body,
		Size:        size,
		ContentType: contentType,
	}, nil
}

func (s *S3Store) Delete(ctx context.Context, ref string) error {
	if ref == "" {
		return fmt.Errorf("%q: %w", ref, ErrInvalidName)
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey(s.keyPrefix, ref)),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", ref, err)
	}
	return nil
}

func objectKey(prefix, ref string) string {
	if prefix == "" {
		return ref
	}
	return prefix + "/" + ref
}

var _ FileStore = (*S3Store)(nil)
