package services

import (
	"context"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	sc "github.com/dmitrijs2005/langmatch/internal/server/config"
	"github.com/google/uuid"
)

// PhotoURLExpiry is how long a presigned upload URL stays valid.
const PhotoURLExpiry = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}

	deleteObject = func(c *s3.Client, ctx context.Context, in *s3.DeleteObjectInput) error {
		_, err := c.DeleteObject(ctx, in)
		return err
	}
)

// objectStore talks to the S3-compatible bucket holding profile photos.
type objectStore struct {
	config *sc.Config
}

func photoKeyPrefix(userID string) string {
	return "profile-pictures/" + userID + "/"
}

// NewPhotoKey returns a fresh storage key under the user's prefix.
func NewPhotoKey(userID string) string {
	return photoKeyPrefix(userID) + uuid.NewString()
}

func (o *objectStore) client(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(o.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			o.config.S3RootUser,
			o.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(opts *s3.Options) {
		opts.BaseEndpoint = aws.String(o.config.S3BaseEndpoint)
		opts.UsePathStyle = true
	}), nil
}

// presignPut returns a URL the client can PUT the object to.
func (o *objectStore) presignPut(ctx context.Context, key, contentType string, size int64) (string, error) {
	c, err := o.client(ctx)
	if err != nil {
		return "", err
	}

	bucket := o.config.S3Bucket
	req, err := presignPutObject(newS3PresignClient(c), ctx, &s3.PutObjectInput{
		Bucket:        &bucket,
		Key:           &key,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	}, s3.WithPresignExpires(PhotoURLExpiry))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

func (o *objectStore) delete(ctx context.Context, key string) error {
	c, err := o.client(ctx)
	if err != nil {
		return err
	}
	bucket := o.config.S3Bucket
	return deleteObject(c, ctx, &s3.DeleteObjectInput{Bucket: &bucket, Key: &key})
}

// publicURL is the path-style URL of key in the bucket.
func (o *objectStore) publicURL(key string) string {
	return strings.TrimRight(o.config.S3BaseEndpoint, "/") + "/" + o.config.S3Bucket + "/" + key
}
