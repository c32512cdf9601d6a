package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/langmatch/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubS3 replaces the S3 seams for the duration of the test.
func stubS3(t *testing.T, presign func(in *s3.PutObjectInput) (*v4.PresignedHTTPRequest, error), del func(in *s3.DeleteObjectInput) error) {
	t.Helper()
	origLoad, origNewS3, origNewPre, origPut, origDel := loadDefaultAWSConfig, newS3ClientFromConfig, newS3PresignClient, presignPutObject, deleteObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewS3
		newS3PresignClient = origNewPre
		presignPutObject = origPut
		deleteObject = origDel
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			_ = fn(&lo)
		}
		return aws.Config{Region: lo.Region}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client { return &s3.Client{} }
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient { return &s3.PresignClient{} }
	presignPutObject = func(_ *s3.PresignClient, _ context.Context, in *s3.PutObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return presign(in)
	}
	deleteObject = func(_ *s3.Client, _ context.Context, in *s3.DeleteObjectInput) error {
		return del(in)
	}
}

func TestPhotoUploadURL(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, "a")

	var got *s3.PutObjectInput
	stubS3(t, func(in *s3.PutObjectInput) (*v4.PresignedHTTPRequest, error) {
		got = in
		return &v4.PresignedHTTPRequest{URL: "http://s3/put?sig", Method: http.MethodPut}, nil
	}, func(*s3.DeleteObjectInput) error { return nil })

	up, err := f.prof.PhotoUploadURL(ctx, "a", "a", "image/png", 1024)
	require.NoError(t, err)
	assert.Equal(t, "http://s3/put?sig", up.URL)
	assert.True(t, strings.HasPrefix(up.Key, "profile-pictures/a/"))

	require.NotNil(t, got)
	assert.Equal(t, "langmatch", *got.Bucket)
	assert.Equal(t, up.Key, *got.Key)
	assert.Equal(t, "image/png", *got.ContentType)
	assert.Equal(t, int64(1024), *got.ContentLength)
}

func TestPhotoUploadURL_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, "a")
	stubS3(t, func(*s3.PutObjectInput) (*v4.PresignedHTTPRequest, error) {
		t.Fatal("presign must not be called")
		return nil, nil
	}, func(*s3.DeleteObjectInput) error { return nil })

	_, err := f.prof.PhotoUploadURL(ctx, "a", "a", "application/pdf", 10)
	assert.ErrorIs(t, err, common.ErrorValidation)
	_, err = f.prof.PhotoUploadURL(ctx, "a", "a", "image/jpeg", MaxPhotoSize+1)
	assert.ErrorIs(t, err, common.ErrorValidation)
	_, err = f.prof.PhotoUploadURL(ctx, "a", "a", "image/jpeg", 0)
	assert.ErrorIs(t, err, common.ErrorValidation)
	_, err = f.prof.PhotoUploadURL(ctx, "b", "a", "image/jpeg", 10)
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestPhotoUploadURL_PresignError(t *testing.T) {
	f := newFixture(t, nil, "a")
	stubS3(t, func(*s3.PutObjectInput) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("presign-put-fail")
	}, func(*s3.DeleteObjectInput) error { return nil })

	_, err := f.prof.PhotoUploadURL(context.Background(), "a", "a", "image/png", 10)
	assert.ErrorIs(t, err, common.ErrorInternal)
}

func TestPhotoUploadURL_ConfigError(t *testing.T) {
	f := newFixture(t, nil, "a")
	stubS3(t, nil, nil)
	loadDefaultAWSConfig = func(context.Context, ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no config")
	}

	_, err := f.prof.PhotoUploadURL(context.Background(), "a", "a", "image/png", 10)
	assert.ErrorIs(t, err, common.ErrorInternal)
}

func TestSetPhoto(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, "a", "b")

	var deleted []string
	delErr := error(nil)
	stubS3(t, nil, func(in *s3.DeleteObjectInput) error {
		deleted = append(deleted, *in.Key)
		return delErr
	})

	p, err := f.prof.SetPhoto(ctx, "a", "a", "profile-pictures/a/one")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9000/langmatch/profile-pictures/a/one", p.PhotoURL)
	assert.Empty(t, deleted)

	delErr = errors.New("s3 down")
	p, err = f.prof.SetPhoto(ctx, "a", "a", "profile-pictures/a/two")
	require.NoError(t, err, "old photo cleanup is best effort")
	assert.Equal(t, []string{"profile-pictures/a/one"}, deleted)
	assert.Equal(t, "profile-pictures/a/two", f.profile(t, "a").PhotoKey)
	assert.Equal(t, p.PhotoURL, f.profile(t, "a").PhotoURL)

	// The new photo shows up in later matches.
	mid := f.match(t, "a", "b")
	m, err := f.mm.GetMatch(ctx, "b", mid)
	require.NoError(t, err)
	assert.Equal(t, p.PhotoURL, m.Participants[1].PhotoURL)

	for _, key := range []string{"profile-pictures/b/x", "profile-pictures/a/", "profile-pictures/a/x/y", "other/a/x"} {
		_, err := f.prof.SetPhoto(ctx, "a", "a", key)
		assert.ErrorIs(t, err, common.ErrorValidation, key)
	}
}
