package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rpupo63/creator-directory-backend/config"
)

const uploadKeyPrefix = "images/"

// ObjectPresigner is the part of *s3.PresignClient used for uploads.
type ObjectPresigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// UploadURLSigner hands out short lived URLs that let a browser PUT an image
// straight into the bucket.
type UploadURLSigner struct {
	presigner ObjectPresigner
	bucket    string
	expiry    time.Duration
	now       func() time.Time
}

func NewUploadURLSigner(presigner ObjectPresigner, bucket string, expiry time.Duration) *UploadURLSigner {
	return &UploadURLSigner{
		presigner: presigner,
		bucket:    bucket,
		expiry:    expiry,
		now:       time.Now,
	}
}

// NewS3UploadURLSigner builds a signer from configuration. Static keys are used
// when both are set, otherwise the default AWS credential chain applies.
func NewS3UploadURLSigner(ctx context.Context, c map[string]string) (*UploadURLSigner, error) {
	bucket := config.GetString(c, "AWS_BUCKET_NAME", "")
	if bucket == "" {
		return nil, fmt.Errorf("AWS_BUCKET_NAME is not set")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(config.GetString(c, "AWS_REGION", "us-east-1")),
	}
	accessKey := config.GetString(c, "AWS_ACCESS_KEY_ID", "")
	secretKey := config.GetString(c, "AWS_SECRET_ACCESS_KEY", "")
	if accessKey != "" && secretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	endpoint := config.GetString(c, "AWS_S3_ENDPOINT", "")
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	expiry := time.Duration(config.GetInt(c, "UPLOAD_URL_EXPIRY_SECONDS", 60)) * time.Second
	return NewUploadURLSigner(s3.NewPresignClient(client), bucket, expiry), nil
}

// UploadKey is the object key for a file uploaded at t.
func UploadKey(t time.Time, fileName string) string {
	return fmt.Sprintf("%s%d_%s", uploadKeyPrefix, t.UnixMilli(), fileName)
}

// PresignUpload returns a URL for a public-read PUT of fileName.
func (s *UploadURLSigner) PresignUpload(ctx context.Context, fileName, fileType string) (string, error) {
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		return "", fmt.Errorf("file name is required")
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(UploadKey(s.now(), fileName)),
		ACL:    types.ObjectCannedACLPublicRead,
	}
	if fileType != "" {
		input.ContentType = aws.String(fileType)
	}

	req, err := s.presigner.PresignPutObject(ctx, input, s3.WithPresignExpires(s.expiry))
	if err != nil {
		return "", fmt.Errorf("presign put object: %w", err)
	}
	return req.URL, nil
}
