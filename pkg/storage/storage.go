package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	apperrors "github.com/getmentor/mentorlink-api/pkg/errors"
	"github.com/getmentor/mentorlink-api/pkg/logger"
	"github.com/getmentor/mentorlink-api/pkg/metrics"
	"github.com/getmentor/mentorlink-api/pkg/retry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultEndpoint = "https://storage.yandexcloud.net"
	defaultRegion   = "ru-central1"

	// MaxImageSize is the largest accepted decoded image
	MaxImageSize = 10 * 1024 * 1024
)

var imageExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// putObjectAPI is the subset of the S3 client used for uploads
type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// StorageClient uploads profile pictures to an S3-compatible bucket
type StorageClient struct {
	s3Client   putObjectAPI
	bucketName string
	endpoint   string
}

// NewStorageClient creates an S3-compatible object storage client
func NewStorageClient(accessKeyID, secretAccessKey, bucketName, endpoint, region string) *StorageClient {
	endpoint, region = withDefaults(endpoint, region)

	s3Client := s3.New(s3.Options{
		Region:       region,
		BaseEndpoint: aws.String(endpoint),
		UsePathStyle: true,
		Credentials: credentials.NewStaticCredentialsProvider(
			accessKeyID,
			secretAccessKey,
			"", // session token not needed
		),
	})

	logger.Info("Object storage client initialized",
		zap.String("bucket", bucketName),
		zap.String("endpoint", endpoint),
		zap.String("region", region),
	)

	return &StorageClient{
		s3Client:   s3Client,
		bucketName: bucketName,
		endpoint:   strings.TrimRight(endpoint, "/"),
	}
}

func withDefaults(endpoint, region string) (string, string) {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	if region == "" {
		region = defaultRegion
	}
	return endpoint, region
}

// UploadProfilePicture stores a base64 (or data URI) image under the user's prefix
// and returns its public URL.
func (s *StorageClient) UploadProfilePicture(ctx context.Context, userID, imageData, contentType string) (string, error) {
	start := time.Now()
	operation := "uploadProfilePicture"

	ext, err := ValidateImageType(contentType)
	if err != nil {
		return "", err
	}

	imageBytes, err := DecodeImage(imageData)
	if err != nil {
		return "", err
	}

	key := ObjectKey(userID, ext)

	err = retry.Do(ctx, retry.StorageConfig(), operation, func() error {
		_, putErr := s.s3Client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(s.bucketName),
			Key:         aws.String(key),
			Body:        bytes.NewReader(imageBytes),
			ContentType: aws.String(strings.ToLower(contentType)),
		})
		return putErr
	})

	duration := metrics.MeasureDuration(start)
	status := metrics.StatusLabel(err)
	metrics.StorageRequestDuration.WithLabelValues(operation, status).Observe(duration)
	metrics.StorageRequestTotal.WithLabelValues(operation, status).Inc()

	if err != nil {
		logger.LogAPICall(ctx, "object_storage", operation, status, duration,
			zap.Error(err),
			zap.String("key", key),
		)
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	logger.LogAPICall(ctx, "object_storage", operation, status, duration,
		zap.String("key", key),
		zap.Int("size_bytes", len(imageBytes)),
	)

	return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucketName, key), nil
}

// ObjectKey builds a unique object key for a user's picture
func ObjectKey(userID, ext string) string {
	return path.Join("profile-pictures", userID, uuid.NewString()+"."+ext)
}

// ValidateImageType checks the content type and returns the file extension for it
func ValidateImageType(contentType string) (string, error) {
	ext, ok := imageExtensions[strings.ToLower(contentType)]
	if !ok {
		return "", apperrors.InvalidInputError("contentType", fmt.Sprintf("%s not allowed, use jpeg, png or webp", contentType))
	}
	return ext, nil
}

// DecodeImage decodes raw base64 or a data URI and enforces MaxImageSize
func DecodeImage(imageData string) ([]byte, error) {
	encoded := imageData
	if strings.HasPrefix(imageData, "data:") {
		parts := strings.SplitN(imageData, ",", 2)
		if len(parts) != 2 {
			return nil, apperrors.InvalidInputError("image", "invalid data URI format")
		}
		encoded = parts[1]
	}

	// Reject before decoding if the encoded form is clearly too large
	if base64.StdEncoding.DecodedLen(len(encoded)) > MaxImageSize+2 {
		return nil, apperrors.InvalidInputError("image", fmt.Sprintf("file too large (max %d bytes)", MaxImageSize))
	}

	imageBytes, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, apperrors.InvalidInputError("image", "not valid base64")
	}
	if len(imageBytes) == 0 {
		return nil, apperrors.InvalidInputError("image", "empty")
	}
	if len(imageBytes) > MaxImageSize {
		return nil, apperrors.InvalidInputError("image", fmt.Sprintf("file too large: %d bytes (max %d bytes)", len(imageBytes), MaxImageSize))
	}

	return imageBytes, nil
}
