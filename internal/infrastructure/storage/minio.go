package storage

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

const transcriptPrefix = "transcripts/"

// TranscriptObjectName returns the object key a meeting transcript is archived under
func TranscriptObjectName(meetingID uuid.UUID) string {
	return transcriptPrefix + meetingID.String() + ".txt"
}

// MinIOClient archives meeting transcripts in an S3-compatible bucket
type MinIOClient struct {
	client    *minio.Client
	bucket    string
	publicURL string // Public URL for generating accessible URLs (e.g., https://minio.example.com)
}

// NewMinIOClient creates a new MinIO client
func NewMinIOClient(cfg *config.StorageConfig) (*MinIOClient, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	client := &MinIOClient{
		client:    minioClient,
		bucket:    cfg.BucketName,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}

	return client, nil
}

// ensureBucket creates the bucket if missing. Transcripts stay private and are
// only reachable through presigned URLs.
func (m *MinIOClient) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// ArchiveTranscript stores the transcript text and returns its object name
func (m *MinIOClient) ArchiveTranscript(ctx context.Context, meetingID uuid.UUID, transcript string) (string, error) {
	objectName := TranscriptObjectName(meetingID)
	_, err := m.client.PutObject(ctx, m.bucket, objectName, strings.NewReader(transcript), int64(len(transcript)), minio.PutObjectOptions{
		ContentType: "text/plain; charset=utf-8",
		UserMetadata: map[string]string{
			"meeting-id": meetingID.String(),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload transcript: %w", err)
	}
	return objectName, nil
}

// TranscriptURL returns a presigned download URL for an archived transcript
func (m *MinIOClient) TranscriptURL(ctx context.Context, meetingID uuid.UUID, expiry time.Duration) (string, error) {
	u, err := m.client.PresignedGetObject(ctx, m.bucket, TranscriptObjectName(meetingID), expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return RewritePublicURL(u, m.publicURL), nil
}

// ListTranscripts returns the meeting IDs that have an archived transcript
func (m *MinIOClient) ListTranscripts(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID

	objectCh := m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:    transcriptPrefix,
		Recursive: true,
	})
	for object := range objectCh {
		if object.Err != nil {
			return nil, fmt.Errorf("error listing objects: %w", object.Err)
		}
		id, err := uuid.Parse(strings.TrimSuffix(path.Base(object.Key), ".txt"))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// RewritePublicURL swaps the internal endpoint of u for publicURL, keeping the
// bucket path and the signature query. MinIO behind a reverse proxy needs this.
func RewritePublicURL(u *url.URL, publicURL string) string {
	if publicURL == "" {
		return u.String()
	}
	rest := u.EscapedPath()
	if u.RawQuery != "" {
		rest += "?" + u.RawQuery
	}
	return strings.TrimRight(publicURL, "/") + rest
}
