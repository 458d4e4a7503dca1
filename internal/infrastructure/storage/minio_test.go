package storage

import (
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscriptObjectName(t *testing.T) {
	id := uuid.MustParse("8f14e45f-ceea-467f-a0e6-2b6c1f1f0a11")
	assert.Equal(t, "transcripts/8f14e45f-ceea-467f-a0e6-2b6c1f1f0a11.txt", TranscriptObjectName(id))
}

func TestRewritePublicURL(t *testing.T) {
	raw := "http://minio:9000/meeting-minutes/transcripts/a.txt?X-Amz-Signature=abc&X-Amz-Expires=900"
	u, err := url.Parse(raw)
	require.NoError(t, err)

	t.Run("no public url keeps the presigned url", func(t *testing.T) {
		assert.Equal(t, raw, RewritePublicURL(u, ""))
	})

	t.Run("public url replaces scheme and host", func(t *testing.T) {
		got := RewritePublicURL(u, "https://files.example.com/")
		assert.Equal(t, "https://files.example.com/meeting-minutes/transcripts/a.txt?X-Amz-Signature=abc&X-Amz-Expires=900", got)
	})
}
