package record

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestProcessedAndSucceeded_NilSafe(t *testing.T) {
	var rec *Record
	require.False(t, rec.Processed())
	require.False(t, rec.Succeeded())
}

func TestMarkUploaded_FirstSuccess(t *testing.T) {
	now := time.Unix(1700000000, 0)
	rec := &Record{}
	rec.MarkUploaded("img_1", "sha256:aa", now)

	require.Equal(t, "img_1", rec.ImageID)
	require.Equal(t, StatusOK, rec.Status)
	require.Empty(t, rec.LastError)
	require.EqualValues(t, 1700000000, rec.UploadedAt)
	require.EqualValues(t, 1700000000, rec.LastSyncAt)
	require.Equal(t, "sha256:aa", rec.SourceHash)
	require.True(t, rec.Processed())
	require.True(t, rec.Succeeded())
}

func TestMarkUploaded_KeepsFirstUploadedAt(t *testing.T) {
	rec := &Record{}
	rec.MarkUploaded("img_1", "sha256:aa", time.Unix(1000, 0))
	rec.MarkUploaded("img_1", "sha256:bb", time.Unix(2000, 0))

	require.EqualValues(t, 1000, rec.UploadedAt)
	require.EqualValues(t, 2000, rec.LastSyncAt)
	require.Equal(t, "sha256:bb", rec.SourceHash)
}

func TestMarkFailed_PreservesImageID(t *testing.T) {
	rec := &Record{}
	rec.MarkUploaded("img_1", "sha256:aa", time.Unix(1000, 0))
	rec.MarkFailed("remote exploded")

	require.Equal(t, StatusFailed, rec.Status)
	require.Equal(t, "remote exploded", rec.LastError)
	require.Equal(t, "img_1", rec.ImageID)
	require.True(t, rec.Processed())
	require.False(t, rec.Succeeded())
}

func TestMarkFailed_TruncatesError(t *testing.T) {
	rec := &Record{}
	rec.MarkFailed(strings.Repeat("x", 300))
	require.Len(t, rec.LastError, 255)
}

func TestMarkUploaded_ClearsPreviousError(t *testing.T) {
	rec := &Record{}
	rec.MarkFailed("boom")
	rec.MarkUploaded("img_1", "sha256:aa", time.Unix(1000, 0))
	require.Empty(t, rec.LastError)
	require.Equal(t, StatusOK, rec.Status)
}
