package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/element-cleaning/paystatement-backend-go/internal/domain/upload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *LocalStorage {
	t.Helper()
	s, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/files/")
	require.NoError(t, err)
	return s
}

func TestLocalStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	path, err := s.Upload(ctx, bytes.NewReader([]byte("hello")), "a/b.txt", "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "a/b.txt", path)

	rc, err := s.Download(ctx, path)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	url, err := s.GetURL(ctx, path, 0)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/files/a/b.txt", url)

	require.NoError(t, s.Delete(ctx, path))
	exists, err := s.Exists(ctx, path)
	require.NoError(t, err)
	assert.False(t, exists)

	// Deleting twice is fine.
	assert.NoError(t, s.Delete(ctx, path))
}

func TestLocalStorage_DownloadMissing(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.Download(context.Background(), "missing.json")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLocalStorage_StaysInsideBasePath(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	path, err := s.Upload(ctx, bytes.NewReader([]byte("x")), "../../escape.txt", "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "escape.txt", path)
}

func TestFolderUploader_Upload(t *testing.T) {
	ctx := context.Background()
	u := NewFolderUploader(newTestStorage(t))

	_, err := u.Upload(ctx, upload.Request{Content: []byte("%PDF"), Destination: "Luis Lopez", Filename: "stub.pdf"})
	assert.ErrorIs(t, err, upload.ErrFolderNotFound)

	res, err := u.Upload(ctx, upload.Request{Content: []byte("%PDF"), Destination: "Luis Lopez", Filename: "stub.pdf", AllowCreate: true})
	require.NoError(t, err)
	assert.Equal(t, "Luis Lopez/stub.pdf", res.ID)
	assert.Equal(t, "Luis Lopez", res.FolderID)
	assert.Equal(t, "stub.pdf", res.Name)
	assert.Equal(t, "http://localhost:8080/files/Luis Lopez/stub.pdf", res.WebViewLink)

	// Folder now exists, so allow_create=false succeeds.
	_, err = u.Upload(ctx, upload.Request{Content: []byte("%PDF"), Destination: "Luis Lopez", Filename: "second.pdf"})
	assert.NoError(t, err)
}

func TestFolderUploader_RequiresContent(t *testing.T) {
	u := NewFolderUploader(newTestStorage(t))

	_, err := u.Upload(context.Background(), upload.Request{Destination: "x", AllowCreate: true})
	assert.ErrorIs(t, err, upload.ErrFileRequired)
}

func TestFolderName(t *testing.T) {
	tests := map[string]string{
		"María García": "María García",
		"  a/b\\c  ":    "a-b-c",
		"..":           "Unassigned",
		"":             "Unassigned",
		"Q3: review?":  "Q3- review-",
	}
	for in, want := range tests {
		assert.Equal(t, want, FolderName(in), "FolderName(%q)", in)
	}
}
