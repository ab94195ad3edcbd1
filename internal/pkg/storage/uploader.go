package storage

import (
	"bytes"
	"context"
	"path"
	"strings"

	"github.com/element-cleaning/paystatement-backend-go/internal/domain/upload"
)

const (
	defaultFolderName = "Unassigned"
	defaultFileName   = "pay_statement.pdf"
)

// FolderUploader files uploads into one folder per destination label, mirroring
// the per-contractor folders used on Drive.
type FolderUploader struct {
	storage FileStorage
}

func NewFolderUploader(storage FileStorage) *FolderUploader {
	return &FolderUploader{storage: storage}
}

// Upload implements upload.Uploader. Access tokens are ignored.
func (u *FolderUploader) Upload(ctx context.Context, req upload.Request) (upload.Result, error) {
	if len(req.Content) == 0 {
		return upload.Result{}, upload.ErrFileRequired
	}

	folder := FolderName(req.Destination)
	exists, err := u.storage.Exists(ctx, folder)
	if err != nil {
		return upload.Result{}, err
	}
	if !exists && !req.AllowCreate {
		return upload.Result{}, upload.ErrFolderNotFound
	}

	name := FolderName(req.Filename)
	if name == defaultFolderName {
		name = defaultFileName
	}

	stored, err := u.storage.Upload(ctx, bytes.NewReader(req.Content), path.Join(folder, name), req.ContentType)
	if err != nil {
		return upload.Result{}, err
	}

	url, err := u.storage.GetURL(ctx, stored, 0)
	if err != nil {
		return upload.Result{}, err
	}

	return upload.Result{
		ID:             stored,
		Name:           name,
		WebViewLink:    url,
		WebContentLink: url,
		FolderID:       folder,
	}, nil
}

// FolderName turns a free-text label into a single safe path segment.
func FolderName(label string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '-'
		}
		if r < 0x20 {
			return -1
		}
		return r
	}, strings.TrimSpace(label))

	cleaned = strings.Trim(cleaned, ". ")
	if cleaned == "" {
		return defaultFolderName
	}
	return cleaned
}
