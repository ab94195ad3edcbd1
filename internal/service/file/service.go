package file

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	_ "image/jpeg" // Import for JPEG decoding support

	"github.com/element-cleaning/paystatement-backend-go/internal/domain/statement"
	"github.com/element-cleaning/paystatement-backend-go/internal/domain/upload"
	"golang.org/x/image/draw"
)

const maxUploadSize = 20 << 20

type FileService interface {
	// UploadDocument forwards a client-supplied PDF to the upload target.
	UploadDocument(ctx context.Context, file io.Reader, filename string, req upload.Request) (upload.Result, error)

	// PrepareLogo decodes a PNG or JPEG logo and scales it down to maxHeight pixels.
	PrepareLogo(file io.Reader, maxHeight int) ([]byte, error)
}

type fileServiceImpl struct {
	uploader upload.Uploader
}

func NewFileService(uploader upload.Uploader) FileService {
	return &fileServiceImpl{
		uploader: uploader,
	}
}

// UploadDocument uploads a PDF. Filename and content type of req are taken from the file.
func (s *fileServiceImpl) UploadDocument(ctx context.Context, file io.Reader, filename string, req upload.Request) (upload.Result, error) {
	if file == nil {
		return upload.Result{}, upload.ErrFileRequired
	}

	// Validate file extension
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".pdf" {
		return upload.Result{}, upload.ErrInvalidFileType
	}

	content, err := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
	if err != nil {
		return upload.Result{}, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(content) == 0 {
		return upload.Result{}, upload.ErrFileRequired
	}
	if len(content) > maxUploadSize {
		return upload.Result{}, fmt.Errorf("%w: limit is %d MB", upload.ErrFileTooLarge, maxUploadSize>>20)
	}

	req.Content = content
	req.Filename = filepath.Base(filename)
	req.ContentType = "application/pdf"

	result, err := s.uploader.Upload(ctx, req)
	if err != nil {
		slog.Error("Failed to upload document", "destination", req.Destination, "filename", req.Filename, "error", err)
		return upload.Result{}, &statement.CollaboratorError{Collaborator: statement.CollaboratorUploadSink, Err: err}
	}
	return result, nil
}

// PrepareLogo always returns PNG bytes, ready to embed in a PDF.
func (s *fileServiceImpl) PrepareLogo(file io.Reader, maxHeight int) ([]byte, error) {
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode logo: %w", err)
	}

	bounds := img.Bounds()
	if maxHeight > 0 && bounds.Dy() > maxHeight {
		width := bounds.Dx() * maxHeight / bounds.Dy()
		if width < 1 {
			width = 1
		}
		img = resizeImage(img, width, maxHeight)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode logo: %w", err)
	}
	return buf.Bytes(), nil
}

// resizeImage resizes an image to the specified dimensions using high-quality interpolation
func resizeImage(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	// Use CatmullRom for high-quality downscaling
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
