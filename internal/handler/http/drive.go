package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/element-cleaning/paystatement-backend-go/internal/domain/upload"
	"github.com/element-cleaning/paystatement-backend-go/internal/handler/http/response"
	"github.com/element-cleaning/paystatement-backend-go/internal/service/file"
)

type DriveHandler interface {
	Upload(w http.ResponseWriter, r *http.Request)
}

type DriveHandlerImpl struct {
	fileService file.FileService
}

func NewDriveHandler(fileService file.FileService) DriveHandler {
	return &DriveHandlerImpl{
		fileService: fileService,
	}
}

// Upload accepts a multipart form with file, filename, contractorName and allowCreate
// and stores the PDF in the contractor's folder.
func (h *DriveHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	// Parse multipart form (max 10MB in memory, rest spills to disk)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Drive upload parse error", "error", err)
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		response.HandleError(w, upload.ErrFileRequired)
		return
	}
	defer f.Close()

	contractorName := strings.TrimSpace(r.FormValue("contractorName"))
	if contractorName == "" {
		response.ValidationError(w, map[string]string{"contractorName": "is required"})
		return
	}

	allowCreate := true
	if v := r.FormValue("allowCreate"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			response.ValidationError(w, map[string]string{"allowCreate": "must be a boolean"})
			return
		}
		allowCreate = parsed
	}

	filename := strings.TrimSpace(r.FormValue("filename"))
	if filename == "" {
		filename = header.Filename
	}

	result, err := h.fileService.UploadDocument(r.Context(), f, filename, upload.Request{
		Destination: contractorName,
		AllowCreate: allowCreate,
		AccessToken: driveAccessToken(r),
	})
	if err != nil {
		slog.Error("Drive upload service error", "error", err, "contractor", contractorName)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "File uploaded successfully", result)
}
