package gdrive

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/element-cleaning/paystatement-backend-go/internal/domain/upload"
	"github.com/element-cleaning/paystatement-backend-go/internal/pkg/oauth"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const (
	folderMimeType     = "application/vnd.google-apps.folder"
	defaultFolderName  = "Contractor"
	defaultFilename    = "pay-statement.pdf"
	defaultContentType = "application/pdf"
)

// Uploader files documents into per-contractor folders under a parent Drive folder.
type Uploader struct {
	credentials    oauth.DriveCredentials
	parentFolderID string
	driveID        string
	options        []option.ClientOption
}

// NewUploader returns a Drive-backed upload.Uploader. driveID restricts folder
// lookups to one shared drive; extra options are passed to every Drive client.
func NewUploader(credentials oauth.DriveCredentials, parentFolderID, driveID string, opts ...option.ClientOption) *Uploader {
	return &Uploader{
		credentials:    credentials,
		parentFolderID: parentFolderID,
		driveID:        driveID,
		options:        opts,
	}
}

// Upload implements upload.Uploader.
func (u *Uploader) Upload(ctx context.Context, req upload.Request) (upload.Result, error) {
	if len(req.Content) == 0 {
		return upload.Result{}, upload.ErrFileRequired
	}
	if u.parentFolderID == "" {
		return upload.Result{}, upload.ErrMissingParentFolder
	}

	ts, serviceAccount, err := u.credentials.TokenSource(ctx, req.AccessToken)
	if err != nil {
		return upload.Result{}, fmt.Errorf("%w: %v", upload.ErrMissingCredentials, err)
	}

	opts := append([]option.ClientOption{option.WithTokenSource(ts)}, u.options...)
	svc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return upload.Result{}, fmt.Errorf("failed to create drive client: %w", err)
	}

	driveID := u.driveID
	if serviceAccount {
		// Service accounts have no storage quota of their own.
		resolved, err := u.sharedDriveID(ctx, svc)
		if err != nil {
			return upload.Result{}, err
		}
		if driveID == "" {
			driveID = resolved
		}
	}

	folderName := strings.TrimSpace(req.Destination)
	if folderName == "" {
		folderName = defaultFolderName
	}

	folderID, err := u.findFolder(ctx, svc, folderName, driveID)
	if err != nil {
		return upload.Result{}, err
	}
	if folderID == "" {
		if !req.AllowCreate {
			return upload.Result{}, upload.ErrFolderNotFound
		}
		if folderID, err = u.createFolder(ctx, svc, folderName); err != nil {
			return upload.Result{}, err
		}
	}

	filename := strings.TrimSpace(req.Filename)
	if filename == "" {
		filename = defaultFilename
	}
	contentType := req.ContentType
	if contentType == "" {
		contentType = defaultContentType
	}

	file, err := svc.Files.Create(&drive.File{
		Name:     filename,
		Parents:  []string{folderID},
		MimeType: contentType,
	}).
		Media(bytes.NewReader(req.Content), googleapi.ContentType(contentType)).
		Fields("id, name, webViewLink, webContentLink").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return upload.Result{}, fmt.Errorf("failed to upload file: %w", err)
	}

	slog.Info("Uploaded file to drive", "file_id", file.Id, "folder_id", folderID, "name", file.Name)

	return upload.Result{
		ID:             file.Id,
		Name:           file.Name,
		WebViewLink:    file.WebViewLink,
		WebContentLink: file.WebContentLink,
		FolderID:       folderID,
	}, nil
}

// sharedDriveID returns the shared drive holding the parent folder.
func (u *Uploader) sharedDriveID(ctx context.Context, svc *drive.Service) (string, error) {
	parent, err := svc.Files.Get(u.parentFolderID).
		Fields("id, name, driveId, teamDriveId").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to read parent folder: %w", err)
	}

	id := parent.DriveId
	if id == "" {
		id = parent.TeamDriveId
	}
	if id == "" {
		return "", fmt.Errorf("%w: %s (%s)", upload.ErrParentNotSharedDrive, parent.Name, parent.Id)
	}
	return id, nil
}

func (u *Uploader) findFolder(ctx context.Context, svc *drive.Service, name, driveID string) (string, error) {
	call := svc.Files.List().
		Q(folderQuery(u.parentFolderID, name)).
		Fields("files(id, name)").
		IncludeItemsFromAllDrives(true).
		SupportsAllDrives(true).
		Corpora(corpora(driveID)).
		PageSize(10).
		Context(ctx)
	if driveID != "" {
		call = call.DriveId(driveID)
	}

	list, err := call.Do()
	if err != nil {
		return "", fmt.Errorf("failed to search folders: %w", err)
	}
	if len(list.Files) == 0 {
		return "", nil
	}
	return list.Files[0].Id, nil
}

func (u *Uploader) createFolder(ctx context.Context, svc *drive.Service, name string) (string, error) {
	folder, err := svc.Files.Create(&drive.File{
		Name:     name,
		MimeType: folderMimeType,
		Parents:  []string{u.parentFolderID},
	}).
		Fields("id, name").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to create folder: %w", err)
	}
	if folder.Id == "" {
		return "", fmt.Errorf("failed to create folder %q: empty id", name)
	}

	slog.Info("Created drive folder", "folder_id", folder.Id, "name", name)
	return folder.Id, nil
}

// folderQuery matches non-trashed folders named name directly under parentID.
func folderQuery(parentID, name string) string {
	return strings.Join([]string{
		fmt.Sprintf("'%s' in parents", escapeQuery(parentID)),
		"mimeType = '" + folderMimeType + "'",
		"trashed = false",
		fmt.Sprintf("name = '%s'", escapeQuery(name)),
	}, " and ")
}

func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}

// corpora searches one shared drive when its id is known, otherwise every drive.
func corpora(driveID string) string {
	if driveID != "" {
		return "drive"
	}
	return "allDrives"
}
