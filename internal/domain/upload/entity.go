package upload

// Request is a single file handed to an upload target.
type Request struct {
	Content     []byte
	Destination string // folder label, usually the contractor name
	Filename    string
	ContentType string
	AllowCreate bool   // create the destination folder when it does not exist
	AccessToken string // optional end-user OAuth token; overrides configured credentials
}

// Result references the stored file.
type Result struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	WebViewLink    string `json:"web_view_link,omitempty"`
	WebContentLink string `json:"web_content_link,omitempty"`
	FolderID       string `json:"folder_id"`
}
