package document

import "io"

type UploadRequest struct {
	Title  string `form:"title" binding:"required,max=200"`
	Type   string `form:"type" binding:"max=50"`
	UserID string `form:"user_id"`
}

// UploadInput is an UploadRequest with the file attached.
type UploadInput struct {
	UploadRequest
	Filename string
	File     io.Reader
}

type DocumentResponse struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	UserName   string `json:"user_name,omitempty"`
	UserRole   string `json:"user_role,omitempty"`
	Title      string `json:"title"`
	Type       string `json:"type"`
	FilePath   string `json:"file_path"`
	UploadedAt string `json:"uploaded_at"`
}

type DocumentListResponse struct {
	Documents []DocumentResponse `json:"documents"`
	Users     []UserOption       `json:"users,omitempty"`
}

// DocumentFile is an open stored file; the caller must close Content.
type DocumentFile struct {
	Filename string
	Content  io.ReadCloser
}
