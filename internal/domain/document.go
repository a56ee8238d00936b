package domain

import "time"

// DocumentFileType enumerates accepted upload formats.
type DocumentFileType string

const (
	DocumentFileTypePNG  DocumentFileType = "png"
	DocumentFileTypeJPG  DocumentFileType = "jpg"
	DocumentFileTypeJPEG DocumentFileType = "jpeg"
	DocumentFileTypePDF  DocumentFileType = "pdf"
)

// ParseDocumentFileType maps a file extension to a known type.
func ParseDocumentFileType(ext string) (DocumentFileType, bool) {
	switch DocumentFileType(ext) {
	case DocumentFileTypePNG, DocumentFileTypeJPG, DocumentFileTypeJPEG, DocumentFileTypePDF:
		return DocumentFileType(ext), true
	}
	return "", false
}

// Document records an uploaded file stored in object storage.
type Document struct {
	ID           string
	UserID       string
	TaxProfileID *string
	Type         string
	OriginalName string
	StorageKey   string
	FileType     DocumentFileType
	Size         int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
