package domain

// FileType represents the allowed file types for upload.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF: "application/pdf",
	FileTypeJPG: "image/jpeg",
	FileTypePNG: "image/png",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
}

// ReceiptStatus is the closed set of workflow states for a receipt.
type ReceiptStatus string

const (
	// StatusNone is the sentinel used only as the previous_status of the
	// first history entry ("record just created"). A receipt is never in
	// this state.
	StatusNone ReceiptStatus = "N/A"

	StatusStarted  ReceiptStatus = "STARTED"
	StatusApproved ReceiptStatus = "APPROVED"
	StatusRejected ReceiptStatus = "REJECTED"
)

// ValidStatuses holds every state a persisted receipt may be in.
var ValidStatuses = map[ReceiptStatus]bool{
	StatusStarted:  true,
	StatusApproved: true,
	StatusRejected: true,
}

// validTransitions is the transition table. Terminal states have no rows.
var validTransitions = map[ReceiptStatus]map[ReceiptStatus]bool{
	StatusNone: {
		StatusStarted: true,
	},
	StatusStarted: {
		StatusApproved: true,
		StatusRejected: true,
	},
}

// IsTerminal reports whether no further transition is permitted out of s.
func (s ReceiptStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// CanTransition reports whether the workflow permits moving from s to next.
func (s ReceiptStatus) CanTransition(next ReceiptStatus) bool {
	return validTransitions[s][next]
}
