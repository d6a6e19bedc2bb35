package domain

import "strings"

// FileType classifies a resolved input payload.
type FileType string

const (
	FileTypePDF  FileType = "pdf"
	FileTypeJPG  FileType = "jpg"
	FileTypePNG  FileType = "png"
	FileTypeGIF  FileType = "gif"
	FileTypeWEBP FileType = "webp"
)

// ContentTypePDF is the only non-image content type either node accepts.
const ContentTypePDF = "application/pdf"

// AllowedContentTypes maps MIME content types to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
	"image/gif":       FileTypeGIF,
	"image/webp":      FileTypeWEBP,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
	"gif":  FileTypeGIF,
	"webp": FileTypeWEBP,
}

// IsImage reports whether ct is an image content type.
func IsImage(ct string) bool {
	return strings.HasPrefix(ct, "image/")
}

// IsPDF reports whether ct is the PDF content type. Parameters such as
// "application/pdf; charset=binary" are tolerated.
func IsPDF(ct string) bool {
	return ct == ContentTypePDF || strings.HasPrefix(ct, ContentTypePDF+";")
}
