package domain

import (
	"path/filepath"
	"strings"
)

// FileType represents the supported upload formats.
type FileType string

const (
	FileTypePDF  FileType = "pdf"
	FileTypeDOCX FileType = "docx"
	FileTypeDOC  FileType = "doc"
	FileTypeTXT  FileType = "txt"
	FileTypePNG  FileType = "png"
	FileTypeJPG  FileType = "jpg"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF:  "application/pdf",
	FileTypeDOCX: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	FileTypeDOC:  "application/msword",
	FileTypeTXT:  "text/plain",
	FileTypePNG:  "image/png",
	FileTypeJPG:  "image/jpeg",
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"docx": FileTypeDOCX,
	"doc":  FileTypeDOC,
	"txt":  FileTypeTXT,
	"png":  FileTypePNG,
	"jpg":  FileTypeJPG,
}

// ContentTypeForFileName returns the canonical MIME type for a file
// name's extension, or "" when the extension is not a supported format.
// Used as a fallback when an upload part declares no content type.
func ContentTypeForFileName(fileName string) string {
	ext := strings.TrimPrefix(filepath.Ext(fileName), ".")
	ft, ok := AllowedExtensions[ext]
	if !ok {
		return ""
	}
	return AllowedFileTypes[ft]
}
