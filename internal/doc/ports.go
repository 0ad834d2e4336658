package doc

import (
	"context"
	"errors"
)

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeText = "text/plain"
)

// UnsupportedMessage is what users see for anything but PDF, DOCX or text.
const UnsupportedMessage = "Unsupported file type. Please upload a PDF or DOCX file."

var ErrUnsupportedType = errors.New("unsupported file type")

// Converter turns one file format into plain text.
type Converter interface {
	ConvertToText(ctx context.Context, data []byte) (string, error)
}
