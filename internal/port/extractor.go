package port

import (
	"context"

	"civicfix/internal/domain"
)

// TextExtractor converts an uploaded document into plain text. Engine-level
// failures on either extraction path are absorbed into a result with
// ProvenanceNone; an error is returned only when the document file itself
// cannot be accessed.
type TextExtractor interface {
	Extract(ctx context.Context, doc domain.UploadedDocument) (domain.ExtractedText, error)
}
