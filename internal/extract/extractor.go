package extract

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"code.sajari.com/docconv"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"civicfix/internal/config"
	"civicfix/internal/domain"
	"civicfix/internal/port"
)

// Extractor converts uploaded documents to plain text. PDFs first go through
// direct text-layer extraction; when that yields too little text (scanned
// documents), pages are rasterized with pdftoppm and run through tesseract.
// Plain images skip straight to tesseract.
type Extractor struct {
	cfg    config.ExtractConfig
	runner Runner
}

// NewExtractor creates an Extractor with defaults filled in.
func NewExtractor(cfg config.ExtractConfig) *Extractor {
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	return &Extractor{cfg: cfg, runner: execRunner{}}
}

// NewExtractorWithRunner creates an Extractor using a custom command runner (for testing).
func NewExtractorWithRunner(cfg config.ExtractConfig, runner Runner) *Extractor {
	e := NewExtractor(cfg)
	e.runner = runner
	return e
}

var _ port.TextExtractor = (*Extractor)(nil)

// Extract runs the extraction ladder over doc. Engine failures on either path
// are absorbed into empty text so the caller can apply a uniform readability
// rule; an error is returned only when the document file itself is gone.
func (e *Extractor) Extract(ctx context.Context, doc domain.UploadedDocument) (domain.ExtractedText, error) {
	if _, err := os.Stat(doc.Path); err != nil {
		return domain.ExtractedText{Provenance: domain.ProvenanceNone}, fmt.Errorf("accessing document: %w", err)
	}

	var direct string
	if doc.ContentType == "application/pdf" {
		direct = e.pdfText(doc.Path)
		if len(strings.TrimSpace(direct)) >= OCRTriggerThreshold {
			return domain.ExtractedText{Text: direct, Provenance: domain.ProvenanceDirect}, nil
		}
	}

	ocr := e.ocrText(ctx, doc)

	text, provenance := direct, domain.ProvenanceDirect
	if len(ocr) > len(direct) {
		text, provenance = ocr, domain.ProvenanceOCR
	}
	if strings.TrimSpace(text) == "" {
		return domain.ExtractedText{Provenance: domain.ProvenanceNone}, nil
	}
	return domain.ExtractedText{Text: text, Provenance: provenance}, nil
}

// pdfText extracts the PDF text layer. A scanned PDF legitimately yields an
// empty string here; parser errors are absorbed for the same reason.
func (e *Extractor) pdfText(path string) string {
	res, err := docconv.ConvertPath(path)
	if err != nil {
		log.Printf("extract: pdf text layer extraction failed for %s: %v", filepath.Base(path), err)
		return ""
	}
	return res.Body
}

// ocrText performs OCR over the document's rendered image content. All
// failures collapse to an empty string.
func (e *Extractor) ocrText(ctx context.Context, doc domain.UploadedDocument) string {
	if doc.ContentType != "application/pdf" {
		text, err := e.tesseract(ctx, doc.Path)
		if err != nil {
			return ""
		}
		return text
	}

	pages, err := api.PageCountFile(doc.Path)
	if err != nil {
		log.Printf("extract: page count failed for %s: %v", filepath.Base(doc.Path), err)
		return ""
	}
	if e.cfg.MaxPages > 0 && pages > e.cfg.MaxPages {
		log.Printf("extract: %s has %d pages, over the OCR cap of %d", filepath.Base(doc.Path), pages, e.cfg.MaxPages)
		return ""
	}

	tmpDir, err := os.MkdirTemp("", "civicfix-ocr-*")
	if err != nil {
		log.Printf("extract: creating ocr temp dir: %v", err)
		return ""
	}
	defer func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			log.Printf("extract: removing ocr temp dir %s: %v", tmpDir, err)
		}
	}()

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r <dpi> -png <in.pdf> <tmp/page>
	if _, _, err := e.runner.Run(ctx, e.cfg.Pdftoppm, "-r", fmt.Sprintf("%d", e.cfg.DPI), "-png", doc.Path, prefix); err != nil {
		return ""
	}

	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if len(matches) == 0 {
		log.Printf("extract: pdftoppm produced no images for %s", filepath.Base(doc.Path))
		return ""
	}

	var b strings.Builder
	for _, img := range matches {
		text, err := e.tesseract(ctx, img)
		if err != nil {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\f\n")
		}
		b.WriteString(text)
	}
	return b.String()
}

func (e *Extractor) tesseract(ctx context.Context, path string) (string, error) {
	// tesseract <file> stdout -l <lang>
	out, _, err := e.runner.Run(ctx, e.cfg.Tesseract, path, "stdout", "-l", e.cfg.TesseractLang)
	if err != nil {
		return "", fmt.Errorf("tesseract: %w", err)
	}
	return string(out), nil
}
