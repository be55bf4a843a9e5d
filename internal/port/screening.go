package port

import (
	"context"

	"civicfix/internal/domain"
)

// ScoreInput carries the data the screening service needs to judge a
// supporting document against a claimed department and designation.
type ScoreInput struct {
	Text        string
	Department  string
	Designation string
	DocumentURL string
}

// RelevanceScorer abstracts the external document screening service.
type RelevanceScorer interface {
	ScoreDocument(ctx context.Context, input ScoreInput) (*domain.ScreeningVerdict, error)
}

// AnalyzeInput carries a reported issue's evidence for AI categorization.
type AnalyzeInput struct {
	ImageBase64 string
	Text        string
}

// IssueAnalyzer abstracts the external issue categorization service.
type IssueAnalyzer interface {
	AnalyzeIssue(ctx context.Context, input AnalyzeInput) (*domain.IssueAnalysis, error)
}
