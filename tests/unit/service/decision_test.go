package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"civicfix/internal/domain"
	"civicfix/internal/service"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name         string
		result       domain.VerdictResult
		wantStatus   domain.AccountStatus
		wantVerified bool
	}{
		{"approved activates", domain.VerdictApproved, domain.AccountStatusActive, true},
		{"needs review parks", domain.VerdictNeedsReview, domain.AccountStatusPendingReview, false},
		{"not checked parks", domain.VerdictNotChecked, domain.AccountStatusPendingReview, false},
		{"rejected rejects", domain.VerdictRejected, domain.AccountStatusRejected, false},
		{"unknown value rejects", domain.VerdictResult("banana"), domain.AccountStatusRejected, false},
		{"empty value rejects", domain.VerdictResult(""), domain.AccountStatusRejected, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, verified := service.Decide(domain.ScreeningVerdict{Result: tt.result})
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantVerified, verified)
		})
	}
}

func TestParseVerdictResult(t *testing.T) {
	tests := []struct {
		raw  string
		want domain.VerdictResult
	}{
		{"approved", domain.VerdictApproved},
		{"Approved", domain.VerdictApproved},
		{"needs_review", domain.VerdictNeedsReview},
		{"Needs Review", domain.VerdictNeedsReview},
		{"needs-review", domain.VerdictNeedsReview},
		{"rejected", domain.VerdictRejected},
		{"not_checked", domain.VerdictNotChecked},
		{"", domain.VerdictRejected},
		{"maybe", domain.VerdictRejected},
		{"APPROVED!", domain.VerdictRejected},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.ParseVerdictResult(tt.raw), "raw=%q", tt.raw)
	}
}
