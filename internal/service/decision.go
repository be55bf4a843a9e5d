package service

import "civicfix/internal/domain"

// Decide maps a screening verdict onto an account lifecycle state and
// verification flag. Total over VerdictResult: anything outside the known
// review outcomes lands in the rejected row.
func Decide(verdict domain.ScreeningVerdict) (domain.AccountStatus, bool) {
	switch verdict.Result {
	case domain.VerdictApproved:
		return domain.AccountStatusActive, true
	case domain.VerdictNeedsReview, domain.VerdictNotChecked:
		return domain.AccountStatusPendingReview, false
	default:
		return domain.AccountStatusRejected, false
	}
}
