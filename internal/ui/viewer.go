package ui

import "vtcopy/internal/domain"

// Viewer lets the user choose which failures to keep
type Viewer interface {
	Pick(failures []domain.FailedTest) ([]domain.FailedTest, error)
}
