package storage

import "gtpp/internal/domain"

// Storage writes a finished run as a machine-readable report.
type Storage interface {
	Save(summary *domain.RunSummary, failures []domain.Test) error
}
