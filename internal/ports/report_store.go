package ports

import "github.com/aalvaropc/polycheck/internal/domain"

// ReportStore persists document reports for later inspection.
type ReportStore interface {
	SaveReport(report domain.DocumentReport) (id string, err error)
}

// ReportCatalog lists and reads back persisted reports.
type ReportCatalog interface {
	ListReports() ([]domain.ReportRef, error)
	LoadReport(id string) ([]byte, error)
}
