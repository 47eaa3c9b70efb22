package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates the catalog cannot serve recommendations.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Items  int
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	catalog CatalogReader
	db      DBPinger
}

// New creates a Service. db can be nil when the catalog is not backed by a database.
func New(catalog CatalogReader, db DBPinger) *Service {
	return &Service{catalog: catalog, db: db}
}

// Check runs health checks against all components.
// A missing catalog is Unhealthy; a failing database only degrades the service,
// since the snapshot is already in memory.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)
	items := 0

	cat, err := s.catalog.Snapshot(ctx)
	if err != nil || cat == nil {
		checks["catalog"] = CheckError
	} else {
		checks["catalog"] = CheckOK
		items = cat.Len()
	}

	if s.db != nil {
		if err := s.db.Ping(ctx); err != nil {
			checks["database"] = CheckError
		} else {
			checks["database"] = CheckOK
		}
	}

	status := Healthy
	if checks["catalog"] == CheckError {
		status = Unhealthy
	} else if checks["database"] == CheckError {
		status = Degraded
	}

	return Report{Status: status, Items: items, Checks: checks}
}
