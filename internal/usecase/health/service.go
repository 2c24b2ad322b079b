package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates total failure.
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
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db       DBPinger
	catalogs CatalogChecker
}

// New creates a Service. db is nil when no catalog store is configured.
func New(db DBPinger, catalogs CatalogChecker) *Service {
	return &Service{db: db, catalogs: catalogs}
}

// Check runs health checks against all components. Unprepared catalogs make
// the service unhealthy since no recommendation can be served from them.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if s.db != nil {
		checks["database"] = result(s.db.Ping(ctx))
	}
	if s.catalogs != nil {
		checks["catalogs"] = result(s.catalogs.Ready(ctx))
	}

	status := Healthy
	if checks["catalogs"] == CheckError {
		status = Unhealthy
	} else if checks["database"] == CheckError {
		status = Degraded
	}

	return Report{Status: status, Checks: checks}
}

func result(err error) CheckResult {
	if err != nil {
		return CheckError
	}
	return CheckOK
}
