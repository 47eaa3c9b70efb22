package tagsim

import "context"

// HealthStatus represents the aggregated client health.
type HealthStatus struct {
	Status string            // "ok", "degraded", "error"
	Items  int               // items in the loaded catalog
	Checks map[string]string // component → "ok"/"error"
}

// Health checks the catalog and, for Redis/Valkey sources, the database.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status: string(report.Status),
		Items:  report.Items,
		Checks: checks,
	}
}
