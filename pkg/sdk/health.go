package solrdesk

import (
	"context"

	healthuc "github.com/kailas-cloud/solrdesk/internal/usecase/health"
	"github.com/kailas-cloud/solrdesk/internal/version"
)

// DeskHealth reports whether the desk can serve searches.
type DeskHealth struct {
	Status   string // "ok", "degraded" or "error"
	Store    bool   // preferences store answered its ping
	Upstream bool   // index API answered its ping
	Version  string
}

// CanSearch reports whether the index API is reachable. Preferences fall back
// to defaults when only the store is down.
func (h DeskHealth) CanSearch() bool { return h.Upstream }

// Health pings the preferences store and the index API.
func (c *Client) Health(ctx context.Context) DeskHealth {
	report := c.healthSvc.Check(ctx)
	return DeskHealth{
		Status:   string(report.Status),
		Store:    report.Checks["store"] == healthuc.CheckOK,
		Upstream: report.Checks["upstream"] == healthuc.CheckOK,
		Version:  version.Version,
	}
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}
