package worker

import (
	"context"

	"github.com/spec-kit/estate-navigator/internal/service"
)

// StartAnalyticsWorker registers analytics handlers and drains the queue in the
// background until ctx is cancelled.
func StartAnalyticsWorker(ctx context.Context, analytics *service.AnalyticsService) {
	if analytics == nil {
		return
	}
	analytics.RegisterHandlers()
	go analytics.Run(ctx)
}
