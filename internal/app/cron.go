package app

import (
	"context"
	"time"

	"github.com/finwire/newsdesk/internal/modules/session"
	pkgcron "github.com/finwire/newsdesk/internal/pkg/cron"
	"go.uber.org/zap"
)

const jobSweepSessions = "sweep_sessions"

// registerCronJobs registers all scheduled background jobs.
func registerCronJobs(sched *pkgcron.Scheduler, sessions *session.Manager, sweepInterval time.Duration, logger *zap.Logger) {
	cronLogger := logger.Named("CronService")

	sched.Register(pkgcron.Job{
		Name:        jobSweepSessions,
		Description: "Drop idle dashboard sessions",
		Interval:    sweepInterval,
		Fn: func(ctx context.Context) error {
			n := sessions.Sweep(ctx)
			cronLogger.Debug("session sweep finished", zap.Int("removed", n), zap.Int("live", sessions.Count()))
			return nil
		},
	})
}
