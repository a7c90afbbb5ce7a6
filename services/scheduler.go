// services/scheduler.go
package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"naver-booking-notifier/config"
)

// StartAutoDispatch runs the full extraction+dispatch batch on a cron
// schedule, e.g. "0 9 * * *" for every day at 9 AM KST. The caller keeps the
// returned cron to stop it on shutdown.
func StartAutoDispatch(spec string, runner *BatchRunner) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(KST))

	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		_, report, err := runner.DispatchToday(ctx)
		if err != nil {
			config.Logger().Error("scheduled dispatch failed", zap.Error(err))
			return
		}
		config.Logger().Info("scheduled dispatch completed",
			zap.Int("total", report.Total),
			zap.Int("success", report.Success),
			zap.Int("failed", report.Failed))
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	config.Logger().Info("auto dispatch scheduler started", zap.String("cron", spec))
	return c, nil
}
