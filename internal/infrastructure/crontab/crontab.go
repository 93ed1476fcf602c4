package crontab

import (
	"context"
	"fmt"
	"time"

	"github.com/mileusna/crontab"

	"lms-server/internal/config"
	"lms-server/internal/infrastructure/assistant"
	"lms-server/internal/infrastructure/logger"
	"lms-server/internal/utils/platformerrors"
)

const (
	DefaultCatalogRefreshInterval = 30              // in minutes
	CronJobTimeout                = 5 * time.Minute // Timeout for each cron job execution
)

type Crontab struct {
	ctab      *crontab.Crontab
	assistant *assistant.Client
}

func NewCrontab(assistantClient *assistant.Client) *Crontab {
	return &Crontab{
		ctab:      crontab.New(),
		assistant: assistantClient,
	}
}

func (c *Crontab) Run(ctx context.Context) error {
	log := logger.GetLogger()
	// execute once on server start
	c.refreshCatalog(ctx)

	cfg := config.GetGlobal()
	if cfg != nil && cfg.CatalogRefreshEnabled {
		interval := cfg.CatalogRefreshIntervalMinutes
		if interval <= 0 {
			interval = DefaultCatalogRefreshInterval
		}

		cronExpr := fmt.Sprintf("*/%d * * * *", interval)
		if err := c.ctab.AddJob(cronExpr, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), CronJobTimeout)
			defer cancel()
			c.refreshCatalog(jobCtx)
		}); err != nil {
			return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to add catalog refresh job")
		}
		log.Info().Msgf("Catalog refresh scheduled: every %d minute(s)", interval)
	}

	<-ctx.Done()
	c.ctab.Shutdown()
	return nil
}

func (c *Crontab) refreshCatalog(ctx context.Context) {
	log := logger.GetLogger()
	if err := c.assistant.RefreshCatalogContext(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to refresh assistant catalog context")
	}
}
