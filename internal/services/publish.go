package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"storefront/internal/infra/events"
)

const publishTimeout = 10 * time.Second

// publishAsync sends the event in the background. Notification failures never
// reach the caller.
func publishAsync(publisher events.Publisher, logger zerolog.Logger, pattern string, evt any) {
	if publisher == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		if err := publisher.Publish(ctx, pattern, evt); err != nil {
			logger.Warn().Err(err).Str("pattern", pattern).Msg("failed to publish event")
			return
		}
		logger.Debug().Str("pattern", pattern).Msg("event published")
	}()
}
