package rabbitmq

import "storefront/internal/infra/events"

var _ events.Publisher = (*Publisher)(nil)
