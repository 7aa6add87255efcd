package port

import (
	"context"
	"property-service/internal/core/domain"
)

// PropertyEventPublisherPort публикует события об изменениях объектов
type PropertyEventPublisherPort interface {
	PublishPropertyEvent(ctx context.Context, event domain.PropertyEvent) error
}
