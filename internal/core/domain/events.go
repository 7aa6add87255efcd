package domain

import "time"

// PropertyEventType - тип события жизненного цикла объекта
type PropertyEventType string

const (
	PropertyCreated PropertyEventType = "property.created"
	PropertyUpdated PropertyEventType = "property.updated"
	PropertyDeleted PropertyEventType = "property.deleted"
	PropertySold    PropertyEventType = "property.sold"
)

// PropertyEvent - событие для внешних подписчиков
type PropertyEvent struct {
	Type       PropertyEventType
	PropertyID string
	Property   *Property      // nil для удаления
	Trace      *PropertyTrace // только для PropertySold
	OccurredAt time.Time
}
