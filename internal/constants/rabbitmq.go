package constants

// Обменник событий об объектах
const (
	PropertiesExchange     = "properties_exchange"
	PropertiesExchangeType = "direct"
)

// Версия формата событий, передается в заголовке x-event-version
const PropertyEventVersion = "1"

const PublishTimeoutSeconds = 10
