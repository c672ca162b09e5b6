package topics

const (
	// Notificações (binding-success e broadcast)
	NotificationEvents = "notification_events"
)
