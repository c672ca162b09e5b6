package events

import "time"

const (
	KindBindingSuccess = "binding_success"
	KindBroadcast      = "broadcast"
)

// Evento publicado no tópico "notification_events" após cada envio do bot
type Notification struct {
	EventID    string    `json:"event_id"`
	Kind       string    `json:"kind"`                 // binding_success | broadcast
	ChatID     int64     `json:"chat_id,omitempty"`    // apenas binding_success
	Recipients int       `json:"recipients,omitempty"` // apenas broadcast
	Succeeded  int       `json:"succeeded"`
	Ts         time.Time `json:"ts"`
}
