package publisher

import (
	"context"
	"testing"

	"github.com/radieske/betai-backend/pkg/contracts/events"
)

func TestMessageKey(t *testing.T) {
	tests := []struct {
		e    events.Notification
		want string
	}{
		{events.Notification{Kind: events.KindBindingSuccess, ChatID: -1001}, "-1001"},
		{events.Notification{Kind: events.KindBroadcast, Recipients: 10}, "broadcast"},
	}
	for _, tt := range tests {
		if got := messageKey(tt.e); got != tt.want {
			t.Errorf("messageKey(%+v) = %q, want %q", tt.e, got, tt.want)
		}
	}
}

func TestNop(t *testing.T) {
	var p Nop
	if err := p.Publish(context.Background(), events.Notification{Kind: events.KindBroadcast}); err != nil {
		t.Errorf("Publish = %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("Close = %v", err)
	}
}
