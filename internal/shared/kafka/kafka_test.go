package kafka

import (
	"reflect"
	"testing"
)

func TestBrokerList(t *testing.T) {
	got := brokerList(" kafka-1:9092, kafka-2:9092 ,,")
	if want := []string{"kafka-1:9092", "kafka-2:9092"}; !reflect.DeepEqual(got, want) {
		t.Errorf("brokerList = %v, want %v", got, want)
	}
}

func TestNewWriter(t *testing.T) {
	w := NewWriter("kafka:9092", "notification_events")
	defer w.Close()

	if w.Topic != "notification_events" {
		t.Errorf("Topic = %q", w.Topic)
	}
	if got := w.Addr.String(); got != "kafka:9092" {
		t.Errorf("Addr = %q", got)
	}
}

func TestEncode(t *testing.T) {
	msg, err := encode("-1001", map[string]int{"succeeded": 3})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(msg.Key) != "-1001" || string(msg.Value) != `{"succeeded":3}` || msg.Time.IsZero() {
		t.Errorf("message = key %q value %s time %v", msg.Key, msg.Value, msg.Time)
	}
	if _, err := encode("k", make(chan int)); err == nil {
		t.Error("encode accepted a value json cannot marshal")
	}
}
