package bot

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/radieske/betai-backend/internal/notifier/dispatcher"
)

func connectTo(api API) Connector {
	return func(string) (API, error) { return api, nil }
}

func TestStartWithoutToken(t *testing.T) {
	b := New(zap.NewNop(), "", connectTo(newFakeAPI()))
	if err := b.Start(context.Background(), NewRouter()); !errors.Is(err, ErrNoToken) {
		t.Fatalf("Start err = %v, want ErrNoToken", err)
	}
	if b.Running() || b.TokenConfigured() {
		t.Error("bot without token reports running or configured")
	}
}

func TestStartFailureIsPermanent(t *testing.T) {
	calls := 0
	b := New(zap.NewNop(), "123:abc", func(string) (API, error) {
		calls++
		return nil, errors.New("Unauthorized")
	})
	if err := b.Start(context.Background(), NewRouter()); err == nil {
		t.Fatal("Start succeeded with rejected token")
	}
	if err := b.Start(context.Background(), NewRouter()); !errors.Is(err, ErrAlreadyStarted) {
		t.Fatalf("second Start err = %v, want ErrAlreadyStarted", err)
	}
	if calls != 1 || b.Running() {
		t.Errorf("calls = %d, running = %v", calls, b.Running())
	}
}

func TestLifecycle(t *testing.T) {
	api := newFakeAPI()
	b := New(zap.NewNop(), "123:abc", connectTo(api))

	if err := b.SendMessage(context.Background(), 1, "x"); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("SendMessage before Start err = %v", err)
	}
	if err := b.Start(context.Background(), NewRouter()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !b.Running() {
		t.Fatal("Running() = false after Start")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := b.Stop(ctx); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if b.Running() {
		t.Fatal("Running() = true after Stop")
	}
	if err := b.Stop(ctx); err != nil {
		t.Errorf("second Stop: %v", err)
	}
	if err := b.Start(context.Background(), NewRouter()); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("restart err = %v, want ErrAlreadyStarted", err)
	}
}

func TestPollDispatchesUpdates(t *testing.T) {
	api := newFakeAPI()
	b := New(zap.NewNop(), "123:abc", connectTo(api))

	got := make(chan int64, 1)
	r := NewRouter()
	r.Command("start", func(_ context.Context, _ API, u tgbotapi.Update) { got <- u.Message.Chat.ID })

	if err := b.Start(context.Background(), r); err != nil {
		t.Fatalf("Start: %v", err)
	}
	api.updates <- commandUpdate(1, 99, "/start", "start")

	select {
	case id := <-got:
		if id != 99 {
			t.Errorf("chat id = %d, want 99", id)
		}
	case <-time.After(time.Second):
		t.Fatal("start handler not called")
	}
	_ = b.Stop(context.Background())
}

func TestSendMessageKeyboard(t *testing.T) {
	api := newFakeAPI()
	b := New(zap.NewNop(), "123:abc", connectTo(api))
	if err := b.Start(context.Background(), NewRouter()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer b.Stop(context.Background())

	err := b.SendMessage(context.Background(), 5, "hello",
		dispatcher.Button{Text: "a", URL: "https://x.test"},
		dispatcher.Button{Text: "b", CallbackData: "back_to_main"})
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	msg, ok := api.sentMessages()[0].(tgbotapi.MessageConfig)
	if !ok {
		t.Fatalf("sent %T, want MessageConfig", api.sentMessages()[0])
	}
	kb, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	if !ok || len(kb.InlineKeyboard) != 2 {
		t.Fatalf("markup = %#v", msg.ReplyMarkup)
	}
	if u := kb.InlineKeyboard[0][0].URL; u == nil || *u != "https://x.test" {
		t.Errorf("first button url = %v", u)
	}
	if d := kb.InlineKeyboard[1][0].CallbackData; d == nil || *d != "back_to_main" {
		t.Errorf("second button data = %v", d)
	}
}

type staticRecipients []int64

func (s staticRecipients) ChatIDs(context.Context) ([]int64, error) { return s, nil }

func TestStopWaitsForRunningBroadcast(t *testing.T) {
	api := newFakeAPI()
	b := New(zap.NewNop(), "123:abc", connectTo(api))

	recipients := staticRecipients{1, 2, 3, 4, 5, 6, 7, 8}
	disp := dispatcher.New(zap.NewNop(), b, recipients, nil, 15*time.Millisecond)
	cmds := NewCommands(zap.NewNop(), "https://bet.test", []int64{42}, disp)

	if err := b.Start(context.Background(), cmds.Router()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	api.updates <- commandUpdate(42, 42, "/broadcast 今晚比赛", "broadcast")

	deadline := time.Now().Add(time.Second)
	for len(api.sentMessages()) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("broadcast did not start")
		}
		time.Sleep(time.Millisecond)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := b.Stop(ctx); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if b.Running() {
		t.Error("Running() = true after Stop")
	}

	var delivered int
	var last string
	for _, c := range api.sentMessages() {
		msg, ok := c.(tgbotapi.MessageConfig)
		if !ok {
			continue
		}
		if strings.HasPrefix(msg.Text, dispatcher.BroadcastPrefix) {
			delivered++
		}
		last = msg.Text
	}
	if delivered != len(recipients) {
		t.Errorf("delivered %d of %d broadcast messages", delivered, len(recipients))
	}
	if want := "✅ 广播完成，成功发送 8 条"; last != want {
		t.Errorf("admin reply = %q, want %q", last, want)
	}
}
