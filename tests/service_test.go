package tests

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/relaychat/relay/src/history"
	"github.com/relaychat/relay/src/service"
	"github.com/relaychat/relay/src/types"
)

func newTestService(t *testing.T) (*service.Service, *history.MemoryStore) {
	t.Helper()
	h, store := newTestHub(t)
	return service.New(h, store, zerolog.Nop()), store
}

func TestServiceRosterAndCounts(t *testing.T) {
	svc, _ := newTestService(t)
	h := svc.Hub()

	_, connA := connectClient(t, h, "c1")
	_, connB := connectClient(t, h, "c2")
	_, _ = connectClient(t, h, "c3") // connected, never joins
	joinAs(t, connA, "alice")
	joinAs(t, connB, "bob")

	if got := svc.ClientCount(); got != 3 {
		t.Errorf("expected 3 connections, got %d", got)
	}
	if got := svc.OnlineCount(); got != 2 {
		t.Errorf("expected 2 registered users, got %d", got)
	}
	if !equalRoster(svc.Roster(), []string{"alice", "bob"}) {
		t.Errorf("expected roster [alice bob], got %v", svc.Roster())
	}
}

func TestServiceHistoryWindow(t *testing.T) {
	svc, store := newTestService(t)

	ctx := context.Background()
	for _, text := range []string{"one", "two", "three"} {
		if err := store.Append(ctx, types.Message{From: "alice", To: "all", Text: text, Time: time.Now()}); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	window, err := svc.History(ctx, 2)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(window) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(window))
	}
	if window[0].Text != "two" || window[1].Text != "three" {
		t.Errorf("expected [two three] oldest first, got [%s %s]", window[0].Text, window[1].Text)
	}
}

func TestServiceHistoryEmpty(t *testing.T) {
	svc, _ := newTestService(t)

	window, err := svc.History(context.Background(), 10)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(window) != 0 {
		t.Errorf("expected empty window, got %d", len(window))
	}
}
