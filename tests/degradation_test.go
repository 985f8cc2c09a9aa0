package tests

import (
	"context"
	"testing"
	"time"

	"github.com/relaychat/relay/src/types"
)

// downStore is a history.Store whose backend is unreachable; every
// operation fails with ErrStoreUnavailable.
type downStore struct{}

func (downStore) Append(context.Context, types.Message) error {
	return types.ErrStoreUnavailable
}

func (downStore) RecentWindow(context.Context, int) ([]types.Message, error) {
	return nil, types.ErrStoreUnavailable
}

func (downStore) Close() error { return nil }

func TestJoinSucceedsWhenStoreUnavailable(t *testing.T) {
	h := newTestHubWith(t, downStore{})

	_, conn := connectClient(t, h, "c1")
	joinAs(t, conn, "alice")

	written := conn.getWritten()
	if len(written) == 0 {
		t.Fatal("expected envelopes after join against a failing store")
	}
	if written[0].Event != types.EventHistory {
		t.Fatalf("expected first envelope to be history, got %q", written[0].Event)
	}
	if len(written[0].History) != 0 {
		t.Errorf("expected empty history window, got %d messages", len(written[0].History))
	}
	if !equalRoster(conn.lastUserList(), []string{"alice"}) {
		t.Errorf("expected roster [alice], got %v", conn.lastUserList())
	}
	if got := conn.chatCount("alice joined the chat"); got != 1 {
		t.Errorf("expected join announcement despite store failure, got %d", got)
	}
	if !equalRoster(h.Roster(), []string{"alice"}) {
		t.Errorf("expected alice registered, got %v", h.Roster())
	}
}

func TestChatDeliveredWhenStoreUnavailable(t *testing.T) {
	h := newTestHubWith(t, downStore{})

	_, connA := connectClient(t, h, "c1")
	_, connB := connectClient(t, h, "c2")
	joinAs(t, connA, "alice")
	joinAs(t, connB, "bob")

	sendChat(connA, "alice", types.BroadcastAll, "unpersisted")
	time.Sleep(30 * time.Millisecond)

	for name, conn := range map[string]*mockConn{"alice": connA, "bob": connB} {
		if got := conn.chatCount("unpersisted"); got != 1 {
			t.Errorf("expected broadcast delivery to %s despite store failure, got %d", name, got)
		}
	}

	sendChat(connB, "bob", "alice", "still private")
	if connA.chatCount("still private") != 1 || connB.chatCount("still private") != 1 {
		t.Error("expected directed delivery and sender echo despite store failure")
	}
}
