package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"furstream/internal/keyvalue"
	"furstream/internal/models"
	"furstream/internal/store"
)

type fakeReplier struct {
	reply      string
	gotContext string
	gotMessage string
}

func (f *fakeReplier) ChatReply(_ context.Context, chatContext string, userMessage string) string {
	f.gotContext = chatContext
	f.gotMessage = userMessage
	return f.reply
}

func newTestKV(t *testing.T) *keyvalue.KV {
	t.Helper()

	cfg := &models.ConfigFile{
		SelfContained: true,
		SqlitePath:    filepath.Join(t.TempDir(), "store.db"),
	}

	kv, err := keyvalue.Setup(cfg, zap.NewNop().Sugar())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { kv.Close() })

	return kv
}

func newTestStore(t *testing.T, replier store.Replier) *store.Store {
	t.Helper()

	st := store.New(zap.NewNop().Sugar(), newTestKV(t), replier)
	st.Load()
	t.Cleanup(st.Close)

	return st
}

func TestLoadSeedsDefaultUsers(t *testing.T) {
	st := newTestStore(t, nil)

	snap := st.Snapshot()
	if len(snap.Users) != 3 {
		t.Fatalf("got %d users, want 3 seeded users", len(snap.Users))
	}
	if snap.Users[store.MainUserID].Username != "NeonPaws" {
		t.Errorf("main user is %q", snap.Users[store.MainUserID].Username)
	}
	if !snap.Users[store.BotUserID].IsBot {
		t.Error("bot user should carry the bot flag")
	}
	if snap.ActiveUserID != store.MainUserID {
		t.Errorf("active user is %q, want %q", snap.ActiveUserID, store.MainUserID)
	}
}

func TestSwitchUser(t *testing.T) {
	st := newTestStore(t, nil)

	st.SwitchUser("u2")
	if got := st.ActiveUser().ID; got != "u2" {
		t.Errorf("active user is %q, want u2", got)
	}

	// unknown identity leaves the current one alone
	st.SwitchUser("nobody")
	if got := st.ActiveUser().ID; got != "u2" {
		t.Errorf("active user is %q after invalid switch, want u2", got)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	st := newTestStore(t, nil)
	serverID := st.CreateServer(store.MainUserID, "Neon Den", "")

	snap := st.Snapshot()
	snap.Users["intruder"] = models.User{ID: "intruder"}
	snap.Servers[0].Members["intruder"] = []string{}
	snap.Servers[0].Roles[0].Name = "changed"

	fresh := st.Snapshot()
	if _, ok := fresh.Users["intruder"]; ok {
		t.Error("mutating a snapshot's user map leaked into the store")
	}
	if _, ok := fresh.Servers[0].Members["intruder"]; ok {
		t.Error("mutating a snapshot's membership map leaked into the store")
	}
	if fresh.Servers[0].Roles[0].Name != "Alpha" {
		t.Error("mutating a snapshot's roles leaked into the store")
	}
	if fresh.Servers[0].ID != serverID {
		t.Errorf("unexpected server %q", fresh.Servers[0].ID)
	}
}
