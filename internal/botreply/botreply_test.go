package botreply_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"furstream/internal/botreply"
)

func fakeGemini(t *testing.T, status int, reply string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("got method %s, want POST", r.Method)
		}
		if !strings.Contains(r.URL.Path, ":generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		w.WriteHeader(status)
		if status == http.StatusOK {
			w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"` + reply + `"}]}}]}`))
		}
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestChatReply(t *testing.T) {
	srv := fakeGemini(t, http.StatusOK, "Hello from FurBot!")

	client := botreply.New(zap.NewNop().Sugar(), "test-key")
	client.SetBaseURL(srv.URL)

	got := client.ChatReply(context.Background(), "NeonPaws: hi", "@furbot hello")
	if got != "Hello from FurBot!" {
		t.Errorf("got %q", got)
	}
}

func TestChatReplyWithoutKey(t *testing.T) {
	client := botreply.New(zap.NewNop().Sugar(), "")

	got := client.ChatReply(context.Background(), "", "@ai hello")
	if got != "Error: API Key not configured." {
		t.Errorf("got %q", got)
	}
}

func TestChatReplyServerError(t *testing.T) {
	srv := fakeGemini(t, http.StatusTooManyRequests, "")

	client := botreply.New(zap.NewNop().Sugar(), "test-key")
	client.SetBaseURL(srv.URL)

	got := client.ChatReply(context.Background(), "", "@furbot hello")
	if got != "Something went wrong with my circuits!" {
		t.Errorf("got %q", got)
	}
}

func TestChatReplyEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	t.Cleanup(srv.Close)

	client := botreply.New(zap.NewNop().Sugar(), "test-key")
	client.SetBaseURL(srv.URL)

	got := client.ChatReply(context.Background(), "", "@furbot hello")
	if got != "Thinking..." {
		t.Errorf("got %q", got)
	}
}

func TestVideoDescription(t *testing.T) {
	tests := []struct {
		name   string
		apiKey string
		status int
		reply  string
		want   string
	}{
		{name: "success", apiKey: "k", status: http.StatusOK, reply: "A lovely walk. #fursuit", want: "A lovely walk. #fursuit"},
		{name: "no key", apiKey: "", want: "Description unavailable."},
		{name: "server failure", apiKey: "k", status: http.StatusInternalServerError, want: "Could not generate description."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := botreply.New(zap.NewNop().Sugar(), tc.apiKey)
			if tc.apiKey != "" {
				srv := fakeGemini(t, tc.status, tc.reply)
				client.SetBaseURL(srv.URL)
			}

			got := client.VideoDescription(context.Background(), "My First Fursuit Walk")
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}
