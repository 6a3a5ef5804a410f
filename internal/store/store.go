// Package store owns the application state: users, servers, videos, direct
// message channels and the active identity. All writes go through the
// mutation methods, which either commit a whole new state or leave the old
// one untouched. Reads go through Snapshot, which hands out a copy.
package store

import (
	"context"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"furstream/internal/keyvalue"
	"furstream/internal/models"
	"furstream/internal/snowflake"
)

const (
	serversKey    = "furstream_servers_v1"
	usersKey      = "furstream_users_v1"
	videosKey     = "furstream_videos_v1"
	dmsKey        = "furstream_dms_v1"
	activeUserKey = "furstream_active_uid_v1"
)

const (
	MainUserID = "u1"
	BotUserID  = "bot"
)

// Replier produces the bot's follow-up text for a triggering message. It
// must return usable text even on failure.
type Replier interface {
	ChatReply(ctx context.Context, chatContext string, userMessage string) string
}

type Store struct {
	sugar   *zap.SugaredLogger
	kv      *keyvalue.KV
	replier Replier

	// guards the collections below; the only concurrent writer is the
	// bot-reply goroutine spawned by SendMessage
	mu sync.RWMutex
	wg sync.WaitGroup

	users        map[string]models.User
	servers      []models.Server
	videos       []models.Video
	dms          []models.DMChannel
	activeUserID string
}

// Snapshot is the complete state of the store at one instant. The five
// collections are independent roots; relations between them are by id,
// except Video.Uploader which is a copy taken at publish time.
type Snapshot struct {
	Users        map[string]models.User
	Servers      []models.Server
	Videos       []models.Video
	DMs          []models.DMChannel
	ActiveUserID string
}

func New(sugar *zap.SugaredLogger, kv *keyvalue.KV, replier Replier) *Store {
	return &Store{
		sugar:   sugar,
		kv:      kv,
		replier: replier,
	}
}

func defaultUsers() map[string]models.User {
	return map[string]models.User{
		MainUserID: {
			ID:          MainUserID,
			Username:    "NeonPaws",
			Avatar:      "https://picsum.photos/id/1025/200/200",
			Status:      models.StatusOnline,
			Bio:         "Just a neon fox making my way through the digital forest. 🦊✨",
			BannerColor: "#4f46e5",
			Friends:     []string{},
		},
		"u2": {
			ID:          "u2",
			Username:    "GlitchWolf",
			Avatar:      "https://picsum.photos/id/1003/200/200",
			Status:      models.StatusIdle,
			Bio:         "System breach detected... just kidding! I love retro tech.",
			BannerColor: "#0ea5e9",
			Friends:     []string{},
		},
		BotUserID: {
			ID:          BotUserID,
			Username:    "FurBot AI",
			Avatar:      "https://picsum.photos/id/1080/200/200",
			Status:      models.StatusOnline,
			IsBot:       true,
			Bio:         "I am your helpful AI assistant! Ask me anything about the server.",
			BannerColor: "#6366f1",
			Friends:     []string{},
		},
	}
}

// Load reads all five records from the key/value layer, substituting seeded
// defaults for anything missing or unreadable, then writes the user and
// identity records back so a fresh install is durable immediately.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = keyvalue.Load(s.kv, usersKey, defaultUsers())
	if len(s.users) == 0 {
		s.users = defaultUsers()
	}

	s.servers = keyvalue.Load(s.kv, serversKey, []models.Server{})
	s.videos = keyvalue.Load(s.kv, videosKey, []models.Video{})
	s.dms = keyvalue.Load(s.kv, dmsKey, []models.DMChannel{})

	s.activeUserID = keyvalue.Load(s.kv, activeUserKey, MainUserID)
	if _, ok := s.users[s.activeUserID]; !ok {
		s.activeUserID = MainUserID
	}

	keyvalue.Save(s.kv, usersKey, s.users)
	keyvalue.Save(s.kv, activeUserKey, s.activeUserID)
}

// Close waits for any in-flight bot replies to land.
func (s *Store) Close() {
	s.wg.Wait()
}

// Snapshot returns a deep copy of the current state; mutating it has no
// effect on the store.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Users:        cloneUsers(s.users),
		Servers:      cloneServers(s.servers),
		Videos:       cloneVideos(s.videos),
		DMs:          cloneDMs(s.dms),
		ActiveUserID: s.activeUserID,
	}
}

// ActiveUser returns the current identity.
func (s *Store) ActiveUser() models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneUser(s.users[s.activeUserID])
}

// SwitchUser changes the active identity to an existing user. Unknown ids
// are a no-op.
func (s *Store) SwitchUser(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return
	}

	s.activeUserID = userID
	keyvalue.Save(s.kv, activeUserKey, s.activeUserID)
}

// serverIndex finds a server by id in the current state. Callers hold the
// lock.
func (s *Store) serverIndex(serverID string) int {
	for i := range s.servers {
		if s.servers[i].ID == serverID {
			return i
		}
	}
	return -1
}

func (s *Store) newID(prefix string) (string, bool) {
	id, err := snowflake.Generate()
	if err != nil {
		s.sugar.Errorf("generating id: %v", err)
		return "", false
	}
	return prefix + strconv.FormatInt(id, 10), true
}

func (s *Store) saveServers() { keyvalue.Save(s.kv, serversKey, s.servers) }
func (s *Store) saveUsers()   { keyvalue.Save(s.kv, usersKey, s.users) }
func (s *Store) saveVideos()  { keyvalue.Save(s.kv, videosKey, s.videos) }
func (s *Store) saveDMs()     { keyvalue.Save(s.kv, dmsKey, s.dms) }
