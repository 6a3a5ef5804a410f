package models

const (
	StatusOnline  = "online"
	StatusIdle    = "idle"
	StatusDnd     = "dnd"
	StatusOffline = "offline"
)

const (
	ChannelTypeText  = "text"
	ChannelTypeVoice = "voice"
)

type User struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Avatar      string   `json:"avatar"`
	Status      string   `json:"status"`
	IsBot       bool     `json:"isBot,omitempty"`
	Bio         string   `json:"bio,omitempty"`
	BannerColor string   `json:"bannerColor,omitempty"`
	Friends     []string `json:"friends"`
}

type Message struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
	IsSystem  bool   `json:"isSystem,omitempty"`
}

type Channel struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Type     string    `json:"type"`
	Messages []Message `json:"messages"`
}

// DMChannel id is "dm_<uid>_<uid>" for pairs (uids sorted) and
// "group_<uuid>" for groups.
type DMChannel struct {
	ID            string    `json:"id"`
	Participants  []string  `json:"participants"`
	Messages      []Message `json:"messages"`
	LastMessageAt int64     `json:"lastMessageAt"`
	Name          string    `json:"name,omitempty"`
}

type Role struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Color       string   `json:"color"`
	Permissions []string `json:"permissions"`
}

// Server roles are ordered highest precedence first. Members maps a user id
// to the role ids that user holds.
type Server struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Icon        string              `json:"icon"`
	Description string              `json:"description,omitempty"`
	Banner      string              `json:"banner,omitempty"`
	MemberCount int                 `json:"memberCount"`
	OwnerID     string              `json:"ownerId"`
	Roles       []Role              `json:"roles"`
	Channels    []Channel           `json:"channels"`
	Members     map[string][]string `json:"members"`
}

// Video keeps a copy of the uploader taken at publish time, so later profile
// edits don't rewrite old bylines.
type Video struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Thumbnail   string `json:"thumbnail"`
	Uploader    User   `json:"uploader"`
	Views       string `json:"views"`
	Timestamp   string `json:"timestamp"`
	Length      string `json:"length"`
	Description string `json:"description"`
	URL         string `json:"url,omitempty"`
}

type ConfigFile struct {
	SelfContained     bool
	SqlitePath        string
	RedisAddress      string
	RedisPassword     string
	RedisDB           int
	SnowflakeWorkerID int64
	LogToFile         bool
	LogLevel          string
}
