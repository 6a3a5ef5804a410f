package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"furstream/internal/botreply"
	"furstream/internal/keyvalue"
	"furstream/internal/models"
	"furstream/internal/snowflake"
	"furstream/internal/store"
	"furstream/internal/views"
)

func setupLogger(cfg models.ConfigFile) (*zap.SugaredLogger, error) {
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{"stdout"}
	if cfg.LogToFile {
		config.OutputPaths = []string{"app.log", "stdout"}
	}

	level := zap.InfoLevel
	if cfg.LogLevel != "" {
		parsed, err := zap.ParseAtomicLevel(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		level = parsed.Level()
	}
	config.Level = zap.NewAtomicLevelAt(level)

	logger, err := config.Build()
	if err != nil {
		return nil, err
	}

	sugar := logger.Sugar()
	defer logger.Sync()

	return sugar, nil
}

func readConfigFile() (models.ConfigFile, error) {
	cfg := models.ConfigFile{
		SelfContained: true,
		SqlitePath:    "furstream.db",
	}

	configFile, err := os.Open("config.json")
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer configFile.Close()

	bytes, err := io.ReadAll(configFile)
	if err != nil {
		return cfg, err
	}

	err = json.Unmarshal(bytes, &cfg)
	if err != nil {
		return cfg, err
	}
	return cfg, nil
}

func main() {
	fmt.Println("Reading config file...")
	cfg, err := readConfigFile()
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println("Setting up logger...")
	sugar, err := setupLogger(cfg)
	if err != nil {
		fmt.Println(err)
		return
	}

	err = godotenv.Load()
	if err != nil {
		sugar.Debug("no .env file found")
	}

	err = snowflake.Setup(cfg.SnowflakeWorkerID)
	if err != nil {
		sugar.Fatal(err)
	}

	fmt.Println("Opening key/value storage...")
	kv, err := keyvalue.Setup(&cfg, sugar)
	if err != nil {
		sugar.Fatal(err)
	}
	defer kv.Close()

	replier := botreply.New(sugar, os.Getenv("GEMINI_API_KEY"))

	st := store.New(sugar, kv, replier)
	st.Load()
	defer st.Close()

	fmt.Printf("FurStream ready, signed in as %s. Type help for commands.\n", st.ActiveUser().Username)
	runShell(st, replier)
}

// runShell is a line-oriented front end over the store, standing in for the
// app UI. Every command reads a fresh snapshot.
func runShell(st *store.Store, replier *botreply.Client) {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		command, args := fields[0], fields[1:]

		switch command {
		case "help":
			printHelp()
		case "whoami":
			user := st.ActiveUser()
			fmt.Printf("%s (%s) [%s]\n", user.Username, user.ID, user.Status)
		case "users":
			for _, user := range st.Snapshot().Users {
				fmt.Printf("%s  %s [%s]\n", user.ID, user.Username, user.Status)
			}
		case "switch":
			if len(args) == 1 {
				st.SwitchUser(args[0])
				fmt.Printf("now %s\n", st.ActiveUser().Username)
			}
		case "servers":
			snap := st.Snapshot()
			for _, server := range views.ServersFor(snap.Servers, snap.ActiveUserID) {
				fmt.Printf("%s  %s (%d members)\n", server.ID, server.Name, server.MemberCount)
			}
		case "create-server":
			if len(args) >= 1 {
				id := st.CreateServer(st.ActiveUser().ID, strings.Join(args, " "), "")
				fmt.Println(id)
			}
		case "join":
			if len(args) == 1 {
				st.JoinServer(args[0], st.ActiveUser().ID)
			}
		case "leave":
			if len(args) == 1 {
				st.LeaveServer(args[0], st.ActiveUser().ID)
			}
		case "members":
			if len(args) == 1 {
				printMembers(st, args[0])
			}
		case "channels":
			if len(args) == 1 {
				printChannels(st, args[0])
			}
		case "say":
			if len(args) >= 2 {
				st.SendMessage(args[0], st.ActiveUser().ID, strings.Join(args[1:], " "))
			}
		case "read":
			if len(args) == 1 {
				printMessages(st, args[0])
			}
		case "dms":
			printConversations(st)
		case "dm":
			if len(args) == 1 {
				fmt.Println(st.StartDM(st.ActiveUser().ID, args[0]))
			} else if len(args) > 1 {
				fmt.Println(st.CreateGroupDM(st.ActiveUser().ID, args))
			}
		case "friend":
			if len(args) == 1 {
				st.AddFriend(st.ActiveUser().ID, args[0])
			}
		case "videos":
			for _, video := range st.Snapshot().Videos {
				fmt.Printf("%s  %q by %s (%s views, %s)\n", video.ID, video.Title, video.Uploader.Username, video.Views, video.Timestamp)
			}
		case "publish":
			if len(args) >= 2 {
				id := st.PublishVideo(st.ActiveUser().ID, store.VideoUpload{
					MediaRef: args[0],
					Title:    strings.Join(args[1:], " "),
				})
				fmt.Println(id)
			}
		case "describe":
			if len(args) >= 1 {
				fmt.Println(replier.VideoDescription(context.Background(), strings.Join(args, " ")))
			}
		case "quit", "exit":
			return
		default:
			fmt.Printf("unknown command %q, try help\n", command)
		}
	}
}

func printHelp() {
	fmt.Println(`whoami                         show the active identity
users                          list all users
switch <userID>                change the active identity
servers                        list servers you belong to
create-server <name>           create a server
join <serverID>                join a server
leave <serverID>               leave (owner: delete) a server
members <serverID>             list members grouped by role
channels <serverID>            list a server's channels
say <channelID> <text>         send a message (mention @furbot for a reply)
read <channelID>               print a channel's messages
dms                            list your conversations
dm <userID> [userID...]        open a direct or group conversation
friend <userID>                add a friend
videos                         list the video feed
publish <url> <title>          publish a video
describe <title>               generate a video description
quit                           exit`)
}

func printMembers(st *store.Store, serverID string) {
	snap := st.Snapshot()
	for _, server := range snap.Servers {
		if server.ID != serverID {
			continue
		}
		for _, group := range views.GroupMembers(server, snap.Users) {
			fmt.Printf("%s (%s)\n", group.Name, group.Color)
			for _, member := range group.Members {
				fmt.Printf("  %s  %s\n", member.ID, member.Username)
			}
		}
		return
	}
	fmt.Println("no such server")
}

func printChannels(st *store.Store, serverID string) {
	for _, server := range st.Snapshot().Servers {
		if server.ID != serverID {
			continue
		}
		for _, channel := range server.Channels {
			fmt.Printf("%s  #%s (%d messages)\n", channel.ID, channel.Name, len(channel.Messages))
		}
		return
	}
	fmt.Println("no such server")
}

func printMessages(st *store.Store, channelID string) {
	snap := st.Snapshot()
	for _, server := range snap.Servers {
		for _, channel := range server.Channels {
			if channel.ID != channelID {
				continue
			}
			for _, message := range channel.Messages {
				printMessage(snap, message)
			}
			return
		}
	}
	for _, dm := range snap.DMs {
		if dm.ID != channelID {
			continue
		}
		for _, message := range dm.Messages {
			printMessage(snap, message)
		}
		return
	}
	fmt.Println("no such channel")
}

func printMessage(snap store.Snapshot, message models.Message) {
	username := "User"
	if user, ok := snap.Users[message.UserID]; ok {
		username = user.Username
	}
	fmt.Printf("[%s] %s: %s\n", message.Timestamp, username, message.Content)
}

func printConversations(st *store.Store) {
	snap := st.Snapshot()
	for _, dm := range views.ConversationsFor(snap.DMs, snap.ActiveUserID) {
		fmt.Printf("%s  %s (%d messages)\n", dm.ID, views.DMDisplayName(dm, snap.Users, snap.ActiveUserID), len(dm.Messages))
	}
}
