package store

import (
	"context"
	"strings"
	"time"

	"furstream/internal/models"
)

// botContextDepth is how many prior messages are handed to the reply
// generator as conversation context.
const botContextDepth = 5

// SendMessage appends a message from authorID to the server channel or
// direct message channel identified by targetID. Direct message targets
// also get their last-activity timestamp bumped. A channel message that
// mentions the bot schedules one asynchronous bot reply; the reply always
// lands after its trigger but in no particular order against other traffic.
func (s *Store) SendMessage(targetID string, authorID string, text string) {
	chatContext, triggered := s.appendMessage(targetID, authorID, text)

	if triggered && s.replier != nil {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			reply := s.replier.ChatReply(context.Background(), chatContext, text)
			s.appendBotReply(targetID, reply)
		}()
	}
}

func (s *Store) appendMessage(targetID string, authorID string, text string) (chatContext string, triggered bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}
	if _, ok := s.users[authorID]; !ok {
		return "", false
	}

	messageID, ok := s.newID("m")
	if !ok {
		return "", false
	}

	message := models.Message{
		ID:        messageID,
		UserID:    authorID,
		Content:   text,
		Timestamp: time.Now().Format("15:04"),
	}

	for i := range s.servers {
		for j := range s.servers[i].Channels {
			if s.servers[i].Channels[j].ID != targetID {
				continue
			}

			// context is captured before the trigger is appended,
			// mirroring what the reply generator should react to
			chatContext = s.channelContext(s.servers[i].Channels[j].Messages)
			s.servers[i].Channels[j].Messages = append(s.servers[i].Channels[j].Messages, message)
			s.saveServers()

			return chatContext, hasBotTrigger(text)
		}
	}

	for i := range s.dms {
		if s.dms[i].ID != targetID {
			continue
		}

		s.dms[i].Messages = append(s.dms[i].Messages, message)
		s.dms[i].LastMessageAt = time.Now().UnixMilli()
		s.saveDMs()

		return "", false
	}

	return "", false
}

// appendBotReply lands the generated reply in the channel. The channel may
// have disappeared while the reply was generating (owner left); the reply
// is dropped in that case.
func (s *Store) appendBotReply(channelID string, reply string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	messageID, ok := s.newID("m")
	if !ok {
		return
	}

	message := models.Message{
		ID:        messageID,
		UserID:    BotUserID,
		Content:   reply,
		Timestamp: time.Now().Format("15:04"),
	}

	for i := range s.servers {
		for j := range s.servers[i].Channels {
			if s.servers[i].Channels[j].ID != channelID {
				continue
			}

			s.servers[i].Channels[j].Messages = append(s.servers[i].Channels[j].Messages, message)
			s.saveServers()
			return
		}
	}

	s.sugar.Debugf("dropping bot reply, channel [%s] no longer exists", channelID)
}

// channelContext renders the last few messages as speaker-labelled lines.
// Callers hold the lock.
func (s *Store) channelContext(messages []models.Message) string {
	start := 0
	if len(messages) > botContextDepth {
		start = len(messages) - botContextDepth
	}

	var lines []string
	for _, message := range messages[start:] {
		username := "User"
		if user, ok := s.users[message.UserID]; ok {
			username = user.Username
		}
		lines = append(lines, username+": "+message.Content)
	}

	return strings.Join(lines, "\n")
}

func hasBotTrigger(text string) bool {
	lowered := strings.ToLower(text)
	return strings.Contains(lowered, "@furbot") || strings.Contains(lowered, "@ai")
}
