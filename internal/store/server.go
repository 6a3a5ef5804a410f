package store

import (
	"net/url"
	"strings"

	"furstream/internal/models"
	"furstream/internal/validator"
)

// CreateServer makes a new community owned by ownerID, seeded with the
// "Alpha" role held by the owner and two default text channels. Returns the
// new server id, or "" when the name is empty or the owner unknown.
func (s *Store) CreateServer(ownerID string, name string, icon string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if err := validator.ServerName(name); err != nil {
		return ""
	}
	if _, ok := s.users[ownerID]; !ok {
		return ""
	}

	serverID, ok := s.newID("s")
	if !ok {
		return ""
	}
	roleID, ok := s.newID("r")
	if !ok {
		return ""
	}
	welcomeID, ok := s.newID("c")
	if !ok {
		return ""
	}
	generalID, ok := s.newID("c")
	if !ok {
		return ""
	}

	if icon == "" {
		icon = "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=random"
	}

	server := models.Server{
		ID:          serverID,
		Name:        name,
		Icon:        icon,
		Description: "A brand new den!",
		MemberCount: 1,
		OwnerID:     ownerID,
		Roles: []models.Role{
			{ID: roleID, Name: "Alpha", Color: "#ef4444", Permissions: []string{"all"}},
		},
		Channels: []models.Channel{
			{ID: welcomeID, Name: "welcome", Type: models.ChannelTypeText, Messages: []models.Message{}},
			{ID: generalID, Name: "general", Type: models.ChannelTypeText, Messages: []models.Message{}},
		},
		Members: map[string][]string{ownerID: {roleID}},
	}

	s.servers = append(s.servers, server)
	s.saveServers()

	return serverID
}

// JoinServer adds the user to the membership map with no roles. Joining a
// server you already belong to, or ids that don't resolve, change nothing.
func (s *Store) JoinServer(serverID string, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return
	}

	i := s.serverIndex(serverID)
	if i == -1 {
		return
	}
	if _, joined := s.servers[i].Members[userID]; joined {
		return
	}

	s.servers[i].Members[userID] = []string{}
	s.servers[i].MemberCount += 1
	s.saveServers()
}

// LeaveServer removes a member. The owner leaving deletes the whole server;
// any confirmation belongs to the caller, the store deletes unconditionally.
func (s *Store) LeaveServer(serverID string, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.serverIndex(serverID)
	if i == -1 {
		return
	}

	if s.servers[i].OwnerID == userID {
		s.servers = append(s.servers[:i], s.servers[i+1:]...)
		s.saveServers()
		return
	}

	if _, joined := s.servers[i].Members[userID]; !joined {
		return
	}

	delete(s.servers[i].Members, userID)
	if s.servers[i].MemberCount > 0 {
		s.servers[i].MemberCount -= 1
	}
	s.saveServers()
}

// OverviewUpdate carries the owner-editable server settings. Nil fields are
// left alone.
type OverviewUpdate struct {
	Name        *string
	Description *string
	Icon        *string
	Banner      *string
}

// EditServerOverview merges the update into the server. Only the owner may
// edit; anyone else is silently ignored.
func (s *Store) EditServerOverview(serverID string, actorID string, update OverviewUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.serverIndex(serverID)
	if i == -1 || s.servers[i].OwnerID != actorID {
		return
	}

	// validate everything up front so a bad field rejects the whole edit
	var name string
	if update.Name != nil {
		name = strings.TrimSpace(*update.Name)
		if err := validator.ServerName(name); err != nil {
			return
		}
	}
	if update.Icon != nil {
		if err := validator.MediaRef(*update.Icon); err != nil {
			return
		}
	}

	if update.Name != nil {
		s.servers[i].Name = name
	}
	if update.Description != nil {
		s.servers[i].Description = *update.Description
	}
	if update.Icon != nil {
		s.servers[i].Icon = *update.Icon
	}
	if update.Banner != nil {
		s.servers[i].Banner = *update.Banner
	}

	s.saveServers()
}
