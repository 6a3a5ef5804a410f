package store

import "furstream/internal/models"

// All role mutations are owner-gated: a non-owner actor (or an id that
// doesn't resolve) leaves the store untouched.

// CreateRole appends a fresh role at the bottom of the precedence order and
// returns its id, or "" on a no-op.
func (s *Store) CreateRole(serverID string, actorID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.serverIndex(serverID)
	if i == -1 || s.servers[i].OwnerID != actorID {
		return ""
	}

	roleID, ok := s.newID("r")
	if !ok {
		return ""
	}

	s.servers[i].Roles = append(s.servers[i].Roles, models.Role{
		ID:          roleID,
		Name:        "New Role",
		Color:       "#94a3b8",
		Permissions: []string{},
	})
	s.saveServers()

	return roleID
}

// RoleUpdate carries a partial role edit. Nil fields are left alone.
type RoleUpdate struct {
	Name        *string
	Color       *string
	Permissions *[]string
}

func (s *Store) UpdateRole(serverID string, actorID string, roleID string, update RoleUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.serverIndex(serverID)
	if i == -1 || s.servers[i].OwnerID != actorID {
		return
	}

	for j := range s.servers[i].Roles {
		if s.servers[i].Roles[j].ID != roleID {
			continue
		}

		if update.Name != nil {
			s.servers[i].Roles[j].Name = *update.Name
		}
		if update.Color != nil {
			s.servers[i].Roles[j].Color = *update.Color
		}
		if update.Permissions != nil {
			s.servers[i].Roles[j].Permissions = cloneStrings(*update.Permissions)
		}

		s.saveServers()
		return
	}
}

// DeleteRole removes the role from the server's role list. Member role
// lists are left as they are: dangling ids no longer resolve and the
// grouping views ignore them.
func (s *Store) DeleteRole(serverID string, actorID string, roleID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.serverIndex(serverID)
	if i == -1 || s.servers[i].OwnerID != actorID {
		return
	}

	roles := s.servers[i].Roles
	for j := range roles {
		if roles[j].ID == roleID {
			s.servers[i].Roles = append(roles[:j], roles[j+1:]...)
			s.saveServers()
			return
		}
	}
}

// ToggleUserRole flips roleID in the member's role list: removed when held,
// appended when not.
func (s *Store) ToggleUserRole(serverID string, actorID string, userID string, roleID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.serverIndex(serverID)
	if i == -1 || s.servers[i].OwnerID != actorID {
		return
	}

	roleIDs, joined := s.servers[i].Members[userID]
	if !joined {
		return
	}

	for j, id := range roleIDs {
		if id == roleID {
			s.servers[i].Members[userID] = append(roleIDs[:j], roleIDs[j+1:]...)
			s.saveServers()
			return
		}
	}

	s.servers[i].Members[userID] = append(roleIDs, roleID)
	s.saveServers()
}
