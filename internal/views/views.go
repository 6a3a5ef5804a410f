// Package views derives presentation state from a store snapshot. Every
// function here is pure: nothing is cached and nothing mutates its inputs.
package views

import (
	"sort"
	"strconv"
	"strings"

	"furstream/internal/models"
)

// Fallback bucket for members holding no resolvable role. Rendered last.
const unassignedGroupName = "Online"
const unassignedGroupColor = "#94a3b8"

type MemberGroup struct {
	RoleID  string
	Name    string
	Color   string
	Members []models.User
}

// HighestRole resolves a member's representative role: the first entry of
// the server's role list (ordered highest precedence first) that appears in
// the member's role id list. Role ids that no longer resolve are ignored.
func HighestRole(server models.Server, userID string) (models.Role, bool) {
	roleIDs := server.Members[userID]
	for _, role := range server.Roles {
		for _, id := range roleIDs {
			if id == role.ID {
				return role, true
			}
		}
	}
	return models.Role{}, false
}

// GroupMembers partitions a server's members into buckets keyed by their
// highest role, in role-list order, with roleless members in a trailing
// "Online" bucket. Empty buckets and unknown user ids are dropped.
func GroupMembers(server models.Server, users map[string]models.User) []MemberGroup {
	byRole := make(map[string][]models.User)
	var unassigned []models.User

	memberIDs := make([]string, 0, len(server.Members))
	for id := range server.Members {
		memberIDs = append(memberIDs, id)
	}
	sort.Strings(memberIDs)

	for _, id := range memberIDs {
		user, ok := users[id]
		if !ok {
			continue
		}

		if role, ok := HighestRole(server, id); ok {
			byRole[role.ID] = append(byRole[role.ID], user)
		} else {
			unassigned = append(unassigned, user)
		}
	}

	groups := make([]MemberGroup, 0, len(server.Roles)+1)
	for _, role := range server.Roles {
		members := byRole[role.ID]
		if len(members) == 0 {
			continue
		}
		groups = append(groups, MemberGroup{
			RoleID:  role.ID,
			Name:    role.Name,
			Color:   role.Color,
			Members: members,
		})
	}

	if len(unassigned) > 0 {
		groups = append(groups, MemberGroup{
			Name:    unassignedGroupName,
			Color:   unassignedGroupColor,
			Members: unassigned,
		})
	}

	return groups
}

// DMDisplayName picks the label a conversation is shown under: the explicit
// name if set, the other participant's username for pairs, and for unnamed
// groups the first three other usernames with a "+N" overflow suffix once
// the group has more than four participants.
func DMDisplayName(dm models.DMChannel, users map[string]models.User, selfID string) string {
	if dm.Name != "" {
		return dm.Name
	}

	if len(dm.Participants) == 2 {
		for _, id := range dm.Participants {
			if id == selfID {
				continue
			}
			if user, ok := users[id]; ok {
				return user.Username
			}
		}
		return "Unknown User"
	}

	var names []string
	for _, id := range dm.Participants {
		if id == selfID {
			continue
		}
		if len(names) == 3 {
			break
		}
		if user, ok := users[id]; ok {
			names = append(names, user.Username)
		}
	}

	label := strings.Join(names, ", ")
	if len(dm.Participants) > 4 {
		label += " +" + strconv.Itoa(len(dm.Participants)-4)
	}
	return label
}

// ConversationsFor filters direct message channels to those the user
// participates in, most recent activity first.
func ConversationsFor(dms []models.DMChannel, userID string) []models.DMChannel {
	var mine []models.DMChannel
	for _, dm := range dms {
		for _, id := range dm.Participants {
			if id == userID {
				mine = append(mine, dm)
				break
			}
		}
	}

	sort.SliceStable(mine, func(i, j int) bool {
		return mine[i].LastMessageAt > mine[j].LastMessageAt
	})

	return mine
}

// ServersFor filters servers to those whose membership map contains the user.
func ServersFor(servers []models.Server, userID string) []models.Server {
	var mine []models.Server
	for _, server := range servers {
		if _, ok := server.Members[userID]; ok {
			mine = append(mine, server)
		}
	}
	return mine
}

