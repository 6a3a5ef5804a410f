package views_test

import (
	"testing"

	"furstream/internal/models"
	"furstream/internal/views"
)

func testUsers(ids ...string) map[string]models.User {
	users := make(map[string]models.User)
	for _, id := range ids {
		users[id] = models.User{ID: id, Username: "user-" + id, Status: models.StatusOnline}
	}
	return users
}

func TestHighestRolePrecedence(t *testing.T) {
	server := models.Server{
		Roles: []models.Role{
			{ID: "r1", Name: "Alpha"},
			{ID: "r2", Name: "Beta"},
			{ID: "r3", Name: "Gamma"},
		},
		Members: map[string][]string{
			"u1": {"r3", "r1"},
			"u2": {"r2"},
			"u3": {},
		},
	}

	tests := []struct {
		name       string
		userID     string
		wantRoleID string
		wantFound  bool
	}{
		{name: "first role in server order wins", userID: "u1", wantRoleID: "r1", wantFound: true},
		{name: "single role", userID: "u2", wantRoleID: "r2", wantFound: true},
		{name: "no roles", userID: "u3", wantFound: false},
		{name: "unknown member", userID: "nobody", wantFound: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			role, found := views.HighestRole(server, tc.userID)
			if found != tc.wantFound {
				t.Fatalf("found = %t, want %t", found, tc.wantFound)
			}
			if found && role.ID != tc.wantRoleID {
				t.Errorf("role = %s, want %s", role.ID, tc.wantRoleID)
			}
		})
	}
}

func TestHighestRoleIgnoresDanglingIDs(t *testing.T) {
	// deleted roles stay in member role lists; grouping must skip them
	server := models.Server{
		Roles: []models.Role{{ID: "r2", Name: "Beta"}},
		Members: map[string][]string{
			"u1": {"r1", "r2"}, // r1 was deleted
			"u2": {"r1"},
		},
	}

	role, found := views.HighestRole(server, "u1")
	if !found || role.ID != "r2" {
		t.Errorf("got (%v, %t), want r2", role, found)
	}

	if _, found := views.HighestRole(server, "u2"); found {
		t.Error("member holding only a dangling role id should resolve to no role")
	}
}

func TestGroupMembers(t *testing.T) {
	server := models.Server{
		Roles: []models.Role{
			{ID: "r1", Name: "Alpha", Color: "#ef4444"},
			{ID: "r2", Name: "Beta", Color: "#22c55e"},
			{ID: "r3", Name: "Empty", Color: "#000000"},
		},
		Members: map[string][]string{
			"u1": {"r1"},
			"u2": {"r2", "r1"},
			"u3": {},
			"u4": {"r2"},
		},
	}
	users := testUsers("u1", "u2", "u3", "u4", "unrelated")

	groups := views.GroupMembers(server, users)

	if len(groups) != 3 {
		t.Fatalf("got %d groups, want 3 (Alpha, Beta, Online)", len(groups))
	}

	if groups[0].Name != "Alpha" || len(groups[0].Members) != 2 {
		t.Errorf("Alpha bucket wrong: %s with %d members", groups[0].Name, len(groups[0].Members))
	}
	if groups[1].Name != "Beta" || len(groups[1].Members) != 1 || groups[1].Members[0].ID != "u4" {
		t.Errorf("Beta bucket wrong: %+v", groups[1])
	}
	if groups[2].Name != "Online" || len(groups[2].Members) != 1 || groups[2].Members[0].ID != "u3" {
		t.Errorf("Online bucket wrong: %+v", groups[2])
	}
}

func TestGroupMembersSkipsUnknownUsers(t *testing.T) {
	server := models.Server{
		Roles:   []models.Role{{ID: "r1", Name: "Alpha"}},
		Members: map[string][]string{"ghost": {"r1"}},
	}

	groups := views.GroupMembers(server, testUsers("u1"))
	if len(groups) != 0 {
		t.Errorf("got %d groups, want none for unknown members", len(groups))
	}
}

func TestDMDisplayName(t *testing.T) {
	users := map[string]models.User{
		"u1": {ID: "u1", Username: "NeonPaws"},
		"u2": {ID: "u2", Username: "GlitchWolf"},
		"u3": {ID: "u3", Username: "A"},
		"u4": {ID: "u4", Username: "B"},
		"u5": {ID: "u5", Username: "C"},
		"u6": {ID: "u6", Username: "D"},
	}

	tests := []struct {
		name   string
		dm     models.DMChannel
		selfID string
		want   string
	}{
		{
			name:   "explicit name wins",
			dm:     models.DMChannel{Name: "Den Planning", Participants: []string{"u1", "u2"}},
			selfID: "u1",
			want:   "Den Planning",
		},
		{
			name:   "pair shows the other participant",
			dm:     models.DMChannel{Participants: []string{"u1", "u2"}},
			selfID: "u1",
			want:   "GlitchWolf",
		},
		{
			name:   "pair with unknown other participant",
			dm:     models.DMChannel{Participants: []string{"u1", "deleted"}},
			selfID: "u1",
			want:   "Unknown User",
		},
		{
			name:   "group of four lists all others without suffix",
			dm:     models.DMChannel{Participants: []string{"u1", "u3", "u4", "u5"}},
			selfID: "u1",
			want:   "A, B, C",
		},
		{
			name:   "group of five truncates with +1",
			dm:     models.DMChannel{Participants: []string{"u1", "u3", "u4", "u5", "u6"}},
			selfID: "u1",
			want:   "A, B, C +1",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := views.DMDisplayName(tc.dm, users, tc.selfID)
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestConversationsFor(t *testing.T) {
	dms := []models.DMChannel{
		{ID: "dm_u1_u2", Participants: []string{"u1", "u2"}, LastMessageAt: 100},
		{ID: "dm_u2_u3", Participants: []string{"u2", "u3"}, LastMessageAt: 300},
		{ID: "dm_u1_u3", Participants: []string{"u1", "u3"}, LastMessageAt: 200},
	}

	got := views.ConversationsFor(dms, "u1")
	if len(got) != 2 {
		t.Fatalf("got %d conversations, want 2", len(got))
	}
	if got[0].ID != "dm_u1_u3" || got[1].ID != "dm_u1_u2" {
		t.Errorf("wrong order: %s, %s", got[0].ID, got[1].ID)
	}
}

func TestServersFor(t *testing.T) {
	servers := []models.Server{
		{ID: "s1", Members: map[string][]string{"u1": {}}},
		{ID: "s2", Members: map[string][]string{"u2": {}}},
		{ID: "s3", Members: map[string][]string{"u1": {"r1"}, "u2": {}}},
	}

	got := views.ServersFor(servers, "u1")
	if len(got) != 2 || got[0].ID != "s1" || got[1].ID != "s3" {
		t.Errorf("got %+v, want s1 and s3", got)
	}
}
