package store

import (
	"time"

	"github.com/google/uuid"

	"furstream/internal/models"
)

// canonicalPairID derives the one id a two-person conversation can ever
// have: the sorted participant pair. Recreating the "same" conversation is
// therefore impossible by construction.
func canonicalPairID(a string, b string) string {
	if b < a {
		a, b = b, a
	}
	return "dm_" + a + "_" + b
}

// StartDM returns the direct message channel between the two users,
// creating it on first contact. Argument order doesn't matter; repeated
// calls converge on the same channel id. Messaging yourself is a no-op and
// returns "".
func (s *Store) StartDM(selfID string, otherID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.resolveOrCreateDM(selfID, otherID)
}

func (s *Store) resolveOrCreateDM(selfID string, otherID string) string {
	if selfID == otherID {
		return ""
	}
	if _, ok := s.users[selfID]; !ok {
		return ""
	}
	if _, ok := s.users[otherID]; !ok {
		return ""
	}

	for i := range s.dms {
		if len(s.dms[i].Participants) != 2 {
			continue
		}
		if containsString(s.dms[i].Participants, selfID) && containsString(s.dms[i].Participants, otherID) {
			return s.dms[i].ID
		}
	}

	dm := models.DMChannel{
		ID:            canonicalPairID(selfID, otherID),
		Participants:  []string{selfID, otherID},
		Messages:      []models.Message{},
		LastMessageAt: time.Now().UnixMilli(),
	}

	s.dms = append([]models.DMChannel{dm}, s.dms...)
	s.saveDMs()

	return dm.ID
}

// CreateGroupDM opens a group conversation with the given users. A single
// other user degenerates to StartDM; groups are never deduplicated, every
// call creates a distinct channel even with identical membership.
func (s *Store) CreateGroupDM(selfID string, otherIDs []string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(otherIDs) == 0 {
		return ""
	}
	if len(otherIDs) == 1 {
		return s.resolveOrCreateDM(selfID, otherIDs[0])
	}

	if _, ok := s.users[selfID]; !ok {
		return ""
	}

	participants := append([]string{selfID}, otherIDs...)

	dm := models.DMChannel{
		ID:            "group_" + uuid.NewString(),
		Participants:  participants,
		Messages:      []models.Message{},
		LastMessageAt: time.Now().UnixMilli(),
	}

	s.dms = append([]models.DMChannel{dm}, s.dms...)
	s.saveDMs()

	return dm.ID
}

func containsString(list []string, value string) bool {
	for _, entry := range list {
		if entry == value {
			return true
		}
	}
	return false
}
