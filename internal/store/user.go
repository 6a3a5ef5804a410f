package store

import "furstream/internal/validator"

// AddFriend records targetID in the caller's friend list. The relation is
// one-directional: the target's own list is untouched.
func (s *Store) AddFriend(selfID string, targetID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if selfID == targetID {
		return
	}

	self, ok := s.users[selfID]
	if !ok {
		return
	}
	if _, ok := s.users[targetID]; !ok {
		return
	}
	if containsString(self.Friends, targetID) {
		return
	}

	self.Friends = append(self.Friends, targetID)
	s.users[selfID] = self
	s.saveUsers()
}

// ProfileUpdate carries a partial profile edit. Nil fields are left alone.
type ProfileUpdate struct {
	Username    *string
	Avatar      *string
	Bio         *string
	BannerColor *string
	Status      *string
}

// EditProfile merges the update into the user's profile. Any invalid field
// rejects the whole edit; there is no partial apply.
func (s *Store) EditProfile(userID string, update ProfileUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return
	}

	if update.Username != nil {
		if err := validator.Username(*update.Username); err != nil {
			return
		}
	}
	if update.Avatar != nil {
		if err := validator.MediaRef(*update.Avatar); err != nil {
			return
		}
	}
	if update.BannerColor != nil {
		if err := validator.BannerColor(*update.BannerColor); err != nil {
			return
		}
	}
	if update.Status != nil {
		if err := validator.Status(*update.Status); err != nil {
			return
		}
	}

	if update.Username != nil {
		user.Username = *update.Username
	}
	if update.Avatar != nil {
		user.Avatar = *update.Avatar
	}
	if update.Bio != nil {
		user.Bio = *update.Bio
	}
	if update.BannerColor != nil {
		user.BannerColor = *update.BannerColor
	}
	if update.Status != nil {
		user.Status = *update.Status
	}

	s.users[userID] = user
	s.saveUsers()
}
