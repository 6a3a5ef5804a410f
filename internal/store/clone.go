package store

import "furstream/internal/models"

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneUser(user models.User) models.User {
	user.Friends = cloneStrings(user.Friends)
	return user
}

func cloneUsers(in map[string]models.User) map[string]models.User {
	out := make(map[string]models.User, len(in))
	for id, user := range in {
		out[id] = cloneUser(user)
	}
	return out
}

func cloneMessages(in []models.Message) []models.Message {
	if in == nil {
		return nil
	}
	out := make([]models.Message, len(in))
	copy(out, in)
	return out
}

func cloneChannels(in []models.Channel) []models.Channel {
	if in == nil {
		return nil
	}
	out := make([]models.Channel, len(in))
	for i, channel := range in {
		channel.Messages = cloneMessages(channel.Messages)
		out[i] = channel
	}
	return out
}

func cloneRoles(in []models.Role) []models.Role {
	if in == nil {
		return nil
	}
	out := make([]models.Role, len(in))
	for i, role := range in {
		role.Permissions = cloneStrings(role.Permissions)
		out[i] = role
	}
	return out
}

func cloneMembers(in map[string][]string) map[string][]string {
	out := make(map[string][]string, len(in))
	for id, roleIDs := range in {
		out[id] = cloneStrings(roleIDs)
	}
	return out
}

func cloneServers(in []models.Server) []models.Server {
	if in == nil {
		return nil
	}
	out := make([]models.Server, len(in))
	for i, server := range in {
		server.Roles = cloneRoles(server.Roles)
		server.Channels = cloneChannels(server.Channels)
		server.Members = cloneMembers(server.Members)
		out[i] = server
	}
	return out
}

func cloneDMs(in []models.DMChannel) []models.DMChannel {
	if in == nil {
		return nil
	}
	out := make([]models.DMChannel, len(in))
	for i, dm := range in {
		dm.Participants = cloneStrings(dm.Participants)
		dm.Messages = cloneMessages(dm.Messages)
		out[i] = dm
	}
	return out
}

func cloneVideos(in []models.Video) []models.Video {
	if in == nil {
		return nil
	}
	out := make([]models.Video, len(in))
	for i, video := range in {
		video.Uploader = cloneUser(video.Uploader)
		out[i] = video
	}
	return out
}
