package store

import (
	"furstream/internal/models"
	"furstream/internal/validator"
)

// VideoUpload is the publish input. Title and MediaRef are required;
// Thumbnail and Description get defaults when empty.
type VideoUpload struct {
	Title       string
	MediaRef    string
	Thumbnail   string
	Description string
}

// PublishVideo adds a video to the front of the feed and returns its id, or
// "" on invalid input. The uploader's profile is copied into the video at
// publish time, so later edits don't rewrite the byline.
func (s *Store) PublishVideo(uploaderID string, upload VideoUpload) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := validator.VideoTitle(upload.Title); err != nil {
		return ""
	}
	if err := validator.MediaRef(upload.MediaRef); err != nil {
		return ""
	}

	uploader, ok := s.users[uploaderID]
	if !ok {
		return ""
	}

	videoID, ok := s.newID("v")
	if !ok {
		return ""
	}

	thumbnail := upload.Thumbnail
	if thumbnail == "" {
		thumbnail = "https://picsum.photos/seed/new/400/225"
	}
	description := upload.Description
	if description == "" {
		description = "No description."
	}

	video := models.Video{
		ID:          videoID,
		Title:       upload.Title,
		Thumbnail:   thumbnail,
		Uploader:    cloneUser(uploader),
		Views:       "0",
		Timestamp:   "Just now",
		Length:      "0:00",
		Description: description,
		URL:         upload.MediaRef,
	}

	s.videos = append([]models.Video{video}, s.videos...)
	s.saveVideos()

	return videoID
}
