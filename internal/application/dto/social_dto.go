package dto

import "time"

// SocialPost publicación de la página de Facebook de la empresa.
type SocialPost struct {
	ID           string    `json:"id"`
	Message      string    `json:"message,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	PictureURL   string    `json:"pictureUrl,omitempty"`
	PermalinkURL string    `json:"permalinkUrl,omitempty"`
}
