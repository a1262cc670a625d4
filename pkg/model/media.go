package model

import (
	"time"
)

// MediaKind is the type of file a slot holds
type MediaKind string

const (
	MediaImage = MediaKind("image")
	MediaVideo = MediaKind("video")
)

// MediaSlot is an admin-assigned override for a named placement on the site,
// e.g. "programs_education_image_url".
type MediaSlot struct {
	Key       string    `json:"key" sql:",pk"`
	Kind      MediaKind `json:"kind"`
	URLs      []string  `json:"urls" sql:",array"`
	UpdatedAt time.Time `json:"updated_at"`
}
