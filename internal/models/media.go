package models

// Photo is an embedded reference to a blob held by the media store.
// PublicID is empty for the platform-provided default images, which must
// never be removed from the store.
type Photo struct {
	URL      string `json:"url" bson:"url"`
	PublicID string `json:"publicId" bson:"publicId,omitempty"`
}

// DefaultProfilePhotoURL is assigned to new accounts until the user
// uploads an avatar.
const DefaultProfilePhotoURL = "https://res.cloudinary.com/eduvia/image/upload/defaults/avatar.png"

// DefaultVideoPosterURL is the poster shown for videos without a custom image.
const DefaultVideoPosterURL = "https://res.cloudinary.com/eduvia/image/upload/defaults/video-poster.jpg"

// DefaultSpecializationPhotoURL is the placeholder for new specializations.
const DefaultSpecializationPhotoURL = "https://res.cloudinary.com/eduvia/image/upload/defaults/specialization.jpg"

func DefaultProfilePhoto() Photo {
	return Photo{URL: DefaultProfilePhotoURL}
}

func DefaultVideoPoster() Photo {
	return Photo{URL: DefaultVideoPosterURL}
}

func DefaultSpecializationPhoto() Photo {
	return Photo{URL: DefaultSpecializationPhotoURL}
}
