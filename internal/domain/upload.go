package domain

import "io"

// Upload is an image file received from a client.
type Upload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

const (
	NoUserImage  = "/images/no_user_image.png"
	NoEventImage = "/images/no_event_image.png"
)
