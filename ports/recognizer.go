package ports

import "context"

// Recognizer converts image pixels to text. Implementations normalize the
// image before recognition and return trimmed plain text.
type Recognizer interface {
	// Recognize runs text recognition on an encoded image. An image with no
	// recoverable text is an INVALID_INPUT error, not an empty string.
	Recognize(ctx context.Context, image []byte) (string, error)
}
