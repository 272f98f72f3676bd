package ocr

import (
	"context"
	"strings"

	"github.com/otiai10/gosseract/v2"
	"github.com/rs/zerolog/log"

	"qsolve/internal/errors"
	"qsolve/ports"
)

var _ ports.Recognizer = (*TesseractRecognizer)(nil)

// TesseractRecognizer runs local Tesseract recognition via gosseract. A
// fresh client is created per call; gosseract clients are not safe for
// concurrent reuse.
type TesseractRecognizer struct {
	language      string
	clientFactory func() *gosseract.Client
}

// NewTesseractRecognizer constructs a recognizer configured for a single
// language (e.g. "eng").
func NewTesseractRecognizer(language string) *TesseractRecognizer {
	return &TesseractRecognizer{
		language:      language,
		clientFactory: gosseract.NewClient,
	}
}

// Recognize preprocesses the image and runs text recognition on it.
func (r *TesseractRecognizer) Recognize(ctx context.Context, img []byte) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	processed, err := Preprocess(img)
	if err != nil {
		return "", err
	}

	client := r.clientFactory()
	defer client.Close()

	if err := client.SetImageFromBytes(processed); err != nil {
		return "", errors.WithCode(err, errors.CodeUpstream, "failed to load image into recognizer")
	}
	if r.language != "" {
		if err := client.SetLanguage(r.language); err != nil {
			return "", errors.WithCode(err, errors.CodeUpstream, "failed to set recognition language")
		}
	}

	text, err := client.Text()
	if err != nil {
		return "", errors.WithCode(err, errors.CodeUpstream, "text recognition failed")
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", errors.New(errors.CodeInvalidInput, "No text could be extracted from the image")
	}

	log.Debug().Int("imageBytes", len(img)).Int("textLength", len(trimmed)).Msg("ocr: recognition complete")
	return trimmed, nil
}
