package gemini

import (
	"context"
	"encoding/base64"
	"fmt"

	"google.golang.org/genai"
)

// ImageSize is one of the three resolution tiers offered by the studio.
type ImageSize string

const (
	Image1K ImageSize = "1K"
	Image2K ImageSize = "2K"
	Image4K ImageSize = "4K"
)

// ParseImageSize returns the ImageSize matching s, defaulting to 1K for
// an empty string.
func ParseImageSize(s string) (ImageSize, error) {
	switch size := ImageSize(s); size {
	case "":
		return Image1K, nil
	case Image1K, Image2K, Image4K:
		return size, nil
	}
	return "", fmt.Errorf("unknown image resolution %q (want 1K, 2K or 4K)", s)
}

// visionAspectRatio frames the generated image for a vision-board
// composition.
const visionAspectRatio = "16:9"

// VisionBoard generates a vision-board image for prompt and returns the
// first inline image of the response, base64-encoded behind a data-URI
// prefix. It returns "" with no error when the service answered but
// produced no image, so callers can tell "nothing was generated" apart
// from "the service failed".
//
// Unlike Advise, errors propagate: an image failure is actionable and
// retryable by the user.
func (s *Service) VisionBoard(ctx context.Context, prompt string, size ImageSize) (string, error) {
	models, err := s.newGenerator(ctx)
	if err != nil {
		return "", fmt.Errorf("initializing image client: %w", err)
	}

	resp, err := models.GenerateContent(ctx, ImageModel, genai.Text(prompt), &genai.GenerateContentConfig{
		ImageConfig: &genai.ImageConfig{
			ImageSize:   string(size),
			AspectRatio: visionAspectRatio,
		},
	})
	if err != nil {
		return "", fmt.Errorf("generating vision board image: %w", err)
	}

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return "data:image/png;base64," + base64.StdEncoding.EncodeToString(part.InlineData.Data), nil
			}
		}
	}
	s.log.Warn().Str("size", string(size)).Msg("image response had no inline image part")
	return "", nil
}
