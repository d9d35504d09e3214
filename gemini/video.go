package gemini

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"google.golang.org/genai"
)

// AspectRatio of the generated video.
type AspectRatio string

const (
	Landscape AspectRatio = "16:9"
	Portrait  AspectRatio = "9:16"
)

// ParseAspectRatio returns the AspectRatio matching s, defaulting to
// landscape for an empty string.
func ParseAspectRatio(s string) (AspectRatio, error) {
	switch ratio := AspectRatio(s); ratio {
	case "":
		return Landscape, nil
	case Landscape, Portrait:
		return ratio, nil
	}
	return "", fmt.Errorf("unknown aspect ratio %q (want 16:9 or 9:16)", s)
}

// videoResolution is fixed: the fast Veo preview supports 720p.
const videoResolution = "720p"

// dataURIPrefix matches the data-URI header of an uploaded image.
var dataURIPrefix = regexp.MustCompile(`^data:image/(png|jpe?g);base64,`)

// VideoRequest describes a goal-video generation job: a prompt, the
// vision-board image to animate, and the output aspect ratio.
type VideoRequest struct {
	Prompt      string
	ImageData   string // base64 image bytes, with or without a data-URI prefix
	AspectRatio AspectRatio
}

// GoalVideo submits an asynchronous video generation job, polls it to
// completion and returns the resulting video bytes. It returns
// (nil, nil) when the job finished without producing a video.
//
// Polling runs at a fixed interval until the job reports done, the
// context is cancelled, or the attempt cap is reached. Errors from any
// stage (submission, polling, byte fetch) propagate to the caller: the
// dominant failure mode is a billing or access-tier restriction the
// user has to resolve, not a transient fault worth retrying here.
//
// There is no per-job deduplication downstream, so callers must not
// run two jobs for the same request concurrently.
func (s *Service) GoalVideo(ctx context.Context, req VideoRequest) ([]byte, error) {
	runner, err := s.newVideoRunner(ctx)
	if err != nil {
		return nil, fmt.Errorf("initializing video client: %w", err)
	}

	imageBytes, err := base64.StdEncoding.DecodeString(dataURIPrefix.ReplaceAllString(req.ImageData, ""))
	if err != nil {
		return nil, fmt.Errorf("decoding source image: %w", err)
	}

	op, err := runner.Submit(ctx, req.Prompt, &genai.Image{
		ImageBytes: imageBytes,
		MIMEType:   "image/png",
	}, &genai.GenerateVideosConfig{
		NumberOfVideos: 1,
		Resolution:     videoResolution,
		AspectRatio:    string(req.AspectRatio),
	})
	if err != nil {
		return nil, fmt.Errorf("submitting video job: %w", err)
	}
	s.log.Info().Str("operation", op.Name).Msg("video job submitted")

	op, err = s.waitForVideo(ctx, runner, op)
	if err != nil {
		return nil, err
	}

	uri := videoURI(op)
	if uri == "" {
		s.log.Warn().Str("operation", op.Name).Msg("video job finished without a result")
		return nil, nil
	}
	return s.fetchVideo(ctx, uri)
}

// waitForVideo polls the job on the service interval until it reports
// done, the context ends, or the attempt cap is hit.
func (s *Service) waitForVideo(ctx context.Context, runner videoRunner, op *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error) {
	for polls := 0; !op.Done; polls++ {
		if polls >= s.maxPolls {
			return nil, fmt.Errorf("video job %s still pending after %d status checks", op.Name, polls)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.pollInterval):
		}
		var err error
		op, err = runner.Poll(ctx, op)
		if err != nil {
			return nil, fmt.Errorf("polling video job: %w", err)
		}
	}
	return op, nil
}

// videoURI extracts the result locator from a completed job, or ""
// when the job produced nothing.
func videoURI(op *genai.GenerateVideosOperation) string {
	if op.Response == nil || len(op.Response.GeneratedVideos) == 0 {
		return ""
	}
	video := op.Response.GeneratedVideos[0].Video
	if video == nil {
		return ""
	}
	return video.URI
}

// fetchVideo downloads the generated bytes. The result locator is not
// authenticated by itself: the API key is appended as a query
// parameter, exactly as for every other outbound call.
func (s *Service) fetchVideo(ctx context.Context, uri string) ([]byte, error) {
	sep := "&"
	if !strings.Contains(uri, "?") {
		sep = "?"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri+sep+"key="+s.apiKey, nil)
	if err != nil {
		return nil, fmt.Errorf("building video fetch request: %w", err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching video bytes: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot fetch video %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	return io.ReadAll(resp.Body)
}
