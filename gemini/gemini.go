// Package gemini implements the generative clients of the dashboard:
// written portfolio advice, vision-board images and goal videos, all
// delegated to the Gemini API.
package gemini

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// Models requested by the dashboard.
const (
	AdviceModel = "gemini-3-flash-preview"
	ImageModel  = "gemini-3-pro-image-preview"
	VideoModel  = "veo-3.1-fast-generate-preview"
)

// generator is the slice of the genai SDK used by the advice and image
// calls. *genai.Models implements it.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// videoRunner is the slice of the genai SDK used by the video flow:
// job submission and status polling.
type videoRunner interface {
	Submit(ctx context.Context, prompt string, image *genai.Image, config *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error)
	Poll(ctx context.Context, op *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error)
}

// Service calls the Gemini API on behalf of the dashboard. The same API
// key is used for every outbound call, including the final video byte
// fetch.
//
// A fresh *genai.Client is built for every call rather than shared, so
// no connection or auth state outlives a single request.
type Service struct {
	apiKey       string
	log          zerolog.Logger
	httpClient   *http.Client
	pollInterval time.Duration
	maxPolls     int

	// test seams, nil in production
	generator   func(ctx context.Context) (generator, error)
	videoRunner func(ctx context.Context) (videoRunner, error)
}

// NewService returns a Service authenticating with apiKey.
func NewService(apiKey string, log zerolog.Logger) *Service {
	return &Service{
		apiKey:       apiKey,
		log:          log.With().Str("component", "gemini").Logger(),
		httpClient:   &http.Client{Timeout: 5 * time.Minute},
		pollInterval: 5 * time.Second,
		maxPolls:     120,
	}
}

func (s *Service) newClient(ctx context.Context) (*genai.Client, error) {
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  s.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
}

func (s *Service) newGenerator(ctx context.Context) (generator, error) {
	if s.generator != nil {
		return s.generator(ctx)
	}
	client, err := s.newClient(ctx)
	if err != nil {
		return nil, err
	}
	return client.Models, nil
}

func (s *Service) newVideoRunner(ctx context.Context) (videoRunner, error) {
	if s.videoRunner != nil {
		return s.videoRunner(ctx)
	}
	client, err := s.newClient(ctx)
	if err != nil {
		return nil, err
	}
	return &genaiVideoRunner{client: client}, nil
}

type genaiVideoRunner struct {
	client *genai.Client
}

func (r *genaiVideoRunner) Submit(ctx context.Context, prompt string, image *genai.Image, config *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error) {
	return r.client.Models.GenerateVideos(ctx, VideoModel, prompt, image, config)
}

func (r *genaiVideoRunner) Poll(ctx context.Context, op *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error) {
	return r.client.Operations.GetVideosOperation(ctx, op, nil)
}
