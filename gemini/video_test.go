package gemini

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// fakeVideoRunner reports pending for pollsUntilDone status checks,
// then done with the configured result URI.
type fakeVideoRunner struct {
	pollsUntilDone int
	uri            string
	submitErr      error
	pollErr        error

	polls    int
	gotImage *genai.Image
	gotCfg   *genai.GenerateVideosConfig
}

func (r *fakeVideoRunner) operation(done bool) *genai.GenerateVideosOperation {
	op := &genai.GenerateVideosOperation{Name: "operations/op-1", Done: done}
	if done && r.uri != "" {
		op.Response = &genai.GenerateVideosResponse{
			GeneratedVideos: []*genai.GeneratedVideo{{Video: &genai.Video{URI: r.uri}}},
		}
	}
	return op
}

func (r *fakeVideoRunner) Submit(ctx context.Context, prompt string, image *genai.Image, config *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error) {
	if r.submitErr != nil {
		return nil, r.submitErr
	}
	r.gotImage = image
	r.gotCfg = config
	return r.operation(r.pollsUntilDone == 0), nil
}

func (r *fakeVideoRunner) Poll(ctx context.Context, op *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error) {
	if r.pollErr != nil {
		return nil, r.pollErr
	}
	r.polls++
	return r.operation(r.polls >= r.pollsUntilDone), nil
}

func newVideoTestService(r videoRunner) *Service {
	s := NewService("test-key", zerolog.Nop())
	s.pollInterval = time.Millisecond
	s.videoRunner = func(ctx context.Context) (videoRunner, error) { return r, nil }
	return s
}

func videoReq() VideoRequest {
	return VideoRequest{
		Prompt:      "the beach house at sunset",
		ImageData:   base64.StdEncoding.EncodeToString([]byte("source-image")),
		AspectRatio: Landscape,
	}
}

func TestGoalVideoPollsUntilDone(t *testing.T) {
	var fetches int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
		// the API key is appended to the result locator
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Write([]byte("mp4-bytes"))
	}))
	defer srv.Close()

	runner := &fakeVideoRunner{pollsUntilDone: 3, uri: srv.URL + "/files/video-1?alt=media"}
	got, err := newVideoTestService(runner).GoalVideo(context.Background(), videoReq())

	require.NoError(t, err)
	assert.Equal(t, []byte("mp4-bytes"), got)
	assert.Equal(t, 3, runner.polls, "status should be re-checked until done")
	assert.Equal(t, 1, fetches, "exactly one byte fetch after completion")
	assert.Equal(t, int32(1), runner.gotCfg.NumberOfVideos)
	assert.Equal(t, videoResolution, runner.gotCfg.Resolution)
	assert.Equal(t, "16:9", runner.gotCfg.AspectRatio)
}

// A finished job without a result locator is "no video", not a hang
// and not an error.
func TestGoalVideoNoResult(t *testing.T) {
	runner := &fakeVideoRunner{pollsUntilDone: 1}

	got, err := newVideoTestService(runner).GoalVideo(context.Background(), videoReq())

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGoalVideoStripsDataURI(t *testing.T) {
	runner := &fakeVideoRunner{pollsUntilDone: 1}
	req := videoReq()
	req.ImageData = "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("source-image"))

	_, err := newVideoTestService(runner).GoalVideo(context.Background(), req)

	require.NoError(t, err)
	require.NotNil(t, runner.gotImage)
	assert.Equal(t, []byte("source-image"), runner.gotImage.ImageBytes)
	assert.Equal(t, "image/png", runner.gotImage.MIMEType)
}

func TestGoalVideoSubmissionFailure(t *testing.T) {
	runner := &fakeVideoRunner{submitErr: errors.New("permission denied")}

	_, err := newVideoTestService(runner).GoalVideo(context.Background(), videoReq())

	require.Error(t, err)
	assert.ErrorContains(t, err, "permission denied")
}

func TestGoalVideoPollFailure(t *testing.T) {
	runner := &fakeVideoRunner{pollsUntilDone: 5, pollErr: errors.New("backend exploded")}

	_, err := newVideoTestService(runner).GoalVideo(context.Background(), videoReq())

	require.Error(t, err)
	assert.ErrorContains(t, err, "backend exploded")
}

func TestGoalVideoAttemptCap(t *testing.T) {
	runner := &fakeVideoRunner{pollsUntilDone: 1 << 30}
	s := newVideoTestService(runner)
	s.maxPolls = 3

	_, err := s.GoalVideo(context.Background(), videoReq())

	require.Error(t, err)
	assert.ErrorContains(t, err, "still pending")
}

func TestGoalVideoCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	runner := &fakeVideoRunner{pollsUntilDone: 1 << 30}
	s := newVideoTestService(runner)
	s.pollInterval = time.Minute

	_, err := s.GoalVideo(ctx, videoReq())

	assert.ErrorIs(t, err, context.Canceled)
}

func TestGoalVideoBadImageData(t *testing.T) {
	runner := &fakeVideoRunner{pollsUntilDone: 1}
	req := videoReq()
	req.ImageData = "!!! not base64 !!!"

	_, err := newVideoTestService(runner).GoalVideo(context.Background(), req)

	require.Error(t, err)
	assert.ErrorContains(t, err, "decoding source image")
}

func TestGoalVideoFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	runner := &fakeVideoRunner{pollsUntilDone: 1, uri: srv.URL + "/files/video-1?alt=media"}
	_, err := newVideoTestService(runner).GoalVideo(context.Background(), videoReq())

	require.Error(t, err)
	assert.ErrorContains(t, err, "cannot fetch video")
}
