package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/etnz/finvest"
	"github.com/etnz/finvest/gemini"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStudio replays canned generative results.
type fakeStudio struct {
	advice   string
	image    string
	imageErr error
	video    []byte
	videoErr error

	videoDelay time.Duration
	mu         sync.Mutex
	videoCalls int
}

func (f *fakeStudio) Advise(ctx context.Context, assets []finvest.Asset, summary *finvest.Summary) string {
	return f.advice
}

func (f *fakeStudio) VisionBoard(ctx context.Context, prompt string, size gemini.ImageSize) (string, error) {
	return f.image, f.imageErr
}

func (f *fakeStudio) GoalVideo(ctx context.Context, req gemini.VideoRequest) ([]byte, error) {
	f.mu.Lock()
	f.videoCalls++
	f.mu.Unlock()
	if f.videoDelay > 0 {
		time.Sleep(f.videoDelay)
	}
	return f.video, f.videoErr
}

func newTestServer(studio *fakeStudio, assets ...finvest.Asset) http.Handler {
	srv := New(finvest.NewStore(assets...), studio, zerolog.Nop())
	return srv.Router([]string{"*"})
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body == "" {
		rd = bytes.NewReader(nil)
	} else {
		rd = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, into any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), into))
}

func TestHealth(t *testing.T) {
	w := do(t, newTestServer(&fakeStudio{}), http.MethodGet, "/api/system/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListAssets(t *testing.T) {
	h := newTestServer(&fakeStudio{}, finvest.SeedAssets()...)
	w := do(t, h, http.MethodGet, "/api/assets", "")

	require.Equal(t, http.StatusOK, w.Code)
	var views []map[string]any
	decode(t, w, &views)
	require.Len(t, views, 4)
	assert.Equal(t, "PETR4", views[0]["ticker"])
	valuation, ok := views[0]["valuation"].(map[string]any)
	require.True(t, ok, "each asset carries its derived figures")
	assert.InDelta(t, 3520.0, valuation["market_value"], 0.001)
	assert.InDelta(t, 670.0, valuation["gain"], 0.001)
}

func TestAddAsset(t *testing.T) {
	h := newTestServer(&fakeStudio{})
	w := do(t, h, http.MethodPost, "/api/assets", `{
		"ticker": "VALE3", "name": "VALE ON", "type": "stock",
		"quantity": 50, "average_price": 60, "current_price": 65
	}`)

	require.Equal(t, http.StatusCreated, w.Code)
	var created map[string]any
	decode(t, w, &created)
	assert.NotEmpty(t, created["id"])

	// the summary reflects the new asset on the next read
	w = do(t, h, http.MethodGet, "/api/portfolio/summary", "")
	var summary map[string]float64
	decode(t, w, &summary)
	assert.InDelta(t, 3250.0, summary["total_value"], 0.001)
	assert.InDelta(t, 3000.0, summary["total_invested"], 0.001)
}

func TestAddAssetInvalid(t *testing.T) {
	h := newTestServer(&fakeStudio{})
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"ticker": `},
		{"missing ticker", `{"type": "stock", "quantity": 1}`},
		{"negative quantity", `{"ticker": "X", "type": "stock", "quantity": -1}`},
		{"unknown type", `{"ticker": "X", "type": "bond", "quantity": 1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, "/api/assets", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestRemoveAsset(t *testing.T) {
	seed := finvest.SeedAssets()
	h := newTestServer(&fakeStudio{}, seed...)

	w := do(t, h, http.MethodDelete, "/api/assets/"+seed[0].ID, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, http.MethodDelete, "/api/assets/"+seed[0].ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodGet, "/api/assets", "")
	var views []map[string]any
	decode(t, w, &views)
	assert.Len(t, views, 3)
}

func TestSummaryEndpoint(t *testing.T) {
	h := newTestServer(&fakeStudio{}, finvest.Asset{
		ID: "1", Ticker: "PETR4", Type: finvest.Stock,
		Quantity: finvest.Q(100), AveragePrice: finvest.M(28.50), CurrentPrice: finvest.M(35.20),
	})
	w := do(t, h, http.MethodGet, "/api/portfolio/summary", "")

	require.Equal(t, http.StatusOK, w.Code)
	var summary map[string]float64
	decode(t, w, &summary)
	assert.InDelta(t, 2850.0, summary["total_invested"], 0.001)
	assert.InDelta(t, 3520.0, summary["total_value"], 0.001)
	assert.InDelta(t, 670.0, summary["profitability_value"], 0.001)
	assert.InDelta(t, 23.5088, summary["profitability"], 0.001)
}

func TestAllocationEndpoint(t *testing.T) {
	h := newTestServer(&fakeStudio{}, finvest.SeedAssets()...)
	w := do(t, h, http.MethodGet, "/api/portfolio/allocation", "")

	require.Equal(t, http.StatusOK, w.Code)
	var entries []struct {
		Type  string  `json:"type"`
		Value float64 `json:"value"`
	}
	decode(t, w, &entries)
	require.Len(t, entries, 4)

	var sum float64
	for _, e := range entries {
		sum += e.Value
	}
	assert.InDelta(t, 20354.5, sum, 0.001)
}

func TestAdviceEndpoint(t *testing.T) {
	h := newTestServer(&fakeStudio{advice: "stay the course"}, finvest.SeedAssets()...)
	w := do(t, h, http.MethodPost, "/api/advisor/advice", "{}")

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	decode(t, w, &resp)
	assert.Equal(t, "stay the course", resp["advice"])
}

func TestVisionImageEndpoint(t *testing.T) {
	h := newTestServer(&fakeStudio{image: "data:image/png;base64,aGk="})
	w := do(t, h, http.MethodPost, "/api/studio/image", `{"prompt": "a beach house", "resolution": "2K"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]*string
	decode(t, w, &resp)
	require.NotNil(t, resp["image"])
	assert.Equal(t, "data:image/png;base64,aGk=", *resp["image"])
}

func TestVisionImageEmptyPrompt(t *testing.T) {
	h := newTestServer(&fakeStudio{})
	w := do(t, h, http.MethodPost, "/api/studio/image", `{"prompt": "  "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVisionImageNoImage(t *testing.T) {
	h := newTestServer(&fakeStudio{image: ""})
	w := do(t, h, http.MethodPost, "/api/studio/image", `{"prompt": "a beach house"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]*string
	decode(t, w, &resp)
	assert.Nil(t, resp["image"], "no image produced is null, not an error")
}

func TestVisionImageFailure(t *testing.T) {
	h := newTestServer(&fakeStudio{imageErr: assert.AnError})
	w := do(t, h, http.MethodPost, "/api/studio/image", `{"prompt": "a beach house"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

const videoBody = `{"prompt": "sunset", "image": "aW1n", "aspect_ratio": "16:9"}`

func TestGoalVideoEndpoint(t *testing.T) {
	h := newTestServer(&fakeStudio{video: []byte("mp4-bytes")})
	w := do(t, h, http.MethodPost, "/api/studio/video", videoBody)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "video/mp4", w.Header().Get("Content-Type"))
	assert.Equal(t, "mp4-bytes", w.Body.String())
}

func TestGoalVideoNoResult(t *testing.T) {
	h := newTestServer(&fakeStudio{video: nil})
	w := do(t, h, http.MethodPost, "/api/studio/video", videoBody)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	decode(t, w, &resp)
	_, present := resp["video"]
	assert.True(t, present)
	assert.Nil(t, resp["video"])
}

func TestGoalVideoMissingFields(t *testing.T) {
	h := newTestServer(&fakeStudio{})
	for _, body := range []string{
		`{"prompt": "sunset"}`,
		`{"image": "aW1n"}`,
		`{"prompt": "sunset", "image": "aW1n", "aspect_ratio": "4:3"}`,
	} {
		w := do(t, h, http.MethodPost, "/api/studio/video", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)
	}
}

func TestGoalVideoFailureCarriesBillingHint(t *testing.T) {
	h := newTestServer(&fakeStudio{videoErr: assert.AnError})
	w := do(t, h, http.MethodPost, "/api/studio/video", videoBody)

	require.Equal(t, http.StatusBadGateway, w.Code)
	var resp errorResponse
	decode(t, w, &resp)
	assert.True(t, strings.Contains(resp.Details, "billing"), "details %q should hint at billing", resp.Details)
}

// A second video request while one is running is rejected rather than
// queued: there is no per-job deduplication downstream.
func TestGoalVideoOverlapRejected(t *testing.T) {
	studio := &fakeStudio{video: []byte("mp4"), videoDelay: 100 * time.Millisecond}
	h := newTestServer(studio)

	codes := make(chan int, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := do(t, h, http.MethodPost, "/api/studio/video", videoBody)
			codes <- w.Code
		}()
		time.Sleep(20 * time.Millisecond)
	}
	wg.Wait()
	close(codes)

	var got []int
	for c := range codes {
		got = append(got, c)
	}
	assert.ElementsMatch(t, []int{http.StatusOK, http.StatusConflict}, got)
	assert.Equal(t, 1, studio.videoCalls, "only one job reaches the studio")
}
