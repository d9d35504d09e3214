package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/etnz/finvest"
	"github.com/etnz/finvest/gemini"
)

func (s *Server) advice(w http.ResponseWriter, r *http.Request) {
	assets := s.store.Assets()
	text := s.studio.Advise(r.Context(), assets, finvest.NewSummary(assets))
	respondJSON(w, http.StatusOK, map[string]string{"advice": text})
}

type imageRequest struct {
	Prompt     string `json:"prompt"`
	Resolution string `json:"resolution"`
}

type imageResponse struct {
	// Image is a data URI, or null when the service produced none.
	Image *string `json:"image"`
}

func (s *Server) visionImage(w http.ResponseWriter, r *http.Request) {
	var req imageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		respondError(w, http.StatusBadRequest, "prompt is required", "")
		return
	}
	size, err := gemini.ParseImageSize(req.Resolution)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid resolution", err.Error())
		return
	}

	image, err := s.studio.VisionBoard(r.Context(), req.Prompt, size)
	if err != nil {
		s.log.Error().Err(err).Msg("vision board generation failed")
		respondError(w, http.StatusBadGateway, "image generation failed", err.Error())
		return
	}
	if image == "" {
		respondJSON(w, http.StatusOK, imageResponse{Image: nil})
		return
	}
	respondJSON(w, http.StatusOK, imageResponse{Image: &image})
}

type videoRequest struct {
	Prompt      string `json:"prompt"`
	Image       string `json:"image"`
	AspectRatio string `json:"aspect_ratio"`
}

// billingHint is surfaced with video failures: the usual cause is an
// API key without a billing-enabled project, not a transient fault.
const billingHint = "video generation usually requires a billing-enabled project; check your access tier"

func (s *Server) goalVideo(w http.ResponseWriter, r *http.Request) {
	var req videoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if strings.TrimSpace(req.Prompt) == "" || req.Image == "" {
		respondError(w, http.StatusBadRequest, "prompt and source image are required", "")
		return
	}
	ratio, err := gemini.ParseAspectRatio(req.AspectRatio)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid aspect ratio", err.Error())
		return
	}

	if !s.videoBusy.CompareAndSwap(false, true) {
		respondError(w, http.StatusConflict, "a video job is already running", "")
		return
	}
	defer s.videoBusy.Store(false)

	video, err := s.studio.GoalVideo(r.Context(), gemini.VideoRequest{
		Prompt:      req.Prompt,
		ImageData:   req.Image,
		AspectRatio: ratio,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("goal video generation failed")
		respondError(w, http.StatusBadGateway, "video generation failed", billingHint)
		return
	}
	if video == nil {
		respondJSON(w, http.StatusOK, map[string]any{"video": nil})
		return
	}

	w.Header().Set("Content-Type", "video/mp4")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(video); err != nil {
		s.log.Error().Err(err).Msg("writing video response failed")
	}
}
