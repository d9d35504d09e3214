package server

import (
	"encoding/json"
	"net/http"

	"github.com/etnz/finvest"
	"github.com/go-chi/chi/v5"
)

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// assetView pairs an asset with its derived display figures.
type assetView struct {
	finvest.Asset
	Valuation finvest.Valuation `json:"valuation"`
}

func (s *Server) listAssets(w http.ResponseWriter, r *http.Request) {
	assets := s.store.Assets()
	views := make([]assetView, len(assets))
	for i, a := range assets {
		views[i] = assetView{Asset: a, Valuation: a.Valuation()}
	}
	respondJSON(w, http.StatusOK, views)
}

func (s *Server) addAsset(w http.ResponseWriter, r *http.Request) {
	var a finvest.Asset
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := a.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid asset", err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, s.store.Add(a))
}

func (s *Server) removeAsset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.store.Remove(id) {
		respondError(w, http.StatusNotFound, "asset not found", id)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// summary recomputes the portfolio summary from the full collection on
// every call; nothing is cached between reads.
func (s *Server) summary(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, finvest.NewSummary(s.store.Assets()))
}

func (s *Server) allocation(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, finvest.Allocation(s.store.Assets()))
}
