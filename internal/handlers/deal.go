// internal/handlers/deal.go
package handlers

import (
	"errors"
	"math/rand"
	"net/http"

	"github.com/jason-s-yu/uno/internal/game"
	"github.com/jason-s-yu/uno/internal/models"
	"github.com/jason-s-yu/uno/internal/store"
	"github.com/sirupsen/logrus"
)

// DealServer deals fresh hands on request and keeps the latest one in a DealStore.
// Each request gets its own deck and random source, so requests never share game state.
type DealServer struct {
	Store  store.DealStore
	Logger *logrus.Logger

	// NewSource returns the random source for one deal.
	NewSource func() game.Source
}

func NewDealServer(logger *logrus.Logger, ds store.DealStore) *DealServer {
	return &DealServer{
		Store:  ds,
		Logger: logger,
		NewSource: func() game.Source {
			// the global source is safe for concurrent use; the per-deal one is not
			return game.NewSource(rand.Int63())
		},
	}
}

type reshuffleResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type dealResponse struct {
	Hand         []models.Card `json:"hand"`
	OpponentHand []models.Card `json:"opponent_hand"`
	TopCard      models.Card   `json:"top_card"`
}

// ReshuffleHandler handles POST /reshuffle: deal a new player and opponent
// hand plus a top card and persist them, replacing the previous deal.
func (s *DealServer) ReshuffleHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, reshuffleResponse{Error: "method not allowed"})
		return
	}

	deal, err := game.DealFresh(s.NewSource())
	if err != nil {
		s.Logger.WithError(err).Error("failed to deal")
		writeJSON(w, http.StatusInternalServerError, reshuffleResponse{Error: "failed to deal"})
		return
	}

	if err := s.Store.SaveDeal(r.Context(), deal); err != nil {
		s.Logger.WithError(err).WithField("deal_id", deal.ID).Error("failed to persist deal")
		writeJSON(w, http.StatusInternalServerError, reshuffleResponse{Error: "failed to persist deal"})
		return
	}

	s.Logger.WithFields(logrus.Fields{
		"deal_id":  deal.ID,
		"top_card": deal.TopCard.String(),
	}).Info("dealt fresh hand")
	writeJSON(w, http.StatusOK, reshuffleResponse{Success: true})
}

// GetDealHandler handles GET /deal, returning the most recently persisted deal.
func (s *DealServer) GetDealHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	deal, err := s.Store.LoadDeal(r.Context())
	if errors.Is(err, store.ErrNoDeal) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no deal yet, POST /reshuffle first"})
		return
	}
	if err != nil {
		s.Logger.WithError(err).Error("failed to load deal")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load deal"})
		return
	}

	writeJSON(w, http.StatusOK, dealResponse{
		Hand:         deal.PlayerHand,
		OpponentHand: deal.OpponentHand,
		TopCard:      deal.TopCard,
	})
}
