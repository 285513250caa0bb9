package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/votingapp/api/internal/adapters/session"
	"github.com/votingapp/api/internal/core/domain"
	"github.com/votingapp/api/internal/core/ports"
)

type VoteHandler struct {
	voteService   ports.VoteService
	stressService ports.StressService
	authService   ports.AuthService
	cookies       *session.CookieManager
}

func NewVoteHandler(voteService ports.VoteService, stressService ports.StressService, authService ports.AuthService, cookies *session.CookieManager) *VoteHandler {
	return &VoteHandler{
		voteService:   voteService,
		stressService: stressService,
		authService:   authService,
		cookies:       cookies,
	}
}

// CastVote returns the handler for one restaurant's voting route. The router
// registers one route per configured restaurant, so anything else 404s at
// the routing layer. The response is the new count as plain text.
func (h *VoteHandler) CastVote(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := h.voteService.CastVote(r.Context(), name)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Write([]byte(strconv.Itoa(count)))
	}
}

func (h *VoteHandler) GetVotes(w http.ResponseWriter, r *http.Request) {
	votes, err := h.voteService.AllVotes(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, votes)
}

// GetHeavyVotes reads the tallies, then burns CPU and memory before
// responding. The burn blocks the request on purpose.
func (h *VoteHandler) GetHeavyVotes(w http.ResponseWriter, r *http.Request) {
	votes, err := h.voteService.AllVotes(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	h.stressService.Burn(r.Context())

	writeJSON(w, http.StatusOK, votes)
}

type voteRequest struct {
	Restaurant string `json:"restaurant"`
}

type voteResponse struct {
	Restaurant string `json:"restaurant"`
	Votes      int    `json:"votes"`
}

// VoteJSON is the session-gated JSON voting endpoint used by the dashboard.
func (h *VoteHandler) VoteJSON(w http.ResponseWriter, r *http.Request) {
	id, ok := h.cookies.Read(r)
	if !ok || !h.authService.Authenticated(id) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		return
	}

	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	count, err := h.voteService.CastVote(r.Context(), req.Restaurant)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRestaurant) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid restaurant"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, voteResponse{Restaurant: req.Restaurant, Votes: count})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
