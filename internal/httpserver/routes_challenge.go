// internal/httpserver/routes_challenge.go
//
// Friend challenges:
//   - POST /challenge        → sign {answer, limit, from} into a shareable token
//   - POST /challenge/accept → redeem a token for a fresh game against that answer

package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/friendle/internal/challenge"
)

// challengeLabel is the share-header label for challenge games.
const challengeLabel = "Challenge"

func (s *Server) mountChallenge(r chi.Router) {
	r.Post("/challenge", s.handleIssueChallenge)
	r.Post("/challenge/accept", s.handleAcceptChallenge)
}

func (s *Server) handleIssueChallenge(w http.ResponseWriter, r *http.Request) {
	var req challenge.Challenge
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if req.Limit <= 0 {
		req.Limit = s.cfg.MaxGuesses
	}
	token, exp, err := s.challenges.Issue(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_target")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": token, "expiresAt": exp.UTC().Format(time.RFC3339)})
}

func (s *Server) handleAcceptChallenge(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := decode(r, &req); err != nil || req.Token == "" {
		writeError(w, http.StatusBadRequest, "bad_request")
		return
	}
	c, err := s.challenges.Parse(req.Token)
	switch {
	case errors.Is(err, challenge.ErrExpired):
		writeError(w, http.StatusGone, "challenge_expired")
		return
	case err != nil:
		log.Debug().Err(err).Msg("challenge rejected")
		writeError(w, http.StatusBadRequest, "invalid_token")
		return
	}

	pid := s.playerID(w, r)
	e, err := s.startWordle(r, c.Answer, c.Limit, modeChallenge, func(e *wordleEntry) {
		e.playerID, e.from, e.puzzle = pid, c.From, challengeLabel
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_target")
		return
	}
	writeJSON(w, http.StatusOK, e.newGameRes())
}
