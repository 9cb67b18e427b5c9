// internal/httpserver/routes_daily.go
//
// Daily puzzles and the numbers built from their results:
//   - POST /daily/new  → start (or resume) today's word game for this player
//   - GET  /leaderboard → top 20 unassisted wins for a game and date
//   - GET  /stats/me    → played / win % / streaks / distribution for this player
//
// Each player gets one recorded result per game per day (UNIQUE in the DB).
// Active daily sessions are tracked in memory so a reload resumes the same game.
// Word selection is deterministic for the date (HMAC over the date key).

package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/friendle/internal/daily"
	"github.com/robalobadob/friendle/internal/stats"
	"github.com/robalobadob/friendle/internal/words"
)

const leaderboardSize = 20

func (s *Server) mountDaily(r chi.Router) {
	r.Post("/daily/new", s.handleDailyNew)
	r.Get("/leaderboard", s.handleLeaderboard)
	r.Get("/stats/me", s.handleStats)
}

// todayWord returns today's date key, puzzle label and answer.
func (s *Server) todayWord() (date, puzzle, answer string) {
	now := s.now().UTC()
	date = daily.DateKey(now)
	puzzle = fmt.Sprint(daily.PuzzleNumber(now, s.cfg.PuzzleEpoch))
	answers := words.Answers()
	if len(answers) == 0 {
		return date, puzzle, ""
	}
	return date, puzzle, answers[daily.WordIndex(now, s.dailyKey, len(answers))]
}

func dailyKey(player, game, date string) string {
	return player + "|" + game + "|" + date
}

// claimDaily returns the live daily session for key, calling start when there
// is none. Lookup and insert happen under one lock so concurrent requests from
// the same player share a session.
func (s *Server) claimDaily(key string, live func(id string) bool, start func() (string, error)) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.dailyGames[key]; ok && live(id) {
		return id, nil
	}
	id, err := start()
	if err != nil {
		return "", err
	}
	s.dailyGames[key] = id
	return id, nil
}

// handleDailyNew starts today's word game. A player who already has a recorded
// result gets {played:true} and no session; one with a live session resumes it.
func (s *Server) handleDailyNew(w http.ResponseWriter, r *http.Request) {
	pid := s.playerID(w, r)
	date, puzzle, answer := s.todayWord()
	if answer == "" {
		writeError(w, http.StatusServiceUnavailable, "no_words")
		return
	}

	if played, err := s.results.AlreadyPlayed(r.Context(), pid, daily.GameWordle, date); err != nil {
		log.Warn().Err(err).Str("player", pid).Msg("daily lookup")
	} else if played {
		writeJSON(w, http.StatusOK, newGameRes{Mode: modeDaily, Puzzle: puzzle, Date: date, Limit: s.cfg.MaxGuesses, Played: true})
		return
	}

	key := dailyKey(pid, daily.GameWordle, date)
	id, err := s.claimDaily(key, func(id string) bool {
		_, err := s.games.Get(r.Context(), id)
		return err == nil
	}, func() (string, error) {
		e, err := s.startWordle(r, answer, s.cfg.MaxGuesses, modeDaily, func(e *wordleEntry) {
			e.playerID, e.date, e.puzzle = pid, date, puzzle
		})
		if err != nil {
			return "", err
		}
		return e.session.ID, nil
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal")
		return
	}
	e, err := s.games.Get(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal")
		return
	}
	e.mu.Lock()
	res := e.newGameRes()
	e.mu.Unlock()
	writeJSON(w, http.StatusOK, res)
}

// gameParam reads ?game=, defaulting to the word game.
func gameParam(r *http.Request) (string, error) {
	g := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("game")))
	switch g {
	case "", daily.GameWordle:
		return daily.GameWordle, nil
	case daily.GameConnections:
		return g, nil
	}
	return "", errors.New("unknown game")
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	g, err := gameParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown_game")
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(s.now())
	} else if _, err := daily.ParseDateKey(date); err != nil {
		writeError(w, http.StatusBadRequest, "bad_date")
		return
	}

	top, err := s.results.Leaderboard(r.Context(), g, date, leaderboardSize)
	if err != nil {
		log.Error().Err(err).Msg("leaderboard query")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	if top == nil {
		top = []daily.LBRow{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"game": g, "date": date, "top": top})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	g, err := gameParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown_game")
		return
	}
	pid := s.playerID(w, r)
	hist, err := s.results.History(r.Context(), pid, g)
	if err != nil {
		log.Error().Err(err).Msg("history query")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	buckets := 0
	if g == daily.GameWordle {
		buckets = s.cfg.MaxGuesses
	}
	writeJSON(w, http.StatusOK, stats.Compute(hist, buckets, s.now()))
}

// finishedDaily is shared by both games: it records res once and forgets the live
// session so the next /new call reports played.
func (s *Server) finishedDaily(req *http.Request, res daily.Result, id string) bool {
	if err := s.results.InsertResult(req.Context(), res); err != nil {
		log.Warn().Err(err).Str("gameId", id).Str("game", res.Game).Msg("record daily result")
		return false
	}
	s.mu.Lock()
	delete(s.dailyGames, dailyKey(res.PlayerID, res.Game, res.Date))
	s.mu.Unlock()
	log.Info().Str("player", res.PlayerID).Str("game", res.Game).Str("date", res.Date).Bool("won", res.Won).Int("score", res.Score).Msg("daily result recorded")
	return true
}

// elapsedMs is the play time since start, in milliseconds.
func (s *Server) elapsedMs(start time.Time) int {
	return int(s.now().Sub(start).Milliseconds())
}
