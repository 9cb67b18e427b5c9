// internal/httpserver/routes_game.go
//
// Word game endpoints:
//   - POST /game/new           → start a free game (random answer unless one is given)
//   - POST /game/guess         → submit a guess
//   - POST /game/hints         → progressive hints; marks the session assisted
//   - GET  /game/{id}          → public view of a session
//   - GET  /game/{id}/keyboard → best-known status per letter
//   - GET  /game/{id}/share    → emoji share text for a finished game
//
// Daily and challenge games are played through the same /game endpoints;
// they differ only in how they are created (routes_daily.go, routes_challenge.go).

package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/friendle/internal/daily"
	"github.com/robalobadob/friendle/internal/game"
	"github.com/robalobadob/friendle/internal/store"
	"github.com/robalobadob/friendle/internal/words"
)

const (
	modeFree      = "free"
	modeDaily     = "daily"
	modeChallenge = "challenge"
)

// wordleEntry is a live word game plus the bookkeeping the HTTP layer needs.
type wordleEntry struct {
	mu       sync.Mutex
	session  *game.Session
	mode     string
	puzzle   string // label used in the share header
	date     string // daily only
	playerID string
	from     string // challenge only
	hints    []string
	started  time.Time
	recorded bool
}

type newGameReq struct {
	Answer string   `json:"answer"`
	Limit  int      `json:"limit"`
	Hints  []string `json:"hints"`
}

type newGameRes struct {
	GameID string `json:"gameId,omitempty"`
	Mode   string `json:"mode"`
	Puzzle string `json:"puzzle,omitempty"`
	Date   string `json:"date,omitempty"`
	From   string `json:"from,omitempty"`
	Limit  int    `json:"limit"`
	Length int    `json:"length"`
	Played bool   `json:"played,omitempty"`
}

type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}

type guessRes struct {
	Statuses  []game.LetterStatus `json:"statuses"`
	State     game.State          `json:"state"`
	Remaining int                 `json:"remaining"`
	Guesses   int                 `json:"guesses"`
}

type gameView struct {
	GameID    string       `json:"gameId"`
	Mode      string       `json:"mode"`
	Puzzle    string       `json:"puzzle,omitempty"`
	State     game.State   `json:"state"`
	Limit     int          `json:"limit"`
	Length    int          `json:"length"`
	Guesses   []game.Guess `json:"guesses"`
	Remaining int          `json:"remaining"`
	Assisted  bool         `json:"assisted"`
	Answer    string       `json:"answer,omitempty"`
}

func (s *Server) mountGame(r chi.Router) {
	r.Route("/game", func(r chi.Router) {
		r.Post("/new", s.handleNewGame)
		r.Post("/guess", s.handleGuess)
		r.Post("/hints", s.handleHints)
		r.Get("/{id}", s.handleGetGame)
		r.Get("/{id}/keyboard", s.handleKeyboard)
		r.Get("/{id}/share", s.handleShare)
	})
}

// handleNewGame creates a free game. An explicit answer is used as-is; otherwise
// a random answer is drawn from the loaded list.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if r.ContentLength != 0 {
		if err := decode(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_json")
			return
		}
	}
	answer := req.Answer
	if answer == "" {
		answer = words.RandomAnswer()
	}
	limit := req.Limit
	if limit <= 0 {
		limit = s.cfg.MaxGuesses
	}

	pid := s.playerID(w, r)
	e, err := s.startWordle(r, answer, limit, modeFree, func(e *wordleEntry) {
		e.playerID = pid
		if len(req.Hints) > 0 {
			e.hints = req.Hints
		}
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_target")
		return
	}
	writeJSON(w, http.StatusOK, e.newGameRes())
}

// startWordle builds a session for answer, lets setup fill in the entry, then stores it.
func (s *Server) startWordle(r *http.Request, answer string, limit int, mode string, setup func(*wordleEntry)) (*wordleEntry, error) {
	sess, err := game.New(answer, limit)
	if err != nil {
		return nil, err
	}
	e := &wordleEntry{
		session: sess,
		mode:    mode,
		hints:   defaultHints(sess.Target),
		started: s.now(),
	}
	if setup != nil {
		setup(e)
	}
	if err := s.games.Save(r.Context(), sess.ID, e); err != nil {
		return nil, err
	}
	log.Debug().Str("gameId", sess.ID).Str("mode", mode).Int("limit", sess.Limit).Msg("game started")
	return e, nil
}

func (e *wordleEntry) newGameRes() newGameRes {
	return newGameRes{
		GameID: e.session.ID,
		Mode:   e.mode,
		Puzzle: e.puzzle,
		Date:   e.date,
		From:   e.from,
		Limit:  e.session.Limit,
		Length: utf8.RuneCountInString(e.session.Target),
	}
}

// handleGuess applies one guess.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := decode(r, &req); err != nil || req.GameID == "" {
		writeError(w, http.StatusBadRequest, "bad_request")
		return
	}
	e, ok := s.lookupGame(w, r, req.GameID)
	if !ok {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if s.notInWordList(e.session, req.Guess) {
		writeError(w, http.StatusUnprocessableEntity, "not_in_word_list")
		return
	}

	statuses, err := e.session.SubmitGuess(req.Guess)
	switch {
	case errors.Is(err, game.ErrGameAlreadyOver):
		writeError(w, http.StatusConflict, "game_over")
		return
	case errors.Is(err, game.ErrInvalidGuessLength):
		writeError(w, http.StatusBadRequest, "invalid_guess_length")
		return
	case errors.Is(err, game.ErrInvalidGuess):
		writeError(w, http.StatusBadRequest, "invalid_guess")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal")
		return
	}

	if e.session.State.Terminal() {
		s.recordWordle(r, e)
	}

	writeJSON(w, http.StatusOK, guessRes{
		Statuses:  statuses,
		State:     e.session.State,
		Remaining: e.session.Remaining(),
		Guesses:   len(e.session.History),
	})
}

// notInWordList reports whether strict mode should reject guess. Only guesses
// that would otherwise be accepted are checked, and the answer itself always passes.
func (s *Server) notInWordList(sess *game.Session, guess string) bool {
	if !s.cfg.StrictWords || sess.State.Terminal() {
		return false
	}
	g := game.Normalize(guess)
	if _, err := game.Evaluate(g, sess.Target); err != nil || g == sess.Target {
		return false
	}
	return !words.IsAllowed(g)
}

// recordWordle stores a finished daily game once. Failures are logged, not surfaced:
// the player has already seen the result.
func (s *Server) recordWordle(r *http.Request, e *wordleEntry) {
	if e.mode != modeDaily || e.recorded {
		return
	}
	res := daily.Result{
		PlayerID:  e.playerID,
		Game:      daily.GameWordle,
		Date:      e.date,
		Puzzle:    e.puzzle,
		Won:       e.session.State == game.StateWon,
		Score:     len(e.session.History),
		Assisted:  e.session.Assisted,
		ElapsedMs: s.elapsedMs(e.started),
	}
	e.recorded = s.finishedDaily(r, res, e.session.ID)
}

func (s *Server) handleHints(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GameID string `json:"gameId"`
	}
	if err := decode(r, &req); err != nil || req.GameID == "" {
		writeError(w, http.StatusBadRequest, "bad_request")
		return
	}
	e, ok := s.lookupGame(w, r, req.GameID)
	if !ok {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	hints := e.session.Hints(e.hints)
	writeJSON(w, http.StatusOK, map[string]any{"hints": hints, "assisted": e.session.Assisted})
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	e, ok := s.lookupGame(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	sess := e.session
	v := gameView{
		GameID:    sess.ID,
		Mode:      e.mode,
		Puzzle:    e.puzzle,
		State:     sess.State,
		Limit:     sess.Limit,
		Length:    utf8.RuneCountInString(sess.Target),
		Guesses:   append([]game.Guess{}, sess.History...),
		Remaining: sess.Remaining(),
		Assisted:  sess.Assisted,
	}
	if sess.State.Terminal() {
		v.Answer = sess.Target
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleKeyboard(w http.ResponseWriter, r *http.Request) {
	e, ok := s.lookupGame(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	writeJSON(w, http.StatusOK, e.session.Keyboard())
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	e, ok := s.lookupGame(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	text, err := e.session.ShareText(e.puzzle)
	if errors.Is(err, game.ErrGameInProgress) {
		writeError(w, http.StatusConflict, "game_in_progress")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"text": text})
}

// lookupGame fetches a live session or writes a 404.
func (s *Server) lookupGame(w http.ResponseWriter, r *http.Request, id string) (*wordleEntry, bool) {
	e, err := s.games.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "game_not_found")
		return nil, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal")
		return nil, false
	}
	return e, true
}

// defaultHints are served when the client supplied none.
func defaultHints(target string) []string {
	first, _ := utf8.DecodeRuneInString(target)
	last, _ := utf8.DecodeLastRuneInString(target)
	hints := []string{fmt.Sprintf("The word starts with %c.", first)}

	seen := map[rune]bool{}
	double := false
	for _, c := range target {
		double = double || seen[c]
		seen[c] = true
	}
	if double {
		hints = append(hints, "The word has a repeated letter.")
	} else {
		hints = append(hints, "Every letter in the word is different.")
	}
	return append(hints, fmt.Sprintf("The word ends with %c.", last))
}
