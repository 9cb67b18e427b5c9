// internal/httpserver/routes_connections.go
//
// Connections endpoints:
//   - POST /connections/new        → start a board ({daily:true} for today's puzzle)
//   - POST /connections/guess      → submit four words
//   - GET  /connections/{id}       → board view; all groups revealed once finished
//   - GET  /connections/{id}/share → colored-square share text
//
// The daily board walks the catalog in order, one puzzle per day since the epoch.

package httpserver

import (
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/friendle/internal/connections"
	"github.com/robalobadob/friendle/internal/daily"
	"github.com/robalobadob/friendle/internal/game"
	"github.com/robalobadob/friendle/internal/store"
)

type connectionsEntry struct {
	mu       sync.Mutex
	session  *connections.Session
	mode     string
	puzzle   string // share label: puzzle number for daily, catalog ID otherwise
	date     string
	playerID string
	started  time.Time
	recorded bool
}

type newBoardReq struct {
	Daily    bool   `json:"daily"`
	PuzzleID string `json:"puzzleId"`
}

type boardView struct {
	GameID      string              `json:"gameId,omitempty"`
	Mode        string              `json:"mode"`
	Puzzle      string              `json:"puzzle,omitempty"`
	Date        string              `json:"date,omitempty"`
	Words       []string            `json:"words"`
	Solved      []connections.Group `json:"solved"`
	Mistakes    int                 `json:"mistakes"`
	MaxMistakes int                 `json:"maxMistakes"`
	State       game.State          `json:"state"`
	Unsolved    []connections.Group `json:"unsolved,omitempty"`
	Played      bool                `json:"played,omitempty"`
}

type boardGuessReq struct {
	GameID string   `json:"gameId"`
	Words  []string `json:"words"`
}

type boardGuessRes struct {
	connections.Result
	Mistakes     int        `json:"mistakes"`
	MistakesLeft int        `json:"mistakesLeft"`
	State        game.State `json:"state"`
	Words        []string   `json:"words"`
}

func (s *Server) mountConnections(r chi.Router) {
	r.Route("/connections", func(r chi.Router) {
		r.Post("/new", s.handleNewBoard)
		r.Post("/guess", s.handleBoardGuess)
		r.Get("/{id}", s.handleGetBoard)
		r.Get("/{id}/share", s.handleBoardShare)
	})
}

func (s *Server) handleNewBoard(w http.ResponseWriter, r *http.Request) {
	var req newBoardReq
	if r.ContentLength != 0 {
		if err := decode(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_json")
			return
		}
	}
	pid := s.playerID(w, r)

	if req.Daily {
		s.newDailyBoard(w, r, pid)
		return
	}

	var p connections.Puzzle
	if req.PuzzleID != "" {
		var ok bool
		if p, ok = s.catalog.Lookup(req.PuzzleID); !ok {
			writeError(w, http.StatusNotFound, "puzzle_not_found")
			return
		}
	} else {
		p = s.catalog.At(rand.Intn(s.catalog.Len()))
	}

	e, err := s.startBoard(r, p, &connectionsEntry{mode: modeFree, puzzle: p.ID, playerID: pid})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal")
		return
	}
	writeJSON(w, http.StatusOK, e.view())
}

// newDailyBoard mirrors handleDailyNew for the connections game.
func (s *Server) newDailyBoard(w http.ResponseWriter, r *http.Request, pid string) {
	now := s.now().UTC()
	date := daily.DateKey(now)
	n := daily.PuzzleNumber(now, s.cfg.PuzzleEpoch)
	puzzle := fmt.Sprint(n)

	if played, err := s.results.AlreadyPlayed(r.Context(), pid, daily.GameConnections, date); err != nil {
		log.Warn().Err(err).Str("player", pid).Msg("daily lookup")
	} else if played {
		writeJSON(w, http.StatusOK, boardView{Mode: modeDaily, Puzzle: puzzle, Date: date, Words: []string{}, Played: true})
		return
	}

	key := dailyKey(pid, daily.GameConnections, date)
	id, err := s.claimDaily(key, func(id string) bool {
		_, err := s.boards.Get(r.Context(), id)
		return err == nil
	}, func() (string, error) {
		e, err := s.startBoard(r, s.catalog.At(n-1), &connectionsEntry{mode: modeDaily, puzzle: puzzle, date: date, playerID: pid})
		if err != nil {
			return "", err
		}
		return e.session.ID, nil
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal")
		return
	}
	e, err := s.boards.Get(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal")
		return
	}
	e.mu.Lock()
	v := e.view()
	e.mu.Unlock()
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) startBoard(r *http.Request, p connections.Puzzle, e *connectionsEntry) (*connectionsEntry, error) {
	e.session = connections.NewSession(p, s.cfg.MaxMistakes)
	e.started = s.now()
	if err := s.boards.Save(r.Context(), e.session.ID, e); err != nil {
		return nil, err
	}
	log.Debug().Str("gameId", e.session.ID).Str("puzzle", p.ID).Str("mode", e.mode).Msg("board started")
	return e, nil
}

func (e *connectionsEntry) view() boardView {
	sess := e.session
	v := boardView{
		GameID:      sess.ID,
		Mode:        e.mode,
		Puzzle:      e.puzzle,
		Date:        e.date,
		Words:       sess.Remaining(),
		Solved:      sess.SolvedGroups(),
		Mistakes:    sess.Mistakes,
		MaxMistakes: sess.MaxMistakes,
		State:       sess.State,
	}
	if v.Words == nil {
		v.Words = []string{}
	}
	if sess.State.Terminal() {
		v.Unsolved = sess.Unsolved()
	}
	return v
}

func (s *Server) handleBoardGuess(w http.ResponseWriter, r *http.Request) {
	var req boardGuessReq
	if err := decode(r, &req); err != nil || req.GameID == "" {
		writeError(w, http.StatusBadRequest, "bad_request")
		return
	}
	e, ok := s.lookupBoard(w, r, req.GameID)
	if !ok {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	res, err := e.session.Submit(req.Words)
	switch {
	case errors.Is(err, game.ErrGameAlreadyOver):
		writeError(w, http.StatusConflict, "game_over")
		return
	case errors.Is(err, connections.ErrSelectionSize):
		writeError(w, http.StatusBadRequest, "invalid_selection")
		return
	case errors.Is(err, connections.ErrUnknownWord):
		writeError(w, http.StatusBadRequest, "unknown_word")
		return
	case errors.Is(err, connections.ErrDuplicateGuess):
		writeError(w, http.StatusConflict, "already_guessed")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal")
		return
	}

	sess := e.session
	if sess.State.Terminal() && e.mode == modeDaily && !e.recorded {
		e.recorded = s.finishedDaily(r, daily.Result{
			PlayerID:  e.playerID,
			Game:      daily.GameConnections,
			Date:      e.date,
			Puzzle:    e.puzzle,
			Won:       sess.State == game.StateWon,
			Score:     sess.Mistakes,
			ElapsedMs: s.elapsedMs(e.started),
		}, sess.ID)
	}

	words := sess.Remaining()
	if words == nil {
		words = []string{}
	}
	writeJSON(w, http.StatusOK, boardGuessRes{
		Result:       res,
		Mistakes:     sess.Mistakes,
		MistakesLeft: sess.MaxMistakes - sess.Mistakes,
		State:        sess.State,
		Words:        words,
	})
}

func (s *Server) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	e, ok := s.lookupBoard(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	writeJSON(w, http.StatusOK, e.view())
}

func (s *Server) handleBoardShare(w http.ResponseWriter, r *http.Request) {
	e, ok := s.lookupBoard(w, r, chi.URLParam(r, "id"))
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

func (s *Server) lookupBoard(w http.ResponseWriter, r *http.Request, id string) (*connectionsEntry, bool) {
	e, err := s.boards.Get(r.Context(), id)
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
