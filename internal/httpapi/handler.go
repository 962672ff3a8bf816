// Package httpapi exposes the game actions as JSON endpoints, one request
// per turn.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/samdwyer/dungeoncrawl/internal/errors"
	"github.com/samdwyer/dungeoncrawl/internal/game"
	"github.com/samdwyer/dungeoncrawl/internal/storage"
)

const maxBodyBytes = 1 << 16

// Game is the action surface the handlers drive.
type Game interface {
	Create(ctx context.Context, req game.CreateRequest) (game.Snapshot, error)
	Move(ctx context.Context, id, direction string) (game.MoveOutcome, error)
	Fight(ctx context.Context, id, action string) (game.FightOutcome, error)
	UseItem(ctx context.Context, id, item string) (game.UseOutcome, error)
	Equip(ctx context.Context, id, item string) (game.EquipOutcome, error)
	Respawn(ctx context.Context, id string) (game.RespawnOutcome, error)
	Status(ctx context.Context, id string) (game.Snapshot, error)
	RenderMap(ctx context.Context, id string) (string, error)
	Leaderboard(ctx context.Context) ([]storage.Leader, error)
}

var _ Game = (*game.Service)(nil)

// Handler serves the game endpoints.
type Handler struct {
	game Game
	mux  *http.ServeMux
}

// New builds the route table. A positive timeout bounds each request.
func New(g Game, timeout time.Duration) http.Handler {
	h := &Handler{game: g, mux: http.NewServeMux()}

	h.mux.HandleFunc("POST /start_game", h.startGame)
	h.mux.HandleFunc("POST /move", h.move)
	h.mux.HandleFunc("POST /fight", h.fight)
	h.mux.HandleFunc("GET /status", h.status)
	h.mux.HandleFunc("POST /use_item", h.useItem)
	h.mux.HandleFunc("POST /equip", h.equip)
	h.mux.HandleFunc("POST /respawn", h.respawn)
	h.mux.HandleFunc("GET /map", h.renderMap)
	h.mux.HandleFunc("GET /leaderboard", h.leaderboard)

	if timeout > 0 {
		return http.TimeoutHandler(h.mux, timeout, `{"ok":false,"error":"request timed out","kind":"INTERNAL"}`)
	}
	return h.mux
}

type startRequest struct {
	Name        string `json:"name"`
	DungeonSize *int   `json:"dungeon_size"`
}

type actionRequest struct {
	PlayerID  string `json:"player_id"`
	Direction string `json:"direction"`
	Action    string `json:"action"`
	Item      string `json:"item"`
}

func (h *Handler) startGame(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := decode(r, &req); err != nil {
		writeError(w, "start_game", "", err)
		return
	}
	snap, err := h.game.Create(r.Context(), game.CreateRequest{Name: req.Name, DungeonSize: req.DungeonSize})
	if err != nil {
		writeError(w, "start_game", "", err)
		return
	}
	writeJSON(w, http.StatusCreated, struct {
		OK     bool          `json:"ok"`
		Player game.Snapshot `json:"player"`
	}{true, snap})
}

func (h *Handler) move(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if err := decode(r, &req); err != nil {
		writeError(w, "move", "", err)
		return
	}
	out, err := h.game.Move(r.Context(), req.PlayerID, req.Direction)
	if err != nil {
		writeError(w, "move", req.PlayerID, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		OK bool `json:"ok"`
		game.MoveOutcome
	}{true, out})
}

func (h *Handler) fight(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if err := decode(r, &req); err != nil {
		writeError(w, "fight", "", err)
		return
	}
	action := req.Action
	if strings.TrimSpace(action) == "" {
		action = "attack"
	}
	out, err := h.game.Fight(r.Context(), req.PlayerID, action)
	if err != nil {
		writeError(w, "fight", req.PlayerID, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		OK     bool              `json:"ok"`
		Result game.FightOutcome `json:"result"`
	}{true, out})
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("player_id")
	snap, err := h.game.Status(r.Context(), id)
	if err != nil {
		writeError(w, "status", id, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		OK     bool          `json:"ok"`
		Status game.Snapshot `json:"status"`
	}{true, snap})
}

func (h *Handler) useItem(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if err := decode(r, &req); err != nil {
		writeError(w, "use_item", "", err)
		return
	}
	out, err := h.game.UseItem(r.Context(), req.PlayerID, req.Item)
	if err != nil {
		writeError(w, "use_item", req.PlayerID, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		OK bool `json:"ok"`
		game.UseOutcome
	}{true, out})
}

func (h *Handler) equip(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if err := decode(r, &req); err != nil {
		writeError(w, "equip", "", err)
		return
	}
	out, err := h.game.Equip(r.Context(), req.PlayerID, req.Item)
	if err != nil {
		writeError(w, "equip", req.PlayerID, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		OK bool `json:"ok"`
		game.EquipOutcome
	}{true, out})
}

func (h *Handler) respawn(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if err := decode(r, &req); err != nil {
		writeError(w, "respawn", "", err)
		return
	}
	out, err := h.game.Respawn(r.Context(), req.PlayerID)
	if err != nil {
		writeError(w, "respawn", req.PlayerID, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		OK bool `json:"ok"`
		game.RespawnOutcome
	}{true, out})
}

func (h *Handler) renderMap(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("player_id")
	grid, err := h.game.RenderMap(r.Context(), id)
	if err != nil {
		writeError(w, "map", id, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		OK  bool   `json:"ok"`
		Map string `json:"map"`
	}{true, grid})
}

func (h *Handler) leaderboard(w http.ResponseWriter, r *http.Request) {
	leaders, err := h.game.Leaderboard(r.Context())
	if err != nil {
		writeError(w, "leaderboard", "", err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		OK      bool             `json:"ok"`
		Leaders []storage.Leader `json:"leaders"`
	}{true, leaders})
}

// decode reads a JSON body into v. An empty body leaves v zeroed.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return apperrors.InvalidInput("invalid JSON body")
	}
	return nil
}

type errorBody struct {
	OK    bool           `json:"ok"`
	Error string         `json:"error"`
	Kind  apperrors.Code `json:"kind"`
}

func writeError(w http.ResponseWriter, action, id string, err error) {
	code := apperrors.CodeOf(err)
	if code == apperrors.CodeInternal {
		log.Printf("%s %s: %v", action, id, err)
	}
	writeJSON(w, code.HTTPStatus(), errorBody{Error: apperrors.Message(err), Kind: code})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}
