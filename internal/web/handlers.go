package web

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/jaminalder/tictactoe-history/internal/app"
	"github.com/jaminalder/tictactoe-history/internal/domain"
)

type handlers struct {
	svc       *app.Service
	tpl       *templates
	heartbeat time.Duration
}

func gameDataFor(gs app.GameState) gameData {
	return gameData{ID: gs.ID, View: domain.Render(gs.Game)}
}

// renderGame is the broadcast renderer: the #game fragment for gs.
func (h *handlers) renderGame(gs app.GameState) []byte {
	b, err := renderTemplate(h.tpl.board, "", gameDataFor(gs))
	if err != nil {
		return nil
	}
	return b
}

func writeHTML(w http.ResponseWriter, r *http.Request, b []byte, err error) {
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("render failed")
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	b, err := renderTemplate(h.tpl.index, "base", nil)
	writeHTML(w, r, b, err)
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"ok":true}`))
}

func (h *handlers) create(w http.ResponseWriter, r *http.Request) {
	gs, err := h.svc.CreateGame()
	if err != nil {
		http.Error(w, "failed to create", http.StatusInternalServerError)
		return
	}
	hlog.FromRequest(r).Info().Str("game", gs.ID).Msg("game created")
	http.Redirect(w, r, "/game/"+gs.ID, http.StatusSeeOther)
}

func (h *handlers) view(w http.ResponseWriter, r *http.Request) {
	gs, ok := h.svc.Get(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	page, err := renderTemplate(h.tpl.game, "base", gameDataFor(*gs))
	writeHTML(w, r, page, err)
}

func (h *handlers) play(w http.ResponseWriter, r *http.Request) {
	cell, ok := formInt(w, r, "cell")
	if !ok {
		return
	}
	gs, err := h.svc.Play(chi.URLParam(r, "id"), cell)
	h.respond(w, r, gs, err)
}

func (h *handlers) jump(w http.ResponseWriter, r *http.Request) {
	move, ok := formInt(w, r, "move")
	if !ok {
		return
	}
	gs, err := h.svc.JumpTo(chi.URLParam(r, "id"), move)
	h.respond(w, r, gs, err)
}

func (h *handlers) order(w http.ResponseWriter, r *http.Request) {
	gs, err := h.svc.ToggleOrder(chi.URLParam(r, "id"))
	h.respond(w, r, gs, err)
}

// respond writes the #game fragment after a transition. Rejected moves are
// not reported to the player: the unchanged fragment is the answer.
func (h *handlers) respond(w http.ResponseWriter, r *http.Request, gs *app.GameState, err error) {
	if errors.Is(err, app.ErrNotFound) || gs == nil {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		hlog.FromRequest(r).Debug().Err(err).Str("game", gs.ID).Msg("click ignored")
	}
	b, rerr := renderTemplate(h.tpl.board, "", gameDataFor(*gs))
	writeHTML(w, r, b, rerr)
}

func formInt(w http.ResponseWriter, r *http.Request, key string) (int, bool) {
	_ = r.ParseForm()
	n, err := strconv.Atoi(r.Form.Get(key))
	if err != nil {
		http.Error(w, "invalid "+key, http.StatusBadRequest)
		return 0, false
	}
	return n, true
}

func (h *handlers) events(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.svc.Get(id); !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")
	// Non-EventSource requests only get the headers
	if r.Header.Get("Accept") != "text/event-stream" {
		w.WriteHeader(http.StatusOK)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		w.WriteHeader(http.StatusOK)
		return
	}
	ctx := r.Context()
	ch, unsub, err := h.svc.Subscribe(ctx, id)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer unsub()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()
	w.WriteHeader(http.StatusOK)
	flusher.Flush()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = io.WriteString(w, ": ping\n\n")
			flusher.Flush()
		case b, ok := <-ch:
			if !ok {
				return
			}
			writeEvent(w, "game", b)
			flusher.Flush()
		}
	}
}

// writeEvent frames payload as one SSE event; every line gets its own data field.
func writeEvent(w io.Writer, name string, payload []byte) {
	_, _ = fmt.Fprintf(w, "event: %s\n", name)
	for _, line := range bytes.Split(bytes.TrimSpace(payload), []byte("\n")) {
		_, _ = fmt.Fprintf(w, "data: %s\n", line)
	}
	_, _ = io.WriteString(w, "\n")
}
