// Package server exposes the simulator over a websocket JSON protocol. Each
// connection owns one lesson session; commands are handled on the connection's
// read loop, which keeps the single-writer discipline the engine requires.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/hikari-lab/lessonsim/internal/config"
	"github.com/hikari-lab/lessonsim/internal/game"
	"github.com/hikari-lab/lessonsim/internal/game/card"
	"github.com/hikari-lab/lessonsim/internal/game/state"
)

// Command is one client request.
type Command struct {
	Type           string              `json:"type"`
	CardID         string              `json:"card_id,omitempty"`
	DrinkIndex     int                 `json:"drink_index,omitempty"`
	Status         *game.InitialStatus `json:"status,omitempty"`
	TurnAttributes []state.Attribute   `json:"turn_attributes,omitempty"`
	DeckIDs        []string            `json:"deck_ids,omitempty"`
	Drinks         []state.PDrink      `json:"drinks,omitempty"`
}

// Response is the reply to a command. State is the full snapshot after the
// transition; Error is set only for protocol-level failures, never for
// rejected plays (those are silent no-ops by engine contract).
type Response struct {
	Type      string           `json:"type"`
	SessionID string           `json:"session_id,omitempty"`
	State     *state.GameState `json:"state,omitempty"`
	Error     string           `json:"error,omitempty"`
}

// Server serves lesson sessions over websocket.
type Server struct {
	cfg      config.ServerConfig
	roster   []card.Card
	rosterByID map[string]card.Card
	engine   *game.Engine
	logger   *zap.Logger
	upgrader websocket.Upgrader
	httpSrv  *http.Server
}

// New creates a Server for the given card roster.
func New(cfg config.ServerConfig, roster []card.Card, logger *zap.Logger) *Server {
	byID := make(map[string]card.Card, len(roster))
	for _, c := range roster {
		byID[c.ID] = c
	}
	return &Server{
		cfg:        cfg,
		roster:     roster,
		rosterByID: byID,
		engine:     game.New(logger),
		logger:     logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Run listens until the server is shut down.
func (s *Server) Run() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	s.httpSrv = &http.Server{Addr: s.cfg.Address, Handler: mux}
	if s.logger != nil {
		s.logger.Info("simulation server listening", zap.String("address", s.cfg.Address))
	}
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// Shutdown stops the HTTP listener.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

// session is the per-connection lesson: one authoritative state value,
// replaced on every transition.
type session struct {
	id        string
	engine    *game.Engine
	state     *state.GameState
	turnAttrs []state.Attribute
	replay    *game.Replay
	roster    map[string]card.Card
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("websocket upgrade failed", zap.Error(err))
		}
		return
	}
	defer conn.Close()

	sess := &session{
		id:     uuid.NewString(),
		engine: s.engine,
		roster: s.rosterByID,
	}
	if s.logger != nil {
		s.logger.Info("session opened", zap.String("session_id", sess.id))
	}

	for {
		var cmd Command
		if err := conn.ReadJSON(&cmd); err != nil {
			if s.logger != nil {
				s.logger.Info("session closed", zap.String("session_id", sess.id))
			}
			return
		}

		resp := sess.apply(cmd)
		resp.SessionID = sess.id
		if err := conn.WriteJSON(resp); err != nil {
			if s.logger != nil {
				s.logger.Warn("write failed", zap.String("session_id", sess.id), zap.Error(err))
			}
			return
		}
	}
}

// apply routes one command against the session state. It is deliberately a
// pure method over the session so the protocol can be tested without a
// connection.
func (sess *session) apply(cmd Command) Response {
	switch cmd.Type {
	case "init":
		if cmd.Status == nil || len(cmd.TurnAttributes) == 0 {
			return Response{Type: "error", Error: "init requires status and turn_attributes"}
		}
		roster := make([]card.Card, 0, len(cmd.DeckIDs))
		for _, id := range cmd.DeckIDs {
			c, ok := sess.roster[id]
			if !ok {
				return Response{Type: "error", Error: fmt.Sprintf("unknown card id %q", id)}
			}
			roster = append(roster, c)
		}
		sess.turnAttrs = cmd.TurnAttributes
		sess.state = sess.engine.Initialize(*cmd.Status, cmd.TurnAttributes, roster, cmd.Drinks)
		sess.replay = game.NewReplay(sess.id)
		sess.replay.Record(sess.state)
		return Response{Type: "state", State: sess.state}

	case "play_card":
		if sess.state == nil {
			return Response{Type: "error", Error: "no lesson in progress"}
		}
		sess.state = sess.engine.PlayCard(sess.state, cmd.CardID)
		sess.replay.Record(sess.state)
		return Response{Type: "state", State: sess.state}

	case "end_turn":
		if sess.state == nil {
			return Response{Type: "error", Error: "no lesson in progress"}
		}
		sess.state = sess.engine.EndTurn(sess.state, sess.turnAttrs)
		sess.replay.Record(sess.state)
		return Response{Type: "state", State: sess.state}

	case "use_drink":
		if sess.state == nil {
			return Response{Type: "error", Error: "no lesson in progress"}
		}
		sess.state = sess.engine.UsePDrink(sess.state, cmd.DrinkIndex)
		sess.replay.Record(sess.state)
		return Response{Type: "state", State: sess.state}

	case "state":
		if sess.state == nil {
			return Response{Type: "error", Error: "no lesson in progress"}
		}
		return Response{Type: "state", State: sess.state}
	}

	return Response{Type: "error", Error: fmt.Sprintf("unknown command type %q", cmd.Type)}
}
