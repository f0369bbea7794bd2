package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"pta-server/internal/auth"
	"pta-server/internal/service"
	"pta-server/shared/models"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// Time allowed to read the next message from the peer.
	readWait = 5 * time.Minute
	// Maximum message size allowed from the peer.
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler streams encounter snapshots to table clients. Every
// frame received from the client is answered with the game's current
// active encounter, so a map view can poll at its own pace.
type WebSocketHandler struct {
	settings service.SettingService
	guard    *auth.Guard
	logger   zerolog.Logger
}

func NewWebSocketHandler(settings service.SettingService, guard *auth.Guard, logger zerolog.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		settings: settings,
		guard:    guard,
		logger:   logger.With().Str("component", "WebSocketHandler").Logger(),
	}
}

// ServeWS upgrades the request and runs the snapshot loop. Credentials
// travel in query parameters because browsers cannot set headers on
// websocket dials.
func (h *WebSocketHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	gameID, err := uuid.Parse(r.URL.Query().Get("gameId"))
	if err != nil {
		http.Error(w, "malformed gameId parameter", http.StatusBadRequest)
		return
	}
	userID, err := uuid.Parse(r.URL.Query().Get("userId"))
	if err != nil {
		http.Error(w, "malformed userId parameter", http.StatusBadRequest)
		return
	}
	token := r.URL.Query().Get("token")
	sessionSecret := r.URL.Query().Get("auth")

	if err := h.guard.Authenticate(r.Context(), userID, token, sessionSecret); err != nil {
		h.logger.Warn().Err(err).Str("userID", userID.String()).Msg("Websocket auth failed")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error().Err(err).Str("userID", userID.String()).Msg("Failed to upgrade connection")
		return
	}

	h.logger.Info().
		Str("userID", userID.String()).
		Str("gameID", gameID.String()).
		Msg("WebSocket connection established")

	go h.snapshotLoop(conn, gameID, userID)
}

func (h *WebSocketHandler) snapshotLoop(conn *websocket.Conn, gameID, userID uuid.UUID) {
	logger := h.logger.With().Str("userID", userID.String()).Str("gameID", gameID.String()).Logger()
	defer func() {
		_ = conn.Close()
		logger.Info().Msg("snapshot loop finished")
	}()

	conn.SetReadLimit(maxMessageSize)

	for {
		_ = conn.SetReadDeadline(time.Now().Add(readWait))
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn().Err(err).Msg("Unexpected websocket close")
			}
			return
		}

		payload, err := h.activeSnapshot(gameID)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to build encounter snapshot")
		}
		if payload == nil {
			payload = []byte(`{"isActive":false}`)
		}

		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			logger.Warn().Err(err).Msg("Failed to write snapshot")
			return
		}
	}
}

func (h *WebSocketHandler) activeSnapshot(gameID uuid.UUID) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	setting, err := h.settings.GetActiveSetting(ctx, gameID)
	if err != nil {
		// No active encounter is a normal state for the map view.
		if errors.Is(err, models.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return json.Marshal(setting)
}
