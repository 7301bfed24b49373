package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/jxdata/portal/internal/middleware"
	"github.com/jxdata/portal/internal/response"
	"github.com/jxdata/portal/internal/service"
	ws "github.com/jxdata/portal/internal/websocket"
	"github.com/rs/zerolog"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler drives the quiz over a WebSocket so the page can advance without
// a full reload.
type WSHandler struct {
	quizService *service.QuizService
	log         zerolog.Logger
	upgrader    websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(quizService *service.QuizService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		quizService: quizService,
		log:         log.With().Str("component", "ws_handler").Logger(),
		upgrader:    buildUpgrader(allowedOrigins),
	}
}

// QuizStream godoc
// WS /ws/v1/quiz
// Sends the current state on connect, then one state event per action.
func (h *WSHandler) QuizStream(c *gin.Context) {
	visitorID := middleware.GetVisitorID(c)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Str("visitor_id", visitorID).Logger()
	wsLog.Debug().Msg("Visitor connected")

	ctx := c.Request.Context()

	h.sendState(ctx, conn, wsLog, visitorID)

	for {
		var msg ws.RequestPayload
		if err := ws.ReadJSON(conn, &msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			return
		}

		switch msg.Action {
		case ws.ActionState:
			h.sendState(ctx, conn, wsLog, visitorID)
		case ws.ActionAnswer:
			h.handleAnswer(ctx, conn, wsLog, visitorID, &msg)
		case ws.ActionReset:
			state, err := h.quizService.Reset(ctx, visitorID)
			h.reply(conn, wsLog, state, err)
		case ws.ActionPing:
			ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
		default:
			wsLog.Warn().Str("action", string(msg.Action)).Msg("Unknown action")
			ws.WriteError(conn, string(response.ErrUnsupportedAction), "unknown action: "+string(msg.Action))
		}
	}
}

func (h *WSHandler) handleAnswer(ctx context.Context, conn *websocket.Conn, wsLog zerolog.Logger, visitorID string, msg *ws.RequestPayload) {
	if msg.Option == nil {
		ws.WriteError(conn, string(response.ErrValidation), "option is required")
		return
	}

	state, err := h.quizService.Answer(ctx, visitorID, *msg.Option, msg.Step)
	h.reply(conn, wsLog, state, err)
}

func (h *WSHandler) sendState(ctx context.Context, conn *websocket.Conn, wsLog zerolog.Logger, visitorID string) {
	state, err := h.quizService.State(ctx, visitorID)
	h.reply(conn, wsLog, state, err)
}

// reply sends state, or the mapped error code when err is set.
func (h *WSHandler) reply(conn *websocket.Conn, wsLog zerolog.Logger, state *service.QuizState, err error) {
	if err != nil {
		status, code := quizErrorStatus(err)
		if status == http.StatusInternalServerError {
			wsLog.Error().Err(err).Msg("Quiz action failed")
		}
		ws.WriteError(conn, string(code), response.GetMessage(code))
		return
	}

	if err := ws.WriteState(conn, state); err != nil {
		wsLog.Debug().Err(err).Msg("Write failed")
	}
}
