package trivia

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
	ws "github.com/gokatarajesh/trivia-api/pkg/http/ws"
)

// QuizQuestionPayload is the server reply to a next_question frame.
type QuizQuestionPayload struct {
	Question  *Question `json:"question"`
	Exhausted bool      `json:"exhausted"`
}

// HandleWebSocket upgrades GET /ws/quizzes. Every next_question frame carries
// the full quiz request, so the connection itself holds no round state.
func (h *HTTPHandlers) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	logger := logging.FromContextOr(r.Context(), h.logger)
	ctx := logging.IntoContext(context.WithoutCancel(r.Context()), logger)

	wsConn := ws.NewConnection(conn, logger)
	go wsConn.WritePump()

	wsConn.ReadPump(func(msg ws.Message) error {
		return h.handleMessage(ctx, wsConn, msg)
	})

	wsConn.Close()
	<-wsConn.Done()
}

func (h *HTTPHandlers) handleMessage(ctx context.Context, conn *ws.Connection, msg ws.Message) error {
	switch msg.Type {
	case ws.TypeNextQuestion:
		return h.handleNextQuestion(ctx, conn, msg)
	case ws.TypePing:
		return h.send(conn, ws.TypePong, msg.RequestID, nil)
	case "":
		return h.sendError(conn, msg.RequestID, &Error{Code: httperrors.ErrCodeInvalidPayload, Message: "Frame is not a valid message"})
	default:
		return h.sendError(conn, msg.RequestID, &Error{Code: httperrors.ErrCodeUnknownMessageType, Message: fmt.Sprintf("Unknown message type: %s", msg.Type)})
	}
}

func (h *HTTPHandlers) handleNextQuestion(ctx context.Context, conn *ws.Connection, msg ws.Message) error {
	var req QuizRequest
	if err := DecodeJSON(bytes.NewReader(msg.Payload), &req); err != nil {
		return h.sendError(conn, msg.RequestID, Classify(err))
	}

	result, err := h.service.NextQuestion(ctx, req)
	if err != nil {
		return h.sendError(conn, msg.RequestID, Classify(err))
	}

	return h.send(conn, ws.TypeQuizQuestion, msg.RequestID, QuizQuestionPayload{
		Question:  result.Question,
		Exhausted: result.Exhausted,
	})
}

func (h *HTTPHandlers) send(conn *ws.Connection, msgType, requestID string, payload interface{}) error {
	out, err := ws.NewMessage(msgType, requestID, payload)
	if err != nil {
		return err
	}
	return conn.Send(out)
}

func (h *HTTPHandlers) sendError(conn *ws.Connection, requestID string, e *Error) error {
	return h.send(conn, ws.TypeError, requestID, ws.ErrorPayload{
		Code:    e.Code,
		Message: e.Message,
		Field:   e.Field,
	})
}
