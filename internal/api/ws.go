package api

import (
	"time"

	"github.com/go-logr/logr"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"dashboard/internal/models"
)

const (
	writeTimeout = 10 * time.Second
	pingInterval = 60 * time.Second
)

var upgrader = websocket.Upgrader{}

// message is one server to client frame. Selection frames from the client are
// answered with a page frame, or an error frame when the selection cannot be read.
type message struct {
	Session string       `json:"session"`
	Page    *models.Page `json:"page,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// Stream re-renders the page for every selection the client sends.
func (h *Handler) Stream(c echo.Context) error {
	wc, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.log.Error(err, "websocket upgrade failed")
		return nil
	}
	s := &session{
		id:   uuid.NewString(),
		wc:   wc,
		send: make(chan message, 8),
		done: make(chan struct{}),
		log:  h.log.WithName("ws"),
	}
	s.log.V(1).Info("session opened", "session", s.id)

	t := time.NewTicker(pingInterval)
	defer t.Stop()
	go s.write(t)

	err = s.read(func(sel models.Selection) message {
		page := h.dash.Load().Render(sel)
		return message{Page: &page}
	})
	close(s.send)
	if err != nil {
		s.log.Error(err, "websocket read failed", "session", s.id)
	}
	s.log.V(1).Info("session closed", "session", s.id)
	return nil
}

type session struct {
	id   string
	wc   *websocket.Conn
	send chan message
	done chan struct{} // closed when the writer exits
	log  logr.Logger
}

func (s *session) read(handle func(models.Selection) message) error {
	for {
		op, data, err := s.wc.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
				return err
			}
			return nil // client disconnected
		}
		if op != websocket.TextMessage {
			continue
		}
		var sel models.Selection
		var reply message
		if err := json.Unmarshal(data, &sel); err != nil {
			reply = message{Error: "malformed selection: " + err.Error()}
		} else {
			reply = handle(sel)
		}
		reply.Session = s.id
		select {
		case s.send <- reply:
		case <-s.done:
			return nil
		}
	}
}

func (s *session) write(t *time.Ticker) {
	defer close(s.done)
	defer s.wc.Close()
Outer:
	for {
		select {
		case msg, ok := <-s.send:
			if !ok {
				break Outer
			}
			b, err := json.Marshal(msg)
			if err != nil {
				s.log.Error(err, "encode failed", "session", s.id)
				continue
			}
			s.wc.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := s.wc.WriteMessage(websocket.TextMessage, b); err != nil {
				return
			}
		case <-t.C:
			s.wc.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := s.wc.WriteMessage(websocket.PingMessage, []byte{}); err != nil {
				return
			}
		}
	}
	s.wc.SetWriteDeadline(time.Now().Add(writeTimeout))
	s.wc.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
