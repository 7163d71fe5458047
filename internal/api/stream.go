package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/TBKT-SYSTEM/pokemon-battle/internal/constants"
	"github.com/TBKT-SYSTEM/pokemon-battle/internal/game"
	"github.com/TBKT-SYSTEM/pokemon-battle/internal/logging"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// streamCommand is a client message on the snapshot stream.
type streamCommand struct {
	Type       string `json:"type"` // "start" | "move" | "reset"
	CreatureID uint   `json:"creature_id"`
	MoveIndex  int    `json:"move_index"`
}

// Stream upgrades to a websocket that pushes every snapshot as JSON and
// accepts start/move/reset commands.
func (h *BattleHandler) Stream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.Error(constants.ErrWebsocketUpgrade, err, nil)
		return
	}
	snaps, cancel := h.battle.Subscribe()
	errs := make(chan string, 4)
	done := make(chan struct{})
	go h.writePump(conn, snaps, errs, done)
	h.readPump(conn, errs)
	close(done)
	cancel()
}

func (h *BattleHandler) readPump(conn *websocket.Conn, errs chan<- string) {
	conn.SetReadLimit(4096)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var cmd streamCommand
		if err := json.Unmarshal(message, &cmd); err != nil {
			continue
		}
		switch cmd.Type {
		case "start":
			if _, err := h.battle.StartSession(cmd.CreatureID); err != nil {
				_, msg := startErrorStatus(err)
				select {
				case errs <- msg:
				default:
				}
			}
		case "move":
			h.battle.SubmitPlayerMove(cmd.MoveIndex)
		case "reset":
			h.battle.ResetToSelection()
		}
	}
}

// writePump is the only writer on conn.
func (h *BattleHandler) writePump(conn *websocket.Conn, snaps <-chan game.Snapshot, errs <-chan string, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()
	for {
		select {
		case snap, ok := <-snaps:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(snap); err != nil {
				return
			}
		case msg := <-errs:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(gin.H{constants.JSONKeyError: msg}); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
