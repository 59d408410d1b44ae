package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/yeremiapane/restaurant-floor/display"
	"github.com/yeremiapane/restaurant-floor/services"
	"github.com/yeremiapane/restaurant-floor/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type FloorController struct {
	Engine  *services.Engine
	Hub     *display.Hub
	Clashes *services.ClashLog
}

func NewFloorController(engine *services.Engine, hub *display.Hub, clashes *services.ClashLog) *FloorController {
	return &FloorController{Engine: engine, Hub: hub, Clashes: clashes}
}

// FloorSocket streams floor events to a display. The first message is a
// snapshot of every table; later messages are engine events.
func (fc *FloorController) FloorSocket(c *gin.Context) {
	staffID := c.GetUint("staff_id")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("Websocket upgrade failed: %v", err)
		return
	}

	// Registering on the loop guarantees no event slips in before the snapshot.
	err = fc.Engine.Do(func() error {
		fc.Hub.Register(ws, staffID)
		return fc.Hub.Send(ws, display.EventSnapshot, fc.Engine.Registry.Views())
	})
	if err != nil {
		utils.ErrorLogger.Printf("Error sending floor snapshot: %v", err)
		fc.Hub.Unregister(ws)
		return
	}

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}
	fc.Hub.Unregister(ws)
}

// GetClashes lists the most recent booking clashes, newest first.
func (fc *FloorController) GetClashes(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Recent clashes", fc.Clashes.Recent())
}
