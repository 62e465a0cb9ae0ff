package http

import (
	"net/http"

	"nim-relay/internal/room"

	"github.com/gin-gonic/gin"
)

// RoomLister is the read-only view of the room registry used by the listing endpoint.
type RoomLister interface {
	ListRooms() []room.Summary
}

// @Summary List games
// @Description Every live room with its player count (host plus opponent; spectators are not counted)
// @Tags Game
// @Produce json
// @Success 200 {array} GameSummary
// @Router /games [get]
func ListGamesHandler(rooms RoomLister) gin.HandlerFunc {
	return func(c *gin.Context) {
		summaries := rooms.ListRooms()
		out := make([]GameSummary, 0, len(summaries))
		for _, s := range summaries {
			out = append(out, newGameSummary(s))
		}
		c.JSON(http.StatusOK, out)
	}
}

// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} PingResponse
// @Router /ping [get]
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{Message: "pong"})
}
