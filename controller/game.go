package controller

import (
	"net/http"

	"go-mergers/ws"

	"github.com/gin-gonic/gin"
)

// GetRoomInfo 查询单个房间的元信息和对局进度（只读，不走 WebSocket）
func GetRoomInfo(c *gin.Context) {
	roomID := c.Param("roomID")
	info, err := ws.GetRoomInfo(roomID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "房间不存在"})
		return
	}

	data := gin.H{
		"roomID":     roomID,
		"userID":     info.UserID,
		"maxPlayers": info.MaxPlayers,
		"status":     info.RoomStatus,
	}
	// 已开局的房间附带对局进度
	if game, err := ws.GetGameState(roomID); err == nil {
		data["phase"] = game.Phase
		data["stage"] = game.Stage
		data["activePlayer"] = game.ActivePlayer
		data["lastMove"] = game.LastMove
		if game.GameOver != nil {
			data["gameOver"] = game.GameOver
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"data":        data,
	})
}
