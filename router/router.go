package router

import (
	"go-mergers/controller"
	"go-mergers/middleware"
	"go-mergers/ws"

	"github.com/gin-gonic/gin"
)

func InitRouter(r *gin.Engine) {
	// 房间接口路由
	api := r.Group("/room")
	{
		api.POST("/create", controller.CreateRoom)
		api.GET("/list", controller.GetRoomList)
		api.GET("/online", controller.GetOnlinePlayer)
		api.GET("/:roomID", controller.GetRoomInfo)
		// 删房是破坏性操作，需要管理口令
		api.POST("/delete", middleware.AdminAuth(), controller.DeleteRoom)
	}

	// WebSocket 路由
	r.GET("/ws", ws.HandleWebSocket)
}
