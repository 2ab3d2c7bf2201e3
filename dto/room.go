package dto

import "github.com/gorilla/websocket"

type CreateRoomRequest struct {
	MaxPlayers int    `json:"maxPlayers" binding:"required"`
	UserID     string `json:"userID"`
}

type CreateRoomResponse struct {
	RoomID string `json:"room_id" binding:"required"`
}

type DeleteRoomRequest struct {
	RoomID string `json:"roomID" binding:"required"`
}

type RoomPlayer struct {
	PlayerID string `json:"playerID"`
	Online   bool   `json:"online"`
}

type RoomInfo struct {
	RoomID     string       `json:"roomID"`
	UserID     string       `json:"userID"`
	MaxPlayers int          `json:"maxPlayers"`
	Status     bool         `json:"status"`
	RoomPlayer []RoomPlayer `json:"roomPlayer"`
}

type GetRoomList struct {
	Rooms []RoomInfo `json:"rooms"`
}

// PlayerConn 玩家连接对象
type PlayerConn struct {
	PlayerID string          // 玩家ID
	Conn     *websocket.Conn // 连接对象
	Online   bool
}
