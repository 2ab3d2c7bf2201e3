package entities

// RoomInfo 房间元信息（Redis Hash 存储）
type RoomInfo struct {
	RoomStatus bool   `json:"roomStatus"` // true = 对局进行中
	MaxPlayers int    `json:"maxPlayers"`
	UserID     string `json:"userID"` // 房主
	Seed       uint64 `json:"seed"`   // 本局随机种子，建房时生成
}
