package ws

import (
	"fmt"

	"go-mergers/dto"
	"go-mergers/logger"
	"go-mergers/mergers"

	"github.com/gorilla/websocket"
)

// validateAndJoinRoom 校验并加入房间，已在房间里的玩家视为重连（替换连接对象）
func validateAndJoinRoom(roomID, playerID string, conn *websocket.Conn) (bool, int) {
	info, err := GetRoomInfo(roomID)
	if err != nil {
		logger.L.Errorf("❌ 获取房间信息失败: %v", err)
		return false, 0
	}

	roomLock.Lock()
	defer roomLock.Unlock()

	players := rooms[roomID]
	for i := range players {
		if players[i].PlayerID == playerID {
			players[i].Conn = conn
			players[i].Online = true
			rooms[roomID] = players
			logger.L.Infof("🔁 玩家 %s 重连房间 %s", playerID, roomID)
			return true, info.MaxPlayers
		}
	}
	if len(players) >= info.MaxPlayers {
		return false, info.MaxPlayers
	}
	rooms[roomID] = append(players, dto.PlayerConn{PlayerID: playerID, Conn: conn, Online: true})
	return true, info.MaxPlayers
}

// cleanupOnDisconnect 断线后只标记离线，保留座位等待重连
func cleanupOnDisconnect(roomID, playerID string, conn *websocket.Conn) {
	roomLock.Lock()
	players := rooms[roomID]
	for i := range players {
		if players[i].PlayerID == playerID && players[i].Conn == conn {
			players[i].Conn = nil
			players[i].Online = false
		}
	}
	rooms[roomID] = players
	roomLock.Unlock()

	logger.L.Infof("玩家 %s 离开房间 %s", playerID, roomID)
	broadcastToRoom(roomID)
}

func getRoomPlayerCount(roomID string) int {
	roomLock.Lock()
	defer roomLock.Unlock()
	return len(rooms[roomID])
}

// RegisterRoom 建房时登记一个空房间
func RegisterRoom(roomID string) {
	roomLock.Lock()
	defer roomLock.Unlock()
	rooms[roomID] = []dto.PlayerConn{}
}

// UnregisterRoom 删房时移除内存里的连接记录
func UnregisterRoom(roomID string) {
	roomLock.Lock()
	defer roomLock.Unlock()
	delete(rooms, roomID)
}

// RoomPlayerLists 各房间成员快照，供 HTTP 层查询（不暴露连接对象）
func RoomPlayerLists() map[string][]dto.RoomPlayer {
	roomLock.Lock()
	defer roomLock.Unlock()
	out := make(map[string][]dto.RoomPlayer, len(rooms))
	for roomID, players := range rooms {
		list := make([]dto.RoomPlayer, 0, len(players))
		for _, p := range players {
			list = append(list, dto.RoomPlayer{PlayerID: p.PlayerID, Online: p.Online})
		}
		out[roomID] = list
	}
	return out
}

// OnlinePlayerCount 全站在线真人数量（机器人座位不算）
func OnlinePlayerCount() int {
	roomLock.Lock()
	defer roomLock.Unlock()
	count := 0
	for _, players := range rooms {
		for _, p := range players {
			if p.Online && p.Conn != nil {
				count++
			}
		}
	}
	return count
}

// startGameIfNeeded 人满开局。对局已在进行时（重连触发）直接返回。
func startGameIfNeeded(roomID string) error {
	gameLock.Lock()
	defer gameLock.Unlock()

	info, err := GetRoomInfo(roomID)
	if err != nil {
		return err
	}
	if info.RoomStatus {
		return nil
	}

	roomLock.Lock()
	playerIDs := make([]string, 0, len(rooms[roomID]))
	for _, p := range rooms[roomID] {
		playerIDs = append(playerIDs, p.PlayerID)
	}
	roomLock.Unlock()

	game, err := mergers.NewGame(playerIDs, info.Seed)
	if err != nil {
		return fmt.Errorf("创建对局失败: %w", err)
	}
	if err := SetGameState(roomID, game); err != nil {
		return err
	}
	if err := SetRoomStatus(roomID, true); err != nil {
		return err
	}
	logger.L.Infof("✅ 房间 %s 开局，玩家座次: %v", roomID, playerIDs)

	// 先手可能是机器人
	runBotTurns(roomID, game)
	return nil
}
