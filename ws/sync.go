package ws

import (
	"go-mergers/logger"
	"go-mergers/mergers"

	"github.com/gorilla/websocket"
)

type syncMessage struct {
	Type     string        `json:"type"`
	PlayerID string        `json:"playerId"`
	Rack     []string      `json:"rack"`
	State    *mergers.Game `json:"state"`
}

type memberMessage struct {
	Type    string   `json:"type"`
	Players []string `json:"players"`
}

// broadcastToRoom 向房间内每个在线玩家推送完整对局状态，手牌只发给本人
func broadcastToRoom(roomID string) {
	game, err := GetGameState(roomID)
	if err != nil {
		// 对局还没开始，只同步成员列表
		broadcastRoomMembers(roomID)
		return
	}

	roomLock.Lock()
	defer roomLock.Unlock()
	for _, p := range rooms[roomID] {
		if !p.Online || p.Conn == nil {
			continue
		}
		msg := syncMessage{
			Type:     "sync",
			PlayerID: p.PlayerID,
			Rack:     game.PlayerRack(p.PlayerID),
			State:    game,
		}
		if err := p.Conn.WriteJSON(msg); err != nil {
			logger.L.Warnf("⚠️ 推送状态失败 player=%s: %v", p.PlayerID, err)
		}
	}
}

// broadcastRoomMembers 推送当前房间成员（等待开局阶段用）
func broadcastRoomMembers(roomID string) {
	roomLock.Lock()
	defer roomLock.Unlock()

	players := make([]string, 0, len(rooms[roomID]))
	for _, p := range rooms[roomID] {
		players = append(players, p.PlayerID)
	}
	msg := memberMessage{Type: "room_members", Players: players}
	for _, p := range rooms[roomID] {
		if !p.Online || p.Conn == nil {
			continue
		}
		if err := p.Conn.WriteJSON(msg); err != nil {
			logger.L.Warnf("⚠️ 推送成员列表失败 player=%s: %v", p.PlayerID, err)
		}
	}
}

// sendInvalidMove 非法操作只回发给操作者本人，不打扰其他玩家
func sendInvalidMove(conn *websocket.Conn, err error) {
	msg := map[string]string{
		"type":    "invalid_move",
		"message": err.Error(),
	}
	if werr := conn.WriteJSON(msg); werr != nil {
		logger.L.Warnf("⚠️ 回发非法操作提示失败: %v", werr)
	}
}

// relayToRoom 原样转发一条消息给房间内所有在线玩家（语音等与对局状态无关的消息）
func relayToRoom(roomID string, msg interface{}) {
	roomLock.Lock()
	defer roomLock.Unlock()
	for _, p := range rooms[roomID] {
		if !p.Online || p.Conn == nil {
			continue
		}
		if err := p.Conn.WriteJSON(msg); err != nil {
			logger.L.Warnf("⚠️ 转发消息失败 player=%s: %v", p.PlayerID, err)
		}
	}
}
