package ws

import (
	"time"

	"go-mergers/logger"
	"go-mergers/mergers"

	"github.com/gorilla/websocket"
	"golang.org/x/exp/rand"
)

// handleRestartGameMessage 终局后在同一房间、同一批玩家下换新种子重开一局
func handleRestartGameMessage(conn *websocket.Conn, roomID, playerID string, msgMap map[string]interface{}) {
	gameLock.Lock()
	defer gameLock.Unlock()

	game, err := GetGameState(roomID)
	if err != nil {
		logger.L.Errorf("❌ 获取对局状态失败 room=%s: %v", roomID, err)
		return
	}
	if !game.IsOver() {
		sendInvalidMove(conn, mergers.ErrInvalidMove)
		return
	}

	roomLock.Lock()
	playerIDs := make([]string, 0, len(rooms[roomID]))
	for _, p := range rooms[roomID] {
		playerIDs = append(playerIDs, p.PlayerID)
	}
	roomLock.Unlock()

	seed := newSeed()
	newGame, err := mergers.NewGame(playerIDs, seed)
	if err != nil {
		logger.L.Errorf("❌ 重开对局失败 room=%s: %v", roomID, err)
		return
	}
	if err := SetGameState(roomID, newGame); err != nil {
		logger.L.Errorf("❌ 保存对局状态失败 room=%s: %v", roomID, err)
		return
	}
	if err := SetRoomSeed(roomID, seed); err != nil {
		logger.L.Errorf("❌ 更新房间种子失败 room=%s: %v", roomID, err)
	}
	if err := SetRoomStatus(roomID, true); err != nil {
		logger.L.Errorf("❌ 更新房间状态失败 room=%s: %v", roomID, err)
	}
	logger.L.Infof("🔄 房间 %s 重开一局，发起者=%s", roomID, playerID)
	runBotTurns(roomID, newGame)
	broadcastToRoom(roomID)
}

// newSeed 重开局时生成新的随机种子
func newSeed() uint64 {
	return rand.New(rand.NewSource(uint64(time.Now().UnixNano()))).Uint64()
}
