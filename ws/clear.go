package ws

import (
	"time"

	"go-mergers/logger"
	"go-mergers/repository"
)

// ScheduleDailyRoomReset 每天凌晨 4 点清理已结束且无人在线的房间
func ScheduleDailyRoomReset() {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), 4, 0, 0, 0, now.Location())
		if !next.After(now) {
			next = next.Add(24 * time.Hour)
		}
		time.Sleep(next.Sub(now))
		cleanupFinishedRooms()
	}
}

func cleanupFinishedRooms() {
	gameLock.Lock()
	defer gameLock.Unlock()

	roomLock.Lock()
	roomIDs := make([]string, 0, len(rooms))
	for roomID := range rooms {
		roomIDs = append(roomIDs, roomID)
	}
	roomLock.Unlock()

	cleaned := 0
	for _, roomID := range roomIDs {
		if anyoneOnline(roomID) {
			continue
		}
		game, err := GetGameState(roomID)
		if err == nil && !game.IsOver() {
			continue
		}
		if err := repository.Rdb.Del(repository.Ctx,
			gameStateKey(roomID), roomInfoKey(roomID)).Err(); err != nil {
			logger.L.Errorf("❌ 清理房间 %s 失败: %v", roomID, err)
			continue
		}
		roomLock.Lock()
		delete(rooms, roomID)
		roomLock.Unlock()
		cleaned++
	}
	logger.L.Infof("🧹 定时清理完成，共清理 %d 个房间", cleaned)
}

// anyoneOnline 是否还有真人在线（机器人座位不算）
func anyoneOnline(roomID string) bool {
	roomLock.Lock()
	defer roomLock.Unlock()
	for _, p := range rooms[roomID] {
		if p.Online && p.Conn != nil {
			return true
		}
	}
	return false
}
