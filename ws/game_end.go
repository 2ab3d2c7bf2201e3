package ws

import (
	"go-mergers/logger"
	"go-mergers/mergers"
	"go-mergers/repository"
)

// handleGameEnd 终局收尾：归档战绩、关闭房间的进行中标记。
// 对局状态保留在 Redis 里，供前端展示结算画面和 restart_game 复用房间。
func handleGameEnd(roomID string, game *mergers.Game) {
	if game.GameOver == nil {
		return
	}
	if err := repository.SaveGameResult(roomID, game.GameOver); err != nil {
		logger.L.Errorf("❌ 归档战绩失败 room=%s: %v", roomID, err)
	}
	if err := SetRoomStatus(roomID, false); err != nil {
		logger.L.Errorf("❌ 更新房间状态失败 room=%s: %v", roomID, err)
	}
	logger.L.Infof("🏁 房间 %s 对局结束，宣告者=%s", roomID, game.GameOver.DeclaredBy)
}
