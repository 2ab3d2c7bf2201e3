package ws

import (
	"errors"

	"go-mergers/dto"
	"go-mergers/logger"
	"go-mergers/mergers"

	"github.com/gorilla/websocket"
)

// applyMove 所有对局操作的统一入口：取状态、执行、落库、广播。
// 非法操作不落库不广播，只给操作者回一条 invalid_move。
func applyMove(conn *websocket.Conn, roomID, playerID string, apply func(*mergers.Game) error) {
	gameLock.Lock()
	defer gameLock.Unlock()

	game, err := GetGameState(roomID)
	if err != nil {
		logger.L.Errorf("❌ 获取对局状态失败 room=%s: %v", roomID, err)
		return
	}
	if err := apply(game); err != nil {
		if errors.Is(err, mergers.ErrInvalidMove) {
			logger.L.Infof("玩家 %s 非法操作: %v", playerID, err)
			sendInvalidMove(conn, err)
			return
		}
		logger.L.Errorf("❌ 执行操作失败 room=%s player=%s: %v", roomID, playerID, err)
		return
	}
	if err := SetGameState(roomID, game); err != nil {
		logger.L.Errorf("❌ 保存对局状态失败 room=%s: %v", roomID, err)
		return
	}
	runBotTurns(roomID, game)
	if game.IsOver() {
		handleGameEnd(roomID, game)
	}
	broadcastToRoom(roomID)
}

func handlePlaceTileMessage(conn *websocket.Conn, roomID, playerID string, msgMap map[string]interface{}) {
	var payload dto.PlaceTilePayload
	if err := decodePayload(msgMap, &payload); err != nil {
		logger.L.Warnf("⚠️ place_tile payload 解析失败: %v", err)
		return
	}
	applyMove(conn, roomID, playerID, func(g *mergers.Game) error {
		return g.PlaceHotel(playerID, payload.Tile)
	})
}

func handleChooseNewChainMessage(conn *websocket.Conn, roomID, playerID string, msgMap map[string]interface{}) {
	var payload dto.ChooseChainPayload
	if err := decodePayload(msgMap, &payload); err != nil {
		logger.L.Warnf("⚠️ choose_new_chain payload 解析失败: %v", err)
		return
	}
	applyMove(conn, roomID, playerID, func(g *mergers.Game) error {
		return g.ChooseNewChain(playerID, mergers.Chain(payload.Chain))
	})
}

func handleBuyStockMessage(conn *websocket.Conn, roomID, playerID string, msgMap map[string]interface{}) {
	var payload dto.BuyStockPayload
	if err := decodePayload(msgMap, &payload); err != nil {
		logger.L.Warnf("⚠️ buy_stock payload 解析失败: %v", err)
		return
	}
	order := make(map[mergers.Chain]int, len(payload.Order))
	for chain, num := range payload.Order {
		order[mergers.Chain(chain)] = num
	}
	applyMove(conn, roomID, playerID, func(g *mergers.Game) error {
		return g.BuyStock(playerID, order)
	})
}

func handleChooseSurvivingChainMessage(conn *websocket.Conn, roomID, playerID string, msgMap map[string]interface{}) {
	var payload dto.ChooseChainPayload
	if err := decodePayload(msgMap, &payload); err != nil {
		logger.L.Warnf("⚠️ choose_surviving_chain payload 解析失败: %v", err)
		return
	}
	applyMove(conn, roomID, playerID, func(g *mergers.Game) error {
		return g.ChooseSurvivingChain(playerID, mergers.Chain(payload.Chain))
	})
}

func handleChooseChainToMergeMessage(conn *websocket.Conn, roomID, playerID string, msgMap map[string]interface{}) {
	var payload dto.ChooseChainPayload
	if err := decodePayload(msgMap, &payload); err != nil {
		logger.L.Warnf("⚠️ choose_chain_to_merge payload 解析失败: %v", err)
		return
	}
	applyMove(conn, roomID, playerID, func(g *mergers.Game) error {
		return g.ChooseChainToMerge(playerID, mergers.Chain(payload.Chain))
	})
}

func handleSwapAndSellMessage(conn *websocket.Conn, roomID, playerID string, msgMap map[string]interface{}) {
	var payload dto.SwapAndSellPayload
	if err := decodePayload(msgMap, &payload); err != nil {
		logger.L.Warnf("⚠️ swap_and_sell payload 解析失败: %v", err)
		return
	}
	applyMove(conn, roomID, playerID, func(g *mergers.Game) error {
		return g.SwapAndSellStock(playerID, payload.Swap, payload.Sell)
	})
}

func handleDrawHotelsMessage(conn *websocket.Conn, roomID, playerID string, msgMap map[string]interface{}) {
	applyMove(conn, roomID, playerID, func(g *mergers.Game) error {
		return g.DrawHotels(playerID)
	})
}

func handleDeclareGameOverMessage(conn *websocket.Conn, roomID, playerID string, msgMap map[string]interface{}) {
	var payload dto.DeclareGameOverPayload
	if err := decodePayload(msgMap, &payload); err != nil {
		logger.L.Warnf("⚠️ declare_game_over payload 解析失败: %v", err)
		return
	}
	applyMove(conn, roomID, playerID, func(g *mergers.Game) error {
		return g.DeclareGameOver(playerID, payload.GameOver)
	})
}

// handlePlayAudioMessage 语音消息不经过规则核心，直接转发全房间
func handlePlayAudioMessage(conn *websocket.Conn, roomID, playerID string, msgMap map[string]interface{}) {
	var payload dto.AudioPayload
	if err := decodePayload(msgMap, &payload); err != nil {
		logger.L.Warnf("⚠️ play_audio payload 解析失败: %v", err)
		return
	}
	relayToRoom(roomID, map[string]string{
		"type":     "play_audio",
		"playerId": playerID,
		"audio":    payload.Audio,
	})
}
