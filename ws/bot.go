package ws

import (
	"fmt"
	"strings"

	"go-mergers/dto"
	"go-mergers/logger"
	"go-mergers/mergers"

	"github.com/gorilla/websocket"
)

const botIDPrefix = "bot-"

// 一次落库最多连续代打的步数，防御状态机异常时空转
const maxBotMovesPerFlush = 64

func isBotID(playerID string) bool {
	return strings.HasPrefix(playerID, botIDPrefix)
}

// handleAddBotMessage 开局前往房间加一个机器人占座，人满即开局
func handleAddBotMessage(conn *websocket.Conn, roomID, playerID string, msgMap map[string]interface{}) {
	info, err := GetRoomInfo(roomID)
	if err != nil {
		logger.L.Errorf("❌ 获取房间信息失败: %v", err)
		return
	}
	if info.RoomStatus {
		sendInvalidMove(conn, mergers.ErrInvalidMove)
		return
	}

	roomLock.Lock()
	if len(rooms[roomID]) >= info.MaxPlayers {
		roomLock.Unlock()
		sendInvalidMove(conn, mergers.ErrInvalidMove)
		return
	}
	botID := fmt.Sprintf("%s%d", botIDPrefix, len(rooms[roomID])+1)
	rooms[roomID] = append(rooms[roomID], dto.PlayerConn{PlayerID: botID, Online: true})
	count := len(rooms[roomID])
	roomLock.Unlock()

	logger.L.Infof("🤖 玩家 %s 给房间 %s 添加机器人 %s（%d/%d）", playerID, roomID, botID, count, info.MaxPlayers)
	if count == info.MaxPlayers {
		if err := startGameIfNeeded(roomID); err != nil {
			logger.L.Errorf("❌ 开局失败: %v", err)
			return
		}
	}
	broadcastToRoom(roomID)
}

// runBotTurns 轮到机器人时连续代打，直到轮到真人或终局。调用方必须持有 gameLock。
func runBotTurns(roomID string, game *mergers.Game) {
	for i := 0; i < maxBotMovesPerFlush; i++ {
		if game.IsOver() || !isBotID(game.ActivePlayer) {
			return
		}
		botID := game.ActivePlayer
		if err := playBotMove(game, botID); err != nil {
			logger.L.Errorf("❌ 机器人 %s 行动失败 room=%s: %v", botID, roomID, err)
			return
		}
		logger.L.Infof("🤖 %s", game.LastMove)
		if err := SetGameState(roomID, game); err != nil {
			logger.L.Errorf("❌ 保存对局状态失败 room=%s: %v", roomID, err)
			return
		}
	}
	logger.L.Warnf("⚠️ 机器人连续行动超过 %d 步，暂停代打 room=%s", maxBotMovesPerFlush, roomID)
}

// playBotMove 按当前阶段给机器人挑一个必然合法的操作
func playBotMove(g *mergers.Game, botID string) error {
	switch g.Phase {
	case mergers.PhaseBuilding:
		switch g.Stage {
		case mergers.StagePlaceHotel:
			return g.PlaceHotel(botID, pickBotTile(g, botID))
		case mergers.StageChooseNewChain:
			return g.ChooseNewChain(botID, pickBotNewChain(g))
		case mergers.StageBuyStock:
			return g.BuyStock(botID, pickBotOrder(g))
		case mergers.StageDeclareGameOver:
			return g.DeclareGameOver(botID, true)
		case mergers.StageDrawHotels:
			return g.DrawHotels(botID)
		}
	case mergers.PhaseChooseSurvivingChain:
		// 队首必然在并列最大之列
		return g.ChooseSurvivingChain(botID, g.Merger.MergingChains[0])
	case mergers.PhaseChooseChainToMerge:
		return g.ChooseChainToMerge(botID, g.Merger.MergingChains[0])
	case mergers.PhaseMerger:
		// 全部卖掉换现金
		return g.SwapAndSellStock(botID, 0, g.Players[botID].Stocks[g.Merger.ChainToMerge])
	}
	return fmt.Errorf("机器人无法处理阶段 %s/%s", g.Phase, g.Stage)
}

// pickBotTile 优先放挨着已有牌的手牌（能并入或建连锁），没有就放第一张可放的，全不可放则过
func pickBotTile(g *mergers.Game, botID string) string {
	var fallback string
	for _, id := range g.PlayerRack(botID) {
		h := g.Board.Hotel(id)
		if h == nil || g.Board.IsUnplayable(h) {
			continue
		}
		if len(g.Board.AdjacentHotels(h)) > 0 {
			return id
		}
		if fallback == "" {
			fallback = id
		}
	}
	return fallback
}

// 建新连锁的品牌优先级：高档在前，股价加成高的品牌更值钱
var botChainPriority = []mergers.Chain{
	mergers.ChainContinental, mergers.ChainImperial,
	mergers.ChainAmerican, mergers.ChainFestival, mergers.ChainWorldwide,
	mergers.ChainTower, mergers.ChainLuxor,
}

// pickBotNewChain 按优先级选第一个还没上盘的品牌
func pickBotNewChain(g *mergers.Game) mergers.Chain {
	for _, chain := range botChainPriority {
		if g.Board.SizeOfChain(chain) == 0 {
			return chain
		}
	}
	return ""
}

// pickBotOrder 买最便宜的在场连锁，额度内能买多少买多少（买不起会被自动截断）
func pickBotOrder(g *mergers.Game) map[mergers.Chain]int {
	var cheapest mergers.Chain
	best := 0
	for _, chain := range g.Board.ChainsOnBoard() {
		price, ok := g.Board.PriceOfStock(chain)
		if !ok {
			continue
		}
		if cheapest == "" || price < best {
			cheapest, best = chain, price
		}
	}
	if cheapest == "" {
		return nil
	}
	return map[mergers.Chain]int{cheapest: 3}
}
