package ws

import (
	"encoding/json"
	"net/http"
	"sync"

	"go-mergers/dto"
	"go-mergers/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// rooms 各房间的连接列表（按加入顺序，即对局座次），只能在持有 roomLock 时访问
var rooms = make(map[string][]dto.PlayerConn)
var roomLock sync.Mutex

// gameLock 保证同一时刻只有一个操作在读改写对局状态（规则核心要求单一写入者）
var gameLock sync.Mutex

type messageHandler func(conn *websocket.Conn, roomID, playerID string, msgMap map[string]interface{})

var messageHandlers = map[string]messageHandler{
	"place_tile":             handlePlaceTileMessage,
	"choose_new_chain":       handleChooseNewChainMessage,
	"buy_stock":              handleBuyStockMessage,
	"choose_surviving_chain": handleChooseSurvivingChainMessage,
	"choose_chain_to_merge":  handleChooseChainToMergeMessage,
	"swap_and_sell":          handleSwapAndSellMessage,
	"draw_hotels":            handleDrawHotelsMessage,
	"declare_game_over":      handleDeclareGameOverMessage,
	"play_audio":             handlePlayAudioMessage,
	"restart_game":           handleRestartGameMessage,
	"add_bot":                handleAddBotMessage,
}

// 将 HTTP 请求升级为 WebSocket 连接
func upgradeConnection(c *gin.Context) (*websocket.Conn, error) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.L.Errorf("WebSocket 升级失败: %v", err)
	}
	return conn, err
}

// 持续监听客户端消息并分发给对应的操作处理器
func listenAndDispatchMessages(conn *websocket.Conn, roomID, playerID string) {
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			logger.L.Infof("读取消息失败: %v", err)
			break
		}
		var msgMap map[string]interface{}
		if err := json.Unmarshal(msg, &msgMap); err != nil {
			logger.L.Warnf("消息解析失败: %v", err)
			continue
		}
		if msgType, ok := msgMap["type"].(string); ok {
			if handler, found := messageHandlers[msgType]; found {
				handler(conn, roomID, playerID, msgMap)
			} else {
				logger.L.Warnf("⚠️ 未知的消息类型: %s", msgType)
			}
		}
	}
}

// HandleWebSocket WebSocket 主入口（处理每个连接）
func HandleWebSocket(c *gin.Context) {
	conn, err := upgradeConnection(c)
	if err != nil {
		return
	}
	defer conn.Close()

	roomID := c.Query("roomID")
	if roomID == "" {
		logger.L.Warn("缺少 roomID")
		return
	}
	playerID := c.Query("userId")
	if playerID == "" {
		logger.L.Warn("缺少 userId")
		return
	}

	ok, maxPlayers := validateAndJoinRoom(roomID, playerID, conn)
	if !ok {
		conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"error","message":"房间已满"}`))
		return
	}
	defer cleanupOnDisconnect(roomID, playerID, conn)

	playerCount := getRoomPlayerCount(roomID)
	logger.L.Infof("玩家加入 room=%s，ID=%s，当前人数=%d/%d", roomID, playerID, playerCount, maxPlayers)

	// 人满开局（重连进来时对局已在进行，startGameIfNeeded 里会跳过）
	if playerCount == maxPlayers {
		if err := startGameIfNeeded(roomID); err != nil {
			logger.L.Errorf("❌ 开局失败: %v", err)
			return
		}
	}

	broadcastToRoom(roomID)
	listenAndDispatchMessages(conn, roomID, playerID)
}
