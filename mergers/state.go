package mergers

import (
	"errors"

	"golang.org/x/exp/rand"
)

// ErrInvalidMove 非法操作：状态不会有任何改动，传输层据此拒绝广播
var ErrInvalidMove = errors.New("invalid move")

// Phase 游戏阶段
type Phase string

const (
	PhaseBuilding             Phase = "buildingPhase"
	PhaseChooseSurvivingChain Phase = "chooseSurvivingChainPhase"
	PhaseChooseChainToMerge   Phase = "chooseChainToMergePhase"
	PhaseMerger               Phase = "mergerPhase"
	PhaseGameOver             Phase = "gameOverPhase"
)

// Stage 建设阶段里的小步骤（每个玩家回合内依次推进）
type Stage string

const (
	StagePlaceHotel      Stage = "placeHotelStage"
	StageChooseNewChain  Stage = "chooseNewChainStage"
	StageBuyStock        Stage = "buyStockStage"
	StageDeclareGameOver Stage = "declareGameOverStage"
	StageDrawHotels      Stage = "drawHotelsStage"
)

const (
	startingMoney   = 6000
	stocksPerChain  = 25
	rackSize        = 6
	buyLimitPerTurn = 3
)

// Player 玩家资产：现金 + 各品牌持股（手牌由棋盘上的 DrawnByPlayer 派生）
type Player struct {
	ID     string        `json:"id"`
	Money  int           `json:"money"`
	Stocks map[Chain]int `json:"stocks"`
}

// SwapAndSell 并购清算时一个玩家提交的换股/卖股数量（记录的是实际生效值）
type SwapAndSell struct {
	Swap int `json:"swap"`
	Sell int `json:"sell"`
}

// Merger 一次并购的临时记录，从多连锁相邻触发开始，到全部吸收完毕销毁
type Merger struct {
	SurvivingChain Chain                  `json:"survivingChain,omitempty"`
	ChainToMerge   Chain                  `json:"chainToMerge,omitempty"`
	MergingChains  []Chain                `json:"mergingChains"`
	TriggeredBy    string                 `json:"triggeredBy"` // 放下触发牌的玩家，整个并购期间不变
	StockCounts    map[string]int         `json:"stockCounts,omitempty"`
	Bonuses        map[string]int         `json:"bonuses,omitempty"`
	SwapAndSells   map[string]SwapAndSell `json:"swapAndSells,omitempty"` // 兼作"该玩家已表态"的标记
}

// Score 终局排名中的一项
type Score struct {
	ID     string `json:"id"`
	Money  int    `json:"money"`
	Winner bool   `json:"winner"`
}

// FinalMerger 终局时每个在场连锁的红利结算快照（仅供展示）
type FinalMerger struct {
	Chain       Chain          `json:"chain"`
	StockCounts map[string]int `json:"stockCounts"`
	Bonuses     map[string]int `json:"bonuses"`
}

// GameOver 终局记录，创建后不再变化
type GameOver struct {
	DeclaredBy   string        `json:"declaredBy"`
	Winner       string        `json:"winner,omitempty"`
	Winners      []string      `json:"winners,omitempty"`
	Scores       []Score       `json:"scores"`
	FinalMergers []FinalMerger `json:"finalMergers"`
}

// Game 一局游戏的完整状态。所有操作都是 (状态, 参数) -> 新状态 | ErrInvalidMove，
// 非法操作保证不产生任何改动。
type Game struct {
	Board           *Board             `json:"board"`
	Players         map[string]*Player `json:"players"`
	PlayOrder       []string           `json:"playOrder"`
	AvailableStocks map[Chain]int      `json:"availableStocks"`

	Phase        Phase  `json:"phase"`
	Stage        Stage  `json:"stage,omitempty"`
	ActivePlayer string `json:"activePlayer"`

	LastPlacedHotel string    `json:"lastPlacedHotel,omitempty"`
	LastMove        string    `json:"lastMove"`
	Merger          *Merger   `json:"merger,omitempty"`
	GameOver        *GameOver `json:"gameOver,omitempty"`

	// 随机源：只存种子和已消耗次数，反序列化后可精确重放
	RandSeed uint64 `json:"randSeed"`
	RandUses uint64 `json:"randUses"`

	rng *rand.Rand
}

// randUint64 消耗一次注入的随机源（惰性初始化，恢复状态时重放已消耗的次数）
func (g *Game) randUint64() uint64 {
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(g.RandSeed))
		for i := uint64(0); i < g.RandUses; i++ {
			g.rng.Uint64()
		}
	}
	g.RandUses++
	return g.rng.Uint64()
}

// randIntn 每次调用固定消耗一个随机数，保证重放一致
func (g *Game) randIntn(n int) int {
	return int(g.randUint64() % uint64(n))
}

// playOrderIndex 玩家在座次中的位置，未知玩家返回 -1
func (g *Game) playOrderIndex(playerID string) int {
	for i, id := range g.PlayOrder {
		if id == playerID {
			return i
		}
	}
	return -1
}

// isActive 是否轮到该玩家行动
func (g *Game) isActive(playerID string) bool {
	return g.ActivePlayer != "" && g.ActivePlayer == playerID
}

// IsOver 游戏是否已进入终局（之后不再接受任何操作）
func (g *Game) IsOver() bool {
	return g.GameOver != nil
}

// PlayerRack 玩家当前手牌 ID 列表
func (g *Game) PlayerRack(playerID string) []string {
	var ids []string
	for _, h := range g.Board.PlayerHotels(playerID) {
		ids = append(ids, h.ID)
	}
	return ids
}
