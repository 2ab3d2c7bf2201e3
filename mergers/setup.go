package mergers

import "fmt"

// NewGame 初始化一局游戏：建棋盘、发起始资金、完成开局随机抽牌和首张放置，
// 并按"最靠左上的开局牌"规则确定先手。随机源由 seed 注入，同一 seed 必定同局。
func NewGame(playerIDs []string, seed uint64) (*Game, error) {
	if len(playerIDs) < 2 {
		return nil, fmt.Errorf("至少需要2名玩家，当前 %d 名", len(playerIDs))
	}

	g := &Game{
		Board:           NewDefaultBoard(),
		Players:         make(map[string]*Player, len(playerIDs)),
		PlayOrder:       append([]string(nil), playerIDs...),
		AvailableStocks: make(map[Chain]int, len(Chains)),
		RandSeed:        seed,
	}
	for _, chain := range Chains {
		g.AvailableStocks[chain] = stocksPerChain
	}
	for _, id := range playerIDs {
		stocks := make(map[Chain]int, len(Chains))
		for _, chain := range Chains {
			stocks[chain] = 0
		}
		g.Players[id] = &Player{ID: id, Money: startingMoney, Stocks: stocks}
	}

	// 开局：每人随机抽1张直接放上棋盘，再补满手牌
	for _, id := range g.PlayOrder {
		first := g.assignRandomHotel(id)
		if first != nil {
			first.HasBeenPlaced = true
		}
		for i := 0; i < rackSize; i++ {
			g.assignRandomHotel(id)
		}
	}

	g.enterBuildingPhase()
	return g, nil
}

// assignRandomHotel 从未抽取、当前可放置的牌池里随机抽一张给玩家
func (g *Game) assignRandomHotel(playerID string) *Hotel {
	var undrawn []*Hotel
	for _, h := range g.Board.AllHotels() {
		if h.DrawnByPlayer == "" && !h.HasBeenPlaced && !h.HasBeenRemoved && !g.Board.IsUnplayable(h) {
			undrawn = append(undrawn, h)
		}
	}
	if len(undrawn) == 0 {
		return nil
	}
	hotel := undrawn[g.randIntn(len(undrawn))]
	hotel.DrawnByPlayer = playerID
	return hotel
}

// enterBuildingPhase 进入建设阶段。并购返场时由 resumeBuildingAfterMerger 处理，
// 这里只处理开局/正常轮转：先手是开局牌最靠左上的玩家。
func (g *Game) enterBuildingPhase() {
	g.Phase = PhaseBuilding
	g.Stage = StagePlaceHotel
	if top := g.Board.TopLeftMostPlacedHotel(); top != nil && top.DrawnByPlayer != "" {
		g.ActivePlayer = top.DrawnByPlayer
	} else if len(g.PlayOrder) > 0 {
		g.ActivePlayer = g.PlayOrder[0]
	}
}
