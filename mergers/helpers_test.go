package mergers

import "testing"

// newTestGame 构造一个进入建设阶段、轮到第一个玩家放牌的对局
func newTestGame(playerIDs ...string) *Game {
	g := &Game{
		Board:           NewDefaultBoard(),
		Players:         make(map[string]*Player, len(playerIDs)),
		PlayOrder:       append([]string(nil), playerIDs...),
		AvailableStocks: make(map[Chain]int, len(Chains)),
		Phase:           PhaseBuilding,
		Stage:           StagePlaceHotel,
		ActivePlayer:    playerIDs[0],
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
	return g
}

// placeChain 把一组牌直接放上棋盘并归入品牌（chain 为空表示散牌）
func placeChain(t *testing.T, b *Board, chain Chain, ids ...string) {
	t.Helper()
	for _, id := range ids {
		h := b.Hotel(id)
		if h == nil {
			t.Fatalf("牌 %s 不存在", id)
		}
		h.HasBeenPlaced = true
		h.Chain = chain
	}
}

// giveTile 把一张牌发到玩家手上
func giveTile(t *testing.T, b *Board, playerID, id string) {
	t.Helper()
	h := b.Hotel(id)
	if h == nil {
		t.Fatalf("牌 %s 不存在", id)
	}
	h.DrawnByPlayer = playerID
}
