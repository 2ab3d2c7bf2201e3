package mergers

import (
	"fmt"
	"strings"
)

// PlaceHotel 放牌。id 为空表示"没有可放的牌，跳过"，只有手上确实没有可放牌时才合法。
// 放下后按相邻情况走：无相邻连锁但有相邻散牌则进入创建连锁步骤；
// 相邻一个连锁直接并入；相邻多个连锁触发并购。
func (g *Game) PlaceHotel(playerID, id string) error {
	if err := g.requireTurn(playerID, PhaseBuilding, StagePlaceHotel); err != nil {
		return err
	}

	if id == "" {
		for _, h := range g.Board.PlayerHotels(playerID) {
			if !g.Board.IsUnplayable(h) {
				return fmt.Errorf("玩家 %s 还有可放置的牌: %w", playerID, ErrInvalidMove)
			}
		}
		g.LastMove = fmt.Sprintf("Player %s doesn't have any playable hotels", playerID)
		g.Stage = StageBuyStock
		return nil
	}

	hotel := g.Board.Hotel(id)
	if hotel == nil {
		return fmt.Errorf("牌 %s 不存在: %w", id, ErrInvalidMove)
	}
	if hotel.DrawnByPlayer != playerID || hotel.HasBeenPlaced || hotel.HasBeenRemoved || g.Board.IsUnplayable(hotel) {
		return fmt.Errorf("牌 %s 当前不可放置: %w", id, ErrInvalidMove)
	}

	hotel.HasBeenPlaced = true
	g.LastPlacedHotel = id
	g.LastMove = fmt.Sprintf("Player %s plays %s", playerID, id)

	adjacent := g.Board.AdjacentHotels(hotel)
	adjacentChains := map[Chain]bool{}
	for _, h := range adjacent {
		if h.Chain != "" {
			adjacentChains[h.Chain] = true
		}
	}

	switch {
	case len(adjacent) > 0 && len(adjacentChains) == 0:
		g.Stage = StageChooseNewChain
	case len(adjacentChains) == 1:
		for chain := range adjacentChains {
			g.Board.AbsorbNewHotels(chain, id)
		}
		g.Stage = StageBuyStock
	case len(adjacentChains) > 1:
		chains := make([]Chain, 0, len(adjacentChains))
		for _, chain := range Chains { // 按固定品牌顺序收集，排序才有确定性
			if adjacentChains[chain] {
				chains = append(chains, chain)
			}
		}
		g.startMerger(chains, playerID)
	default:
		g.Stage = StageBuyStock
	}
	return nil
}

// ChooseNewChain 创建新连锁：必须选当前不在棋盘上的品牌，创始人得1股赠股（牌池有货时）
func (g *Game) ChooseNewChain(playerID string, chain Chain) error {
	if err := g.requireTurn(playerID, PhaseBuilding, StageChooseNewChain); err != nil {
		return err
	}
	if !IsValidChain(string(chain)) || g.Board.SizeOfChain(chain) > 0 {
		return fmt.Errorf("品牌 %s 不可用于创建新连锁: %w", chain, ErrInvalidMove)
	}

	hotel := g.Board.Hotel(g.LastPlacedHotel)
	hotel.Chain = chain
	g.Board.AbsorbNewHotels(chain, hotel.ID)

	if g.AvailableStocks[chain] > 0 {
		g.AvailableStocks[chain]--
		g.Players[playerID].Stocks[chain]++
	}
	g.LastMove = fmt.Sprintf("Player %s chooses %s as the new chain", playerID, chain)
	g.Stage = StageBuyStock
	return nil
}

// BuyStock 买股票：整个回合最多3股，每个品牌按下单时的股价一次性定价，
// 牌池不足、现金不足都只是截断，不会判非法。买0股也是合法的过牌。
func (g *Game) BuyStock(playerID string, order map[Chain]int) error {
	if err := g.requireTurn(playerID, PhaseBuilding, StageBuyStock); err != nil {
		return err
	}

	player := g.Players[playerID]
	purchasesRemaining := buyLimitPerTurn
	var bought []string

	for _, chain := range Chains {
		num := order[chain]
		if num <= 0 {
			continue
		}
		price, ok := g.Board.PriceOfStock(chain)
		if !ok {
			continue // 连锁未成立，无价可买
		}
		toBuy := min(num, min(g.AvailableStocks[chain], purchasesRemaining))
		count := 0
		for toBuy > 0 && player.Money >= price {
			player.Stocks[chain]++
			player.Money -= price
			g.AvailableStocks[chain]--
			toBuy--
			purchasesRemaining--
			count++
		}
		if count > 0 {
			bought = append(bought, fmt.Sprintf("%d %s", count, chain))
		}
	}

	if len(bought) > 0 {
		g.LastMove = fmt.Sprintf("Player %s buys %s", playerID, strings.Join(bought, ", "))
	} else {
		g.LastMove = fmt.Sprintf("Player %s doesn't buy any stock", playerID)
	}

	g.afterBuyStock()
	return nil
}

// DeclareGameOver 宣告终局。只有买股后满足终局条件才会走到这个步骤；
// 选择不结束就继续补牌。
func (g *Game) DeclareGameOver(playerID string, isGameOver bool) error {
	if err := g.requireTurn(playerID, PhaseBuilding, StageDeclareGameOver); err != nil {
		return err
	}
	if !isGameOver {
		g.LastMove = fmt.Sprintf("Player %s keeps the game going", playerID)
		g.Stage = StageDrawHotels
		return nil
	}
	g.LastMove = fmt.Sprintf("Player %s declares the game over", playerID)
	g.settle(playerID)
	return nil
}

// DrawHotels 补牌：先把手上已成永久废牌的牌丢弃（标记废弃、清除归属），
// 再从可用牌池随机补满6张，然后回合交给下一个玩家。
func (g *Game) DrawHotels(playerID string) error {
	if err := g.requireTurn(playerID, PhaseBuilding, StageDrawHotels); err != nil {
		return err
	}

	for _, h := range g.Board.PlayerHotels(playerID) {
		if g.Board.IsPermanentlyUnplayable(h) {
			h.HasBeenRemoved = true
			h.DrawnByPlayer = ""
		}
	}

	need := rackSize - len(g.Board.PlayerHotels(playerID))
	for i := 0; i < need; i++ {
		if g.assignRandomHotel(playerID) == nil {
			break // 牌池抽空了
		}
	}
	g.LastMove = fmt.Sprintf("Player %s draws replacement hotels", playerID)
	g.endTurn()
	return nil
}

// ChooseSurvivingChain 并购决胜：只能从并列最大的连锁里选幸存者
func (g *Game) ChooseSurvivingChain(playerID string, chain Chain) error {
	if err := g.requireTurn(playerID, PhaseChooseSurvivingChain, ""); err != nil {
		return err
	}
	m := g.Merger
	idx := indexOfChain(m.MergingChains, chain)
	if idx < 0 || g.Board.SizeOfChain(chain) != g.Board.SizeOfChain(m.MergingChains[0]) {
		return fmt.Errorf("连锁 %s 不在并列最大之列: %w", chain, ErrInvalidMove)
	}
	m.SurvivingChain = chain
	m.MergingChains = append(m.MergingChains[:idx], m.MergingChains[idx+1:]...)
	g.LastMove = fmt.Sprintf("Player %s chooses %s to survive the merger", playerID, chain)
	g.enterChooseChainToMerge()
	return nil
}

// ChooseChainToMerge 并购决胜：从剩余待并购里并列最大的连锁中选下一个被并购者
func (g *Game) ChooseChainToMerge(playerID string, chain Chain) error {
	if err := g.requireTurn(playerID, PhaseChooseChainToMerge, ""); err != nil {
		return err
	}
	m := g.Merger
	idx := indexOfChain(m.MergingChains, chain)
	if idx < 0 || g.Board.SizeOfChain(chain) != g.Board.SizeOfChain(m.MergingChains[0]) {
		return fmt.Errorf("连锁 %s 不在并列最大之列: %w", chain, ErrInvalidMove)
	}
	// 选中的挪到队首
	m.MergingChains = append(m.MergingChains[:idx], m.MergingChains[idx+1:]...)
	m.MergingChains = append([]Chain{chain}, m.MergingChains...)
	m.ChainToMerge = chain
	g.LastMove = fmt.Sprintf("Player %s chooses %s to merge next", playerID, chain)
	g.enterMergerPhase()
	return nil
}

// SwapAndSellStock 并购清算中一个玩家表态：换股数先按持股、再按幸存连锁牌池×2封顶，
// 向下取偶（2换1不允许半股）；卖股数按换后剩余持股封顶，按被并购连锁当前股价结钱。
// 全是0也是合法的过牌。
func (g *Game) SwapAndSellStock(playerID string, swap, sell int) error {
	if err := g.requireTurn(playerID, PhaseMerger, ""); err != nil {
		return err
	}
	m := g.Merger
	player := g.Players[playerID]
	holding := player.Stocks[m.ChainToMerge]

	toSwap := max(swap, 0)
	toSwap = min(toSwap, holding)
	toSwap = min(toSwap, g.AvailableStocks[m.SurvivingChain]*2)
	toSwap -= toSwap % 2

	toSell := max(sell, 0)
	toSell = min(toSell, holding-toSwap)

	price, _ := g.Board.PriceOfStock(m.ChainToMerge) // 并购吸收前计算，规模未变

	// 换：2股被并购换1股幸存
	player.Stocks[m.ChainToMerge] -= toSwap
	g.AvailableStocks[m.ChainToMerge] += toSwap
	player.Stocks[m.SurvivingChain] += toSwap / 2
	g.AvailableStocks[m.SurvivingChain] -= toSwap / 2

	// 卖：按定格的股价结算
	player.Stocks[m.ChainToMerge] -= toSell
	g.AvailableStocks[m.ChainToMerge] += toSell
	player.Money += toSell * price

	m.SwapAndSells[playerID] = SwapAndSell{Swap: toSwap, Sell: toSell}
	g.LastMove = g.swapAndSellSummary(playerID, toSwap, toSell, holding)

	if next := g.mergerActivePlayer(); next != "" {
		g.ActivePlayer = next
	} else {
		g.finishMergerRound()
	}
	return nil
}

func (g *Game) swapAndSellSummary(playerID string, swapped, sold, holding int) string {
	m := g.Merger
	if holding == 0 {
		return fmt.Sprintf("Player %s has no %s stock", playerID, m.ChainToMerge)
	}
	var parts []string
	if swapped > 0 {
		parts = append(parts, fmt.Sprintf("swaps %d %s for %d %s",
			swapped, m.ChainToMerge, swapped/2, m.SurvivingChain))
	}
	if sold > 0 {
		parts = append(parts, fmt.Sprintf("sells %d %s", sold, m.ChainToMerge))
	}
	if kept := g.Players[playerID].Stocks[m.ChainToMerge]; kept > 0 {
		parts = append(parts, fmt.Sprintf("keeps %d %s", kept, m.ChainToMerge))
	}
	if len(parts) == 0 {
		return fmt.Sprintf("Player %s passes on %s", playerID, m.ChainToMerge)
	}
	return fmt.Sprintf("Player %s %s", playerID, strings.Join(parts, ", "))
}

func indexOfChain(chains []Chain, chain Chain) int {
	for i, c := range chains {
		if c == chain {
			return i
		}
	}
	return -1
}
