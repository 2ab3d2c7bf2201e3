package mergers

import (
	"fmt"
	"sort"
)

// startMerger 放牌触发并购：相邻连锁按规模从大到小排好，进入选幸存连锁阶段
func (g *Game) startMerger(chains []Chain, triggeredBy string) {
	sort.SliceStable(chains, func(i, j int) bool {
		return g.Board.SizeOfChain(chains[i]) > g.Board.SizeOfChain(chains[j])
	})
	g.Merger = &Merger{
		MergingChains: chains,
		TriggeredBy:   triggeredBy,
	}
	g.enterChooseSurvivingChain()
}

// enterChooseSurvivingChain 选幸存连锁：规模最大者唯一时自动敲定，否则等玩家表态
func (g *Game) enterChooseSurvivingChain() {
	g.Phase = PhaseChooseSurvivingChain
	g.Stage = ""
	g.ActivePlayer = g.Merger.TriggeredBy

	m := g.Merger
	if g.Board.SizeOfChain(m.MergingChains[0]) != g.Board.SizeOfChain(m.MergingChains[1]) {
		m.SurvivingChain = m.MergingChains[0]
		m.MergingChains = m.MergingChains[1:]
		g.enterChooseChainToMerge()
	}
}

// enterChooseChainToMerge 选下一个被并购的连锁：无并列时自动敲定
func (g *Game) enterChooseChainToMerge() {
	g.Phase = PhaseChooseChainToMerge
	g.Stage = ""
	g.ActivePlayer = g.Merger.TriggeredBy

	m := g.Merger
	if len(m.MergingChains) == 1 ||
		g.Board.SizeOfChain(m.MergingChains[0]) != g.Board.SizeOfChain(m.MergingChains[1]) {
		m.ChainToMerge = m.MergingChains[0]
		g.enterMergerPhase()
	}
}

// enterMergerPhase 当前被并购连锁敲定后开始清算：
// 立刻快照持股、发放红利，零持股玩家预先标记为已表态，
// 换/卖轮从触发并购的玩家开始。
func (g *Game) enterMergerPhase() {
	g.Phase = PhaseMerger
	g.Stage = ""

	m := g.Merger
	m.StockCounts = g.stockCountsOf(m.ChainToMerge)
	m.Bonuses = g.awardBonuses(m.ChainToMerge)
	m.SwapAndSells = make(map[string]SwapAndSell)
	for id, p := range g.Players {
		if p.Stocks[m.ChainToMerge] == 0 {
			m.SwapAndSells[id] = SwapAndSell{}
		}
	}

	if next := g.mergerActivePlayer(); next != "" {
		g.ActivePlayer = next
	} else {
		// 无人持有被并购连锁的股票，本轮直接结束
		g.finishMergerRound()
	}
}

// mergerActivePlayer 从触发玩家起按座次找第一个还没表态的玩家，找不到返回空串
func (g *Game) mergerActivePlayer() string {
	m := g.Merger
	start := g.playOrderIndex(m.TriggeredBy)
	n := len(g.PlayOrder)
	for i := 0; i < n; i++ {
		id := g.PlayOrder[(start+i)%n]
		if _, resolved := m.SwapAndSells[id]; !resolved {
			return id
		}
	}
	return ""
}

// finishMergerRound 当前连锁清算完毕：还有待并购连锁就回到选择阶段重复决胜流程，
// 否则把所有被并购的牌洪泛划入幸存连锁、销毁并购记录，
// 触发玩家跳过放牌直接回到买股票步骤。
func (g *Game) finishMergerRound() {
	m := g.Merger
	m.ChainToMerge = ""
	m.StockCounts = nil
	m.Bonuses = nil
	m.SwapAndSells = nil
	m.MergingChains = m.MergingChains[1:]

	if len(m.MergingChains) > 0 {
		g.enterChooseChainToMerge()
		return
	}

	g.Board.AbsorbNewHotels(m.SurvivingChain, g.LastPlacedHotel)
	triggeredBy := m.TriggeredBy
	g.Merger = nil
	g.Phase = PhaseBuilding
	g.Stage = StageBuyStock
	g.ActivePlayer = triggeredBy
}

// endTurn 建设阶段回合结束，按座次顺延到下一个玩家
func (g *Game) endTurn() {
	next := (g.playOrderIndex(g.ActivePlayer) + 1) % len(g.PlayOrder)
	g.ActivePlayer = g.PlayOrder[next]
	g.Stage = StagePlaceHotel
}

// afterBuyStock 买完股票后的去向：满足终局条件就进入宣告步骤，否则补牌
func (g *Game) afterBuyStock() {
	if g.GameCanBeDeclaredOver() {
		g.Stage = StageDeclareGameOver
	} else {
		g.Stage = StageDrawHotels
	}
}

// GameCanBeDeclaredOver 终局条件：棋盘上所有连锁都不可并购（且至少有一个），
// 或任一连锁规模超过40
func (g *Game) GameCanBeDeclaredOver() bool {
	onBoard := 0
	unmergeable := 0
	for _, chain := range Chains {
		size := g.Board.SizeOfChain(chain)
		if size > 0 {
			onBoard++
		}
		if size > maxMergeableSize {
			unmergeable++
		}
		if size > 40 {
			return true
		}
	}
	return onBoard > 0 && onBoard == unmergeable
}

// requireTurn 校验阶段/步骤/行动玩家，任何一项不符即为非法操作
func (g *Game) requireTurn(playerID string, phase Phase, stage Stage) error {
	if g.IsOver() {
		return fmt.Errorf("游戏已结束: %w", ErrInvalidMove)
	}
	if g.Phase != phase {
		return fmt.Errorf("当前阶段是 %s，不是 %s: %w", g.Phase, phase, ErrInvalidMove)
	}
	if stage != "" && g.Stage != stage {
		return fmt.Errorf("当前步骤是 %s，不是 %s: %w", g.Stage, stage, ErrInvalidMove)
	}
	if !g.isActive(playerID) {
		return fmt.Errorf("还没轮到玩家 %s: %w", playerID, ErrInvalidMove)
	}
	return nil
}
