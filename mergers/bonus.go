package mergers

import "sort"

// MajorityBonus 大股东红利 = 当前股价 × 10
func (g *Game) MajorityBonus(chain Chain) int {
	price, _ := g.Board.PriceOfStock(chain)
	return price * 10
}

// MinorityBonus 二股东红利 = 当前股价 × 5
func (g *Game) MinorityBonus(chain Chain) int {
	price, _ := g.Board.PriceOfStock(chain)
	return price * 5
}

// playersInDescOrderOfStock 按该品牌持股从多到少排序（同持股按ID排，保证确定性）
func (g *Game) playersInDescOrderOfStock(chain Chain) []*Player {
	players := make([]*Player, 0, len(g.Players))
	for _, id := range g.PlayOrder {
		players = append(players, g.Players[id])
	}
	sort.SliceStable(players, func(i, j int) bool {
		if players[i].Stocks[chain] != players[j].Stocks[chain] {
			return players[i].Stocks[chain] > players[j].Stocks[chain]
		}
		return players[i].ID < players[j].ID
	})
	return players
}

// PlayersInMajority 并列最高持股的玩家；无人持股时为空
func (g *Game) PlayersInMajority(chain Chain) []*Player {
	players := g.playersInDescOrderOfStock(chain)
	top := players[0].Stocks[chain]
	if top == 0 {
		return nil
	}
	var majority []*Player
	for _, p := range players {
		if p.Stocks[chain] == top {
			majority = append(majority, p)
		}
	}
	return majority
}

// PlayersInMinority 并列第二高持股的玩家；只有一人持股、或第二名为0、
// 或最高名次多人并列吞掉两份红利时为空
func (g *Game) PlayersInMinority(chain Chain) []*Player {
	players := g.playersInDescOrderOfStock(chain)
	if len(players) < 2 {
		return nil
	}
	top := players[0].Stocks[chain]
	second := players[1].Stocks[chain]
	if second == top || second == 0 {
		return nil
	}
	var minority []*Player
	for _, p := range players {
		if p.Stocks[chain] == second {
			minority = append(minority, p)
		}
	}
	return minority
}

// roundUpToNearest100 平分红利时每人份额向上取整到百位（有利于玩家）
func roundUpToNearest100(total, count int) int {
	per := (total + count - 1) / count
	return (per + 99) / 100 * 100
}

// getBonuses 计算该连锁的红利分配（玩家ID -> 金额），不改动任何状态
func (g *Game) getBonuses(chain Chain) map[string]int {
	bonuses := make(map[string]int)
	majority := g.PlayersInMajority(chain)
	switch {
	case len(majority) == 1:
		bonuses[majority[0].ID] += g.MajorityBonus(chain)
		minority := g.PlayersInMinority(chain)
		switch {
		case len(minority) == 0:
			// 独家持股，两份红利都归大股东
			bonuses[majority[0].ID] += g.MinorityBonus(chain)
		case len(minority) == 1:
			bonuses[minority[0].ID] += g.MinorityBonus(chain)
		default:
			each := roundUpToNearest100(g.MinorityBonus(chain), len(minority))
			for _, p := range minority {
				bonuses[p.ID] += each
			}
		}
	case len(majority) > 1:
		// 最高名次并列：两份红利相加后平分，不再单发二股东红利
		total := g.MajorityBonus(chain) + g.MinorityBonus(chain)
		each := roundUpToNearest100(total, len(majority))
		for _, p := range majority {
			bonuses[p.ID] += each
		}
	}
	return bonuses
}

// awardBonuses 按 getBonuses 的结果实际发钱，返回分配表
func (g *Game) awardBonuses(chain Chain) map[string]int {
	bonuses := g.getBonuses(chain)
	for id, amount := range bonuses {
		g.Players[id].Money += amount
	}
	return bonuses
}

// stockCountsOf 各玩家在该品牌上的持股快照（只记录持股大于0的玩家）
func (g *Game) stockCountsOf(chain Chain) map[string]int {
	counts := make(map[string]int)
	for id, p := range g.Players {
		if p.Stocks[chain] > 0 {
			counts[id] = p.Stocks[chain]
		}
	}
	return counts
}
