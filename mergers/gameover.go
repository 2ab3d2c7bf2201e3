package mergers

import "sort"

// settle 终局结算：在场连锁按规模从小到大（同规模按品牌顺序）逐个发红利并留存快照，
// 然后全部持股按当前股价强制清算，最后按现金排名。结算后进入终局，不再接受操作。
func (g *Game) settle(declaredBy string) {
	chains := g.Board.ChainsOnBoard()
	sort.SliceStable(chains, func(i, j int) bool {
		return g.Board.SizeOfChain(chains[i]) < g.Board.SizeOfChain(chains[j])
	})

	gameOver := &GameOver{DeclaredBy: declaredBy}

	for _, chain := range chains {
		counts := g.stockCountsOf(chain)
		bonuses := g.awardBonuses(chain)
		gameOver.FinalMergers = append(gameOver.FinalMergers, FinalMerger{
			Chain:       chain,
			StockCounts: counts,
			Bonuses:     bonuses,
		})
	}

	// 清算：剩余持股全部按现价卖出，股票回到牌池
	for _, chain := range chains {
		price, ok := g.Board.PriceOfStock(chain)
		if !ok {
			continue
		}
		for _, id := range g.PlayOrder {
			player := g.Players[id]
			num := player.Stocks[chain]
			player.Money += num * price
			player.Stocks[chain] = 0
			g.AvailableStocks[chain] += num
		}
	}

	ranked := make([]*Player, 0, len(g.Players))
	for _, id := range g.PlayOrder {
		ranked = append(ranked, g.Players[id])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Money > ranked[j].Money
	})
	topMoney := ranked[0].Money

	var winners []string
	for _, p := range ranked {
		gameOver.Scores = append(gameOver.Scores, Score{
			ID:     p.ID,
			Money:  p.Money,
			Winner: p.Money == topMoney,
		})
		if p.Money == topMoney {
			winners = append(winners, p.ID)
		}
	}
	if len(winners) == 1 {
		gameOver.Winner = winners[0]
	} else {
		gameOver.Winners = winners
	}

	g.GameOver = gameOver
	g.Phase = PhaseGameOver
	g.Stage = ""
	g.ActivePlayer = ""
}
