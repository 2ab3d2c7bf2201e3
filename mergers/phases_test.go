package mergers

import (
	"errors"
	"testing"
)

// 两个规模不同的连锁被一张牌连通：幸存者和被并购者都无需决胜，直接进入清算
func TestMergerAutoResolvesWhenSizesDiffer(t *testing.T) {
	g := newTestGame("p1", "p2")
	placeChain(t, g.Board, ChainTower, "1-A", "2-A", "3-A") // 规模 3
	placeChain(t, g.Board, ChainLuxor, "5-A", "6-A")        // 规模 2
	g.Players["p1"].Stocks[ChainLuxor] = 2
	g.AvailableStocks[ChainLuxor] -= 2
	giveTile(t, g.Board, "p1", "4-A")

	if err := g.PlaceHotel("p1", "4-A"); err != nil {
		t.Fatalf("PlaceHotel: %v", err)
	}
	if g.Phase != PhaseMerger {
		t.Fatalf("阶段 = %s，期望清算", g.Phase)
	}
	m := g.Merger
	if m.SurvivingChain != ChainTower || m.ChainToMerge != ChainLuxor {
		t.Errorf("幸存 %s / 被并购 %s，期望 Tower/Luxor", m.SurvivingChain, m.ChainToMerge)
	}
	if m.TriggeredBy != "p1" || g.ActivePlayer != "p1" {
		t.Errorf("清算应从触发玩家开始，实际 %s/%s", m.TriggeredBy, g.ActivePlayer)
	}
	// 零持股的 p2 已预先标记为表态
	if _, resolved := m.SwapAndSells["p2"]; !resolved {
		t.Error("零持股玩家应预先标记为已表态")
	}
	// Luxor 独家持股红利：股价 200，3000 全归 p1
	if m.Bonuses["p1"] != 3000 {
		t.Errorf("红利 = %v，期望 p1:3000", m.Bonuses)
	}
}

// 规模并列时需要触发玩家先选幸存连锁
func TestMergerTieRequiresChoice(t *testing.T) {
	g := newTestGame("p1", "p2")
	placeChain(t, g.Board, ChainTower, "1-A", "2-A")
	placeChain(t, g.Board, ChainLuxor, "4-A", "5-A")
	g.Players["p2"].Stocks[ChainTower] = 1
	g.AvailableStocks[ChainTower]--
	giveTile(t, g.Board, "p1", "3-A")

	if err := g.PlaceHotel("p1", "3-A"); err != nil {
		t.Fatalf("PlaceHotel: %v", err)
	}
	if g.Phase != PhaseChooseSurvivingChain {
		t.Fatalf("阶段 = %s，期望选幸存连锁", g.Phase)
	}

	// 不在并购之列的品牌不能选
	if err := g.ChooseSurvivingChain("p1", ChainImperial); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("期望 ErrInvalidMove，实际 %v", err)
	}
	if err := g.ChooseSurvivingChain("p1", ChainLuxor); err != nil {
		t.Fatalf("ChooseSurvivingChain: %v", err)
	}
	// 只剩一个待并购连锁，自动敲定被并购者并停在清算阶段等 p2 表态
	if g.Phase != PhaseMerger {
		t.Fatalf("阶段 = %s，期望清算", g.Phase)
	}
	if g.Merger.SurvivingChain != ChainLuxor || g.Merger.ChainToMerge != ChainTower {
		t.Errorf("幸存 %s / 被并购 %s，期望 Luxor/Tower", g.Merger.SurvivingChain, g.Merger.ChainToMerge)
	}
	// 零持股的 p1 已预填，轮到唯一持股的 p2
	if g.ActivePlayer != "p2" {
		t.Errorf("ActivePlayer = %s，期望 p2", g.ActivePlayer)
	}
}

// 无人持有被并购连锁时决胜后直接回到建设阶段
func TestMergerTieResolvesInstantlyWithoutHolders(t *testing.T) {
	g := newTestGame("p1", "p2")
	placeChain(t, g.Board, ChainTower, "1-A", "2-A")
	placeChain(t, g.Board, ChainLuxor, "4-A", "5-A")
	giveTile(t, g.Board, "p1", "3-A")

	if err := g.PlaceHotel("p1", "3-A"); err != nil {
		t.Fatalf("PlaceHotel: %v", err)
	}
	if err := g.ChooseSurvivingChain("p1", ChainLuxor); err != nil {
		t.Fatalf("ChooseSurvivingChain: %v", err)
	}
	if g.Merger != nil {
		t.Fatal("无人持股时并购应直接结束")
	}
	if g.Phase != PhaseBuilding || g.Stage != StageBuyStock || g.ActivePlayer != "p1" {
		t.Errorf("应回到 p1 买股票，实际 %s/%s/%s", g.Phase, g.Stage, g.ActivePlayer)
	}
	if size := g.Board.SizeOfChain(ChainLuxor); size != 5 {
		t.Errorf("Luxor 规模 = %d，期望 5", size)
	}
}

// 完整走一轮换股/卖股，验证清算次序和并购收尾
func TestSwapAndSellRound(t *testing.T) {
	g := newTestGame("p1", "p2", "p3")
	placeChain(t, g.Board, ChainTower, "1-A", "2-A", "3-A") // 幸存，规模 3
	placeChain(t, g.Board, ChainLuxor, "5-A", "6-A")        // 被并购，规模 2，股价 200
	g.Players["p1"].Stocks[ChainLuxor] = 4
	g.Players["p3"].Stocks[ChainLuxor] = 2
	g.AvailableStocks[ChainLuxor] -= 6
	giveTile(t, g.Board, "p1", "4-A")

	if err := g.PlaceHotel("p1", "4-A"); err != nil {
		t.Fatalf("PlaceHotel: %v", err)
	}
	moneyAfterBonus := g.Players["p1"].Money // 大股东红利已发

	// p1 想换 3 卖 10：换数向下取偶到 2，卖数按剩余持股截断到 2
	if err := g.SwapAndSellStock("p1", 3, 10); err != nil {
		t.Fatalf("SwapAndSellStock: %v", err)
	}
	p1 := g.Players["p1"]
	if p1.Stocks[ChainLuxor] != 0 || p1.Stocks[ChainTower] != 1 {
		t.Errorf("p1 持股 Luxor=%d Tower=%d，期望 0/1", p1.Stocks[ChainLuxor], p1.Stocks[ChainTower])
	}
	if p1.Money != moneyAfterBonus+2*200 {
		t.Errorf("p1 现金 = %d，期望 %d", p1.Money, moneyAfterBonus+2*200)
	}

	// 轮到下一个未表态的持股玩家 p3（p2 零持股已预填）
	if g.ActivePlayer != "p3" {
		t.Fatalf("ActivePlayer = %s，期望 p3", g.ActivePlayer)
	}
	// 全 0 也是合法过牌
	if err := g.SwapAndSellStock("p3", 0, 0); err != nil {
		t.Fatalf("SwapAndSellStock: %v", err)
	}

	// 并购收尾：整个区域归入幸存连锁，触发玩家跳过放牌直接买股票
	if g.Merger != nil {
		t.Fatal("并购记录应已销毁")
	}
	if g.Phase != PhaseBuilding || g.Stage != StageBuyStock || g.ActivePlayer != "p1" {
		t.Errorf("并购后应回到 p1 买股票，实际 %s/%s/%s", g.Phase, g.Stage, g.ActivePlayer)
	}
	if size := g.Board.SizeOfChain(ChainTower); size != 6 {
		t.Errorf("Tower 规模 = %d，期望 6", size)
	}
	if size := g.Board.SizeOfChain(ChainLuxor); size != 0 {
		t.Errorf("Luxor 规模 = %d，期望 0", size)
	}
	// p3 保留的 2 股 Luxor 原样留在账上
	if got := g.Players["p3"].Stocks[ChainLuxor]; got != 2 {
		t.Errorf("p3 保留持股 = %d，期望 2", got)
	}
}

// 换股受幸存连锁牌池限制
func TestSwapClampedBySurvivorPool(t *testing.T) {
	g := newTestGame("p1", "p2")
	placeChain(t, g.Board, ChainTower, "1-A", "2-A", "3-A")
	placeChain(t, g.Board, ChainLuxor, "5-A", "6-A")
	g.Players["p1"].Stocks[ChainLuxor] = 6
	g.AvailableStocks[ChainLuxor] -= 6
	g.AvailableStocks[ChainTower] = 1 // 只够换 2 股
	giveTile(t, g.Board, "p1", "4-A")

	if err := g.PlaceHotel("p1", "4-A"); err != nil {
		t.Fatalf("PlaceHotel: %v", err)
	}
	if err := g.SwapAndSellStock("p1", 6, 0); err != nil {
		t.Fatalf("SwapAndSellStock: %v", err)
	}
	p1 := g.Players["p1"]
	if p1.Stocks[ChainTower] != 1 || p1.Stocks[ChainLuxor] != 4 {
		t.Errorf("持股 Tower=%d Luxor=%d，期望 1/4", p1.Stocks[ChainTower], p1.Stocks[ChainLuxor])
	}
	if g.AvailableStocks[ChainTower] != 0 {
		t.Errorf("幸存连锁牌池 = %d，期望 0", g.AvailableStocks[ChainTower])
	}
}

// 三连锁并购：逐个清算，每轮红利按清算时的股价结算
func TestThreeWayMergerSettlesChainsInOrder(t *testing.T) {
	g := newTestGame("p1", "p2")
	placeChain(t, g.Board, ChainTower, "1-A", "2-A", "3-A", "4-A") // 规模 4
	placeChain(t, g.Board, ChainLuxor, "6-A", "7-A", "8-A")        // 规模 3
	placeChain(t, g.Board, ChainFestival, "5-B")                   // 规模 1（由吸收形成的单格在规则上不会出现，这里只为构造场景）
	g.Players["p1"].Stocks[ChainLuxor] = 1
	g.Players["p1"].Stocks[ChainFestival] = 1
	g.AvailableStocks[ChainLuxor]--
	g.AvailableStocks[ChainFestival]--
	giveTile(t, g.Board, "p1", "5-A")

	if err := g.PlaceHotel("p1", "5-A"); err != nil {
		t.Fatalf("PlaceHotel: %v", err)
	}
	// 规模全不相同：幸存 Tower 自动敲定，先清算最大的 Luxor
	if g.Phase != PhaseMerger {
		t.Fatalf("阶段 = %s，期望清算", g.Phase)
	}
	if g.Merger.ChainToMerge != ChainLuxor {
		t.Fatalf("先清算 %s，期望 Luxor", g.Merger.ChainToMerge)
	}
	if err := g.SwapAndSellStock("p1", 0, 0); err != nil {
		t.Fatalf("SwapAndSellStock: %v", err)
	}

	// 接着清算 Festival
	if g.Phase != PhaseMerger || g.Merger.ChainToMerge != ChainFestival {
		t.Fatalf("第二轮清算 %v，期望 Festival", g.Merger)
	}
	if err := g.SwapAndSellStock("p1", 0, 0); err != nil {
		t.Fatalf("SwapAndSellStock: %v", err)
	}

	if g.Merger != nil {
		t.Fatal("并购记录应已销毁")
	}
	if size := g.Board.SizeOfChain(ChainTower); size != 9 {
		t.Errorf("Tower 规模 = %d，期望 9", size)
	}
}

// 无人持有被并购连锁股票时整轮清算直接跳过
func TestMergerSkipsWhenNobodyHoldsStock(t *testing.T) {
	g := newTestGame("p1", "p2")
	placeChain(t, g.Board, ChainTower, "1-A", "2-A", "3-A")
	placeChain(t, g.Board, ChainLuxor, "5-A", "6-A")
	giveTile(t, g.Board, "p1", "4-A")

	if err := g.PlaceHotel("p1", "4-A"); err != nil {
		t.Fatalf("PlaceHotel: %v", err)
	}
	if g.Merger != nil {
		t.Fatal("无人持股时并购应直接结束")
	}
	if g.Phase != PhaseBuilding || g.Stage != StageBuyStock {
		t.Errorf("应直接回到买股票，实际 %s/%s", g.Phase, g.Stage)
	}
	if size := g.Board.SizeOfChain(ChainTower); size != 6 {
		t.Errorf("Tower 规模 = %d，期望 6", size)
	}
}

func TestGameCanBeDeclaredOver(t *testing.T) {
	g := newTestGame("p1", "p2")
	if g.GameCanBeDeclaredOver() {
		t.Error("空棋盘不可宣告终局")
	}

	// 唯一的连锁规模 11：全部连锁不可并购
	tiles := make([]string, 0, 11)
	for col := 1; col <= 11; col++ {
		tiles = append(tiles, tileID(0, col-1))
	}
	placeChain(t, g.Board, ChainTower, tiles...)
	if !g.GameCanBeDeclaredOver() {
		t.Error("所有连锁都不可并购时可宣告终局")
	}

	// 再加一个小连锁就不满足了
	placeChain(t, g.Board, ChainLuxor, "1-C", "2-C")
	if g.GameCanBeDeclaredOver() {
		t.Error("还有可并购的连锁时不可宣告终局")
	}
}

func TestGameCanBeDeclaredOverBySize41(t *testing.T) {
	g := newTestGame("p1", "p2")
	var tiles []string
	for row := 0; row < 3; row++ { // 行 A-C 共 36 张
		for col := 0; col < 12; col++ {
			tiles = append(tiles, tileID(row, col))
		}
	}
	for col := 0; col < 5; col++ { // 行 D 再 5 张，共 41
		tiles = append(tiles, tileID(3, col))
	}
	placeChain(t, g.Board, ChainTower, tiles...)
	placeChain(t, g.Board, ChainLuxor, "1-F", "2-F") // 还有可并购连锁也不影响

	if !g.GameCanBeDeclaredOver() {
		t.Error("有连锁超过 40 时可宣告终局")
	}
}
