package mergers

import "testing"

func TestRoundUpToNearest100(t *testing.T) {
	tests := []struct {
		total, count, want int
	}{
		{3000, 1, 3000},
		{3000, 2, 1500},
		{1500, 2, 800},  // 750 向上取整
		{4500, 2, 2300}, // 2250 向上取整
		{1000, 3, 400},  // 333.33 向上取整
		{100, 4, 100},
	}
	for _, tt := range tests {
		if got := roundUpToNearest100(tt.total, tt.count); got != tt.want {
			t.Errorf("roundUpToNearest100(%d, %d) = %d，期望 %d", tt.total, tt.count, got, tt.want)
		}
	}
}

func TestMajorityAndMinorityPartitions(t *testing.T) {
	g := newTestGame("p1", "p2", "p3")
	placeChain(t, g.Board, ChainTower, "1-A", "2-A", "3-A") // 规模 3，股价 300

	set := func(p1, p2, p3 int) {
		g.Players["p1"].Stocks[ChainTower] = p1
		g.Players["p2"].Stocks[ChainTower] = p2
		g.Players["p3"].Stocks[ChainTower] = p3
	}
	ids := func(players []*Player) []string {
		var out []string
		for _, p := range players {
			out = append(out, p.ID)
		}
		return out
	}

	tests := []struct {
		name             string
		p1, p2, p3       int
		wantMaj, wantMin []string
	}{
		{"独家持股", 5, 0, 0, []string{"p1"}, nil},
		{"正常大小股东", 5, 3, 0, []string{"p1"}, []string{"p2"}},
		{"大股东并列", 4, 4, 1, []string{"p1", "p2"}, nil},
		{"二股东并列", 5, 2, 2, []string{"p1"}, []string{"p2", "p3"}},
		{"三家并列", 3, 3, 3, []string{"p1", "p2", "p3"}, nil},
		{"无人持股", 0, 0, 0, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set(tt.p1, tt.p2, tt.p3)
			gotMaj := ids(g.PlayersInMajority(ChainTower))
			gotMin := ids(g.PlayersInMinority(ChainTower))
			if !equalStrings(gotMaj, tt.wantMaj) {
				t.Errorf("大股东 = %v，期望 %v", gotMaj, tt.wantMaj)
			}
			if !equalStrings(gotMin, tt.wantMin) {
				t.Errorf("二股东 = %v，期望 %v", gotMin, tt.wantMin)
			}
		})
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestGetBonuses(t *testing.T) {
	g := newTestGame("p1", "p2", "p3")
	placeChain(t, g.Board, ChainTower, "1-A", "2-A", "3-A") // 股价 300，红利 3000/1500

	tests := []struct {
		name       string
		p1, p2, p3 int
		want       map[string]int
	}{
		{"独家持股两份全拿", 3, 0, 0, map[string]int{"p1": 4500}},
		{"正常分配", 5, 2, 0, map[string]int{"p1": 3000, "p2": 1500}},
		{"大股东并列平分两份", 4, 4, 0, map[string]int{"p1": 2300, "p2": 2300}},
		{"二股东并列平分一份", 5, 1, 1, map[string]int{"p1": 3000, "p2": 800, "p3": 800}},
		{"无人持股无红利", 0, 0, 0, map[string]int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g.Players["p1"].Stocks[ChainTower] = tt.p1
			g.Players["p2"].Stocks[ChainTower] = tt.p2
			g.Players["p3"].Stocks[ChainTower] = tt.p3

			got := g.getBonuses(ChainTower)
			if len(got) != len(tt.want) {
				t.Fatalf("红利分配 = %v，期望 %v", got, tt.want)
			}
			for id, amount := range tt.want {
				if got[id] != amount {
					t.Errorf("玩家 %s 红利 = %d，期望 %d", id, got[id], amount)
				}
			}
		})
	}
}

func TestAwardBonusesPaysOut(t *testing.T) {
	g := newTestGame("p1", "p2")
	placeChain(t, g.Board, ChainImperial, "1-A", "2-A") // 规模 2，股价 400
	g.Players["p1"].Stocks[ChainImperial] = 2
	g.Players["p2"].Stocks[ChainImperial] = 1

	bonuses := g.awardBonuses(ChainImperial)
	if bonuses["p1"] != 4000 || bonuses["p2"] != 2000 {
		t.Fatalf("红利 = %v，期望 p1:4000 p2:2000", bonuses)
	}
	if g.Players["p1"].Money != startingMoney+4000 {
		t.Errorf("p1 现金 = %d，期望 %d", g.Players["p1"].Money, startingMoney+4000)
	}
	if g.Players["p2"].Money != startingMoney+2000 {
		t.Errorf("p2 现金 = %d，期望 %d", g.Players["p2"].Money, startingMoney+2000)
	}
}
