package mergers

import (
	"fmt"
	"sort"
)

var rowLetters = []byte("ABCDEFGHI")

const (
	defaultNumRows    = 9
	defaultNumColumns = 12

	// 超过这个规模的连锁不可再被并购
	maxMergeableSize = 10
)

// Hotel 棋盘上的一格酒店牌
type Hotel struct {
	ID             string `json:"id"` // "3-B" = 第3列，第B行
	HasBeenPlaced  bool   `json:"hasBeenPlaced,omitempty"`
	HasBeenRemoved bool   `json:"hasBeenRemoved,omitempty"`
	DrawnByPlayer  string `json:"drawnByPlayer,omitempty"`
	Chain          Chain  `json:"chain,omitempty"`
}

// Board 酒店棋盘（固定 9 行 × 12 列，共 108 张牌）
type Board struct {
	Grid [][]*Hotel `json:"grid"`
}

// NewBoard 创建 rows×cols 的空棋盘
func NewBoard(rows, cols int) *Board {
	if rows > defaultNumRows {
		rows = defaultNumRows
	}
	grid := make([][]*Hotel, rows)
	for r := 0; r < rows; r++ {
		grid[r] = make([]*Hotel, cols)
		for c := 0; c < cols; c++ {
			grid[r][c] = &Hotel{ID: tileID(r, c)}
		}
	}
	return &Board{Grid: grid}
}

// NewDefaultBoard 创建标准棋盘
func NewDefaultBoard() *Board {
	return NewBoard(defaultNumRows, defaultNumColumns)
}

func tileID(row, col int) string {
	return fmt.Sprintf("%d-%c", col+1, rowLetters[row])
}

// tileRow 解析 tile ID 中的行号（0 起始），格式非法返回 -1
func tileRow(id string) int {
	for i := 0; i < len(id); i++ {
		if id[i] == '-' && i+1 == len(id)-1 {
			for r, letter := range rowLetters {
				if id[i+1] == letter {
					return r
				}
			}
		}
	}
	return -1
}

// tileColumn 解析 tile ID 中的列号（0 起始），格式非法返回 -1
func tileColumn(id string) int {
	col := 0
	for i := 0; i < len(id); i++ {
		if id[i] == '-' {
			if col < 1 {
				return -1
			}
			return col - 1
		}
		if id[i] < '0' || id[i] > '9' {
			return -1
		}
		col = col*10 + int(id[i]-'0')
	}
	return -1
}

// Hotel 按 ID 取牌，不存在返回 nil
func (b *Board) Hotel(id string) *Hotel {
	r, c := tileRow(id), tileColumn(id)
	if r < 0 || c < 0 || r >= len(b.Grid) || c >= len(b.Grid[r]) {
		return nil
	}
	return b.Grid[r][c]
}

// AllHotels 按行、列顺序展开全部牌
func (b *Board) AllHotels() []*Hotel {
	var all []*Hotel
	for _, row := range b.Grid {
		all = append(all, row...)
	}
	return all
}

// AdjacentHotels 返回已放置的上下左右邻接牌（不含对角线）
func (b *Board) AdjacentHotels(h *Hotel) []*Hotel {
	r, c := tileRow(h.ID), tileColumn(h.ID)
	var adjacent []*Hotel
	for _, d := range [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		nr, nc := r+d[0], c+d[1]
		if nr < 0 || nr >= len(b.Grid) || nc < 0 || nc >= len(b.Grid[nr]) {
			continue
		}
		if n := b.Grid[nr][nc]; n.HasBeenPlaced {
			adjacent = append(adjacent, n)
		}
	}
	return adjacent
}

// SizeOfChain 连锁当前规模（归属该品牌的牌数）
func (b *Board) SizeOfChain(chain Chain) int {
	count := 0
	for _, h := range b.AllHotels() {
		if h.Chain == chain {
			count++
		}
	}
	return count
}

// PriceOfStock 当前股价，规模为 0 时连锁未成立，返回 (0, false)
func (b *Board) PriceOfStock(chain Chain) (int, bool) {
	return PriceOfStockBySize(chain, b.SizeOfChain(chain))
}

// PriceOfStockBySize 按规模查股价：6 以下每格 100，之后按档位走平价
func PriceOfStockBySize(chain Chain, size int) (int, bool) {
	if size == 0 {
		return 0, false
	}
	var basePrice int
	switch {
	case size < 6:
		basePrice = size * 100
	case size < 11:
		basePrice = 600
	case size < 21:
		basePrice = 700
	case size < 31:
		basePrice = 800
	case size < 41:
		basePrice = 900
	default:
		basePrice = 1000
	}
	return basePrice + chainTierBonus[chain], true
}

// ChainsOnBoard 当前在棋盘上的连锁（按固定品牌顺序）
func (b *Board) ChainsOnBoard() []Chain {
	var onBoard []Chain
	for _, chain := range Chains {
		if b.SizeOfChain(chain) > 0 {
			onBoard = append(onBoard, chain)
		}
	}
	return onBoard
}

// PlayerHotels 玩家手牌（已抽取、未放置、未废弃）
func (b *Board) PlayerHotels(playerID string) []*Hotel {
	var hotels []*Hotel
	for _, h := range b.AllHotels() {
		if h.DrawnByPlayer == playerID && !h.HasBeenPlaced && !h.HasBeenRemoved {
			hotels = append(hotels, h)
		}
	}
	return hotels
}

// TopLeftMostPlacedHotel 最靠左上（先比行字母、再比列号）的已放置牌
func (b *Board) TopLeftMostPlacedHotel() *Hotel {
	placed := []*Hotel{}
	for _, h := range b.AllHotels() {
		if h.HasBeenPlaced {
			placed = append(placed, h)
		}
	}
	if len(placed) == 0 {
		return nil
	}
	sort.Slice(placed, func(i, j int) bool {
		ri, rj := tileRow(placed[i].ID), tileRow(placed[j].ID)
		if ri != rj {
			return ri < rj
		}
		return tileColumn(placed[i].ID) < tileColumn(placed[j].ID)
	})
	return placed[0]
}

// AbsorbNewHotels 从 id 出发洪泛吸收：把整个相连的已放置区域全部归入 chain。
// 既用于放牌后并入单个相邻连锁，也用于并购结束后把被并购连锁整体划给幸存连锁。
func (b *Board) AbsorbNewHotels(chain Chain, id string) {
	absorbed := map[string]bool{id: true}
	b.absorb(chain, id, absorbed)
}

func (b *Board) absorb(chain Chain, id string, absorbed map[string]bool) {
	hotel := b.Hotel(id)
	for _, h := range b.AdjacentHotels(hotel) {
		if absorbed[h.ID] {
			continue
		}
		absorbed[h.ID] = true
		b.absorb(chain, h.ID, absorbed)
	}
	hotel.Chain = chain
}

// IsUnplayable 这张牌当前是否不可放置（已放置的牌永远可算作可放置）
func (b *Board) IsUnplayable(h *Hotel) bool {
	if h.HasBeenPlaced {
		return false
	}
	return b.IsPermanentlyUnplayable(h) || b.IsTemporarilyUnplayable(h)
}

// IsPermanentlyUnplayable 放下后会让两个以上不可并购的大连锁相邻，永久废牌
func (b *Board) IsPermanentlyUnplayable(h *Hotel) bool {
	return b.isPermanentlyUnplayable(h, maxMergeableSize)
}

func (b *Board) isPermanentlyUnplayable(h *Hotel, maxSize int) bool {
	adjacentChains := map[Chain]bool{}
	for _, n := range b.AdjacentHotels(h) {
		if n.Chain != "" {
			adjacentChains[n.Chain] = true
		}
	}
	unmergeable := 0
	for chain := range adjacentChains {
		if b.SizeOfChain(chain) > maxSize {
			unmergeable++
		}
	}
	return unmergeable > 1
}

// IsTemporarilyUnplayable 放下后会成立第8个连锁：7个品牌已全部在棋盘上时暂时不可放
func (b *Board) IsTemporarilyUnplayable(h *Hotel) bool {
	if len(b.ChainsOnBoard()) < len(Chains) {
		return false
	}
	adjacent := b.AdjacentHotels(h)
	if len(adjacent) == 0 {
		return false
	}
	for _, n := range adjacent {
		if n.Chain != "" {
			return false
		}
	}
	return true
}
