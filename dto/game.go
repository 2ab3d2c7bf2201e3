package dto

// WebSocket 消息 payload，由 mapstructure 从前端 JSON 解出

type PlaceTilePayload struct {
	Tile string `json:"tile"` // 为空表示没有可放的牌，跳过放置
}

type ChooseChainPayload struct {
	Chain string `json:"chain"`
}

type BuyStockPayload struct {
	Order map[string]int `json:"order"` // 品牌 -> 想买的股数
}

type SwapAndSellPayload struct {
	Swap int `json:"swap"`
	Sell int `json:"sell"`
}

type DeclareGameOverPayload struct {
	GameOver bool `json:"gameOver"`
}

type AudioPayload struct {
	Audio string `json:"audio"`
}
