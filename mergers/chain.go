package mergers

// Chain 酒店连锁品牌（7个固定品牌）
type Chain string

const (
	ChainTower       Chain = "Tower"
	ChainLuxor       Chain = "Luxor"
	ChainWorldwide   Chain = "Worldwide"
	ChainAmerican    Chain = "American"
	ChainFestival    Chain = "Festival"
	ChainContinental Chain = "Continental"
	ChainImperial    Chain = "Imperial"
)

// Chains 全部品牌，固定顺序（买股票按这个顺序逐个结算）
var Chains = []Chain{
	ChainTower,
	ChainLuxor,
	ChainWorldwide,
	ChainAmerican,
	ChainFestival,
	ChainContinental,
	ChainImperial,
}

// 三档价格加成：低档 +0，中档 +100，高档 +200
var chainTierBonus = map[Chain]int{
	ChainTower:       0,
	ChainLuxor:       0,
	ChainWorldwide:   100,
	ChainAmerican:    100,
	ChainFestival:    100,
	ChainContinental: 200,
	ChainImperial:    200,
}

// IsValidChain 判断字符串是否是合法的品牌名
func IsValidChain(s string) bool {
	_, ok := chainTierBonus[Chain(s)]
	return ok
}
