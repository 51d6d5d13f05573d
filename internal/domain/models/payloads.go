package models

// Raw upstream payloads, one per feed. Field names follow the upstream API.

// IndexQuote is one entry of the indices feed, keyed by index name.
type IndexQuote struct {
	Value     Number `json:"value"`
	Change    Number `json:"change"`
	ChangePct Number `json:"changePct"`
}

type IndicesPayload map[string]IndexQuote

// FlowStock is a ranked stock in the foreign and institution flow feeds.
// Amount is in 억 KRW.
type FlowStock struct {
	Code      Text   `json:"code"`
	Name      Text   `json:"name"`
	Amount    Number `json:"amount"`
	ChangePct Number `json:"changePct"`
}

type ForeignTopPayload struct {
	Buy  []FlowStock `json:"buy"`
	Sell []FlowStock `json:"sell"`
}

type InstitutionFlow struct {
	Name    Text        `json:"name"`
	BuyTop  []FlowStock `json:"buyTop"`
	SellTop []FlowStock `json:"sellTop"`
}

// InstitutionsPayload is keyed by institution (MS, JP, GS).
type InstitutionsPayload map[string]InstitutionFlow

// SectorFlow carries net foreign and institutional flow per sector, in 억 KRW.
type SectorFlow struct {
	Sector     Text   `json:"sector"`
	ForeignAmt Number `json:"foreignAmt"`
	InstAmt    Number `json:"instAmt"`
}

// ProgramTrade is one row of the program trading ranking. NetAmount is in 백만 KRW.
type ProgramTrade struct {
	Rank      Number `json:"rank"`
	Code      Text   `json:"stk_cd"`
	Name      Text   `json:"stk_nm"`
	Market    Text   `json:"market"`
	Price     Number `json:"cur_prc"`
	ChangePct Number `json:"flu_rt"`
	NetAmount Number `json:"prm_netprps_amt"`
}

// Accumulation is one stock of the foreign stealth-accumulation radar.
// Weight fields are foreign ownership percentages.
type Accumulation struct {
	Code             Text     `json:"stk_cd"`
	Name             Text     `json:"stk_nm"`
	Grade            Text     `json:"grade"`
	Score            Number   `json:"accumulation_score"`
	Signal           Text     `json:"signal"`
	Sparkline        []Number `json:"sparkline"`
	WeightNow        Number   `json:"wght_now"`
	WeightChange5D   Number   `json:"wght_change_5d"`
	WeightChange20D  Number   `json:"wght_change_20d"`
	ExhaustionChange Number   `json:"exh_rt_incrs"`
}

// ConsecutiveBuy is one row of the consecutive net-buy ranking. Day fields
// are net buy quantities for D-1..D-3.
type ConsecutiveBuy struct {
	Rank  Number `json:"rank"`
	Code  Text   `json:"stk_cd"`
	Name  Text   `json:"stk_nm"`
	Price Number `json:"cur_prc"`
	D1    Number `json:"dm1"`
	D2    Number `json:"dm2"`
	D3    Number `json:"dm3"`
	Total Number `json:"tot"`
}

// StockDetail is the on-demand quote for a single code. MarketCap is in 억 KRW.
type StockDetail struct {
	Code        Text   `json:"code"`
	Name        Text   `json:"name"`
	Price       Number `json:"curPrc"`
	Change      Number `json:"change"`
	ChangePct   Number `json:"changePct"`
	Signal      Text   `json:"signal"`
	Open        Number `json:"open"`
	High        Number `json:"high"`
	Low         Number `json:"low"`
	Volume      Number `json:"volume"`
	MarketCap   Number `json:"marketCap"`
	PER         Number `json:"per"`
	PBR         Number `json:"pbr"`
	ForeignRate Number `json:"foreignRate"`
}
