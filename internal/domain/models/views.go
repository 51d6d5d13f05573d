package models

// Tone is the direction class of a value: up, dn or fl.
type Tone string

const (
	ToneUp   Tone = "up"
	ToneDown Tone = "dn"
	ToneFlat Tone = "fl"
)

// Side is where a net flow bar is drawn. Neutral rows get no bar fill.
type Side string

const (
	SideBuy     Side = "buy"
	SideSell    Side = "sell"
	SideNeutral Side = "neutral"
)

// Polarity classes table cells: pos, neg or zero.
type Polarity string

const (
	PolarityPos  Polarity = "pos"
	PolarityNeg  Polarity = "neg"
	PolarityZero Polarity = "zero"
)

// Feed names, shared by the orchestrator, the board and the HTTP surface.
const (
	FeedIndices        = "indices"
	FeedInstitutions   = "institutions"
	FeedForeignTop     = "foreign-top"
	FeedSectorFlow     = "foreign-sector"
	FeedAccumulation   = "accumulation"
	FeedConsecutiveBuy = "consecutive-buy"
	FeedProgramTop     = "program-top"
	FeedStockDetail    = "stock"
	FeedSellPopup      = "sell-popup"
)

// --- indices ---

type IndexCard struct {
	Key           string  `json:"key"`
	Value         float64 `json:"value"`
	ValueText     string  `json:"valueText"`
	Change        float64 `json:"change"`
	ChangeText    string  `json:"changeText"`
	ChangePct     float64 `json:"changePct"`
	ChangePctText string  `json:"changePctText"`
	Tone          Tone    `json:"tone"`
	Arrow         string  `json:"arrow,omitempty"`
}

type IndicesView struct {
	Cards []IndexCard `json:"cards"`
}

// --- foreign top ---

type RankedItem struct {
	Rank             int     `json:"rank"`
	RankClass        string  `json:"rankClass,omitempty"`
	Code             string  `json:"code"`
	Name             string  `json:"name"`
	Amount           float64 `json:"amount"`
	AmountText       string  `json:"amountText"`
	SignedAmountText string  `json:"signedAmountText"`
	Side             Side    `json:"side"`
	ChangePct        float64 `json:"changePct"`
	ChangePctText    string  `json:"changePctText"`
	ChangeTone       Tone    `json:"changeTone"`
	BarWidthPct      int     `json:"barWidthPct"`
}

type ForeignTopView struct {
	Buy       View[[]RankedItem] `json:"buy"`
	Sell      View[[]RankedItem] `json:"sell"`
	BuyCount  int                `json:"buyCount"`
	SellCount int                `json:"sellCount"`
}

// --- sector flow ---

type SectorTab string

const (
	SectorTabForeign     SectorTab = "foreign"
	SectorTabInstitution SectorTab = "institution"
)

type SectorRow struct {
	Sector      string  `json:"sector"`
	Amount      float64 `json:"amount"`
	AmountText  string  `json:"amountText"`
	Side        Side    `json:"side"`
	BarWidthPct int     `json:"barWidthPct"`
}

type SectorFlowView struct {
	Tab      SectorTab   `json:"tab"`
	TabLabel string      `json:"tabLabel"`
	Rows     []SectorRow `json:"rows"`
}

// --- institutions ---

type InstitutionItem struct {
	Rank          int     `json:"rank"`
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	Clickable     bool    `json:"clickable"`
	Amount        float64 `json:"amount"`
	AmountText    string  `json:"amountText"`
	AmountTone    Tone    `json:"amountTone"`
	ChangePct     float64 `json:"changePct"`
	ChangePctText string  `json:"changePctText"`
	ChangeTone    Tone    `json:"changeTone"`
	BarWidthPct   int     `json:"barWidthPct"`
	BarTone       Tone    `json:"barTone"`
}

type InstitutionColumn struct {
	Key           string                  `json:"key"`
	Name          string                  `json:"name"`
	Class         string                  `json:"class"`
	Buy           View[[]InstitutionItem] `json:"buy"`
	SellCount     int                     `json:"sellCount"`
	SellAvailable bool                    `json:"sellAvailable"`
	SellLabel     string                  `json:"sellLabel,omitempty"`
}

type InstitutionsView struct {
	Columns []InstitutionColumn `json:"columns"`
}

type SellPopupView struct {
	Key   string                  `json:"key"`
	Name  string                  `json:"name"`
	Class string                  `json:"class"`
	Title string                  `json:"title,omitempty"`
	Items View[[]InstitutionItem] `json:"items"`
}

// --- program top ---

type ProgramRow struct {
	Rank          int     `json:"rank"`
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	Market        string  `json:"market"`
	MarketClass   string  `json:"marketClass"`
	Price         float64 `json:"price"`
	PriceText     string  `json:"priceText"`
	ChangePct     float64 `json:"changePct"`
	ChangePctText string  `json:"changePctText"`
	ChangeTone    Tone    `json:"changeTone"`
	NetAmount     float64 `json:"netAmount"`
	NetAmountText string  `json:"netAmountText"`
	Side          Side    `json:"side"`
}

// ExpansionMarker tells the renderer whether a "show all" control applies.
type ExpansionMarker struct {
	Available bool   `json:"available"`
	Expanded  bool   `json:"expanded"`
	Count     int    `json:"count"`
	Label     string `json:"label,omitempty"`
}

type ProgramTopView struct {
	Rows      []ProgramRow    `json:"rows"`
	Total     int             `json:"total"`
	Expansion ExpansionMarker `json:"expansion"`
}

// --- accumulation ---

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type SparklineVariant string

const (
	SparklineMini SparklineVariant = "mini"
	SparklineFull SparklineVariant = "full"
)

// Sparkline is viewport geometry: Polyline is the outline, Polygon the filled
// area closed along the bottom edge.
type Sparkline struct {
	Variant  SparklineVariant `json:"variant"`
	Width    int              `json:"width"`
	Height   int              `json:"height"`
	Points   []Point          `json:"points"`
	Polyline string           `json:"polyline"`
	Polygon  string           `json:"polygon"`
}

type AccumulationCard struct {
	Code            string     `json:"code"`
	Name            string     `json:"name"`
	Grade           string     `json:"grade"`
	GradeClass      string     `json:"gradeClass"`
	Score           float64    `json:"score"`
	ScoreText       string     `json:"scoreText"`
	Sparkline       *Sparkline `json:"sparkline,omitempty"`
	Change5DText    string     `json:"change5dText"`
	Change5DClass   Polarity   `json:"change5dClass"`
	Change20DText   string     `json:"change20dText"`
	Change20DClass  Polarity   `json:"change20dClass"`
	Signal          string     `json:"signal"`
	SignalClass     string     `json:"signalClass"`
	SignalLabel     string     `json:"signalLabel"`
}

type WeightRow struct {
	Rank             int        `json:"rank"`
	Code             string     `json:"code"`
	Name             string     `json:"name"`
	WeightNowText    string     `json:"weightNowText"`
	Change5D         float64    `json:"change5d"`
	Change5DText     string     `json:"change5dText"`
	Change5DClass    Polarity   `json:"change5dClass"`
	Change20DText    string     `json:"change20dText"`
	Change20DClass   Polarity   `json:"change20dClass"`
	ExhaustionText   string     `json:"exhaustionText"`
	ExhaustionClass  Polarity   `json:"exhaustionClass"`
	Sparkline        *Sparkline `json:"sparkline,omitempty"`
}

type AccumulationView struct {
	Cards []AccumulationCard `json:"cards"`
	Table []WeightRow        `json:"table"`
}

// --- consecutive buy ---

type ConsecutiveRow struct {
	Rank          int      `json:"rank"`
	Code          string   `json:"code"`
	Name          string   `json:"name"`
	PriceText     string   `json:"priceText"`
	D1Text        string   `json:"d1Text"`
	D2Text        string   `json:"d2Text"`
	D3Text        string   `json:"d3Text"`
	TotalText     string   `json:"totalText"`
	TotalPolarity Polarity `json:"totalPolarity"`
}

type ConsecutiveBuyView struct {
	Rows []ConsecutiveRow `json:"rows"`
}

// --- stock detail ---

type StockDetailView struct {
	Code            string  `json:"code"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	PriceText       string  `json:"priceText"`
	Arrow           string  `json:"arrow,omitempty"`
	Tone            Tone    `json:"tone"`
	ChangeText      string  `json:"changeText"`
	ChangePctText   string  `json:"changePctText"`
	OpenText        string  `json:"openText"`
	HighText        string  `json:"highText"`
	LowText         string  `json:"lowText"`
	VolumeText      string  `json:"volumeText"`
	MarketCapText   string  `json:"marketCapText"`
	PERText         string  `json:"perText"`
	PBRText         string  `json:"pbrText"`
	ForeignRateText string  `json:"foreignRateText"`
}
