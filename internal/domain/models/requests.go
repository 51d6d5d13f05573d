package models

// Requests for the dashboard toggle endpoints.

type SectorTabRequest struct {
	Mode string `json:"mode" validate:"required,max=32"`
}

type SellPopupRequest struct {
	Key string `json:"key" validate:"required,max=8"`
}

type StockDetailRequest struct {
	Code string `param:"code" validate:"required,stockcode"`
}

type FeedRequest struct {
	Feed string `param:"feed" validate:"required"`
}
