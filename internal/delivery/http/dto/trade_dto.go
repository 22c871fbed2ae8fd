package dto

// TradeRequest represents the order submission payload
type TradeRequest struct {
	Symbol   string `json:"symbol" validate:"required,max=16"`
	Side     string `json:"side" validate:"required,oneof=BUY SELL"`
	Quantity int64  `json:"quantity" validate:"required,gt=0"`
}

// PredictOutput represents the prediction response
type PredictOutput struct {
	Symbol          string  `json:"symbol"`
	HorizonMinutes  int     `json:"horizon_minutes"`
	PredictedReturn float64 `json:"predicted_return"`
	Confidence      float64 `json:"confidence"`
}
