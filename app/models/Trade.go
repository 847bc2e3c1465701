package models

type TradeStatus string

const (
	TradePending  TradeStatus = "pending"
	TradeAccepted TradeStatus = "accepted"
	TradeRejected TradeStatus = "rejected"
)

// TradeOffer is immutable once it leaves the pending status.
type TradeOffer struct {
	Id             string      `json:"id"`
	FromPlayerId   string      `json:"fromPlayerId"`
	ToPlayerId     string      `json:"toPlayerId"`
	FromCash       int         `json:"fromCash"`
	ToCash         int         `json:"toCash"`
	FromProperties []int       `json:"fromProperties"`
	ToProperties   []int       `json:"toProperties"`
	Status         TradeStatus `json:"status"`
	Timestamp      int64       `json:"timestamp"`
}
