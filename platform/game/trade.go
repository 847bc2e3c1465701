package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/bluemarble/bluemarble-backend/app/models"
	uuid "github.com/satori/go.uuid"
)

// TradeManager holds the offer table of one room. Offers are validated at
// acceptance time, not proposal time, so an offer whose assets changed
// hands in the meantime fails cleanly instead of half-applying.
type TradeManager struct {
	offers map[string]*models.TradeOffer
}

func NewTradeManager() *TradeManager {
	return &TradeManager{offers: make(map[string]*models.TradeOffer)}
}

// Propose records a pending offer. No funds or assets move yet.
func (tm *TradeManager) Propose(fromId, toId string, fromCash, toCash int, fromProps, toProps []int) *models.TradeOffer {
	offer := &models.TradeOffer{
		Id:             uuid.NewV4().String(),
		FromPlayerId:   fromId,
		ToPlayerId:     toId,
		FromCash:       fromCash,
		ToCash:         toCash,
		FromProperties: fromProps,
		ToProperties:   toProps,
		Status:         models.TradePending,
		Timestamp:      time.Now().UnixNano() / int64(time.Millisecond),
	}
	tm.offers[offer.Id] = offer
	return offer
}

// Accept validates both sides against the current state and applies the
// swap all-or-nothing. A failed validation leaves the offer pending and
// the state untouched.
func (tm *TradeManager) Accept(state *models.GameState, tradeId string) error {
	offer, ok := tm.offers[tradeId]
	if !ok {
		return errors.New("trade not found")
	}
	if offer.Status != models.TradePending {
		return errors.New("trade already resolved")
	}

	from := state.PlayerById(offer.FromPlayerId)
	to := state.PlayerById(offer.ToPlayerId)
	if from == nil || to == nil {
		return errors.New("player not found")
	}
	if from.Cash < offer.FromCash {
		return fmt.Errorf("%s cannot cover the offered cash", from.Name)
	}
	if to.Cash < offer.ToCash {
		return fmt.Errorf("%s cannot cover the offered cash", to.Name)
	}
	for _, id := range offer.FromProperties {
		if err := ownedBy(state, id, from); err != nil {
			return err
		}
	}
	for _, id := range offer.ToProperties {
		if err := ownedBy(state, id, to); err != nil {
			return err
		}
	}

	from.Cash += offer.ToCash - offer.FromCash
	to.Cash += offer.FromCash - offer.ToCash
	for _, id := range offer.FromProperties {
		state.CellById(id).Property.Owner = to.Id
	}
	for _, id := range offer.ToProperties {
		state.CellById(id).Property.Owner = from.Id
	}
	offer.Status = models.TradeAccepted

	logf(state, "trade settled: %s gave %d cash and %d properties, %s gave %d cash and %d properties",
		from.Name, offer.FromCash, len(offer.FromProperties),
		to.Name, offer.ToCash, len(offer.ToProperties))
	return nil
}

func ownedBy(state *models.GameState, propertyId int, player *models.Player) error {
	cell := state.CellById(propertyId)
	if cell == nil || cell.Type != models.CellProperty || cell.Property == nil || cell.Property.Owner != player.Id {
		return fmt.Errorf("%s no longer owns property %d", player.Name, propertyId)
	}
	return nil
}

// Reject marks a pending offer rejected; resolved offers stay untouched.
func (tm *TradeManager) Reject(tradeId string) error {
	offer, ok := tm.offers[tradeId]
	if !ok {
		return errors.New("trade not found")
	}
	if offer.Status != models.TradePending {
		return errors.New("trade already resolved")
	}
	offer.Status = models.TradeRejected
	return nil
}

// PendingFor returns the pending offers where playerId is either party.
func (tm *TradeManager) PendingFor(playerId string) []*models.TradeOffer {
	var pending []*models.TradeOffer
	for _, offer := range tm.offers {
		if offer.Status == models.TradePending && (offer.FromPlayerId == playerId || offer.ToPlayerId == playerId) {
			pending = append(pending, offer)
		}
	}
	return pending
}

func (tm *TradeManager) Get(tradeId string) *models.TradeOffer {
	return tm.offers[tradeId]
}
