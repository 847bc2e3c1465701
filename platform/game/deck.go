package game

import (
	"github.com/bluemarble/bluemarble-backend/app/models"
	"github.com/bluemarble/bluemarble-backend/platform/board"
)

type CardKind string

const (
	CardMoveStart      CardKind = "move-start"
	CardMoveBack       CardKind = "move-back"
	CardBonus          CardKind = "bonus"
	CardFine           CardKind = "fine"
	CardMoveForward    CardKind = "move-forward"
	CardEscapeIsland   CardKind = "escape-island"
	CardTeleport       CardKind = "teleport"
	CardSalaryBonus    CardKind = "salary-bonus"
	CardWelfareCollect CardKind = "welfare-collect"
	CardInfo           CardKind = "info"
)

type Card struct {
	Id     int
	Kind   CardKind
	Amount int // bonus/fine amount, or step count for moves
	To     int // teleport destination
	Text   string
}

// goldenKeyDeck is the fixed 20-card catalogue. Draws walk the deck
// cyclically via the state's deck pointer, never re-shuffled.
var goldenKeyDeck = []Card{
	{Id: 1, Kind: CardMoveStart, Text: "Advance to Start (+200,000)"},
	{Id: 2, Kind: CardMoveBack, Amount: 3, Text: "Go back 3 cells"},
	{Id: 3, Kind: CardBonus, Amount: 100000, Text: "Lottery win +100,000"},
	{Id: 4, Kind: CardFine, Amount: 50000, Text: "Fine -50,000"},
	{Id: 5, Kind: CardMoveForward, Amount: 2, Text: "Move forward 2 cells"},
	{Id: 6, Kind: CardMoveForward, Amount: 5, Text: "Move forward 5 cells"},
	{Id: 7, Kind: CardEscapeIsland, Text: "Escape the island"},
	{Id: 8, Kind: CardBonus, Amount: 80000, Text: "Tax refund +80,000"},
	{Id: 9, Kind: CardFine, Amount: 20000, Text: "Building upkeep -20,000"},
	{Id: 10, Kind: CardBonus, Amount: 30000, Text: "Gift +30,000"},
	{Id: 11, Kind: CardFine, Amount: 40000, Text: "Donation -40,000"},
	{Id: 12, Kind: CardTeleport, To: board.SpaceTravelPos, Text: "Travel to Space Travel"},
	{Id: 13, Kind: CardBonus, Amount: 150000, Text: "Lucky day +150,000"},
	{Id: 14, Kind: CardFine, Amount: 150000, Text: "Unlucky day -150,000"},
	{Id: 15, Kind: CardSalaryBonus, Amount: 200000, Text: "Special salary bonus +200,000"},
	{Id: 16, Kind: CardFine, Amount: 70000, Text: "Special tax -70,000"},
	{Id: 17, Kind: CardWelfareCollect, Text: "Collect the welfare fund"},
	{Id: 18, Kind: CardBonus, Amount: 50000, Text: "Interest income +50,000"},
	{Id: 19, Kind: CardFine, Amount: 60000, Text: "Penalty -60,000"},
	{Id: 20, Kind: CardBonus, Amount: 100000, Text: "Insurance refund +100,000"},
}

// drawGoldenKey takes the next card off the cyclic deck and applies it to
// the acting player. Fines feed the shared welfare pool.
func drawGoldenKey(state *models.GameState, player *models.Player) Card {
	card := goldenKeyDeck[state.DeckPointer%len(goldenKeyDeck)]
	state.DeckPointer++
	applyCard(state, player, card)
	return card
}

func applyCard(state *models.GameState, player *models.Player, card Card) {
	switch card.Kind {
	case CardMoveStart:
		player.Position = board.StartPos
		player.Cash += LapSalary
		logf(state, "%s golden key: %s", player.Name, card.Text)
	case CardMoveBack:
		player.Position -= card.Amount
		if player.Position < 0 {
			player.Position = 0
		}
		logf(state, "%s golden key: %s", player.Name, card.Text)
	case CardBonus, CardSalaryBonus:
		player.Cash += card.Amount
		logf(state, "%s golden key: %s", player.Name, card.Text)
	case CardFine:
		player.Cash -= card.Amount
		state.WelfarePool += card.Amount
		logf(state, "%s golden key: %s", player.Name, card.Text)
	case CardMoveForward:
		player.Position = (player.Position + card.Amount) % len(state.Board)
		logf(state, "%s golden key: %s", player.Name, card.Text)
	case CardEscapeIsland:
		if player.InIsland > 0 {
			player.InIsland = 0
			logf(state, "%s golden key: escaped the island", player.Name)
		} else {
			logf(state, "%s golden key: %s (no effect)", player.Name, card.Text)
		}
	case CardTeleport:
		player.Position = card.To
		logf(state, "%s golden key: moved to cell %d", player.Name, card.To)
	case CardWelfareCollect:
		player.Cash += state.WelfarePool
		logf(state, "%s golden key: collected welfare fund %d", player.Name, state.WelfarePool)
		state.WelfarePool = 0
	default:
		logf(state, "%s golden key: %s", player.Name, card.Text)
	}
}
