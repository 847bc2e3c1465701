package game

import (
	"encoding/json"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/bluemarble/bluemarble-backend/app/models"
	"github.com/bluemarble/bluemarble-backend/platform/board"
	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"
)

const autoSaveInterval = 3 * time.Minute

var playerColors = []string{"red", "blue", "yellow", "green", "purple"}

// Room owns one match: its GameState, doubles bookkeeping, trade table and
// AI policies. Every mutating action takes the room mutex, so at most one
// mutation is in flight per room while separate rooms run in parallel.
type Room struct {
	Id   string
	Name string

	mu          sync.Mutex
	state       *models.GameState
	started     bool
	over        bool
	doubleCount map[string]int
	trades      *TradeManager
	aiPlayers   map[string]*AIPolicy
	rng         *rand.Rand
	roll        func() (int, int)
	stopSave    func()
	store       SaveStore
	sched       Scheduler
}

type RollResult struct {
	PlayerId string            `json:"playerId"`
	Dice     [2]int            `json:"dice"`
	IsDouble bool              `json:"isDouble"`
	Confined bool              `json:"confined"`
	Winner   *models.Player    `json:"winner,omitempty"`
	State    *models.GameState `json:"state"`
}

type AIAction struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type AITurnResult struct {
	Decision Decision          `json:"decision"`
	Actions  []AIAction        `json:"actions"`
	State    *models.GameState `json:"state"`
}

func newRoom(id, name string, store SaveStore, sched Scheduler) *Room {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	r := &Room{
		Id:          id,
		Name:        name,
		doubleCount: make(map[string]int),
		trades:      NewTradeManager(),
		aiPlayers:   make(map[string]*AIPolicy),
		rng:         rng,
		store:       store,
		sched:       sched,
	}
	r.roll = func() (int, int) { return r.rng.Intn(6) + 1, r.rng.Intn(6) + 1 }
	return r
}

func newPlayer(name, color string) *models.Player {
	return &models.Player{
		Id:    uuid.NewV4().String(),
		Name:  name,
		Color: color,
		Cash:  StartingCash,
	}
}

// SetRollFunc overrides the dice source. Test hook.
func (r *Room) SetRollFunc(f func() (int, int)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.roll = f
}

// SeedRand reseeds the room's random source for deterministic AI behavior.
// Call before adding AI players.
func (r *Room) SeedRand(seed int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rng = rand.New(rand.NewSource(seed))
}

// Snapshot returns a deep copy of the current state, safe to marshal and
// broadcast without holding the room lock.
func (r *Room) Snapshot() *models.GameState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

func (r *Room) snapshotLocked() *models.GameState {
	blob, err := json.Marshal(r.state)
	if err != nil {
		return r.state
	}
	snap := new(models.GameState)
	if err := json.Unmarshal(blob, snap); err != nil {
		return r.state
	}
	return snap
}

func (r *Room) Started() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.started
}

func (r *Room) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.state.Players)
}

func (r *Room) Join(playerName, color string) (*models.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return nil, errors.New("game already started")
	}
	if len(r.state.Players) >= MaxPlayers {
		return nil, errors.New("room is full")
	}
	for _, p := range r.state.Players {
		if p.Color == color {
			return nil, errors.New("color already taken")
		}
	}
	player := newPlayer(playerName, color)
	r.state.Players = append(r.state.Players, player)
	r.state.TurnOrder = append(r.state.TurnOrder, player.Id)
	return player, nil
}

func (r *Room) Start() (*models.GameState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return nil, errors.New("game already started")
	}
	if len(r.state.Players) < 2 {
		return nil, errors.New("need at least 2 players")
	}
	r.started = true
	logf(r.state, "game started with %d players", len(r.state.Players))
	return r.snapshotLocked(), nil
}

// advanceTurnLocked moves currentTurn to the next non-bankrupt player.
func (r *Room) advanceTurnLocked() string {
	next := NextTurn(r.state.TurnOrder, r.state.CurrentTurn)
	for i := 0; i < len(r.state.TurnOrder); i++ {
		p := r.state.PlayerById(next)
		if p == nil || !p.Bankrupt {
			break
		}
		next = NextTurn(r.state.TurnOrder, next)
	}
	r.state.CurrentTurn = next
	return next
}

// RollDice resolves one roll for the player whose turn it is: island
// confinement, movement with lap salary, the landed cell's effect and the
// consecutive-doubles rule.
func (r *Room) RollDice() (*RollResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.started || r.over {
		return nil, errors.New("game is not running")
	}
	current := r.state.PlayerById(r.state.CurrentTurn)
	if current == nil {
		return nil, errors.New("player not found")
	}

	if current.InIsland > 0 {
		current.InIsland--
		logf(r.state, "%s waits on the island (%d turns left)", current.Name, current.InIsland)
		r.advanceTurnLocked()
		return &RollResult{PlayerId: current.Id, Confined: true, State: r.snapshotLocked()}, nil
	}

	d1, d2 := r.roll()
	steps := d1 + d2
	if current.Position+steps >= len(r.state.Board) {
		current.Cash += LapSalary
		logf(r.state, "%s passed Start, salary +%d", current.Name, LapSalary)
	}
	current.Position = (current.Position + steps) % len(r.state.Board)

	winner := handleCell(r.state, current, &r.state.Board[current.Position])

	isDouble := d1 == d2
	if isDouble {
		r.doubleCount[current.Id]++
		if r.doubleCount[current.Id] >= DoublesForJail {
			current.Position = board.IslandPos
			current.InIsland = IslandTurns
			r.doubleCount[current.Id] = 0
			logf(r.state, "%s rolled 3 doubles in a row, off to the island", current.Name)
			r.advanceTurnLocked()
		} else {
			logf(r.state, "%s rolled a double (%d in a row), rolls again", current.Name, r.doubleCount[current.Id])
			if current.Bankrupt {
				r.advanceTurnLocked()
			}
		}
	} else {
		r.doubleCount[current.Id] = 0
		r.advanceTurnLocked()
	}
	if winner != nil {
		r.over = true
	}

	return &RollResult{
		PlayerId: current.Id,
		Dice:     [2]int{d1, d2},
		IsDouble: isDouble,
		Winner:   winner,
		State:    r.snapshotLocked(),
	}, nil
}

// BuyProperty lets the player whose turn it is purchase the property.
func (r *Room) BuyProperty(propertyId int) (*models.Property, *models.GameState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current := r.state.PlayerById(r.state.CurrentTurn)
	if current == nil {
		return nil, nil, errors.New("player not found")
	}
	prop, err := buyProperty(r.state, current, propertyId)
	if err != nil {
		return nil, nil, err
	}
	return prop, r.snapshotLocked(), nil
}

func (r *Room) BuildBuilding(propertyId int, tier models.Building) (*models.Property, *models.GameState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current := r.state.PlayerById(r.state.CurrentTurn)
	if current == nil {
		return nil, nil, errors.New("player not found")
	}
	prop, err := buildBuilding(r.state, current, propertyId, tier)
	if err != nil {
		return nil, nil, err
	}
	return prop, r.snapshotLocked(), nil
}

func (r *Room) EndTurn() (prev, next string, state *models.GameState, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.started {
		return "", "", nil, errors.New("game is not running")
	}
	prev = r.state.CurrentTurn
	next = r.advanceTurnLocked()
	return prev, next, r.snapshotLocked(), nil
}

// ProposeTrade records a pending offer between two known players. Any
// player may propose at any time, turn or not.
func (r *Room) ProposeTrade(fromId, toId string, fromCash, toCash int, fromProps, toProps []int) (*models.TradeOffer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if fromId == toId {
		return nil, errors.New("cannot trade with yourself")
	}
	if r.state.PlayerById(fromId) == nil || r.state.PlayerById(toId) == nil {
		return nil, errors.New("player not found")
	}
	return r.trades.Propose(fromId, toId, fromCash, toCash, fromProps, toProps), nil
}

func (r *Room) AcceptTrade(tradeId string) (*models.GameState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.trades.Accept(r.state, tradeId); err != nil {
		return nil, err
	}
	return r.snapshotLocked(), nil
}

func (r *Room) RejectTrade(tradeId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.trades.Reject(tradeId)
}

// Trade looks up one offer by id, resolved or not.
func (r *Room) Trade(tradeId string) (*models.TradeOffer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	offer := r.trades.Get(tradeId)
	if offer == nil {
		return nil, errors.New("trade not found")
	}
	return offer, nil
}

func (r *Room) PendingTrades(playerId string) []*models.TradeOffer {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.trades.PendingFor(playerId)
}

func (r *Room) SellBuilding(playerId string, propertyId int) (*models.GameState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := SellBuilding(r.state, playerId, propertyId); err != nil {
		return nil, err
	}
	return r.snapshotLocked(), nil
}

func (r *Room) SellProperty(playerId string, propertyId int) (*models.GameState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := SellProperty(r.state, playerId, propertyId); err != nil {
		return nil, err
	}
	return r.snapshotLocked(), nil
}

func (r *Room) AddAIPlayer(difficulty models.Difficulty) (*models.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return nil, errors.New("game already started")
	}
	if len(r.state.Players) >= MaxPlayers {
		return nil, errors.New("room is full")
	}
	color := ""
	for _, c := range playerColors {
		used := false
		for _, p := range r.state.Players {
			if p.Color == c {
				used = true
				break
			}
		}
		if !used {
			color = c
			break
		}
	}
	player := newPlayer("AI "+strings.ToUpper(string(difficulty)), color)
	player.IsAI = true
	player.AIDifficulty = difficulty
	r.state.Players = append(r.state.Players, player)
	r.state.TurnOrder = append(r.state.TurnOrder, player.Id)
	r.aiPlayers[player.Id] = NewAIPolicy(difficulty, r.rng)
	return player, nil
}

// AIDelay returns the pacing delay for an AI player, zero for unknown ids.
func (r *Room) AIDelay(aiPlayerId string) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	if policy, ok := r.aiPlayers[aiPlayerId]; ok {
		return policy.ActionDelay()
	}
	return 0
}

// ExecuteAITurn asks the player's policy for one decision and applies it
// through the same operations humans use. A decision that fails validation
// degrades to a pass.
func (r *Room) ExecuteAITurn(aiPlayerId string) (*AITurnResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	player := r.state.PlayerById(aiPlayerId)
	if player == nil || !player.IsAI {
		return nil, errors.New("not an AI player")
	}
	policy, ok := r.aiPlayers[aiPlayerId]
	if !ok {
		return nil, errors.New("no policy for player")
	}

	decision := policy.Decide(r.state, player)
	result := &AITurnResult{Decision: decision}

	switch decision.Action {
	case ActionBuy:
		if _, err := buyProperty(r.state, player, decision.PropertyId); err == nil {
			result.Actions = append(result.Actions, AIAction{Type: ActionBuy, Data: decision.PropertyId})
		}
	case ActionBuild:
		if _, err := buildBuilding(r.state, player, decision.PropertyId, decision.BuildingTier); err == nil {
			result.Actions = append(result.Actions, AIAction{Type: ActionBuild, Data: decision})
		}
	case ActionSell:
		if err := SellBuilding(r.state, aiPlayerId, decision.PropertyId); err == nil {
			result.Actions = append(result.Actions, AIAction{Type: "sellBuilding", Data: decision.PropertyId})
		} else if err := SellProperty(r.state, aiPlayerId, decision.PropertyId); err == nil {
			result.Actions = append(result.Actions, AIAction{Type: "sellProperty", Data: decision.PropertyId})
		}
	case ActionTrade:
		offer := r.trades.Propose(aiPlayerId, decision.TargetId, 0, decision.CashRequest, decision.Properties, nil)
		result.Actions = append(result.Actions, AIAction{Type: ActionTrade, Data: offer})
	}
	if len(result.Actions) == 0 {
		result.Actions = append(result.Actions, AIAction{Type: ActionPass, Data: nil})
	}
	result.State = r.snapshotLocked()
	return result, nil
}

// Save persists a snapshot through the store. The marshal happens under
// the lock, the write does not.
func (r *Room) Save() error {
	r.mu.Lock()
	blob, err := json.Marshal(r.state)
	name := r.Name
	r.mu.Unlock()
	if err != nil {
		return err
	}
	return r.store.Upsert(&models.GameSave{
		RoomId:      r.Id,
		RoomName:    name,
		State:       blob,
		LastUpdated: time.Now(),
		IsActive:    true,
	})
}

// Load replaces the live state with the last active save.
func (r *Room) Load() (*models.GameState, error) {
	save, err := r.store.Load(r.Id)
	if err != nil {
		return nil, errors.New("no saved game")
	}
	state := new(models.GameState)
	if err := json.Unmarshal(save.State, state); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = state
	r.restorePoliciesLocked()
	return r.snapshotLocked(), nil
}

func (r *Room) restorePoliciesLocked() {
	for _, p := range r.state.Players {
		if p.IsAI {
			if _, ok := r.aiPlayers[p.Id]; !ok {
				r.aiPlayers[p.Id] = NewAIPolicy(p.AIDifficulty, r.rng)
			}
		}
	}
}

func (r *Room) startAutoSave() {
	r.stopSave = r.sched.Every(autoSaveInterval, func() {
		if err := r.Save(); err != nil {
			log.WithFields(log.Fields{"room": r.Id, "err": err}).Warn("autosave failed")
		}
	})
}

// Registry is the process-wide table of live rooms.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room
	store SaveStore
	sched Scheduler
}

func NewRegistry(store SaveStore, sched Scheduler) *Registry {
	return &Registry{
		rooms: make(map[string]*Room),
		store: store,
		sched: sched,
	}
}

// Create makes a room with its first player and starts the autosave loop.
func (reg *Registry) Create(roomName, playerName, color string) (*Room, *models.Player) {
	room := newRoom(uuid.NewV4().String(), roomName, reg.store, reg.sched)
	player := newPlayer(playerName, color)
	room.state = &models.GameState{
		Board:       board.Load(),
		Players:     []*models.Player{player},
		CurrentTurn: player.Id,
		TurnOrder:   []string{player.Id},
	}
	room.startAutoSave()

	reg.mu.Lock()
	reg.rooms[room.Id] = room
	reg.mu.Unlock()

	log.WithFields(log.Fields{"room": room.Id, "name": roomName}).Info("room created")
	return room, player
}

func (reg *Registry) Get(roomId string) *Room {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return reg.rooms[roomId]
}

func (reg *Registry) Remove(roomId string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.rooms, roomId)
}

func (reg *Registry) List() []models.RoomInfo {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	infos := make([]models.RoomInfo, 0, len(reg.rooms))
	for _, room := range reg.rooms {
		infos = append(infos, models.RoomInfo{
			Id:      room.Id,
			Name:    room.Name,
			Players: room.PlayerCount(),
			Started: room.Started(),
		})
	}
	return infos
}

// EndGame stops autosave, deactivates the persisted record and drops the
// room. A store failure is reported but the room is removed regardless.
func (reg *Registry) EndGame(roomId string) error {
	room := reg.Get(roomId)
	if room == nil {
		return errors.New("room not found")
	}
	room.mu.Lock()
	room.over = true
	stop := room.stopSave
	room.stopSave = nil
	room.mu.Unlock()
	if stop != nil {
		stop()
	}
	err := reg.store.Deactivate(roomId)
	reg.Remove(roomId)
	if err != nil {
		log.WithFields(log.Fields{"room": roomId, "err": err}).Warn("failed to deactivate save")
	}
	return err
}

// Reconnect re-admits a known player: the room is served from memory when
// live, otherwise restored from its last active save.
func (reg *Registry) Reconnect(roomId, playerId string) (*Room, *models.GameState, error) {
	room := reg.Get(roomId)
	if room == nil {
		save, err := reg.store.Load(roomId)
		if err != nil {
			return nil, nil, errors.New("game not found")
		}
		state := new(models.GameState)
		if err := json.Unmarshal(save.State, state); err != nil {
			return nil, nil, err
		}
		room = newRoom(roomId, save.RoomName, reg.store, reg.sched)
		room.state = state
		room.started = true
		room.restorePoliciesLocked()
		room.startAutoSave()
		reg.mu.Lock()
		reg.rooms[roomId] = room
		reg.mu.Unlock()
		log.WithFields(log.Fields{"room": roomId}).Info("room restored from save")
	}

	room.mu.Lock()
	defer room.mu.Unlock()
	if room.state.PlayerById(playerId) == nil {
		return nil, nil, errors.New("player not found")
	}
	return room, room.snapshotLocked(), nil
}
