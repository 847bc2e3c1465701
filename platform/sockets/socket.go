package socket

import (
	"encoding/json"
	"net/http"
	"os"

	socketio "github.com/googollee/go-socket.io"
	"github.com/gomodule/redigo/redis"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"

	"github.com/bluemarble/bluemarble-backend/app/models"
	"github.com/bluemarble/bluemarble-backend/platform/cache"
	"github.com/bluemarble/bluemarble-backend/platform/game"
)

type roomDto struct {
	RoomId     string `json:"roomId"`
	RoomName   string `json:"roomName"`
	PlayerId   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Color      string `json:"color"`
	Message    string `json:"message"`
	Difficulty string `json:"difficulty"`
	AIPlayerId string `json:"aiPlayerId"`
	TradeId    string `json:"tradeId"`
	PropertyId int    `json:"propertyId"`
	Type       string `json:"type"`
}

type tradeDto struct {
	RoomId         string `json:"roomId"`
	FromPlayerId   string `json:"fromPlayerId"`
	ToPlayerId     string `json:"toPlayerId"`
	FromCash       int    `json:"fromCash"`
	ToCash         int    `json:"toCash"`
	FromProperties []int  `json:"fromProperties"`
	ToProperties   []int  `json:"toProperties"`
}

func marshal(v interface{}) string {
	blob, err := json.Marshal(v)
	if err != nil {
		log.WithError(err).Error("marshal failed")
		return "{}"
	}
	return string(blob)
}

// CreateSocketIOServer wires every game action onto socket.io events. All
// state changes go through the registry's rooms; this layer only parses,
// dispatches and broadcasts.
func CreateSocketIOServer(registry *game.Registry, pool *redis.Pool, sched game.Scheduler) {
	server, err := socketio.NewServer(nil)
	if err != nil {
		panic(err)
	}

	broadcastState := func(roomId string, state *models.GameState) {
		server.BroadcastToRoom("/", roomId, "game-state", marshal(state))
	}

	fail := func(s socketio.Conn, msg string) {
		s.Emit("error-message", msg)
	}

	server.OnConnect("/", func(s socketio.Conn) error {
		s.SetContext("")
		return nil
	})

	server.OnEvent("/", "create-room", func(s socketio.Conn, jsonStr string) {
		var dto roomDto
		if err := json.Unmarshal([]byte(jsonStr), &dto); err != nil {
			fail(s, "Invalid request")
			return
		}
		room, player := registry.Create(dto.RoomName, dto.PlayerName, dto.Color)
		s.Join(room.Id)
		s.Emit("room-created", marshal(map[string]interface{}{"roomId": room.Id, "player": player}))
		server.BroadcastToRoom("/", room.Id, "player-joined", marshal(player))
	})

	server.OnEvent("/", "join-room", func(s socketio.Conn, jsonStr string) {
		var dto roomDto
		if err := json.Unmarshal([]byte(jsonStr), &dto); err != nil {
			fail(s, "Invalid request")
			return
		}
		room := registry.Get(dto.RoomId)
		if room == nil {
			fail(s, "Room not found")
			return
		}
		player, err := room.Join(dto.PlayerName, dto.Color)
		if err != nil {
			fail(s, err.Error())
			return
		}
		s.Join(room.Id)
		s.Emit("join-success", marshal(map[string]interface{}{"roomId": room.Id, "player": player}))
		server.BroadcastToRoom("/", room.Id, "player-joined", marshal(player))
	})

	server.OnEvent("/", "start-game", func(s socketio.Conn, jsonStr string) {
		var dto roomDto
		json.Unmarshal([]byte(jsonStr), &dto)
		room := registry.Get(dto.RoomId)
		if room == nil {
			fail(s, "Room not found")
			return
		}
		state, err := room.Start()
		if err != nil {
			fail(s, err.Error())
			return
		}
		server.BroadcastToRoom("/", room.Id, "game-started", marshal(state))
	})

	server.OnEvent("/", "roll-dice", func(s socketio.Conn, jsonStr string) {
		var dto roomDto
		json.Unmarshal([]byte(jsonStr), &dto)
		room := registry.Get(dto.RoomId)
		if room == nil {
			fail(s, "Room not found")
			return
		}
		result, err := room.RollDice()
		if err != nil {
			fail(s, err.Error())
			return
		}
		server.BroadcastToRoom("/", room.Id, "dice-rolled", marshal(result))
		broadcastState(room.Id, result.State)
		if result.Winner != nil {
			server.BroadcastToRoom("/", room.Id, "game-over", marshal(result.Winner))
		}
	})

	server.OnEvent("/", "buy-property", func(s socketio.Conn, jsonStr string) {
		var dto roomDto
		json.Unmarshal([]byte(jsonStr), &dto)
		room := registry.Get(dto.RoomId)
		if room == nil {
			fail(s, "Room not found")
			return
		}
		prop, state, err := room.BuyProperty(dto.PropertyId)
		if err != nil {
			fail(s, err.Error())
			return
		}
		server.BroadcastToRoom("/", room.Id, "property-bought", marshal(prop))
		broadcastState(room.Id, state)
	})

	server.OnEvent("/", "build-building", func(s socketio.Conn, jsonStr string) {
		var dto roomDto
		json.Unmarshal([]byte(jsonStr), &dto)
		room := registry.Get(dto.RoomId)
		if room == nil {
			fail(s, "Room not found")
			return
		}
		prop, state, err := room.BuildBuilding(dto.PropertyId, models.Building(dto.Type))
		if err != nil {
			fail(s, err.Error())
			return
		}
		server.BroadcastToRoom("/", room.Id, "building-built", marshal(prop))
		broadcastState(room.Id, state)
	})

	server.OnEvent("/", "end-turn", func(s socketio.Conn, jsonStr string) {
		var dto roomDto
		json.Unmarshal([]byte(jsonStr), &dto)
		room := registry.Get(dto.RoomId)
		if room == nil {
			fail(s, "Room not found")
			return
		}
		prev, next, state, err := room.EndTurn()
		if err != nil {
			fail(s, err.Error())
			return
		}
		server.BroadcastToRoom("/", room.Id, "turn-ended", marshal(map[string]string{"playerId": prev, "nextPlayerId": next}))
		broadcastState(room.Id, state)
	})

	server.OnEvent("/", "propose-trade", func(s socketio.Conn, jsonStr string) {
		var dto tradeDto
		if err := json.Unmarshal([]byte(jsonStr), &dto); err != nil {
			fail(s, "Invalid request")
			return
		}
		room := registry.Get(dto.RoomId)
		if room == nil {
			fail(s, "Room not found")
			return
		}
		offer, err := room.ProposeTrade(dto.FromPlayerId, dto.ToPlayerId, dto.FromCash, dto.ToCash, dto.FromProperties, dto.ToProperties)
		if err != nil {
			fail(s, err.Error())
			return
		}
		server.BroadcastToRoom("/", room.Id, "trade-proposed", marshal(offer))
	})

	server.OnEvent("/", "accept-trade", func(s socketio.Conn, jsonStr string) {
		var dto roomDto
		json.Unmarshal([]byte(jsonStr), &dto)
		room := registry.Get(dto.RoomId)
		if room == nil {
			fail(s, "Room not found")
			return
		}
		state, err := room.AcceptTrade(dto.TradeId)
		if err != nil {
			fail(s, err.Error())
			return
		}
		offer, err := room.Trade(dto.TradeId)
		if err != nil {
			fail(s, err.Error())
			return
		}
		server.BroadcastToRoom("/", room.Id, "trade-accepted", marshal(offer))
		broadcastState(room.Id, state)
	})

	server.OnEvent("/", "reject-trade", func(s socketio.Conn, jsonStr string) {
		var dto roomDto
		json.Unmarshal([]byte(jsonStr), &dto)
		room := registry.Get(dto.RoomId)
		if room == nil {
			fail(s, "Room not found")
			return
		}
		if err := room.RejectTrade(dto.TradeId); err != nil {
			fail(s, err.Error())
			return
		}
		offer, err := room.Trade(dto.TradeId)
		if err != nil {
			fail(s, err.Error())
			return
		}
		server.BroadcastToRoom("/", room.Id, "trade-rejected", marshal(offer))
	})

	server.OnEvent("/", "pending-trades", func(s socketio.Conn, jsonStr string) {
		var dto roomDto
		json.Unmarshal([]byte(jsonStr), &dto)
		room := registry.Get(dto.RoomId)
		if room == nil {
			fail(s, "Room not found")
			return
		}
		s.Emit("pending-trades", marshal(room.PendingTrades(dto.PlayerId)))
	})

	server.OnEvent("/", "sell-building", func(s socketio.Conn, jsonStr string) {
		var dto roomDto
		json.Unmarshal([]byte(jsonStr), &dto)
		room := registry.Get(dto.RoomId)
		if room == nil {
			fail(s, "Room not found")
			return
		}
		state, err := room.SellBuilding(dto.PlayerId, dto.PropertyId)
		if err != nil {
			fail(s, err.Error())
			return
		}
		broadcastState(room.Id, state)
	})

	server.OnEvent("/", "sell-property", func(s socketio.Conn, jsonStr string) {
		var dto roomDto
		json.Unmarshal([]byte(jsonStr), &dto)
		room := registry.Get(dto.RoomId)
		if room == nil {
			fail(s, "Room not found")
			return
		}
		state, err := room.SellProperty(dto.PlayerId, dto.PropertyId)
		if err != nil {
			fail(s, err.Error())
			return
		}
		broadcastState(room.Id, state)
	})

	server.OnEvent("/", "add-ai-player", func(s socketio.Conn, jsonStr string) {
		var dto roomDto
		json.Unmarshal([]byte(jsonStr), &dto)
		room := registry.Get(dto.RoomId)
		if room == nil {
			fail(s, "Room not found")
			return
		}
		player, err := room.AddAIPlayer(models.Difficulty(dto.Difficulty))
		if err != nil {
			fail(s, err.Error())
			return
		}
		server.BroadcastToRoom("/", room.Id, "player-joined", marshal(player))
	})

	server.OnEvent("/", "execute-ai-turn", func(s socketio.Conn, jsonStr string) {
		var dto roomDto
		json.Unmarshal([]byte(jsonStr), &dto)
		room := registry.Get(dto.RoomId)
		if room == nil {
			fail(s, "Room not found")
			return
		}
		result, err := room.RollDice()
		if err != nil {
			fail(s, err.Error())
			return
		}
		server.BroadcastToRoom("/", room.Id, "dice-rolled", marshal(result))
		broadcastState(room.Id, result.State)
		if result.Winner != nil {
			server.BroadcastToRoom("/", room.Id, "game-over", marshal(result.Winner))
			return
		}
		if result.Confined {
			return
		}
		// decision follows the roll after the difficulty's pacing delay
		sched.After(room.AIDelay(dto.AIPlayerId), func() {
			aiResult, err := room.ExecuteAITurn(dto.AIPlayerId)
			if err != nil {
				log.WithFields(log.Fields{"room": room.Id, "err": err}).Warn("ai turn failed")
				return
			}
			server.BroadcastToRoom("/", room.Id, "ai-turn-executed", marshal(aiResult))
			broadcastState(room.Id, aiResult.State)
		})
	})

	server.OnEvent("/", "save-game", func(s socketio.Conn, jsonStr string) {
		var dto roomDto
		json.Unmarshal([]byte(jsonStr), &dto)
		room := registry.Get(dto.RoomId)
		if room == nil {
			fail(s, "Room not found")
			return
		}
		if err := room.Save(); err != nil {
			fail(s, "Failed to save game")
			return
		}
		s.Emit("game-saved", marshal(map[string]string{"roomId": room.Id}))
	})

	server.OnEvent("/", "load-game", func(s socketio.Conn, jsonStr string) {
		var dto roomDto
		json.Unmarshal([]byte(jsonStr), &dto)
		room := registry.Get(dto.RoomId)
		if room == nil {
			fail(s, "Room not found")
			return
		}
		state, err := room.Load()
		if err != nil {
			fail(s, err.Error())
			return
		}
		broadcastState(room.Id, state)
		s.Emit("game-loaded", marshal(map[string]string{"roomId": room.Id}))
	})

	server.OnEvent("/", "end-game", func(s socketio.Conn, jsonStr string) {
		var dto roomDto
		json.Unmarshal([]byte(jsonStr), &dto)
		if err := registry.EndGame(dto.RoomId); err != nil {
			log.WithFields(log.Fields{"room": dto.RoomId, "err": err}).Warn("end-game cleanup incomplete")
		}
		conn := pool.Get()
		defer conn.Close()
		cache.ClearChat(dto.RoomId, &conn)
		server.BroadcastToRoom("/", dto.RoomId, "game-ended", "{}")
	})

	server.OnEvent("/", "reconnect", func(s socketio.Conn, jsonStr string) {
		var dto roomDto
		json.Unmarshal([]byte(jsonStr), &dto)
		room, state, err := registry.Reconnect(dto.RoomId, dto.PlayerId)
		if err != nil {
			fail(s, err.Error())
			return
		}
		s.Join(room.Id)
		s.Emit("game-state", marshal(state))
		s.Emit("reconnected", marshal(map[string]string{"roomId": room.Id}))
		server.BroadcastToRoom("/", room.Id, "player-reconnected", marshal(map[string]string{"playerId": dto.PlayerId}))
	})

	server.OnEvent("/", "send-chat", func(s socketio.Conn, jsonStr string) {
		var dto roomDto
		if err := json.Unmarshal([]byte(jsonStr), &dto); err != nil {
			fail(s, "Invalid request")
			return
		}
		conn := pool.Get()
		defer conn.Close()
		msg, err := cache.SaveChatMessage(dto.RoomId, dto.PlayerId, dto.PlayerName, dto.Message, &conn)
		if err != nil {
			log.WithError(err).Warn("chat save failed")
			return
		}
		server.BroadcastToRoom("/", dto.RoomId, "chat-message", marshal(msg))
	})

	server.OnEvent("/", "chat-history", func(s socketio.Conn, jsonStr string) {
		var dto roomDto
		json.Unmarshal([]byte(jsonStr), &dto)
		conn := pool.Get()
		defer conn.Close()
		messages, err := cache.ChatHistory(dto.RoomId, &conn)
		if err != nil {
			fail(s, "Failed to load chat history")
			return
		}
		s.Emit("chat-history", marshal(messages))
	})

	server.OnEvent("/", "join-spectator", func(s socketio.Conn, jsonStr string) {
		var dto roomDto
		json.Unmarshal([]byte(jsonStr), &dto)
		room := registry.Get(dto.RoomId)
		if room == nil {
			fail(s, "Room not found")
			return
		}
		s.Join(room.Id)
		s.Emit("game-state", marshal(room.Snapshot()))
		s.Emit("joined-spectator", marshal(map[string]string{"roomId": room.Id}))
	})

	server.OnError("/", func(s socketio.Conn, e error) {
		log.WithError(e).Error("socket error")
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		// state is kept; the player can resume via reconnect
		s.LeaveAll()
	})

	go server.Serve()
	defer server.Close()

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
	})

	port := os.Getenv("SOCKET_PORT")
	if port == "" {
		port = "8000"
	}
	mux := http.NewServeMux()
	mux.Handle("/socket.io/", server)
	http.ListenAndServe(":"+port, c.Handler(mux))
}
