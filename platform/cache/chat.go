package cache

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"
	uuid "github.com/satori/go.uuid"

	"github.com/bluemarble/bluemarble-backend/app/models"
)

// Chat history lives in a capped Redis list per room, newest first.
const chatHistorySize = 100

func chatKey(roomId string) string {
	return fmt.Sprintf("%s.chat", roomId)
}

func SaveChatMessage(roomId, playerId, playerName, message string, conn *redis.Conn) (*models.ChatMessage, error) {
	msg := &models.ChatMessage{
		Id:         uuid.NewV4().String(),
		RoomId:     roomId,
		PlayerId:   playerId,
		PlayerName: playerName,
		Message:    message,
		Timestamp:  time.Now().UnixNano() / int64(time.Millisecond),
	}
	blob, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}
	if err := LPUSH(chatKey(roomId), blob, conn); err != nil {
		return nil, err
	}
	if err := LTRIM(chatKey(roomId), 0, chatHistorySize-1, conn); err != nil {
		return nil, err
	}
	return msg, nil
}

// ChatHistory returns up to the last 100 messages, oldest first.
func ChatHistory(roomId string, conn *redis.Conn) ([]models.ChatMessage, error) {
	values, err := LRANGE(chatKey(roomId), 0, chatHistorySize-1, conn)
	if err != nil {
		return nil, err
	}
	messages := make([]models.ChatMessage, 0, len(values))
	for i := len(values) - 1; i >= 0; i-- {
		var msg models.ChatMessage
		if err := json.Unmarshal(values[i], &msg); err != nil {
			continue
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

func ClearChat(roomId string, conn *redis.Conn) error {
	return Del(chatKey(roomId), conn)
}
