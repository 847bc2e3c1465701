package cache

import (
	"github.com/gomodule/redigo/redis"
)

func Del(key string, conn *redis.Conn) error {
	_, err := (*conn).Do("DEL", key)
	return err
}

func LPUSH(key string, value interface{}, conn *redis.Conn) error {
	_, err := (*conn).Do("LPUSH", key, value)
	return err
}

func LTRIM(key string, start, stop int, conn *redis.Conn) error {
	_, err := (*conn).Do("LTRIM", key, start, stop)
	return err
}

func LRANGE(key string, start, stop int, conn *redis.Conn) ([][]byte, error) {
	values, err := redis.ByteSlices((*conn).Do("LRANGE", key, start, stop))
	if err != nil {
		return nil, err
	}
	return values, nil
}
