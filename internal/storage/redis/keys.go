package redis

import (
	"fmt"

	"github.com/mcoot/seabattle/internal/model"
)

// Key prefix for all bot-related data
const keyPrefix = "seabattle"

// sessionKey returns the Redis key for a BotSession
func sessionKey(id model.SessionID) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, id)
}

// sessionIndexKey returns the Redis key for the SET of all session keys
func sessionIndexKey() string {
	return fmt.Sprintf("%s:idx:sessions", keyPrefix)
}
