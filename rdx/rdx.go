// Package rdx is the Redis side-cache. Only the summary endpoint uses it:
// the dashboard refreshes aggressively during the event, and the summary is
// the one query that touches every collection.
package rdx

import (
	"log"
	"os"
	"time"

	"silpa/globals"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

const SummaryKey = "bookings:summary"

func Init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	Conn = redis.NewClient(&redis.Options{Addr: addr})
	if err := Conn.Ping(globals.Ctx).Err(); err != nil {
		log.Printf("redis unavailable at %s: %v (summary cache disabled)", addr, err)
	}
}

func RdxGet(key string) (string, error) {
	if Conn == nil {
		return "", redis.Nil
	}
	return Conn.Get(globals.Ctx, key).Result()
}

func RdxSet(key, value string, ttl time.Duration) error {
	if Conn == nil {
		return nil
	}
	return Conn.Set(globals.Ctx, key, value, ttl).Err()
}

func RdxDel(keys ...string) {
	if Conn == nil {
		return
	}
	if err := Conn.Del(globals.Ctx, keys...).Err(); err != nil {
		log.Printf("redis del %v: %v", keys, err)
	}
}

// InvalidateSummary drops the cached summary after any mutation that could
// change it.
func InvalidateSummary() {
	RdxDel(SummaryKey)
}
