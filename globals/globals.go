package globals

import (
	"context"
	"os"
)

var (
	// JwtSecret signs access tokens. Replaced from JWT_SECRET at startup.
	JwtSecret = []byte("silpa_dev_secret")
)

// Context keys
type ContextKey string

const UserIDKey ContextKey = "userId"
const UsernameKey ContextKey = "username"
const RoleKey ContextKey = "role"

var Ctx = context.Background()

// LoadSecret pulls the signing key from the environment, keeping the
// development fallback when unset.
func LoadSecret() {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		JwtSecret = []byte(s)
	}
}
