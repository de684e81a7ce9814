package auth

import (
	"context"
	"fmt"
	"os"
	"time"

	"silpa/db"
	"silpa/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

type seedAccount struct {
	username    string
	role        string
	displayName string
	passwordEnv string
	fallback    string
}

// The two operator accounts every deployment starts with. Passwords come
// from the environment; the fallbacks are for local development only.
var seedAccounts = []seedAccount{
	{"admingod", models.RoleGod, "System Administrator", "GOD_PASSWORD", "changeme-god"},
	{"adminhongson", models.RoleAdmin, "Event Administrator", "ADMIN_PASSWORD", "changeme-admin"},
}

// EnsureBootstrapAccounts upserts the operator accounts at startup. Existing
// accounts keep their password but are pinned to the seeded role, so a
// demoted operator account heals itself on restart.
func EnsureBootstrapAccounts(ctx context.Context) error {
	for _, acct := range seedAccounts {
		password := os.Getenv(acct.passwordEnv)
		if password == "" {
			password = acct.fallback
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash %s password: %w", acct.username, err)
		}

		now := time.Now().UTC()
		_, err = db.UserCollection.UpdateOne(ctx,
			bson.M{"username": acct.username},
			bson.M{
				"$set": bson.M{"role": acct.role, "updated_at": now},
				"$setOnInsert": bson.M{
					"userid":      uuid.NewString(),
					"username":    acct.username,
					"password":    string(hash),
					"displayname": acct.displayName,
					"created_at":  now,
				},
			},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return fmt.Errorf("seed %s: %w", acct.username, err)
		}
	}
	return nil
}
