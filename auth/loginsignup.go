package auth

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"silpa/db"
	"silpa/globals"
	"silpa/middleware"
	"silpa/models"
	"silpa/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = 12 * time.Hour

type credentials struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

type authResponse struct {
	Token string    `json:"token"`
	User  userBrief `json:"user"`
}

type userBrief struct {
	UserID      string `json:"userid"`
	Username    string `json:"username"`
	Role        string `json:"role"`
	DisplayName string `json:"displayName,omitempty"`
	IsAdmin     bool   `json:"isAdmin"`
}

func brief(u *models.User) userBrief {
	return userBrief{
		UserID:      u.UserID,
		Username:    u.Username,
		Role:        u.Role,
		DisplayName: u.DisplayName,
		IsAdmin:     u.IsAdmin(),
	}
}

func issueToken(u *models.User) (string, error) {
	claims := &middleware.Claims{
		Username: u.Username,
		UserID:   u.UserID,
		Role:     u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
}

func registerHandler(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	creds.Username = strings.TrimSpace(creds.Username)
	if creds.Username == "" || creds.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	now := time.Now().UTC()
	user := models.User{
		UserID:      uuid.NewString(),
		Username:    creds.Username,
		Password:    string(hash),
		Role:        models.RoleUser,
		DisplayName: strings.TrimSpace(creds.DisplayName),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := db.UserCollection.InsertOne(r.Context(), user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusConflict, "username already taken")
			return
		}
		log.Printf("auth: register: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	token, err := issueToken(&user)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, authResponse{Token: token, User: brief(&user)})
}

func loginHandler(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var user models.User
	err := db.UserCollection.FindOne(r.Context(), bson.M{"username": creds.Username}).Decode(&user)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)) != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	token, err := issueToken(&user)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, authResponse{Token: token, User: brief(&user)})
}
