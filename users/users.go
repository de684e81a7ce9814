// Package users is the admin-facing account management: listing, creating,
// updating and deleting accounts under the tier rules. A regular admin may
// only manage plain users; only the god account may touch admins or itself
// grant elevated roles.
package users

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"silpa/apperr"
	"silpa/db"
	"silpa/models"
	"silpa/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

// CanManage reports whether an actor of actorRole may act on an account of
// targetRole. God manages everyone; admins manage plain users only.
func CanManage(actorRole, targetRole string) bool {
	switch actorRole {
	case models.RoleGod:
		return true
	case models.RoleAdmin:
		return targetRole == models.RoleUser
	default:
		return false
	}
}

// CanGrant reports whether an actor may hand out targetRole. Elevated roles
// come only from god.
func CanGrant(actorRole, targetRole string) bool {
	if targetRole == models.RoleUser {
		return actorRole == models.RoleAdmin || actorRole == models.RoleGod
	}
	return actorRole == models.RoleGod
}

// CheckDelete validates a delete request without touching storage. Deleting
// yourself is rejected so an event cannot end up without operators.
func CheckDelete(actorID, actorRole, targetID, targetRole string) error {
	if actorID == targetID {
		return apperr.Conflict("you cannot delete your own account")
	}
	if !CanManage(actorRole, targetRole) {
		return apperr.Forbidden("you do not have permission to manage this account")
	}
	return nil
}

func respondErr(w http.ResponseWriter, err error) {
	code := apperr.StatusOf(err)
	if code == http.StatusInternalServerError {
		log.Printf("users: %v", err)
		utils.RespondWithError(w, code, "internal server error")
		return
	}
	utils.RespondWithError(w, code, err.Error())
}

func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if utils.IsAdminRequest(r) {
		return true
	}
	utils.RespondWithError(w, http.StatusConflict, "only admin can manage users")
	return false
}

func findUser(r *http.Request, filter bson.M) (*models.User, error) {
	var u models.User
	err := db.UserCollection.FindOne(r.Context(), filter).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ListUsers returns every account. Admin only.
func ListUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if !requireAdmin(w, r) {
		return
	}
	cursor, err := db.UserCollection.Find(r.Context(), bson.M{})
	if err != nil {
		respondErr(w, err)
		return
	}
	defer cursor.Close(r.Context())

	users := []models.User{}
	if err := cursor.All(r.Context(), &users); err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, users)
}

// GetUser returns one account by id. Admin only.
func GetUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if !requireAdmin(w, r) {
		return
	}
	user, err := findUser(r, bson.M{"userid": ps.ByName("id")})
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, user)
}

type createUserRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	DisplayName string `json:"displayName"`
}

// CreateUser adds an account. Admin only; elevated roles require god.
func CreateUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if !requireAdmin(w, r) {
		return
	}
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "username and password are required")
		return
	}
	if req.Role == "" {
		req.Role = models.RoleUser
	}
	if !models.ValidRole(req.Role) {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid role")
		return
	}
	if !CanGrant(utils.GetRoleFromRequest(r), req.Role) {
		respondErr(w, apperr.Forbidden("you do not have permission to grant this role"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondErr(w, err)
		return
	}

	now := time.Now().UTC()
	user := models.User{
		UserID:      uuid.NewString(),
		Username:    req.Username,
		Password:    string(hash),
		Role:        req.Role,
		DisplayName: strings.TrimSpace(req.DisplayName),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := db.UserCollection.InsertOne(r.Context(), user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusConflict, "username already taken")
			return
		}
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, user)
}

type updateUserRequest struct {
	Password    *string `json:"password"`
	Role        *string `json:"role"`
	DisplayName *string `json:"displayName"`
}

// UpdateUser changes an account's password, role or display name. Admin only;
// the tier rules gate both the target account and any new role.
func UpdateUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if !requireAdmin(w, r) {
		return
	}
	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	target, err := findUser(r, bson.M{"userid": ps.ByName("id")})
	if err != nil {
		respondErr(w, err)
		return
	}

	actorRole := utils.GetRoleFromRequest(r)
	if !CanManage(actorRole, target.Role) {
		respondErr(w, apperr.Forbidden("you do not have permission to manage this account"))
		return
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if req.Role != nil {
		if !models.ValidRole(*req.Role) {
			utils.RespondWithError(w, http.StatusBadRequest, "invalid role")
			return
		}
		if !CanGrant(actorRole, *req.Role) {
			respondErr(w, apperr.Forbidden("you do not have permission to grant this role"))
			return
		}
		set["role"] = *req.Role
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			respondErr(w, err)
			return
		}
		set["password"] = string(hash)
	}
	if req.DisplayName != nil {
		set["displayname"] = strings.TrimSpace(*req.DisplayName)
	}

	var updated models.User
	err = db.UserCollection.FindOneAndUpdate(r.Context(),
		bson.M{"userid": target.UserID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// DeleteUser removes an account. Admin only; self-delete is rejected.
func DeleteUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if !requireAdmin(w, r) {
		return
	}
	target, err := findUser(r, bson.M{"userid": ps.ByName("id")})
	if err != nil {
		respondErr(w, err)
		return
	}

	if err := CheckDelete(utils.GetUserIDFromRequest(r), utils.GetRoleFromRequest(r),
		target.UserID, target.Role); err != nil {
		respondErr(w, err)
		return
	}

	if _, err := db.UserCollection.DeleteOne(r.Context(), bson.M{"userid": target.UserID}); err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "User deleted successfully"})
}
