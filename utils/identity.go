package utils

import (
	"net/http"

	"silpa/globals"
	"silpa/models"
)

func GetUserIDFromRequest(r *http.Request) string {
	id, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok {
		return ""
	}
	return id
}

func GetUsernameFromRequest(r *http.Request) string {
	name, ok := r.Context().Value(globals.UsernameKey).(string)
	if !ok {
		return ""
	}
	return name
}

func GetRoleFromRequest(r *http.Request) string {
	role, ok := r.Context().Value(globals.RoleKey).(string)
	if !ok {
		return models.RoleUser
	}
	return role
}

// IsAdminRequest reports whether the authenticated caller holds an admin tier.
func IsAdminRequest(r *http.Request) bool {
	role := GetRoleFromRequest(r)
	return role == models.RoleAdmin || role == models.RoleGod
}
