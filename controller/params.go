package controller

import (
	"strconv"

	"tippspiel/repository"

	"github.com/gin-gonic/gin"
)

// optionalIntQuery returns nil for a missing or malformed parameter.
func optionalIntQuery(c *gin.Context, key string) *int {
	value, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return nil
	}
	return &value
}

func intQuery(c *gin.Context, key string, defaultValue int) int {
	if value := optionalIntQuery(c, key); value != nil {
		return *value
	}
	return defaultValue
}

func activeMembership(c *gin.Context) *repository.GroupMembership {
	return c.MustGet(membershipKey).(*repository.GroupMembership)
}
