package controller

import (
	"strconv"
	"strings"
	"time"

	"tippspiel/app_error"
	"tippspiel/auth"
	"tippspiel/service"
	"tippspiel/utils"

	"github.com/gin-contrib/cache"
	"github.com/gin-contrib/cache/persistence"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	userIdKey     = "user_id"
	membershipKey = "membership"
)

type RouteInfo struct {
	Method        string
	Path          string
	HandlerFunc   gin.HandlerFunc
	Authenticated bool
	RoleRequired  []string
	// GroupScoped routes resolve the active group of the caller first
	GroupScoped bool
	Cached      bool
}

func SetRoutes(r *gin.Engine, db *gorm.DB, cacheStore persistence.CacheStore, cacheTTL time.Duration) {
	routes := make([]RouteInfo, 0)
	routes = append(routes, setupGroupController(db)...)
	routes = append(routes, setupTableController(db)...)
	routes = append(routes, setupPredictionController(db)...)
	routes = append(routes, setupUserController(db)...)
	routes = append(routes, setupMatchController(db)...)
	routes = append(routes, setupTournamentController(db)...)

	groupService := service.NewGroupService(db)
	bonusService := service.NewBonusService(db)
	api := r.Group("/api")
	for _, route := range routes {
		handlerfuncs := make([]gin.HandlerFunc, 0)
		if route.Authenticated || route.GroupScoped {
			handlerfuncs = append(handlerfuncs, AuthMiddleware(route.RoleRequired))
		}
		if route.GroupScoped {
			handlerfuncs = append(handlerfuncs, ActiveGroupMiddleware(groupService))
		}
		if route.Cached {
			handlerfuncs = append(handlerfuncs, revealAwareCache(bonusService, cacheStore, cacheTTL, route.HandlerFunc))
		} else {
			handlerfuncs = append(handlerfuncs, route.HandlerFunc)
		}
		api.Handle(route.Method, route.Path, handlerfuncs...)
	}
}

// revealAwareCache caches group scoped pages, except while the bonus reveal of the
// group is due within one TTL so no page hiding the bonus outlives the reveal.
func revealAwareCache(bonusService *service.BonusService, store persistence.CacheStore, ttl time.Duration, handler gin.HandlerFunc) gin.HandlerFunc {
	cached := cache.CachePage(store, ttl, handler)
	return func(c *gin.Context) {
		due, err := bonusService.IsRevealDue(activeMembership(c).GroupId, time.Now(), ttl)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		if due {
			handler(c)
			return
		}
		cached(c)
	}
}

func tokenFromRequest(c *gin.Context) string {
	authHeader := c.Request.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader[len("Bearer "):]
	}
	authCookie, err := c.Cookie("auth")
	if err != nil {
		return ""
	}
	return authCookie
}

func AuthMiddleware(roles []string) gin.HandlerFunc {
	return func(r *gin.Context) {
		tokenString := tokenFromRequest(r)
		if tokenString == "" {
			r.JSON(401, gin.H{"error": "Unauthenticated"})
			r.Abort()
			return
		}
		token, err := auth.ParseToken(tokenString)
		if err != nil || !token.Valid {
			r.JSON(401, gin.H{"error": "Unauthenticated"})
			r.Abort()
			return
		}

		claims := &auth.Claims{}
		claims.FromJWTClaims(token.Claims)
		if err := claims.Valid(); err != nil {
			r.JSON(401, gin.H{"error": "Unauthenticated"})
			r.Abort()
			return
		}
		r.Set(userIdKey, claims.UserId)
		if len(roles) == 0 {
			r.Next()
			return
		}

		for _, requiredRole := range roles {
			if utils.Contains(claims.Permissions, requiredRole) {
				r.Next()
				return
			}
		}
		r.JSON(403, gin.H{"error": "Unauthorized"})
		r.Abort()
	}
}

// ActiveGroupMiddleware resolves the group a request works on from the optional
// group_id query parameter. The resolved id is written back into the query so that
// cached pages are keyed by the group they show.
func ActiveGroupMiddleware(groupService *service.GroupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		requested := optionalIntQuery(c, "group_id")
		membership, ok, err := groupService.ResolveActiveGroup(c.GetInt(userIdKey), requested)
		if err != nil {
			app_error.Respond(c, err)
			c.Abort()
			return
		}
		if !ok {
			app_error.Respond(c, app_error.ErrNoMembership)
			c.Abort()
			return
		}
		query := c.Request.URL.Query()
		query.Set("group_id", strconv.Itoa(membership.GroupId))
		c.Request.URL.RawQuery = query.Encode()
		c.Set(membershipKey, membership)
		c.Next()
	}
}
