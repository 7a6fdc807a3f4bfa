package controller

import (
	"tippspiel/app_error"
	"tippspiel/repository"
	"tippspiel/service"
	"tippspiel/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type GroupController struct {
	groupService *service.GroupService
}

func NewGroupController(db *gorm.DB) *GroupController {
	return &GroupController{
		groupService: service.NewGroupService(db),
	}
}

func setupGroupController(db *gorm.DB) []RouteInfo {
	e := NewGroupController(db)
	basePath := "/groups"
	routes := []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: e.getGroupsHandler(), Authenticated: true},
		{Method: "POST", Path: "", HandlerFunc: e.createGroupHandler(), Authenticated: true},
		{Method: "POST", Path: "/join", HandlerFunc: e.joinGroupHandler(), Authenticated: true},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

func (e *GroupController) getGroupsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		memberships, err := e.groupService.ListMemberships(c.GetInt(userIdKey))
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, utils.Map(memberships, toMembershipResponse))
	}
}

func (e *GroupController) createGroupHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var create GroupCreate
		if err := c.BindJSON(&create); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		group, err := e.groupService.CreateGroup(c.GetInt(userIdKey), create.Name, create.TournamentId)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(201, toGroupResponse(group))
	}
}

func (e *GroupController) joinGroupHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var join GroupJoin
		if err := c.BindJSON(&join); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		group, err := e.groupService.JoinGroup(c.GetInt(userIdKey), join.Code)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, toGroupResponse(group))
	}
}

type GroupCreate struct {
	Name         string `json:"name" binding:"required"`
	TournamentId int    `json:"tournament_id" binding:"required"`
}

type GroupJoin struct {
	Code string `json:"code" binding:"required"`
}

type GroupResponse struct {
	Id             int    `json:"id"`
	Name           string `json:"name"`
	JoinCode       string `json:"join_code"`
	TournamentId   int    `json:"tournament_id"`
	TournamentName string `json:"tournament_name"`
}

type MembershipResponse struct {
	Group     *GroupResponse `json:"group"`
	IsCreator bool           `json:"is_creator"`
}

func toGroupResponse(group *repository.Group) *GroupResponse {
	response := &GroupResponse{
		Id:           group.Id,
		Name:         group.Name,
		JoinCode:     group.JoinCode,
		TournamentId: group.TournamentId,
	}
	if group.Tournament != nil {
		response.TournamentName = group.Tournament.Name
	}
	return response
}

func toMembershipResponse(membership *repository.GroupMembership) *MembershipResponse {
	return &MembershipResponse{
		Group:     toGroupResponse(membership.Group),
		IsCreator: membership.IsCreator,
	}
}
