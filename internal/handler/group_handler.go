package handler

import (
	"net/http"

	"flowwork/internal/logger"
	"flowwork/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const defaultGroupColor = "#579bfc"

type GroupHandler struct {
	stores Stores
	log    *logger.Logger
}

func NewGroupHandler(stores Stores, log *logger.Logger) *GroupHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &GroupHandler{stores: stores, log: log}
}

type CreateGroupRequest struct {
	Name     string `json:"name" binding:"required"`
	Color    string `json:"color" binding:"omitempty,hexcolor"`
	Position int    `json:"position"`
}

type GroupResponse struct {
	ID       string `json:"id"`
	BoardID  string `json:"board_id"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	Position int    `json:"position"`
}

func toGroupResponse(g model.Group) GroupResponse {
	return GroupResponse{
		ID:       g.ID.String(),
		BoardID:  g.BoardID.String(),
		Name:     g.Name,
		Color:    g.Color,
		Position: g.Position,
	}
}

func stringKeys(in map[uuid.UUID]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k.String()] = v
	}
	return out
}

func (h *GroupHandler) Create(c *gin.Context) {
	boardID, ok := parseUUIDParam(c, "id", "board")
	if !ok {
		return
	}
	board := boardForCompany(c, h.stores.Boards, boardID)
	if board == nil {
		return
	}

	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	ctx := c.Request.Context()
	position := req.Position
	if position == 0 {
		maxPosition, err := h.stores.Groups.GetMaxPosition(ctx, board.ID)
		if err != nil {
			h.log.Error(ctx, "group max position", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to determine group position"})
			return
		}
		position = maxPosition + 1
	}

	color := req.Color
	if color == "" {
		color = defaultGroupColor
	}

	group := &model.Group{
		BoardID:  board.ID,
		Name:     req.Name,
		Color:    color,
		Position: position,
	}
	if err := h.stores.Groups.Create(ctx, group); err != nil {
		h.log.Error(ctx, "create group", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create group"})
		return
	}

	c.JSON(http.StatusCreated, toGroupResponse(*group))
}

func (h *GroupHandler) GetAll(c *gin.Context) {
	boardID, ok := parseUUIDParam(c, "id", "board")
	if !ok {
		return
	}
	board := boardForCompany(c, h.stores.Boards, boardID)
	if board == nil {
		return
	}

	groups, err := h.stores.Groups.GetByBoardID(c.Request.Context(), board.ID)
	if err != nil {
		h.log.Error(c.Request.Context(), "list groups", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve groups"})
		return
	}

	response := make([]GroupResponse, len(groups))
	for i, g := range groups {
		response[i] = toGroupResponse(g)
	}
	c.JSON(http.StatusOK, response)
}
