package handler

import (
	"net/http"

	"flowwork/internal/logger"
	"flowwork/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ColumnHandler struct {
	stores Stores
	log    *logger.Logger
}

func NewColumnHandler(stores Stores, log *logger.Logger) *ColumnHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &ColumnHandler{stores: stores, log: log}
}

type CreateColumnRequest struct {
	BoardID  string             `json:"board_id" binding:"required"`
	Name     string             `json:"name" binding:"required"`
	Type     model.ColumnType   `json:"type" binding:"required"`
	Position int                `json:"position"`
	Config   model.ColumnConfig `json:"config"`
}

type UpdateColumnRequest struct {
	Name     string              `json:"name"`
	Position int                 `json:"position"`
	Config   *model.ColumnConfig `json:"config"`
}

type ColumnResponse struct {
	ID       string             `json:"id"`
	BoardID  string             `json:"board_id"`
	Name     string             `json:"name"`
	Type     model.ColumnType   `json:"type"`
	Position int                `json:"position"`
	Config   model.ColumnConfig `json:"config"`
}

type ReorderColumnsRequest struct {
	Columns []struct {
		ID       string `json:"id" binding:"required"`
		Position int    `json:"position" binding:"required"`
	} `json:"columns" binding:"required"`
}

func toColumnResponse(column model.Column) ColumnResponse {
	return ColumnResponse{
		ID:       column.ID.String(),
		BoardID:  column.BoardID.String(),
		Name:     column.Name,
		Type:     column.Type,
		Position: column.Position,
		Config:   column.Settings(),
	}
}

// columnForCompany loads a column and checks its board belongs to the caller.
func (h *ColumnHandler) columnForCompany(c *gin.Context) *model.Column {
	columnID, ok := parseUUIDParam(c, "id", "column")
	if !ok {
		return nil
	}

	column, err := h.stores.Columns.GetByID(c.Request.Context(), columnID)
	if err != nil {
		h.log.Error(c.Request.Context(), "get column", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve column"})
		return nil
	}
	if column == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Column not found"})
		return nil
	}

	if boardForCompany(c, h.stores.Boards, column.BoardID) == nil {
		return nil
	}
	return column
}

func (h *ColumnHandler) Create(c *gin.Context) {
	var req CreateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	boardID, err := uuid.Parse(req.BoardID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}
	if boardForCompany(c, h.stores.Boards, boardID) == nil {
		return
	}

	if err := validateColumnConfig(req.Type, req.Config); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	position := req.Position
	if position == 0 {
		maxPosition, err := h.stores.Columns.GetMaxPosition(ctx, boardID)
		if err != nil {
			h.log.Error(ctx, "column max position", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to determine column position"})
			return
		}
		position = maxPosition + 1
	}

	column := &model.Column{
		BoardID:  boardID,
		Name:     req.Name,
		Type:     req.Type,
		Position: position,
	}
	if err := column.SetSettings(req.Config); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column config"})
		return
	}

	if err := h.stores.Columns.Create(ctx, column); err != nil {
		h.log.Error(ctx, "create column", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create column"})
		return
	}

	c.JSON(http.StatusCreated, toColumnResponse(*column))
}

func (h *ColumnHandler) GetAll(c *gin.Context) {
	boardID, ok := parseUUIDParam(c, "id", "board")
	if !ok {
		return
	}
	if boardForCompany(c, h.stores.Boards, boardID) == nil {
		return
	}

	columns, err := h.stores.Columns.GetByBoardID(c.Request.Context(), boardID)
	if err != nil {
		h.log.Error(c.Request.Context(), "list columns", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve columns"})
		return
	}

	response := make([]ColumnResponse, len(columns))
	for i, column := range columns {
		response[i] = toColumnResponse(column)
	}
	c.JSON(http.StatusOK, response)
}

func (h *ColumnHandler) GetByID(c *gin.Context) {
	column := h.columnForCompany(c)
	if column == nil {
		return
	}
	c.JSON(http.StatusOK, toColumnResponse(*column))
}

// Update renames, moves or reconfigures a column. The type is fixed at creation.
func (h *ColumnHandler) Update(c *gin.Context) {
	column := h.columnForCompany(c)
	if column == nil {
		return
	}

	var req UpdateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Name != "" {
		column.Name = req.Name
	}
	if req.Position != 0 {
		column.Position = req.Position
	}
	if req.Config != nil {
		if err := validateColumnConfig(column.Type, *req.Config); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := column.SetSettings(*req.Config); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column config"})
			return
		}
	}

	if err := h.stores.Columns.Update(c.Request.Context(), column); err != nil {
		h.log.Error(c.Request.Context(), "update column", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update column"})
		return
	}

	c.JSON(http.StatusOK, toColumnResponse(*column))
}

func (h *ColumnHandler) Delete(c *gin.Context) {
	column := h.columnForCompany(c)
	if column == nil {
		return
	}

	if err := h.stores.Columns.Delete(c.Request.Context(), column.ID); err != nil {
		h.log.Error(c.Request.Context(), "delete column", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete column"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Column deleted successfully"})
}

func (h *ColumnHandler) ReorderColumns(c *gin.Context) {
	boardID, ok := parseUUIDParam(c, "id", "board")
	if !ok {
		return
	}
	if boardForCompany(c, h.stores.Boards, boardID) == nil {
		return
	}

	var req ReorderColumnsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	ctx := c.Request.Context()
	existing, err := h.stores.Columns.GetByBoardID(ctx, boardID)
	if err != nil {
		h.log.Error(ctx, "list columns", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve columns"})
		return
	}
	onBoard := make(map[uuid.UUID]bool, len(existing))
	for _, col := range existing {
		onBoard[col.ID] = true
	}

	columns := make([]model.Column, len(req.Columns))
	for i, col := range req.Columns {
		columnID, err := uuid.Parse(col.ID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID format"})
			return
		}
		if !onBoard[columnID] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "All columns must belong to the specified board"})
			return
		}
		columns[i] = model.Column{
			ID:       columnID,
			BoardID:  boardID,
			Position: col.Position,
		}
	}

	if err := h.stores.Columns.ReorderColumns(ctx, columns); err != nil {
		h.log.Error(ctx, "reorder columns", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reorder columns"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Columns reordered successfully"})
}
