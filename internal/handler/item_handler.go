package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"flowwork/internal/grid"
	"flowwork/internal/logger"
	"flowwork/internal/metrics"
	"flowwork/internal/model"
	"flowwork/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ItemHandler struct {
	stores  Stores
	log     *logger.Logger
	metrics *metrics.Metrics
}

func NewItemHandler(stores Stores, log *logger.Logger, m *metrics.Metrics) *ItemHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &ItemHandler{stores: stores, log: log, metrics: m}
}

type CreateItemRequest struct {
	Name    string `json:"name" binding:"required"`
	GroupID string `json:"group_id"`
	// Initial cell values keyed by column id.
	Values map[string]string `json:"values"`
}

type SetValueRequest struct {
	Value string `json:"value"`
}

type MoveItemRequest struct {
	GroupID string `json:"group_id" binding:"required"`
}

type ItemResponse struct {
	ID       string            `json:"id"`
	BoardID  string            `json:"board_id"`
	GroupID  string            `json:"group_id"`
	Name     string            `json:"name"`
	Position int               `json:"position"`
	Values   map[string]string `json:"values"`
}

var errFormulaValue = errors.New("formula values are computed")

func toItemResponse(item *model.Item, values grid.Values) ItemResponse {
	resp := ItemResponse{
		ID:       item.ID.String(),
		BoardID:  item.BoardID.String(),
		GroupID:  item.GroupID.String(),
		Name:     item.Name,
		Position: item.Position,
		Values:   map[string]string{},
	}
	for colID, v := range values[item.ID] {
		resp.Values[colID.String()] = v
	}
	return resp
}

// Create quick-adds an item at the end of a group, the first group when none is given.
func (h *ItemHandler) Create(c *gin.Context) {
	boardID, ok := parseUUIDParam(c, "id", "board")
	if !ok {
		return
	}
	board := boardForCompany(c, h.stores.Boards, boardID)
	if board == nil {
		return
	}

	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	ctx := c.Request.Context()
	group := h.resolveGroup(c, board.ID, req.GroupID)
	if group == nil {
		return
	}

	columns, err := h.stores.Columns.GetByBoardID(ctx, board.ID)
	if err != nil {
		h.log.Error(ctx, "list columns", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve columns"})
		return
	}
	reg := grid.NewRegistry(columns)

	initial := make([]model.ItemValue, 0, len(req.Values))
	for rawID, v := range req.Values {
		colID, err := uuid.Parse(rawID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID format"})
			return
		}
		if err := writableColumn(reg, colID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if v != "" {
			initial = append(initial, model.ItemValue{ColumnID: colID, Value: v})
		}
	}

	maxPosition, err := h.stores.Items.GetMaxPosition(ctx, group.ID)
	if err != nil {
		h.log.Error(ctx, "item max position", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to determine item position"})
		return
	}

	item := &model.Item{
		BoardID:  board.ID,
		GroupID:  group.ID,
		Name:     strings.TrimSpace(req.Name),
		Position: maxPosition + 1,
	}
	if err := h.stores.Items.Create(ctx, item); err != nil {
		h.log.Error(ctx, "create item", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create item"})
		return
	}

	for i := range initial {
		initial[i].ItemID = item.ID
	}
	if err := h.stores.Values.UpsertMany(ctx, initial); err != nil {
		h.log.Error(ctx, "store initial values", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store item values"})
		return
	}

	values, err := h.recomputeItem(ctx, reg, item.ID)
	if err != nil {
		h.log.Error(ctx, "recompute item formulas", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute item formulas"})
		return
	}

	c.JSON(http.StatusCreated, toItemResponse(item, values))
}

// SetValue writes one cell. An empty value clears it. The item's formula
// columns are recomputed and stored afterwards.
func (h *ItemHandler) SetValue(c *gin.Context) {
	item := h.itemForCompany(c)
	if item == nil {
		return
	}
	columnID, ok := parseUUIDParam(c, "column_id", "column")
	if !ok {
		return
	}

	var req SetValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	ctx := c.Request.Context()
	columns, err := h.stores.Columns.GetByBoardID(ctx, item.BoardID)
	if err != nil {
		h.log.Error(ctx, "list columns", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve columns"})
		return
	}
	reg := grid.NewRegistry(columns)
	if _, ok := reg.Column(columnID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Column not found"})
		return
	}
	if err := writableColumn(reg, columnID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Value == "" {
		err = h.stores.Values.Delete(ctx, item.ID, columnID)
	} else {
		err = h.stores.Values.Upsert(ctx, &model.ItemValue{ItemID: item.ID, ColumnID: columnID, Value: req.Value})
	}
	if err != nil {
		h.log.Error(ctx, "write cell", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store value"})
		return
	}

	values, err := h.recomputeItem(ctx, reg, item.ID)
	if err != nil {
		h.log.Error(ctx, "recompute item formulas", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute item formulas"})
		return
	}

	c.JSON(http.StatusOK, toItemResponse(item, values))
}

// Move appends an item to another group of the same board.
func (h *ItemHandler) Move(c *gin.Context) {
	item := h.itemForCompany(c)
	if item == nil {
		return
	}

	var req MoveItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	group := h.resolveGroup(c, item.BoardID, req.GroupID)
	if group == nil {
		return
	}

	ctx := c.Request.Context()
	if err := h.stores.Items.MoveToGroup(ctx, item.ID, group.ID); err != nil {
		h.log.Error(ctx, "move item", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to move item"})
		return
	}

	moved, err := h.stores.Items.GetByID(ctx, item.ID)
	if err != nil {
		h.log.Error(ctx, "reload item", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve item"})
		return
	}
	values, err := h.stores.loadValues(ctx, []uuid.UUID{item.ID})
	if err != nil {
		h.log.Error(ctx, "load item values", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve item values"})
		return
	}

	c.JSON(http.StatusOK, toItemResponse(moved, values))
}

func (h *ItemHandler) itemForCompany(c *gin.Context) *model.Item {
	itemID, ok := parseUUIDParam(c, "id", "item")
	if !ok {
		return nil
	}

	item, err := h.stores.Items.GetByID(c.Request.Context(), itemID)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		} else {
			h.log.Error(c.Request.Context(), "get item", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve item"})
		}
		return nil
	}

	if boardForCompany(c, h.stores.Boards, item.BoardID) == nil {
		return nil
	}
	return item
}

// resolveGroup returns the named group of the board, or its first group when
// rawID is empty.
func (h *ItemHandler) resolveGroup(c *gin.Context, boardID uuid.UUID, rawID string) *model.Group {
	ctx := c.Request.Context()

	if rawID == "" {
		groups, err := h.stores.Groups.GetByBoardID(ctx, boardID)
		if err != nil {
			h.log.Error(ctx, "list groups", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve groups"})
			return nil
		}
		if len(groups) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Board has no groups"})
			return nil
		}
		return &groups[0]
	}

	groupID, err := uuid.Parse(rawID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID format"})
		return nil
	}
	group, err := h.stores.Groups.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		} else {
			h.log.Error(ctx, "get group", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve group"})
		}
		return nil
	}
	if group.BoardID != boardID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Group belongs to another board"})
		return nil
	}
	return group
}

func (h *ItemHandler) recomputeItem(ctx context.Context, reg *grid.Registry, itemID uuid.UUID) (grid.Values, error) {
	values, err := h.stores.loadValues(ctx, []uuid.UUID{itemID})
	if err != nil {
		return nil, err
	}
	res := grid.RecomputeFormulas(reg, []uuid.UUID{itemID}, values)
	h.metrics.ObserveFormulas(res.Evaluated, res.Fallbacks)
	if err := h.stores.persistCells(ctx, res.Cells); err != nil {
		return nil, err
	}
	return values, nil
}

func writableColumn(reg *grid.Registry, columnID uuid.UUID) error {
	col, ok := reg.Column(columnID)
	if !ok {
		return errors.New("unknown column " + columnID.String())
	}
	if col.Type == model.ColumnFormula {
		return errFormulaValue
	}
	return nil
}
