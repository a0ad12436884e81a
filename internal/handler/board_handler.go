package handler

import (
	"net/http"

	"flowwork/internal/grid"
	"flowwork/internal/logger"
	"flowwork/internal/metrics"
	"flowwork/internal/model"

	"github.com/gin-gonic/gin"
)

type BoardHandler struct {
	stores    Stores
	itemLimit int
	log       *logger.Logger
	metrics   *metrics.Metrics
}

func NewBoardHandler(stores Stores, itemLimit int, log *logger.Logger, m *metrics.Metrics) *BoardHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &BoardHandler{
		stores:    stores,
		itemLimit: itemLimit,
		log:       log,
		metrics:   m,
	}
}

type CreateBoardRequest struct {
	Name string `json:"name" binding:"required"`
	// Groups to create with the board. A board always starts with at least one.
	Groups []string `json:"groups"`
}

type BoardResponse struct {
	ID        string `json:"id"`
	CompanyID int64  `json:"company_id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

type GridItemResponse struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Position int               `json:"position"`
	Values   map[string]string `json:"values"`
}

type GridGroupResponse struct {
	GroupResponse
	Items      []GridItemResponse `json:"items"`
	Aggregates map[string]string  `json:"aggregates"`
}

type GridResponse struct {
	Board   BoardResponse       `json:"board"`
	Columns []ColumnResponse    `json:"columns"`
	Groups  []GridGroupResponse `json:"groups"`
	Totals  map[string]string   `json:"totals"`
}

type RecomputeResponse struct {
	Evaluated int `json:"evaluated"`
	Fallbacks int `json:"fallbacks"`
	Updated   int `json:"updated"`
}

const defaultGroupName = "New Group"

func toBoardResponse(board *model.Board) BoardResponse {
	return BoardResponse{
		ID:        board.ID.String(),
		CompanyID: board.CompanyID,
		Name:      board.Name,
		CreatedAt: board.CreatedAt.Format(http.TimeFormat),
	}
}

// Create creates a board for the caller's company
func (h *BoardHandler) Create(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		return
	}

	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	board := &model.Board{
		CompanyID: company,
		Name:      req.Name,
	}
	if err := h.stores.Boards.Create(c.Request.Context(), board); err != nil {
		h.log.Error(c.Request.Context(), "create board", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create board"})
		return
	}

	names := req.Groups
	if len(names) == 0 {
		names = []string{defaultGroupName}
	}
	for i, name := range names {
		group := &model.Group{BoardID: board.ID, Name: name, Color: defaultGroupColor, Position: i + 1}
		if err := h.stores.Groups.Create(c.Request.Context(), group); err != nil {
			h.log.Error(c.Request.Context(), "create board group", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create board groups"})
			return
		}
	}

	c.JSON(http.StatusCreated, toBoardResponse(board))
}

func (h *BoardHandler) GetAll(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		return
	}

	boards, err := h.stores.Boards.GetByCompany(c.Request.Context(), company)
	if err != nil {
		h.log.Error(c.Request.Context(), "list boards", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve boards"})
		return
	}

	response := make([]BoardResponse, len(boards))
	for i := range boards {
		response[i] = toBoardResponse(&boards[i])
	}
	c.JSON(http.StatusOK, response)
}

func (h *BoardHandler) GetByID(c *gin.Context) {
	boardID, ok := parseUUIDParam(c, "id", "board")
	if !ok {
		return
	}
	board := boardForCompany(c, h.stores.Boards, boardID)
	if board == nil {
		return
	}
	c.JSON(http.StatusOK, toBoardResponse(board))
}

// Grid renders the board: formulas are recomputed in memory, then every
// numeric column is aggregated per group and over the whole board.
func (h *BoardHandler) Grid(c *gin.Context) {
	boardID, ok := parseUUIDParam(c, "id", "board")
	if !ok {
		return
	}
	board := boardForCompany(c, h.stores.Boards, boardID)
	if board == nil {
		return
	}

	ctx := c.Request.Context()
	g, err := h.stores.loadGrid(ctx, board.ID, h.itemLimit)
	if err != nil {
		h.log.Error(ctx, "load board grid", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load board"})
		return
	}

	res := grid.RecomputeFormulas(g.registry, grid.ItemIDs(g.items), g.values)
	h.metrics.ObserveFormulas(res.Evaluated, res.Fallbacks)
	summary := grid.Summarize(g.registry, g.groups, g.items, g.values)

	c.JSON(http.StatusOK, buildGridResponse(board, g, summary))
}

// Recompute evaluates every formula column and stores the results.
func (h *BoardHandler) Recompute(c *gin.Context) {
	boardID, ok := parseUUIDParam(c, "id", "board")
	if !ok {
		return
	}
	board := boardForCompany(c, h.stores.Boards, boardID)
	if board == nil {
		return
	}

	ctx := c.Request.Context()
	g, err := h.stores.loadGrid(ctx, board.ID, h.itemLimit)
	if err != nil {
		h.log.Error(ctx, "load board grid", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load board"})
		return
	}

	res := grid.RecomputeFormulas(g.registry, grid.ItemIDs(g.items), g.values)
	h.metrics.ObserveFormulas(res.Evaluated, res.Fallbacks)
	if err := h.stores.persistCells(ctx, res.Cells); err != nil {
		h.log.Error(ctx, "persist recomputed formulas", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store formula values"})
		return
	}

	c.JSON(http.StatusOK, RecomputeResponse{
		Evaluated: res.Evaluated,
		Fallbacks: res.Fallbacks,
		Updated:   len(res.Cells),
	})
}

func buildGridResponse(board *model.Board, g *boardGrid, summary grid.Summary) GridResponse {
	columns := g.registry.Columns()
	resp := GridResponse{
		Board:   toBoardResponse(board),
		Columns: make([]ColumnResponse, len(columns)),
		Groups:  make([]GridGroupResponse, 0, len(g.groups)),
		Totals:  stringKeys(summary.Board),
	}
	for i, col := range columns {
		resp.Columns[i] = toColumnResponse(col)
	}

	index := make(map[string]int, len(g.groups))
	for _, group := range g.groups {
		index[group.ID.String()] = len(resp.Groups)
		resp.Groups = append(resp.Groups, GridGroupResponse{
			GroupResponse: toGroupResponse(group),
			Items:         []GridItemResponse{},
			Aggregates:    stringKeys(summary.Groups[group.ID]),
		})
	}

	for _, item := range g.items {
		i, ok := index[item.GroupID.String()]
		if !ok {
			continue
		}
		row := GridItemResponse{
			ID:       item.ID.String(),
			Name:     item.Name,
			Position: item.Position,
			Values:   map[string]string{},
		}
		for _, col := range columns {
			if v, ok := g.values.Get(item.ID, col.ID); ok {
				row.Values[col.ID.String()] = v
			}
		}
		resp.Groups[i].Items = append(resp.Groups[i].Items, row)
	}
	return resp
}
