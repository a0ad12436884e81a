package handler

import (
	"context"
	"net/http"

	"flowwork/internal/glguess"
	"flowwork/internal/middleware"
	"flowwork/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BoardStore returns nil, nil from GetByID when the board does not exist.
type BoardStore interface {
	Create(ctx context.Context, board *model.Board) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error)
	GetByCompany(ctx context.Context, companyID int64) ([]model.Board, error)
}

type GroupStore interface {
	Create(ctx context.Context, group *model.Group) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Group, error)
	GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Group, error)
	GetMaxPosition(ctx context.Context, boardID uuid.UUID) (int, error)
}

// ColumnStore returns nil, nil from GetByID when the column does not exist.
type ColumnStore interface {
	Create(ctx context.Context, column *model.Column) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Column, error)
	GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Column, error)
	Update(ctx context.Context, column *model.Column) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetMaxPosition(ctx context.Context, boardID uuid.UUID) (int, error)
	ReorderColumns(ctx context.Context, columns []model.Column) error
}

type ItemStore interface {
	Create(ctx context.Context, item *model.Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Item, error)
	GetByBoardID(ctx context.Context, boardID uuid.UUID, limit int) ([]model.Item, error)
	GetMaxPosition(ctx context.Context, groupID uuid.UUID) (int, error)
	MoveToGroup(ctx context.Context, itemID, groupID uuid.UUID) error
}

type ValueStore interface {
	GetByItemIDs(ctx context.Context, itemIDs []uuid.UUID) ([]model.ItemValue, error)
	Upsert(ctx context.Context, value *model.ItemValue) error
	UpsertMany(ctx context.Context, values []model.ItemValue) error
	Delete(ctx context.Context, itemID, columnID uuid.UUID) error
}

type Guesser interface {
	Guess(ctx context.Context, req glguess.Request) (*glguess.Result, error)
}

// Stores bundles the board grid repositories shared by the handlers.
type Stores struct {
	Boards  BoardStore
	Groups  GroupStore
	Columns ColumnStore
	Items   ItemStore
	Values  ValueStore
}

func companyID(c *gin.Context) (int64, bool) {
	id, ok := middleware.CompanyID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return 0, false
	}
	return id, true
}

func parseUUIDParam(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + label + " ID format"})
		return uuid.Nil, false
	}
	return id, true
}

// boardForCompany loads a board and checks that it belongs to the caller's
// company. It writes the error response itself and returns nil on failure.
func boardForCompany(c *gin.Context, boards BoardStore, boardID uuid.UUID) *model.Board {
	company, ok := companyID(c)
	if !ok {
		return nil
	}

	board, err := boards.GetByID(c.Request.Context(), boardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve board"})
		return nil
	}
	if board == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
		return nil
	}
	if board.CompanyID != company {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have access to this board"})
		return nil
	}
	return board
}
