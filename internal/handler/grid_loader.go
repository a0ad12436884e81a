package handler

import (
	"context"
	"fmt"

	"flowwork/internal/grid"
	"flowwork/internal/model"

	"github.com/google/uuid"
)

// boardGrid is everything needed to render or recompute one board.
type boardGrid struct {
	registry *grid.Registry
	groups   []model.Group
	items    []model.Item
	values   grid.Values
}

func (s Stores) loadGrid(ctx context.Context, boardID uuid.UUID, itemLimit int) (*boardGrid, error) {
	columns, err := s.Columns.GetByBoardID(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("load columns: %w", err)
	}
	groups, err := s.Groups.GetByBoardID(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("load groups: %w", err)
	}
	items, err := s.Items.GetByBoardID(ctx, boardID, itemLimit)
	if err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}
	values, err := s.loadValues(ctx, grid.ItemIDs(items))
	if err != nil {
		return nil, err
	}
	return &boardGrid{
		registry: grid.NewRegistry(columns),
		groups:   groups,
		items:    items,
		values:   values,
	}, nil
}

func (s Stores) loadValues(ctx context.Context, itemIDs []uuid.UUID) (grid.Values, error) {
	rows, err := s.Values.GetByItemIDs(ctx, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("load values: %w", err)
	}
	values := grid.Values{}
	for _, row := range rows {
		values.Set(row.ItemID, row.ColumnID, row.Value)
	}
	return values, nil
}

// persistCells writes computed formula cells back to the value store.
func (s Stores) persistCells(ctx context.Context, cells []grid.Cell) error {
	if len(cells) == 0 {
		return nil
	}
	rows := make([]model.ItemValue, len(cells))
	for i, cell := range cells {
		rows[i] = model.ItemValue{ItemID: cell.ItemID, ColumnID: cell.ColumnID, Value: cell.Value}
	}
	if err := s.Values.UpsertMany(ctx, rows); err != nil {
		return fmt.Errorf("store formula values: %w", err)
	}
	return nil
}
