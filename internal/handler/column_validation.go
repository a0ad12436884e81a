package handler

import (
	"errors"
	"fmt"

	"flowwork/internal/formula"
	"flowwork/internal/model"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateColumnConfig checks a column's settings against its type. Formula
// expressions must compile; placeholders may name columns that do not exist
// yet, since those evaluate to zero.
func validateColumnConfig(t model.ColumnType, cfg model.ColumnConfig) error {
	if !t.Valid() {
		return fmt.Errorf("unknown column type %q", t)
	}
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid %s", verrs[0].Field())
		}
		return err
	}

	switch t {
	case model.ColumnFormula:
		if cfg.Formula == "" {
			return errors.New("formula columns need a formula")
		}
		if _, err := formula.Compile(cfg.Formula); err != nil {
			return fmt.Errorf("invalid formula: %w", err)
		}
	case model.ColumnDropdown:
		if len(cfg.Options) == 0 {
			return errors.New("dropdown columns need options")
		}
	}
	return nil
}
