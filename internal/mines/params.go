package mines

import "fmt"

// GameParams are the numeric knobs of a game. ShowMinesOnlyOnFailed
// limits the board normalization on a loss to mine cells, keeping
// unrevealed safe cells covered.
type GameParams struct {
	Width                 int  `json:"width"`
	Height                int  `json:"height"`
	MineQuantity          int  `json:"mine_quantity"`
	ShowMinesOnlyOnFailed bool `json:"show_mines_only_on_failed"`
}

// Validate reports whether a game can be built from p. Width carries no
// bound of its own; unusable widths fall out of the capacity check.
func (p GameParams) Validate() error {
	if p.MineQuantity < 2 {
		return fmt.Errorf("%w: mine quantity must be at least 2, got %d",
			ErrInvalidParams, p.MineQuantity)
	}
	if p.Height < 2 {
		return fmt.Errorf("%w: height must be at least 2, got %d",
			ErrInvalidParams, p.Height)
	}
	if p.MineQuantity >= p.Width*p.Height {
		return fmt.Errorf("%w: %d mines will not fit %dx%d cells",
			ErrTooManyMines, p.MineQuantity, p.Width, p.Height)
	}
	return nil
}
