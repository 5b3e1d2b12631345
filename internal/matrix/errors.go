package matrix

import "fmt"

// PairError is a failed request for one (medication, food) pair.
// Index is the pair's row-major position in the grid.
type PairError struct {
	Index      int
	Medication string
	Food       string
	Err        error
}

func (e *PairError) Error() string {
	return fmt.Sprintf("pair %d (%s, %s): %v", e.Index, e.Medication, e.Food, e.Err)
}

func (e *PairError) Unwrap() error {
	return e.Err
}
