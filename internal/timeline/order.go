package timeline

import (
	"errors"
	"fmt"

	"fleet-tracker/internal/model"
)

var ErrUnordered = errors.New("samples are not in ascending timestamp order")

// CheckOrdered reports the first sample whose timestamp precedes its
// predecessor. Equal timestamps are accepted.
func CheckOrdered(samples []model.Sample) error {
	for i := 1; i < len(samples); i++ {
		if samples[i].Timestamp.Before(samples[i-1].Timestamp) {
			return fmt.Errorf("sample %d (id %d): %w", i, samples[i].ID, ErrUnordered)
		}
	}
	return nil
}
