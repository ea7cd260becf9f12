package batch

import (
	"github.com/ajxudir/pkgsync/pkg/errors"
)

// Summary counts the outcomes of one batch.
type Summary struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`

	failures []error
}

// Summarize tallies outcomes.
//
// Parameters:
//   - outcomes: Outcomes returned by Run
//
// Returns:
//   - Summary: Totals, with failure errors kept for Err
func Summarize(outcomes []Outcome) Summary {
	s := Summary{Total: len(outcomes)}
	for _, o := range outcomes {
		if o.Succeeded() {
			s.Succeeded++
			continue
		}
		s.Failed++
		s.failures = append(s.failures, o.Err)
	}
	return s
}

// Err returns nil when nothing failed and a *errors.PartialSuccessError
// otherwise. Its exit code is 1 when some installs succeeded and 2 when
// none did.
func (s Summary) Err() error {
	if s.Failed == 0 {
		return nil
	}
	return errors.NewPartialSuccessError(s.Succeeded, s.Failed, s.failures)
}
