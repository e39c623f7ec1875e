package commands

import (
	"fmt"

	"overtimepay/overtime"
)

type rejection struct {
	record overtime.Record
	err    error
}

// acceptAll runs a file's records through acceptance in file order. A file
// is a set of records, not an edit log, so a repeated id is rejected rather
// than treated as a replacement.
func acceptAll(records []overtime.Record) ([]overtime.Record, []rejection) {
	seen := make(map[string]bool, len(records))
	var accepted []overtime.Record
	var rejected []rejection
	for _, r := range records {
		var err error
		if seen[r.ID] {
			err = &overtime.ValidationError{Field: "id", Message: fmt.Sprintf("%q is already used by an earlier record", r.ID)}
		} else {
			err = overtime.Accept(r, accepted)
		}
		seen[r.ID] = true
		if err != nil {
			rejected = append(rejected, rejection{record: r, err: err})
			continue
		}
		accepted = append(accepted, r)
	}
	return accepted, rejected
}
