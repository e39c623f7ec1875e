package overtime

// Overlaps reports whether two records share any instant. Intervals are
// half-open, so a record ending at 12:00 and one starting at 12:00 do not
// overlap.
func Overlaps(a, b Record) bool {
	return a.Start.Before(b.End) && a.End.After(b.Start)
}

// Conflicts returns the records in existing that the candidate overlaps.
// A record with the candidate's ID is the one being edited and is skipped.
func Conflicts(candidate Record, existing []Record) []Record {
	var conflicts []Record
	for _, other := range existing {
		if other.ID == candidate.ID {
			continue
		}
		if Overlaps(candidate, other) {
			conflicts = append(conflicts, other)
		}
	}
	return conflicts
}

// Accept validates a new or edited record against the accepted set. It
// returns a *ValidationError or a *ConflictError; either one must block the
// write.
func Accept(candidate Record, existing []Record) error {
	if err := candidate.Validate(); err != nil {
		return err
	}
	if conflicts := Conflicts(candidate, existing); len(conflicts) > 0 {
		return &ConflictError{Candidate: candidate, Conflicts: conflicts}
	}
	return nil
}
