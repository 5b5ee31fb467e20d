package reconcile

// BuildOperations converts canonical records into one conditional upsert each.
//
// With dedupe, only the last occurrence of each question is kept, placed where the
// question first appeared; the batch then carries at most one operation per key.
func BuildOperations(records []CanonicalRecord, dedupe bool) []UpsertOp {
	ops := make([]UpsertOp, 0, len(records))
	if !dedupe {
		for _, rec := range records {
			ops = append(ops, newUpsert(rec))
		}
		return ops
	}

	position := make(map[string]int, len(records))
	for _, rec := range records {
		if i, seen := position[rec.Question]; seen {
			ops[i] = newUpsert(rec)
			continue
		}
		position[rec.Question] = len(ops)
		ops = append(ops, newUpsert(rec))
	}
	return ops
}

func newUpsert(rec CanonicalRecord) UpsertOp {
	tags := rec.Tags
	if tags == nil {
		tags = []string{}
	}
	return UpsertOp{
		Question: rec.Question,
		Set: CanonicalRecord{
			Question: rec.Question,
			Answer:   rec.Answer,
			Tags:     tags,
		},
	}
}
