package reconcile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"teach-sync/core/utils"
)

// Field aliases accepted in raw input, in lookup order.
var (
	questionFields = []string{"q", "question"}
	answerFields   = []string{"a", "answer"}
)

// NormalizeStats reports what Normalize did with its input.
type NormalizeStats struct {
	// Input is the number of raw records received.
	Input int
	// Kept is the number of canonical records produced.
	Kept int
	// Dropped is the number of raw records discarded for a blank question or answer.
	Dropped int
}

// DecodeRawRecords parses a JSON array of raw records.
// A document that is not a JSON array, or an empty array, fails with ErrEmptyOrInvalidInput.
// Array elements that are not objects decode to nil records, which Normalize drops.
func DecodeRawRecords(data []byte) ([]RawRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var items []any
	if err := dec.Decode(&items); err != nil {
		return nil, fmt.Errorf("%w: expected a JSON array of records: %v", ErrEmptyOrInvalidInput, err)
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after the record array", ErrEmptyOrInvalidInput)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no records", ErrEmptyOrInvalidInput)
	}

	raw := make([]RawRecord, len(items))
	for i, item := range items {
		if obj, ok := item.(map[string]any); ok {
			raw[i] = obj
		}
	}
	return raw, nil
}

// Normalize validates and canonicalizes raw records.
// Records with a blank question or answer are dropped. Survivors keep their relative order
// and are not deduplicated. Empty input fails with ErrEmptyOrInvalidInput.
func Normalize(raw []RawRecord) ([]CanonicalRecord, error) {
	records, _, err := NormalizeWithStats(raw)
	return records, err
}

// NormalizeWithStats is Normalize plus counters for reporting.
func NormalizeWithStats(raw []RawRecord) ([]CanonicalRecord, NormalizeStats, error) {
	stats := NormalizeStats{Input: len(raw)}
	if len(raw) == 0 {
		return nil, stats, fmt.Errorf("%w: no records", ErrEmptyOrInvalidInput)
	}

	records := make([]CanonicalRecord, 0, len(raw))
	for _, r := range raw {
		rec, ok := canonicalize(r)
		if !ok {
			stats.Dropped++
			continue
		}
		records = append(records, rec)
	}
	stats.Kept = len(records)

	return records, stats, nil
}

// canonicalize converts one raw record, reporting false if it must be dropped.
func canonicalize(r RawRecord) (CanonicalRecord, bool) {
	question := strings.TrimSpace(firstNonEmpty(r, questionFields))
	answer := strings.TrimSpace(firstNonEmpty(r, answerFields))
	if question == "" || answer == "" {
		return CanonicalRecord{}, false
	}

	tags, ok := utils.StringSlice(r["tags"])
	if !ok {
		tags = []string{}
	}

	return CanonicalRecord{Question: question, Answer: answer, Tags: tags}, true
}

// firstNonEmpty returns the rendering of the first field value that is not falsy.
// Emptiness is tested before trimming, so a whitespace-only alias shadows later ones;
// false and numeric zero count as empty and fall through.
func firstNonEmpty(r RawRecord, fields []string) string {
	for _, field := range fields {
		if utils.Falsy(r[field]) {
			continue
		}
		if s, ok := utils.ScalarString(r[field]); ok {
			return s
		}
	}
	return ""
}
