package datasource

import (
	"context"
)

// MemorySource serves generated records from memory.
type MemorySource struct {
	records []Record
}

// NewMemorySource generates total records ordered by field and order.
func NewMemorySource(total int, field, order string) *MemorySource {
	records := make([]Record, total)
	for i := range records {
		records[i] = Generate(i + 1)
	}
	SortRecords(records, field, order)
	return &MemorySource{records: records}
}

// Fetch implements Source.
func (s *MemorySource) Fetch(ctx context.Context, offset, limit int) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateBatch(offset, limit); err != nil {
		return nil, err
	}

	start := min(offset, len(s.records))
	end := min(start+limit, len(s.records))

	out := make([]Record, end-start)
	copy(out, s.records[start:end])
	return out, nil
}

// Total implements Source.
func (s *MemorySource) Total(_ context.Context) (int, error) {
	return len(s.records), nil
}
