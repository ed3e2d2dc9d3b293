package datasource

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/tablekit/internal/pagination"
)

// Source errors.
var (
	ErrInvalidBatch = errors.New("offset must be >= 0 and limit > 0")
	ErrClosed       = errors.New("data source is closed")
)

// Sortable field names, shared by every source.
const (
	FieldID     = "id"
	FieldName   = "name"
	FieldOwner  = "owner"
	FieldAmount = "amount"
)

// SortFields lists the fields a source can order by.
func SortFields() []string {
	return []string{FieldID, FieldName, FieldOwner, FieldAmount}
}

// Record is one table row.
type Record struct {
	ID     int
	Name   string
	Owner  string
	Amount float64
	Status string
}

// Source pages records by offset.
type Source interface {
	// Fetch returns up to limit records starting at offset. A short batch
	// means the source is exhausted.
	Fetch(ctx context.Context, offset, limit int) ([]Record, error)
	// Total returns the number of records the source holds.
	Total(ctx context.Context) (int, error)
}

// Columns returns the column titles matching Record.Cells.
func Columns() []string {
	return []string{"ID", "Name", "Owner", "Amount", "Status"}
}

// Cells formats r for display using p for locale-aware numbers.
func (r Record) Cells(p *message.Printer) []string {
	return []string{
		p.Sprintf("%d", r.ID),
		r.Name,
		r.Owner,
		p.Sprintf("%.2f", r.Amount),
		r.Status,
	}
}

// NewPrinter returns the printer used for record cells.
func NewPrinter() *message.Printer {
	return message.NewPrinter(language.English)
}

var (
	//nolint:gochecknoglobals // Fixed word lists for deterministic synthetic data.
	adjectives = []string{"amber", "brisk", "cobalt", "dusty", "eager", "frosty", "gentle", "hollow"}
	//nolint:gochecknoglobals // Fixed word lists for deterministic synthetic data.
	nouns = []string{"falcon", "harbor", "lantern", "meadow", "orchid", "pebble", "quartz", "summit"}
	//nolint:gochecknoglobals // Fixed word lists for deterministic synthetic data.
	owners = []string{"alice", "bo", "chen", "dmitri", "esi", "farah"}
	//nolint:gochecknoglobals // Fixed word lists for deterministic synthetic data.
	statuses = []string{"active", "pending", "archived"}
)

// Generate builds record id deterministically.
func Generate(id int) Record {
	return Record{
		ID:     id,
		Name:   fmt.Sprintf("%s-%s-%d", adjectives[id%len(adjectives)], nouns[(id/len(adjectives))%len(nouns)], id),
		Owner:  owners[(id*7)%len(owners)],
		Amount: float64((id*7919)%100000) / 100,
		Status: statuses[id%len(statuses)],
	}
}

// SortRecords orders records in place by field and order.
func SortRecords(records []Record, field, order string) {
	if field == "" {
		return
	}
	less := func(a, b Record) bool {
		switch field {
		case FieldName:
			return a.Name < b.Name
		case FieldOwner:
			if a.Owner == b.Owner {
				return a.ID < b.ID
			}
			return a.Owner < b.Owner
		case FieldAmount:
			if a.Amount == b.Amount {
				return a.ID < b.ID
			}
			return a.Amount < b.Amount
		default:
			return a.ID < b.ID
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		if order == pagination.SortOrderDesc {
			return less(records[j], records[i])
		}
		return less(records[i], records[j])
	})
}

func validateBatch(offset, limit int) error {
	if offset < 0 || limit <= 0 {
		return fmt.Errorf("%w: offset=%d limit=%d", ErrInvalidBatch, offset, limit)
	}
	return nil
}
