package continuity

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/sandeepkv93/lazyd/internal/model"
)

// History holds at most one completion per calendar day.
type History map[model.Date]model.CompletionRecord

// RecordCompletion returns a copy of h with the record for date inserted or
// replaced. h itself is left untouched.
func RecordCompletion(h History, date model.Date, category model.Category, task string) (History, error) {
	rec := model.CompletionRecord{Date: date, Category: category, Task: task}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	out := make(History, len(h)+1)
	for k, v := range h {
		out[k] = v
	}
	out[date] = rec
	return out, nil
}

// Log returns every record, newest first.
func Log(h History) []model.CompletionRecord {
	out := make([]model.CompletionRecord, 0, len(h))
	for _, rec := range h {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

type recordJSON struct {
	Date     string `json:"date"`
	Category string `json:"category"`
	Task     string `json:"task"`
}

// MarshalHistory encodes h as a JSON array ordered by date.
func MarshalHistory(h History) ([]byte, error) {
	recs := Log(h)
	out := make([]recordJSON, 0, len(recs))
	for i := len(recs) - 1; i >= 0; i-- {
		out = append(out, recordJSON{
			Date:     recs[i].Date.String(),
			Category: string(recs[i].Category),
			Task:     recs[i].Task,
		})
	}
	return json.MarshalIndent(out, "", "  ")
}

// UnmarshalHistory decodes the MarshalHistory layout. Later entries for a
// date replace earlier ones.
func UnmarshalHistory(raw []byte) (History, error) {
	out := make(History)
	if strings.TrimSpace(string(raw)) == "" {
		return out, nil
	}
	var items []recordJSON
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	for i, item := range items {
		date, err := model.ParseDate(item.Date)
		if err != nil {
			return nil, fmt.Errorf("history entry %d: %w", i, err)
		}
		category, err := model.ParseCategory(item.Category)
		if err != nil {
			return nil, fmt.Errorf("history entry %d: %w", i, err)
		}
		out[date] = model.CompletionRecord{Date: date, Category: category, Task: item.Task}
	}
	return out, nil
}
