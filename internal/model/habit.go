package model

import (
	"errors"
	"fmt"
	"strings"
)

// DailyTask is the suggestion shown for one day. A new value replaces it on
// reroll or when the day changes.
type DailyTask struct {
	Date     Date
	Category Category
	Level    int
	Task     string
}

func (t DailyTask) Validate() error {
	if t.Date.IsZero() {
		return errors.New("model: daily task date is required")
	}
	if !t.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, t.Category)
	}
	if err := ValidateLevel(t.Level); err != nil {
		return err
	}
	if strings.TrimSpace(t.Task) == "" {
		return errors.New("model: daily task text is required")
	}
	return nil
}

// CompletionRecord marks one day as done. Date is unique within a history.
type CompletionRecord struct {
	Date     Date     `json:"date" yaml:"date"`
	Category Category `json:"category" yaml:"category"`
	Task     string   `json:"task" yaml:"task"`
}

func (r CompletionRecord) Validate() error {
	if r.Date.IsZero() {
		return fmt.Errorf("%w: empty date", ErrMalformedDate)
	}
	if !r.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, r.Category)
	}
	return nil
}
