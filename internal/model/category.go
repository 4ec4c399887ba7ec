package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidCategory = errors.New("model: invalid category")
	ErrInvalidLevel    = errors.New("model: invalid level")
	ErrEmptyBucket     = errors.New("model: empty catalog bucket")
	ErrInvalidGoal     = errors.New("model: invalid weekly goal")
	ErrMalformedDate   = errors.New("model: malformed date")
)

const (
	MinLevel = 1
	MaxLevel = 5
)

type Category string

const (
	CategoryStudy    Category = "Study"
	CategoryExercise Category = "Exercise"
	CategoryCleaning Category = "Cleaning"
	CategoryCreative Category = "Creative"
	CategoryJournal  Category = "Journal"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryStudy,
	CategoryExercise,
	CategoryCleaning,
	CategoryCreative,
	CategoryJournal,
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryStudy, CategoryExercise, CategoryCleaning, CategoryCreative, CategoryJournal:
		return true
	default:
		return false
	}
}

// ParseCategory matches a category name case-insensitively.
func ParseCategory(raw string) (Category, error) {
	trimmed := strings.TrimSpace(raw)
	for _, c := range Categories {
		if strings.EqualFold(string(c), trimmed) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, raw)
}

// Next returns the category after c, wrapping around.
func (c Category) Next() Category {
	for i, item := range Categories {
		if item == c {
			return Categories[(i+1)%len(Categories)]
		}
	}
	return Categories[0]
}

func (c Category) Emoji() string {
	switch c {
	case CategoryStudy:
		return "📘"
	case CategoryExercise:
		return "🏃"
	case CategoryCleaning:
		return "🧹"
	case CategoryCreative:
		return "🎨"
	case CategoryJournal:
		return "📝"
	default:
		return "•"
	}
}

// Color is the category accent as a hex string.
func (c Category) Color() string {
	switch c {
	case CategoryStudy:
		return "#2d6cdf"
	case CategoryExercise:
		return "#2ca02c"
	case CategoryCleaning:
		return "#ff7f0e"
	case CategoryCreative:
		return "#d62728"
	case CategoryJournal:
		return "#9467bd"
	default:
		return "#8b949e"
	}
}

type Bucket int

const (
	BucketEasy   Bucket = 1
	BucketMedium Bucket = 3
	BucketHard   Bucket = 5
)

var Buckets = []Bucket{BucketEasy, BucketMedium, BucketHard}

func (b Bucket) IsValid() bool {
	switch b {
	case BucketEasy, BucketMedium, BucketHard:
		return true
	default:
		return false
	}
}

func (b Bucket) String() string {
	switch b {
	case BucketEasy:
		return "Easy"
	case BucketMedium:
		return "Medium"
	case BucketHard:
		return "Hard"
	default:
		return fmt.Sprintf("Bucket(%d)", int(b))
	}
}

func ValidateLevel(level int) error {
	if level < MinLevel || level > MaxLevel {
		return fmt.Errorf("%w: %d", ErrInvalidLevel, level)
	}
	return nil
}

func ValidateGoal(goal int) error {
	if goal <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidGoal, goal)
	}
	return nil
}
