package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sandeepkv93/lazyd/internal/model"
)

// Catalog maps category and bucket to the ordered candidate tasks.
type Catalog map[model.Category]map[model.Bucket][]string

// Default returns the built-in catalog. Each call returns a fresh copy.
func Default() Catalog {
	return Catalog{
		model.CategoryStudy: {
			model.BucketEasy:   {"Memorize 5 English words", "Read one textbook page"},
			model.BucketMedium: {"Memorize 1 English word", "Read only the textbook headings"},
			model.BucketHard:   {"Just look at 1 English word", "Open your notebook for 1 minute"},
		},
		model.CategoryExercise: {
			model.BucketEasy:   {"10 squats", "10 push-ups"},
			model.BucketMedium: {"3 squats", "Stretch for 1 minute"},
			model.BucketHard:   {"Stand up and take 3 deep breaths", "Roll your shoulders 10 times"},
		},
		model.CategoryCleaning: {
			model.BucketEasy:   {"Tidy your desk for 3 minutes", "Vacuum the floor for 3 minutes"},
			model.BucketMedium: {"Wipe one corner of the desk", "Throw away one piece of trash"},
			model.BucketHard:   {"Give the desk one wipe with a tissue", "Pick up one scrap of paper from the floor"},
		},
		model.CategoryCreative: {
			model.BucketEasy:   {"Sketch for 3 minutes", "Write 100 words"},
			model.BucketMedium: {"Sketch for 1 minute", "Write 30 words"},
			model.BucketHard:   {"Draw 10 dots and lines", "Write a single sentence"},
		},
		model.CategoryJournal: {
			model.BucketEasy:   {"Write 3 lines about today", "List 3 good things"},
			model.BucketMedium: {"Write down 1 good thing", "Describe today's mood in one line"},
			model.BucketHard:   {"Describe today's mood in one word", "Draw one emoticon (e.g. 🙂)"},
		},
	}
}

// Candidates returns the tasks for a category and bucket.
func (c Catalog) Candidates(category model.Category, bucket model.Bucket) ([]string, error) {
	if !category.IsValid() {
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidCategory, category)
	}
	items := c[category][bucket]
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: %s/%s", model.ErrEmptyBucket, category, bucket)
	}
	return items, nil
}

// Validate checks that every category and bucket has at least one non-blank
// task. A failure here is a configuration defect and should stop startup.
func (c Catalog) Validate() error {
	for _, category := range model.Categories {
		for _, bucket := range model.Buckets {
			items, err := c.Candidates(category, bucket)
			if err != nil {
				return err
			}
			for i, item := range items {
				if strings.TrimSpace(item) == "" {
					return fmt.Errorf("%w: %s/%s entry %d is blank", model.ErrEmptyBucket, category, bucket, i)
				}
			}
		}
	}
	for category := range c {
		if !category.IsValid() {
			return fmt.Errorf("%w: %q", model.ErrInvalidCategory, category)
		}
	}
	return nil
}

// file is the YAML layout of a catalog override:
//
//	Exercise:
//	  1: ["10 squats"]
//	  5: ["Stand up"]
type file map[string]map[int][]string

// Parse decodes a YAML catalog. Categories and buckets missing from the
// document keep their built-in tasks.
func Parse(raw []byte) (Catalog, error) {
	var doc file
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	out := Default()
	for name, buckets := range doc {
		category, err := model.ParseCategory(name)
		if err != nil {
			return nil, err
		}
		for level, items := range buckets {
			bucket := model.Bucket(level)
			if !bucket.IsValid() {
				return nil, fmt.Errorf("catalog: %s has unknown bucket %d", category, level)
			}
			out[category][bucket] = append([]string(nil), items...)
		}
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// Load reads a catalog file. An empty path yields the built-in catalog.
func Load(path string) (Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(raw)
}
