package selector

import (
	"fmt"
	"math/rand/v2"

	"github.com/sandeepkv93/lazyd/internal/catalog"
	"github.com/sandeepkv93/lazyd/internal/model"
)

// SeedBase is the seed of a session that has never rerolled, before the
// day ordinal is added.
const SeedBase int64 = 42

// BucketForLevel quantizes a level: >= 4 is Hard, >= 2 is Medium, else Easy.
func BucketForLevel(level int) model.Bucket {
	switch {
	case level >= 4:
		return model.BucketHard
	case level >= 2:
		return model.BucketMedium
	default:
		return model.BucketEasy
	}
}

// Seed folds the reroll counter and the day ordinal into one value.
func Seed(rerollCounter int, date model.Date) int64 {
	return SeedBase + int64(rerollCounter) + date.Ordinal()
}

// Candidates returns the candidate list the selector draws from.
func Candidates(c catalog.Catalog, category model.Category, level int) ([]string, error) {
	if !category.IsValid() {
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidCategory, category)
	}
	if err := model.ValidateLevel(level); err != nil {
		return nil, err
	}
	return c.Candidates(category, BucketForLevel(level))
}

// SelectTask picks one task. The result depends only on the arguments, so it
// is stable across restarts.
func SelectTask(c catalog.Catalog, category model.Category, level int, rerollCounter int, date model.Date) (string, error) {
	items, err := Candidates(c, category, level)
	if err != nil {
		return "", err
	}
	seed := uint64(Seed(rerollCounter, date))
	rng := rand.New(rand.NewPCG(seed, seed))
	return items[rng.IntN(len(items))], nil
}

// Daily builds the DailyTask for the given inputs.
func Daily(c catalog.Catalog, category model.Category, level int, rerollCounter int, date model.Date) (model.DailyTask, error) {
	task, err := SelectTask(c, category, level, rerollCounter, date)
	if err != nil {
		return model.DailyTask{}, err
	}
	return model.DailyTask{Date: date, Category: category, Level: level, Task: task}, nil
}
