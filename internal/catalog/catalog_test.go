package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sandeepkv93/lazyd/internal/model"
)

func TestDefaultCatalogIsComplete(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("default catalog invalid: %v", err)
	}
	items, err := c.Candidates(model.CategoryExercise, model.BucketHard)
	if err != nil {
		t.Fatalf("candidates: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 exercise/hard tasks, got %d", len(items))
	}
}

func TestDefaultReturnsIndependentCopies(t *testing.T) {
	a := Default()
	a[model.CategoryStudy][model.BucketEasy] = nil
	b := Default()
	if len(b[model.CategoryStudy][model.BucketEasy]) == 0 {
		t.Fatal("mutating one default catalog leaked into another")
	}
}

func TestCandidatesErrors(t *testing.T) {
	c := Default()
	if _, err := c.Candidates(model.Category("Sleep"), model.BucketEasy); !errors.Is(err, model.ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
	c[model.CategoryJournal][model.BucketMedium] = []string{}
	if _, err := c.Candidates(model.CategoryJournal, model.BucketMedium); !errors.Is(err, model.ErrEmptyBucket) {
		t.Fatalf("expected ErrEmptyBucket, got %v", err)
	}
	if err := c.Validate(); !errors.Is(err, model.ErrEmptyBucket) {
		t.Fatalf("expected validate to report ErrEmptyBucket, got %v", err)
	}
}

func TestParseOverridesSelectedBuckets(t *testing.T) {
	raw := []byte(`
exercise:
  5:
    - "Wiggle your toes"
Journal:
  1: ["Write a page"]
`)
	c, err := Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	hard, _ := c.Candidates(model.CategoryExercise, model.BucketHard)
	if len(hard) != 1 || hard[0] != "Wiggle your toes" {
		t.Fatalf("unexpected override: %#v", hard)
	}
	easy, _ := c.Candidates(model.CategoryExercise, model.BucketEasy)
	if len(easy) != 2 {
		t.Fatalf("expected untouched bucket to keep defaults, got %#v", easy)
	}
}

func TestParseRejectsBadDocuments(t *testing.T) {
	if _, err := Parse([]byte("Sleep:\n  1: [\"nap\"]\n")); !errors.Is(err, model.ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
	if _, err := Parse([]byte("Study:\n  2: [\"read\"]\n")); err == nil {
		t.Fatal("expected error for unknown bucket")
	}
	if _, err := Parse([]byte("Study:\n  3: []\n")); !errors.Is(err, model.ErrEmptyBucket) {
		t.Fatalf("expected ErrEmptyBucket, got %v", err)
	}
	if _, err := Parse([]byte("::: not yaml")); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestLoad(t *testing.T) {
	c, err := Load("")
	if err != nil || c.Validate() != nil {
		t.Fatalf("empty path should load defaults: %v", err)
	}

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte("Cleaning:\n  1: [\"Wash one cup\"]\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err = Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	items, _ := c.Candidates(model.CategoryCleaning, model.BucketEasy)
	if len(items) != 1 || items[0] != "Wash one cup" {
		t.Fatalf("unexpected loaded bucket: %#v", items)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
