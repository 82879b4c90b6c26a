package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go-pattern-analyzer/pkg/models"
)

func sampleResult(id string) *models.AnalysisResult {
	return &models.AnalysisResult{
		ID: id,
		Patterns: []models.PatternRecord{
			{Type: models.PatternCustom, Name: "Possible Pattern", Confidence: 0.3},
		},
		Metadata: models.AnalysisMetadata{AnalysisQuality: models.QualityLow},
	}
}

func TestSave_AssignsIDAndTimestamp(t *testing.T) {
	repo := NewMemoryAnalysisRepository()
	result := sampleResult("")

	if err := repo.Save(context.Background(), result); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if result.ID == "" {
		t.Error("Expected Save to assign an ID")
	}
	if result.Timestamp.IsZero() {
		t.Error("Expected Save to assign a timestamp")
	}
}

func TestSave_PreservesExistingIdentity(t *testing.T) {
	repo := NewMemoryAnalysisRepository()
	result := sampleResult("analysis-1")

	if err := repo.Save(context.Background(), result); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if result.ID != "analysis-1" {
		t.Errorf("Expected caller-supplied ID preserved, got %q", result.ID)
	}
}

func TestGet_ReturnsCopy(t *testing.T) {
	repo := NewMemoryAnalysisRepository()
	original := sampleResult("analysis-1")
	if err := repo.Save(context.Background(), original); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	fetched, err := repo.Get(context.Background(), "analysis-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	fetched.Metadata.AnalysisQuality = models.QualityHigh

	again, err := repo.Get(context.Background(), "analysis-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if again.Metadata.AnalysisQuality != models.QualityLow {
		t.Error("Expected mutation of a fetched result not to affect stored state")
	}
}

func TestGet_NotFound(t *testing.T) {
	repo := NewMemoryAnalysisRepository()

	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, ErrAnalysisNotFound) {
		t.Errorf("Expected ErrAnalysisNotFound, got %v", err)
	}
}

func TestHistory_NewestFirstWithLimit(t *testing.T) {
	repo := NewMemoryAnalysisRepository()
	for i := 0; i < 5; i++ {
		if err := repo.Save(context.Background(), sampleResult(fmt.Sprintf("analysis-%d", i))); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	history, err := repo.History(context.Background(), 3)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(history))
	}
	for i, want := range []string{"analysis-4", "analysis-3", "analysis-2"} {
		if history[i].ID != want {
			t.Errorf("history[%d] = %q, want %q", i, history[i].ID, want)
		}
	}
}

func TestHistory_ZeroLimitReturnsAll(t *testing.T) {
	repo := NewMemoryAnalysisRepository()
	for i := 0; i < 3; i++ {
		if err := repo.Save(context.Background(), sampleResult(fmt.Sprintf("analysis-%d", i))); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	history, err := repo.History(context.Background(), 0)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 3 {
		t.Errorf("Expected all 3 results for limit 0, got %d", len(history))
	}
}

func TestSave_Resave_DoesNotDuplicateHistory(t *testing.T) {
	repo := NewMemoryAnalysisRepository()
	result := sampleResult("analysis-1")

	if err := repo.Save(context.Background(), result); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	result.Metadata.AnalysisQuality = models.QualityHigh
	if err := repo.Save(context.Background(), result); err != nil {
		t.Fatalf("Re-save failed: %v", err)
	}

	history, err := repo.History(context.Background(), 0)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("Expected 1 entry after re-save, got %d", len(history))
	}
	if history[0].Metadata.AnalysisQuality != models.QualityHigh {
		t.Error("Expected re-save to overwrite the stored result")
	}
}
