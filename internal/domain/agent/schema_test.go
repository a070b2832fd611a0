package agent

import (
	"encoding/json"
	"errors"
	"testing"
)

func decode(t *testing.T, doc string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(doc), &v); err != nil {
		t.Fatalf("unmarshal test doc: %v", err)
	}
	return v
}

func TestSchemaValidate_MissingRequiredField(t *testing.T) {
	s := foodAnalysisSchema()
	doc := decode(t, `{
		"type": "FOOD",
		"foodName": "Borscht",
		"calories": 250,
		"protein": 8,
		"carbs": 30,
		"description": "beet soup",
		"suggestedRecipes": []
	}`)

	err := s.Validate(doc)
	if err == nil {
		t.Fatal("expected error for missing fat field")
	}
	if !errors.Is(err, ErrSchemaViolation) {
		t.Fatalf("expected ErrSchemaViolation, got %v", err)
	}
}

func TestSchemaValidate_FullDocument(t *testing.T) {
	s := foodAnalysisSchema()
	doc := decode(t, `{
		"type": "FOOD",
		"foodName": "Borscht",
		"calories": 250,
		"protein": 8,
		"carbs": 30,
		"fat": 10,
		"confidence": "high",
		"description": "beet soup",
		"suggestedRecipes": [{"name": "Green borscht", "description": "with sorrel"}]
	}`)

	if err := s.Validate(doc); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestSchemaValidate_EnumRejectsUnknownValue(t *testing.T) {
	s := documentAnalysisSchema()
	doc := decode(t, `{
		"type": "DOCUMENT",
		"title": "Lease",
		"summary": "rental terms",
		"riskLevel": "Extreme",
		"keyPoints": [],
		"risks": [],
		"recommendation": "review clause 5"
	}`)

	err := s.Validate(doc)
	if !errors.Is(err, ErrSchemaViolation) {
		t.Fatalf("expected ErrSchemaViolation for enum value, got %v", err)
	}
}

func TestSchemaValidate_WrongTypeInNestedArray(t *testing.T) {
	s := recipeListSchema()
	doc := decode(t, `[{
		"name": "Omelette",
		"time": "10m",
		"calories": "many",
		"difficulty": "Easy",
		"ingredients": ["eggs"],
		"instructions": ["beat", "fry"]
	}]`)

	err := s.Validate(doc)
	if !errors.Is(err, ErrSchemaViolation) {
		t.Fatalf("expected ErrSchemaViolation for string calories, got %v", err)
	}
}

func TestSchemaValidate_RequiredFieldNull(t *testing.T) {
	s := landmarkAnalysisSchema()
	doc := decode(t, `{
		"type": "LANDMARK",
		"landmarkName": "Kazan Kremlin",
		"location": null,
		"history": "16th century fortress",
		"tips": ["go early"]
	}`)

	err := s.Validate(doc)
	if !errors.Is(err, ErrSchemaViolation) {
		t.Fatalf("expected ErrSchemaViolation for null required field, got %v", err)
	}
}

func TestSchemaValidate_OptionalFieldAbsent(t *testing.T) {
	s := documentAnalysisSchema()
	doc := decode(t, `{
		"type": "DOCUMENT",
		"title": "Lease",
		"summary": "rental terms",
		"riskLevel": "Low",
		"keyPoints": ["term is 11 months"],
		"risks": [],
		"recommendation": "sign"
	}`)

	if err := s.Validate(doc); err != nil {
		t.Fatalf("Validate() error = %v (missingClauses is optional)", err)
	}
}

func TestJSONSchema_RendersNestedStructure(t *testing.T) {
	s := workoutSchema()
	rendered := s.JSONSchema()

	if got, want := rendered["type"], "object"; got != want {
		t.Fatalf("type mismatch: got=%v want=%v", got, want)
	}
	props, ok := rendered["properties"].(map[string]any)
	if !ok {
		t.Fatalf("properties not rendered: %#v", rendered["properties"])
	}
	exercises, ok := props["exercises"].(map[string]any)
	if !ok {
		t.Fatalf("exercises not rendered: %#v", props["exercises"])
	}
	items, ok := exercises["items"].(map[string]any)
	if !ok {
		t.Fatalf("items not rendered: %#v", exercises["items"])
	}
	if got, want := items["type"], "object"; got != want {
		t.Fatalf("nested type mismatch: got=%v want=%v", got, want)
	}
}
