package testsupport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formsubmissions/pkg/model"
)

type fieldsPayload struct {
	Data struct {
		Controls struct {
			Data []model.RawField `json:"data"`
		} `json:"controls"`
	} `json:"data"`
}

type submissionsPayload struct {
	Data []model.RawSubmission `json:"data"`
}

// LoadRawFields reads a fields endpoint fixture (data.controls.data envelope)
// and returns the raw field list.
func LoadRawFields(path string) ([]model.RawField, error) {
	var payload fieldsPayload
	if err := readJSON(path, &payload); err != nil {
		return nil, err
	}
	return payload.Data.Controls.Data, nil
}

// MustLoadRawFields is the testing.T flavour of LoadRawFields.
func MustLoadRawFields(t *testing.T, path string) []model.RawField {
	t.Helper()

	out, err := LoadRawFields(path)
	if err != nil {
		t.Fatalf("load raw fields: %v", err)
	}
	return out
}

// LoadRawSubmissions reads a submissions endpoint fixture (data envelope).
func LoadRawSubmissions(path string) ([]model.RawSubmission, error) {
	var payload submissionsPayload
	if err := readJSON(path, &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

// MustLoadRawSubmissions is the testing.T flavour of LoadRawSubmissions.
func MustLoadRawSubmissions(t *testing.T, path string) []model.RawSubmission {
	t.Helper()

	out, err := LoadRawSubmissions(path)
	if err != nil {
		t.Fatalf("load raw submissions: %v", err)
	}
	return out
}

// MustReadFixture returns the raw bytes of a fixture file.
func MustReadFixture(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

func readJSON(path string, into any) error {
	if path == "" {
		return errors.New("testsupport: fixture path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("testsupport: read fixture: %w", err)
	}
	if err := json.Unmarshal(data, into); err != nil {
		return fmt.Errorf("testsupport: unmarshal fixture: %w", err)
	}
	return nil
}
