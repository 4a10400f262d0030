package evaluation

import (
	"context"
	"errors"
	"testing"

	"github.com/pacerode/evaluator/internal/domain"
	"github.com/pacerode/evaluator/internal/static/errs"
)

func TestResolveLanguage(t *testing.T) {
	catalog := []domain.EngineLanguage{
		{ID: 50, Name: "C (GCC 9.2.0)"},
		{ID: 54, Name: "C++ (GCC 9.2.0)"},
		{ID: 71, Name: "Python (3.8.1)"},
		{ID: 70, Name: "Python (2.7.17)"},
		{ID: 62, Name: "Java (OpenJDK 13.0.1)"},
	}

	tests := []struct {
		name    string
		request string
		wantID  int
		wantErr bool
	}{
		{name: "case-insensitive substring", request: "python", wantID: 71},
		{name: "exact name", request: "Java (OpenJDK 13.0.1)", wantID: 62},
		{name: "first match wins on ambiguity", request: "gcc", wantID: 50},
		{name: "surrounding whitespace ignored", request: "  java  ", wantID: 62},
		{name: "unknown language", request: "cobol", wantErr: true},
		{name: "blank name", request: "   ", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &fakeEngine{languages: catalog}
			svc := newService(engine, newFakeRepo(), &fakeCache{})

			lang, err := svc.resolveLanguage(context.Background(), tt.request)
			if tt.wantErr {
				if !errors.Is(err, errs.UnsupportedLanguage) {
					t.Fatalf("expected UnsupportedLanguage, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveLanguage error: %v", err)
			}
			if lang.ID != tt.wantID {
				t.Errorf("resolved id = %d, want %d", lang.ID, tt.wantID)
			}
		})
	}
}
