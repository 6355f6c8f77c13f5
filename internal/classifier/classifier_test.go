package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"bullyguard/internal/ml_client"
)

func newTestAdapter(t *testing.T, handler http.HandlerFunc) *Adapter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewAdapter(ml_client.NewClient(srv.URL, time.Minute), "run-1", zap.NewNop())
}

func TestClassifyMapsLabels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		rawLabel       string
		score          float64
		wantLabel      string
		wantConfidence float64
	}{
		{name: "bullying", rawLabel: "bullying", score: 0.97, wantLabel: "bullying", wantConfidence: 97},
		{name: "positive class id", rawLabel: "LABEL_1", score: 0.8, wantLabel: "bullying", wantConfidence: 80},
		{name: "respectful", rawLabel: "respectful", score: 0.64, wantLabel: "respectful", wantConfidence: 64},
		{name: "unknown label is negative", rawLabel: "neutral", score: 0.5, wantLabel: "respectful", wantConfidence: 50},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(ml_client.Prediction{Label: tt.rawLabel, Score: tt.score})
			})

			verdict, err := adapter.Classify(context.Background(), "some message")
			if err != nil {
				t.Fatalf("Classify: %v", err)
			}
			if verdict.Label != tt.wantLabel {
				t.Errorf("Label = %q, want %q", verdict.Label, tt.wantLabel)
			}
			if verdict.Confidence != tt.wantConfidence {
				t.Errorf("Confidence = %v, want %v", verdict.Confidence, tt.wantConfidence)
			}
		})
	}
}

func TestClassifyWrapsFailures(t *testing.T) {
	t.Parallel()

	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := adapter.Classify(context.Background(), "some message")
	if err == nil {
		t.Fatal("Classify succeeded, want error")
	}
	var clsErr *ClassificationError
	if !errors.As(err, &clsErr) {
		t.Fatalf("error %v is not a *ClassificationError", err)
	}
}

func TestVerdictIsBullying(t *testing.T) {
	t.Parallel()

	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ml_client.Prediction{Label: "bullying", Score: 0.9})
	})

	verdict, err := adapter.Classify(context.Background(), "some message")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if !verdict.IsBullying() {
		t.Error("IsBullying() = false, want true")
	}
}
