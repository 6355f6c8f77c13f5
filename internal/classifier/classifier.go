package classifier

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"bullyguard/internal/ml_client"
	"bullyguard/internal/models"
)

// ClassificationError wraps a failure to obtain a prediction at serve time.
// Handlers catch it per message; it never aborts the serving process.
type ClassificationError struct {
	Err error
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("classification failed: %v", e.Err)
}

func (e *ClassificationError) Unwrap() error { return e.Err }

// Classifier is the single call the serving layers depend on.
type Classifier interface {
	Classify(ctx context.Context, text string) (*models.Verdict, error)
}

// Adapter wraps the fitted model behind the Classifier interface. It holds
// the model handle produced by training and is read-only afterwards, so one
// instance is shared by all handlers.
type Adapter struct {
	client  *ml_client.Client
	modelID string
	logger  *zap.Logger
}

// NewAdapter creates an adapter bound to a fitted model.
func NewAdapter(client *ml_client.Client, modelID string, logger *zap.Logger) *Adapter {
	return &Adapter{
		client:  client,
		modelID: modelID,
		logger:  logger,
	}
}

// Classify runs the model over a message and maps the raw prediction to a
// verdict with a percentage confidence.
func (a *Adapter) Classify(ctx context.Context, text string) (*models.Verdict, error) {
	pred, err := a.client.Predict(ctx, text, a.modelID)
	if err != nil {
		return nil, &ClassificationError{Err: err}
	}

	label := "respectful"
	if isPositive(pred.Label) {
		label = "bullying"
	}

	verdict := &models.Verdict{
		Label:      label,
		Confidence: pred.Score * 100,
	}

	a.logger.Debug("Message classified",
		zap.String("label", verdict.Label),
		zap.Float64("confidence", verdict.Confidence),
	)

	return verdict, nil
}

// isPositive recognizes the model's spellings of the positive class.
func isPositive(rawLabel string) bool {
	switch strings.ToLower(strings.TrimSpace(rawLabel)) {
	case "bullying", "label_1", "1":
		return true
	}
	return false
}
