package telegram_bot

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"bullyguard/internal/classifier"
	"bullyguard/internal/models"
)

type stubClassifier struct {
	verdict *models.Verdict
	err     error
	calls   int
}

func (s *stubClassifier) Classify(ctx context.Context, text string) (*models.Verdict, error) {
	s.calls++
	return s.verdict, s.err
}

func newTestBot(stub *stubClassifier) *Bot {
	return &Bot{clf: stub, logger: zap.NewNop()}
}

func TestReplyForEmptyTextSkipsClassifier(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"", "   ", "\t\n"} {
		stub := &stubClassifier{}
		got := newTestBot(stub).replyFor(context.Background(), text)
		if got != emptyTextPrompt {
			t.Errorf("replyFor(%q) = %q, want prompt", text, got)
		}
		if stub.calls != 0 {
			t.Errorf("replyFor(%q) called the classifier %d times", text, stub.calls)
		}
	}
}

func TestReplyForBullyingVerdict(t *testing.T) {
	t.Parallel()

	stub := &stubClassifier{verdict: &models.Verdict{Label: "bullying", Confidence: 97.3456}}
	got := newTestBot(stub).replyFor(context.Background(), "you are the worst")

	want := "🚨 *Potential Bullying*\nConfidence: 97.35%"
	if got != want {
		t.Errorf("reply = %q, want %q", got, want)
	}
}

func TestReplyForRespectfulVerdict(t *testing.T) {
	t.Parallel()

	stub := &stubClassifier{verdict: &models.Verdict{Label: "respectful", Confidence: 88}}
	got := newTestBot(stub).replyFor(context.Background(), "nice job today")

	want := "✅ *Respectful*\nConfidence: 88.00%"
	if got != want {
		t.Errorf("reply = %q, want %q", got, want)
	}
}

func TestCommandReply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cmd  string
		want string
	}{
		{cmd: "start", want: greetingText},
		{cmd: "help", want: helpText},
		{cmd: "settings", want: unknownCmdReply},
	}

	for _, tt := range tests {
		if got := commandReply(tt.cmd); got != tt.want {
			t.Errorf("commandReply(%q) = %q, want %q", tt.cmd, got, tt.want)
		}
	}
}

func TestReplyForClassifierError(t *testing.T) {
	t.Parallel()

	stub := &stubClassifier{err: &classifier.ClassificationError{Err: errors.New("model service down")}}
	got := newTestBot(stub).replyFor(context.Background(), "hello there")

	if got != classifyErrReply {
		t.Errorf("reply = %q, want fixed error reply", got)
	}
	if stub.calls != 1 {
		t.Errorf("classifier called %d times, want 1", stub.calls)
	}
}
