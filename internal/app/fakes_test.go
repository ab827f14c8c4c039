package app

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/qepting91/reddit-annotator/internal/collector"
	"github.com/qepting91/reddit-annotator/internal/domain"
	"github.com/qepting91/reddit-annotator/internal/sentiment"
	"github.com/stretchr/testify/require"
)

// step is one scripted answer. kind names the Prompter/FilePicker method.
type step struct {
	kind  string
	value any
	err   error
}

func answer(kind string, value any) step { return step{kind: kind, value: value} }
func cancel(kind string) step            { return step{kind: kind, err: domain.ErrCancelled} }

type fakeUI struct {
	t       *testing.T
	steps   []step
	notices []string
	shown   []string
	asked   []string
}

func newFakeUI(t *testing.T, steps ...step) *fakeUI {
	return &fakeUI{t: t, steps: steps}
}

func (f *fakeUI) next(kind, message string) step {
	f.t.Helper()
	f.asked = append(f.asked, message)
	require.NotEmpty(f.t, f.steps, "unexpected %s prompt: %q", kind, message)
	s := f.steps[0]
	f.steps = f.steps[1:]
	require.Equal(f.t, s.kind, kind, "prompt %q", message)
	return s
}

func (f *fakeUI) Select(title, message string, options []domain.Option) (string, error) {
	s := f.next("select", message)
	if s.err != nil {
		return "", s.err
	}
	return s.value.(string), nil
}

func (f *fakeUI) MultiSelect(title, message string, options []domain.Option) ([]string, error) {
	s := f.next("multi", message)
	if s.err != nil {
		return nil, s.err
	}
	return s.value.([]string), nil
}

func (f *fakeUI) Input(title, message, def string) (string, error) {
	s := f.next("input", message)
	if s.err != nil {
		return "", s.err
	}
	return s.value.(string), nil
}

func (f *fakeUI) Secret(title, message string) (string, error) {
	s := f.next("secret", message)
	if s.err != nil {
		return "", s.err
	}
	return s.value.(string), nil
}

func (f *fakeUI) Confirm(title, message string) (bool, error) {
	s := f.next("confirm", message)
	if s.err != nil {
		return false, s.err
	}
	return s.value.(bool), nil
}

func (f *fakeUI) Notify(title, message string) error {
	f.notices = append(f.notices, message)
	return nil
}

func (f *fakeUI) ShowPost(title, body string) error {
	f.shown = append(f.shown, title)
	return nil
}

func (f *fakeUI) Open(title string) (string, error) {
	s := f.next("open", title)
	if s.err != nil {
		return "", s.err
	}
	return s.value.(string), nil
}

func (f *fakeUI) Save(title string) (string, error) {
	s := f.next("save", title)
	if s.err != nil {
		return "", s.err
	}
	return s.value.(string), nil
}

func (f *fakeUI) done() {
	f.t.Helper()
	require.Empty(f.t, f.steps, "unused scripted answers")
}

type nopProgress struct{ last int }

func (p *nopProgress) Set(n int) { p.last = n }
func (p *nopProgress) Finish()   {}

func newMockSession(t *testing.T) (*collector.Session, *collector.MockClient) {
	t.Helper()
	mock := collector.NewMockClient(clockwork.NewFakeClockAt(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)))
	s, err := collector.Authenticate(context.Background(), mock, "python", slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return s, mock
}

func newTestController(t *testing.T, ui *fakeUI) (*Controller, *collector.MockClient) {
	t.Helper()
	session, mock := newMockSession(t)
	c := New(Deps{
		Prompt:         ui,
		Picker:         ui,
		Progress:       func(int, string, string) ProgressReporter { return &nopProgress{} },
		Session:        session,
		Scorer:         sentiment.NewAnalyzer(),
		CommentTimeout: time.Second,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return c, mock
}
