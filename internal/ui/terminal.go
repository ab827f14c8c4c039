// Package ui renders the interactive prompts, progress bars and file pickers.
package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/qepting91/reddit-annotator/internal/domain"
)

// Terminal asks questions on the controlling terminal. Every dismissal
// (Ctrl-C, Esc, closed input) is reported as domain.ErrCancelled.
type Terminal struct {
	out io.Writer
}

func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{out: out}
}

func (t *Terminal) Select(title, message string, options []domain.Option) (string, error) {
	t.header(title)

	var idx int
	if err := survey.AskOne(&survey.Select{Message: message, Options: labels(options)}, &idx); err != nil {
		return "", cancelled(err)
	}
	return keysAt(options, []int{idx})[0], nil
}

func (t *Terminal) MultiSelect(title, message string, options []domain.Option) ([]string, error) {
	t.header(title)

	var idxs []int
	if err := survey.AskOne(&survey.MultiSelect{Message: message, Options: labels(options)}, &idxs); err != nil {
		return nil, cancelled(err)
	}
	return keysAt(options, idxs), nil
}

func (t *Terminal) Input(title, message, def string) (string, error) {
	t.header(title)
	var answer string
	if err := survey.AskOne(&survey.Input{Message: message, Default: def}, &answer); err != nil {
		return "", cancelled(err)
	}
	return strings.TrimSpace(answer), nil
}

func (t *Terminal) Secret(title, message string) (string, error) {
	t.header(title)
	var answer string
	if err := survey.AskOne(&survey.Password{Message: message}, &answer); err != nil {
		return "", cancelled(err)
	}
	return strings.TrimSpace(answer), nil
}

func (t *Terminal) Confirm(title, message string) (bool, error) {
	t.header(title)
	var answer bool
	if err := survey.AskOne(&survey.Confirm{Message: message}, &answer); err != nil {
		return false, cancelled(err)
	}
	return answer, nil
}

// Notify prints a notice and waits for acknowledgement.
func (t *Terminal) Notify(title, message string) error {
	t.header(title)
	fmt.Fprintln(t.out, message)
	return t.pause()
}

// ShowPost clears the screen, prints a post and waits for ENTER.
func (t *Terminal) ShowPost(title, body string) error {
	t.Clear()
	fmt.Fprintln(t.out, "You can find the post here below:")
	fmt.Fprintln(t.out)
	fmt.Fprintf(t.out, "Title: %s\n\n%s\n\n", title, body)
	err := t.pause()
	t.Clear()
	return err
}

// Clear wipes the terminal.
func (t *Terminal) Clear() {
	fmt.Fprint(t.out, "\033[H\033[2J")
}

func (t *Terminal) pause() error {
	var discard string
	err := survey.AskOne(&survey.Input{Message: "Press ENTER to continue."}, &discard)
	return cancelled(err)
}

func (t *Terminal) header(title string) {
	if title != "" {
		fmt.Fprintf(t.out, "\n== %s ==\n", title)
	}
}

func labels(options []domain.Option) []string {
	out := make([]string, len(options))
	for i, o := range options {
		out[i] = o.Label
	}
	return out
}

// keysAt maps answer positions back to keys. Labels are not unique (a
// profile may share a name with a menu entry), positions are.
func keysAt(options []domain.Option, idxs []int) []string {
	keys := make([]string, 0, len(idxs))
	for _, i := range idxs {
		keys = append(keys, options[i].Key)
	}
	return keys
}

func cancelled(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, terminal.InterruptErr) || errors.Is(err, io.EOF) {
		return domain.ErrCancelled
	}
	return err
}
