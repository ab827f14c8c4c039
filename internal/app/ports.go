package app

import "github.com/qepting91/reddit-annotator/internal/domain"

// Prompter renders modal questions. Dismissing any of them returns
// domain.ErrCancelled.
type Prompter interface {
	Select(title, message string, options []domain.Option) (string, error)
	MultiSelect(title, message string, options []domain.Option) ([]string, error)
	Input(title, message, def string) (string, error)
	Secret(title, message string) (string, error)
	Confirm(title, message string) (bool, error)
	Notify(title, message string) error
	ShowPost(title, body string) error
}

// FilePicker chooses CSV files. Cancelling returns domain.ErrCancelled.
type FilePicker interface {
	Open(title string) (string, error)
	Save(title string) (string, error)
}

// ProgressReporter tracks a counted operation.
type ProgressReporter interface {
	Set(n int)
	Finish()
}

// ProgressFactory starts a reporter for total items.
type ProgressFactory func(total int, title, label string) ProgressReporter
