package ui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ncruces/zenity"
	"github.com/qepting91/reddit-annotator/internal/domain"
)

var csvFilter = zenity.FileFilters{
	{Name: "CSV files", Patterns: []string{"*.csv"}, CaseFold: true},
}

// NativePicker uses the desktop's file dialogs.
type NativePicker struct{}

func (NativePicker) Open(title string) (string, error) {
	path, err := zenity.SelectFile(zenity.Title(title), csvFilter)
	if errors.Is(err, zenity.ErrCanceled) || (err == nil && path == "") {
		return "", domain.ErrCancelled
	}
	return path, err
}

func (NativePicker) Save(title string) (string, error) {
	path, err := zenity.SelectFileSave(
		zenity.Title(title),
		zenity.Filename("scrape.csv"),
		zenity.ConfirmOverwrite(),
		csvFilter,
	)
	if errors.Is(err, zenity.ErrCanceled) || (err == nil && path == "") {
		return "", domain.ErrCancelled
	}
	if err != nil {
		return "", err
	}
	return EnsureCSVExt(path), nil
}

// asker is the part of Terminal the prompt picker needs.
type asker interface {
	Input(title, message, def string) (string, error)
	Confirm(title, message string) (bool, error)
	Notify(title, message string) error
}

// PromptPicker asks for paths on the terminal, for machines without a desktop.
type PromptPicker struct {
	Term asker
}

func (p PromptPicker) Open(title string) (string, error) {
	for {
		path, err := p.Term.Input(title, "Path of an existing CSV file (empty to cancel):", "")
		if err != nil {
			return "", err
		}
		if path == "" {
			return "", domain.ErrCancelled
		}
		if !strings.EqualFold(filepath.Ext(path), ".csv") {
			p.Term.Notify("Warning", "Please choose a .csv file.")
			continue
		}
		if _, err := os.Stat(path); err != nil {
			p.Term.Notify("Warning", "That file does not exist.")
			continue
		}
		return path, nil
	}
}

func (p PromptPicker) Save(title string) (string, error) {
	path, err := p.Term.Input(title, "Path of the CSV file to create (empty to cancel):", "scrape.csv")
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", domain.ErrCancelled
	}
	path = EnsureCSVExt(path)

	// Same contract as the native dialog: replacing a file needs a yes.
	if _, err := os.Stat(path); err == nil {
		replace, err := p.Term.Confirm("Confirm Save As", fmt.Sprintf("%s already exists. Do you want to replace it?", filepath.Base(path)))
		if err != nil {
			return "", err
		}
		if !replace {
			return "", domain.ErrCancelled
		}
	}
	return path, nil
}

// EnsureCSVExt appends .csv unless path already ends with it.
func EnsureCSVExt(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return path
	}
	return path + ".csv"
}
