package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/qepting91/reddit-annotator/internal/collector"
	"github.com/qepting91/reddit-annotator/internal/dashboard"
	"github.com/qepting91/reddit-annotator/internal/domain"
	"github.com/qepting91/reddit-annotator/internal/logging"
	"github.com/qepting91/reddit-annotator/internal/record"
	"github.com/qepting91/reddit-annotator/internal/storage"
)

const (
	menuScrape = "scrape"
	menuChart  = "chart"
	menuExit   = "exit"
	menuBack   = "mainmenu"
)

const (
	notFoundNotice = "This subreddit does not exist!"
	genericNotice  = "An error occured or this subreddit does not exist!"
)

var digitsOnly = regexp.MustCompile(`^[0-9]+$`)

// ParseCount accepts a plain decimal integer within the fetch limits.
func ParseCount(s string) (int, error) {
	msg := fmt.Sprintf("enter a whole number between %d and %d", domain.MinFetchLimit, domain.MaxFetchLimit)
	if !digitsOnly.MatchString(s) {
		return 0, &domain.ValidationError{Field: "count", Message: msg}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < domain.MinFetchLimit || n > domain.MaxFetchLimit {
		return 0, &domain.ValidationError{Field: "count", Message: msg}
	}
	return n, nil
}

type Deps struct {
	Prompt         Prompter
	Picker         FilePicker
	Progress       ProgressFactory
	Session        *collector.Session
	Scorer         record.Scorer
	CommentTimeout time.Duration
	Logger         *slog.Logger
}

// Controller drives the menus and the scrape pipeline.
type Controller struct {
	prompt     Prompter
	picker     FilePicker
	progress   ProgressFactory
	session    *collector.Session
	normalizer *record.Normalizer
	logger     *slog.Logger
}

func New(d Deps) *Controller {
	return &Controller{
		prompt:     d.Prompt,
		picker:     d.Picker,
		progress:   d.Progress,
		session:    d.Session,
		normalizer: record.NewNormalizer(d.Scorer, d.Session, d.CommentTimeout, d.Logger),
		logger:     d.Logger,
	}
}

// Run shows the main menu until the operator exits.
func (c *Controller) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		choice, err := c.prompt.Select("Menu", "Choose an option.", []domain.Option{
			{Key: menuScrape, Label: "Scrape a Subreddit"},
			{Key: menuChart, Label: "Chart sentiment from a CSV"},
			{Key: menuExit, Label: "Exit"},
		})
		if errors.Is(err, domain.ErrCancelled) {
			return nil
		}
		if err != nil {
			return err
		}

		switch choice {
		case menuExit:
			return nil
		case menuChart:
			err = c.chart()
		case menuScrape:
			err = c.scrapeMenu(ctx)
		}
		if err != nil {
			return err
		}
	}
}

func (c *Controller) scrapeMenu(ctx context.Context) error {
	choice, err := c.prompt.Select("Menu", "Choose an option.", []domain.Option{
		{Key: string(domain.ModeManual), Label: "Manual Scraping"},
		{Key: string(domain.ModeAuto), Label: "Automatic Scraping"},
		{Key: menuBack, Label: "Return to Main Menu"},
	})
	if errors.Is(err, domain.ErrCancelled) || choice == menuBack {
		return nil
	}
	if err != nil {
		return err
	}
	return c.Scrape(ctx, domain.Mode(choice))
}

// Scrape runs one feed → count → file → fetch → write sequence. Operator
// cancellation returns to the menu; only context cancellation and prompt
// failures are returned.
func (c *Controller) Scrape(ctx context.Context, mode domain.Mode) error {
	logger := logging.WithRun(c.logger, uuid.NewString())

	sub, err := c.askSubreddit(ctx)
	if err != nil {
		return ignoreCancel(err)
	}
	limit, err := c.askCount()
	if err != nil {
		return ignoreCancel(err)
	}
	path, err := c.selectOrCreateCSV(mode)
	if err != nil {
		return ignoreCancel(err)
	}
	logger.Info("Starting scrape", "sub", sub, "limit", limit, "mode", mode, "csv", path)

	bar := c.progress(limit, fmt.Sprintf("Downloading %d Reddit entries...", limit), "Download progress")
	posts, err := c.session.Fetch(ctx, sub, limit, bar.Set)
	bar.Finish()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		c.prompt.Notify("Warning", fetchNotice(err))
		return nil
	}

	var records []domain.Record
	if mode.Tagged() {
		records, err = c.tagPosts(ctx, posts)
		if err != nil {
			return err
		}
	} else {
		records = c.normalizeAll(ctx, posts)
	}

	w := &storage.WriterService{FilePath: path}
	if err := w.Append(records, mode); err != nil {
		logger.Error("Failed to write csv", "csv", path, "err", err)
		c.prompt.Notify("Error", fmt.Sprintf("Could not write %s: %v", path, err))
		return nil
	}
	logger.Info("Scrape complete", "records", len(records), "csv", path)

	c.prompt.Notify("Process Completed", "You can find your updated CSV in "+path)
	return nil
}

func (c *Controller) askSubreddit(ctx context.Context) (string, error) {
	for {
		name, err := c.prompt.Input("Information Required", "Please enter the Subreddit name you'd like to scrape:", "")
		if err != nil {
			return "", err
		}

		ok, err := c.session.Exists(ctx, name)
		if ok {
			return domain.CleanSubredditName(name), nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		c.prompt.Notify("Warning", fetchNotice(err))
	}
}

func (c *Controller) askCount() (int, error) {
	for {
		s, err := c.prompt.Input("Information Required", "How many entries would you like to collect (e.g. 1-1000)?:", "")
		if err != nil {
			return 0, err
		}
		n, err := ParseCount(s)
		if err == nil {
			return n, nil
		}
		c.prompt.Notify("Warning", err.Error())
	}
}

// selectOrCreateCSV returns an existing CSV or a newly created one with the
// header for mode. A cancelled picker goes back to the question.
func (c *Controller) selectOrCreateCSV(mode domain.Mode) (string, error) {
	for {
		existing, err := c.prompt.Confirm("File Option", "Do you already have a CSV?")
		if err != nil {
			return "", err
		}

		if existing {
			path, err := c.picker.Open("Select a CSV file")
			if errors.Is(err, domain.ErrCancelled) {
				continue
			}
			if err != nil {
				return "", err
			}
			return path, nil
		}

		c.prompt.Notify("Information", "A file will now be created for you.")
		path, err := c.picker.Save("Create a CSV file")
		if errors.Is(err, domain.ErrCancelled) {
			continue
		}
		if err != nil {
			return "", err
		}
		if err := (&storage.WriterService{FilePath: path}).Create(mode); err != nil {
			c.logger.Error("Failed to create csv", "csv", path, "err", err)
			c.prompt.Notify("Error", fmt.Sprintf("Could not create %s: %v", path, err))
			continue
		}
		return path, nil
	}
}

func (c *Controller) normalizeAll(ctx context.Context, posts []domain.Post) []domain.Record {
	bar := c.progress(len(posts), fmt.Sprintf("Processing %d Reddit entries...", len(posts)), "Comment counts")
	defer bar.Finish()

	records := make([]domain.Record, 0, len(posts))
	for i, p := range posts {
		records = append(records, c.normalizer.Normalize(ctx, p))
		bar.Set(i + 1)
	}
	return records
}

func (c *Controller) chart() error {
	path, err := c.picker.Open("Select a CSV to chart")
	if err != nil {
		return ignoreCancel(err)
	}
	out, err := dashboard.WriteReport(path)
	if err != nil {
		c.logger.Error("Failed to render report", "csv", path, "err", err)
		c.prompt.Notify("Error", fmt.Sprintf("Could not chart %s: %v", path, err))
		return nil
	}
	c.prompt.Notify("Process Completed", "You can find your chart in "+out)
	return nil
}

func fetchNotice(err error) string {
	if errors.Is(err, domain.ErrSubredditNotFound) {
		return notFoundNotice
	}
	return genericNotice
}

func ignoreCancel(err error) error {
	if errors.Is(err, domain.ErrCancelled) {
		return nil
	}
	return err
}
