package app

import (
	"context"
	"errors"

	"github.com/qepting91/reddit-annotator/internal/domain"
)

const abortNotice = "You just pressed cancel. You'll stop the scrape and begin the save process. Do you still wish to cancel?"

// tagPosts normalizes posts one at a time and asks for subject and problem
// tags. An abort keeps everything collected so far; a record whose problem
// prompt was aborted is kept once with its subjects.
func (c *Controller) tagPosts(ctx context.Context, posts []domain.Post) ([]domain.Record, error) {
	records := make([]domain.Record, 0, len(posts))

	for _, p := range posts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rec := c.normalizer.Normalize(ctx, p)
		if err := c.prompt.ShowPost(rec.Title, rec.Body); err != nil && !errors.Is(err, domain.ErrCancelled) {
			return nil, err
		}

		subjects, abort, err := c.askTags("What subjects were discussed in this topic?", domain.SubjectTags)
		if err != nil {
			return nil, err
		}
		if abort {
			return records, nil
		}
		if domain.HasSkip(subjects) {
			records = append(records, rec)
			continue
		}
		rec.Subject = subjects

		problems, abort, err := c.askTags("What problems were discussed in this topic?", domain.ProblemTags)
		if err != nil {
			return nil, err
		}
		if abort {
			return append(records, rec), nil
		}
		rec.Problem = problems
		records = append(records, rec)
	}
	return records, nil
}

// askTags re-asks after a cancel the operator did not confirm.
func (c *Controller) askTags(message string, options []domain.Option) ([]string, bool, error) {
	for {
		selected, err := c.prompt.MultiSelect("Options", message, options)
		if err == nil {
			return selected, false, nil
		}
		if !errors.Is(err, domain.ErrCancelled) {
			return nil, false, err
		}

		stop, err := c.prompt.Confirm("Warning", abortNotice)
		if errors.Is(err, domain.ErrCancelled) || stop {
			return nil, true, nil
		}
		if err != nil {
			return nil, false, err
		}
	}
}
