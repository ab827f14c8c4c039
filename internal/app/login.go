package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/qepting91/reddit-annotator/internal/collector"
	"github.com/qepting91/reddit-annotator/internal/credentials"
	"github.com/qepting91/reddit-annotator/internal/domain"
)

// Connector builds a collector for a profile. creds is nil when the mode
// needs no login.
type Connector func(creds *domain.Credentials, userAgent string) (domain.Collector, error)

const (
	loginSaved  = "saved"
	loginManual = "manual"

	profilePrefix = "profile:"
	profileNew    = "new"
)

const badCredentialsNotice = "Your ID or secret is incorrect.\n\nPlease enter it again!"

// Login collects credentials and authenticates, re-prompting until the probe
// succeeds or the operator cancels the login menu.
type Login struct {
	Prompt           Prompter
	Store            *credentials.Store
	Connect          Connector
	NeedsCredentials bool
	ProbeSubreddit   string
	DefaultUserAgent string
	Logger           *slog.Logger
}

func (l *Login) Run(ctx context.Context) (*collector.Session, error) {
	if !l.NeedsCredentials {
		c, err := l.Connect(nil, l.DefaultUserAgent)
		if err != nil {
			return nil, err
		}
		return collector.Authenticate(ctx, c, l.ProbeSubreddit, l.Logger)
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		style, err := l.Prompt.Select("Login Option", "How would you like to log in?", []domain.Option{
			{Key: loginSaved, Label: "Saved Credentials"},
			{Key: loginManual, Label: "Manual Login"},
		})
		if err != nil {
			return nil, err
		}

		var creds *domain.Credentials
		if style == loginSaved {
			creds, err = l.chooseProfile()
		} else {
			creds, err = l.manualCredentials()
		}
		if errors.Is(err, domain.ErrCancelled) {
			continue
		}
		if err != nil {
			return nil, err
		}

		userAgent, err := l.Prompt.Input("Input Required",
			"Please enter a user agent name.\n(e.g. \"MyRedditBot vX.X by /u/YourRedditName\"):", l.DefaultUserAgent)
		if errors.Is(err, domain.ErrCancelled) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if userAgent == "" {
			userAgent = l.DefaultUserAgent
		}

		c, err := l.Connect(creds, userAgent)
		if err != nil {
			l.Logger.Warn("Failed to build client", "err", err)
			l.Prompt.Notify("Warning", badCredentialsNotice)
			continue
		}
		session, err := collector.Authenticate(ctx, c, l.ProbeSubreddit, l.Logger)
		if err != nil {
			l.Prompt.Notify("Warning", badCredentialsNotice)
			continue
		}
		return session, nil
	}
}

// chooseProfile lists saved profiles plus an entry to add one. Adding a
// profile returns to the list.
func (l *Login) chooseProfile() (*domain.Credentials, error) {
	for {
		profiles, err := l.Store.Load()
		if err != nil {
			return nil, err
		}

		var options []domain.Option
		for _, name := range credentials.Names(profiles) {
			options = append(options, domain.Option{Key: profilePrefix + name, Label: name})
		}
		options = append(options, domain.Option{Key: profileNew, Label: "Add a new profile"})

		choice, err := l.Prompt.Select("Login", "Select your login profile", options)
		if err != nil {
			return nil, err
		}
		if choice == profileNew {
			if err := l.createProfile(); err != nil && !errors.Is(err, domain.ErrCancelled) {
				return nil, err
			}
			continue
		}

		p := profiles[choice[len(profilePrefix):]]
		return &p, nil
	}
}

// createProfile prompts until a valid profile is saved or the operator
// declines to retry. Nothing is written on abandonment.
func (l *Login) createProfile() error {
	for {
		id, err := l.Prompt.Input("New Details", "Please enter the client ID of the API account:", "")
		if err != nil {
			return err
		}
		secret, err := l.Prompt.Secret("New Details", "Please enter the secret of the API account:")
		if err != nil {
			return err
		}
		name, err := l.Prompt.Input("New Details", "Please enter the name by which you'd like to remember the entry", "")
		if err != nil {
			return err
		}

		_, err = l.Store.AddProfile(name, id, secret)
		if err == nil {
			l.Logger.Info("Saved login profile", "profile", name)
			return nil
		}

		var verr *domain.ValidationError
		var message string
		switch {
		case errors.As(err, &verr) && verr.Field != "name":
			message = "You did not enter a client ID or secret. Do you want to retry?"
		case errors.As(err, &verr):
			message = "You did not enter a profile name. Do you want to retry?"
		case errors.Is(err, domain.ErrProfileExists):
			message = "A profile with that name already exists. Do you want to retry?"
		default:
			return err
		}

		retry, err := l.Prompt.Confirm("Warning", message)
		if err != nil || !retry {
			return domain.ErrCancelled
		}
	}
}

func (l *Login) manualCredentials() (*domain.Credentials, error) {
	id, err := l.Prompt.Input("Credentials Required", "Please enter your Reddit API client ID:", "")
	if err != nil {
		return nil, err
	}
	secret, err := l.Prompt.Secret("Credentials Required", "Please enter your Reddit API client secret:")
	if err != nil {
		return nil, err
	}
	if id == "" || secret == "" {
		l.Prompt.Notify("Warning", "You did not enter a client ID or secret.")
		return nil, domain.ErrCancelled
	}
	return &domain.Credentials{ClientID: id, ClientSecret: secret}, nil
}
