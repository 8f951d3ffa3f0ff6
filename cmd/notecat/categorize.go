package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pbaille/notecat/internal/classifier"
	"github.com/pbaille/notecat/internal/domain"
	"github.com/pbaille/notecat/internal/fetcher"
)

func (a *app) dispatcher() *classifier.Dispatcher {
	client := &http.Client{}
	return classifier.New(client,
		classifier.WithLogger(a.logger),
		classifier.WithRateLimit(a.cfg.RateLimit, 1),
	)
}

// resolveProvider picks the --provider flag, the config value, then the saved selection
func (a *app) resolveProvider(saved func() (domain.Provider, error)) (domain.Provider, error) {
	if a.cfg.Provider != "" {
		return domain.Provider(a.cfg.Provider), nil
	}
	return saved()
}

// expand returns the page behind a link note, or the link itself when the fetch fails
func (a *app) expand(ctx context.Context, url string) string {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	page, err := fetcher.New(nil).Fetch(ctx, url)
	if err != nil {
		a.logger.Warn("expand link note", "url", url, "error", err)
		return url
	}
	return page
}

func categorizeCmd(a *app) *cobra.Command {
	var expand bool

	cmd := &cobra.Command{
		Use:   "categorize [content]",
		Short: "Categorize a note without storing it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content := strings.Join(args, " ")
			if strings.TrimSpace(content) == "" {
				return fmt.Errorf("content is required")
			}

			s, err := a.openSettings()
			if err != nil {
				return err
			}
			defer s.Close()

			provider, err := a.resolveProvider(s.Provider)
			if err != nil {
				return err
			}

			apiKey, err := s.APIKey(provider)
			if err != nil {
				return err
			}

			text := content
			if expand && fetcher.IsURL(content) {
				text = a.expand(cmd.Context(), content)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.Timeout)
			defer cancel()

			category, err := a.dispatcher().Categorize(ctx, text, provider, apiKey)
			if err != nil {
				return fmt.Errorf("failed to categorize note: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), color.New(color.FgGreen, color.Bold).Sprint(category))
			return nil
		},
	}

	cmd.Flags().String("provider", "", "AI provider (chatgpt, gemini, claude, mistral)")
	cmd.Flags().BoolVar(&expand, "expand", true, "categorize the page behind a link note")
	cmd.Flags().Duration("timeout", 0, "categorization deadline")
	return cmd
}
