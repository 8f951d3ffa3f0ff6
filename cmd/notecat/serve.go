package main

import (
	"github.com/spf13/cobra"

	"github.com/pbaille/notecat/internal/api"
	"github.com/pbaille/notecat/internal/domain"
	"github.com/pbaille/notecat/internal/fetcher"
	"github.com/pbaille/notecat/internal/store"
)

func serveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start a note-taking session behind the REST API",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSettings()
			if err != nil {
				return err
			}
			// Note: don't defer s.Close() as server runs indefinitely

			if a.cfg.Provider != "" {
				if err := s.DefaultProvider(domain.Provider(a.cfg.Provider)); err != nil {
					return err
				}
			}

			notes := store.New(store.WithLogger(a.logger))
			server := api.New(notes, s, a.dispatcher(), a.cfg.Addr,
				api.WithLogger(a.logger),
				api.WithAuthor(domain.Author{Name: a.cfg.Author.Name, Avatar: a.cfg.Author.Avatar}),
				api.WithTimeout(a.cfg.Timeout),
				api.WithFetcher(fetcher.New(nil)),
				api.WithAuthorizer(api.StaticRole{Admin: a.cfg.Admin}),
			)
			return server.Run()
		},
	}

	cmd.Flags().StringP("addr", "a", ":8080", "server address")
	cmd.Flags().String("provider", "", "default AI provider for this session")
	cmd.Flags().Duration("timeout", 0, "categorization deadline")
	return cmd
}
