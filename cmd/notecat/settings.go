package main

import (
	"fmt"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/pbaille/notecat/internal/domain"
)

func keysCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage provider API keys",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set [provider] [key]",
		Short: "Store the API key for a provider",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSettings()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.SetAPIKey(domain.Provider(args[0]), args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved key for %s\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm [provider]",
		Short: "Forget the API key for a provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSettings()
			if err != nil {
				return err
			}
			defer s.Close()

			return s.SetAPIKey(domain.Provider(args[0]), "")
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List providers and whether a key is configured",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSettings()
			if err != nil {
				return err
			}
			defer s.Close()

			keys, err := s.APIKeys()
			if err != nil {
				return err
			}
			selected, err := s.Provider()
			if err != nil {
				return err
			}

			table := uitable.New()
			table.AddRow("PROVIDER", "KEY", "SELECTED")
			for _, p := range domain.Providers {
				status := "not set"
				if keys[p] != "" {
					status = "configured"
				}
				mark := ""
				if p == selected {
					mark = "*"
				}
				table.AddRow(string(p), status, mark)
			}
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	})

	return cmd
}

func categoriesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage the category list offered as filters",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSettings()
			if err != nil {
				return err
			}
			defer s.Close()

			names, err := s.Categories()
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add [name]",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSettings()
			if err != nil {
				return err
			}
			defer s.Close()

			return s.AddCategory(args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm [name]",
		Short: "Remove a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSettings()
			if err != nil {
				return err
			}
			defer s.Close()

			return s.RemoveCategory(args[0])
		},
	})

	return cmd
}

func providerCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "provider [name]",
		Short: "Show or select the AI provider",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSettings()
			if err != nil {
				return err
			}
			defer s.Close()

			if len(args) == 1 {
				return s.SetProvider(domain.Provider(args[0]))
			}

			p, err := s.Provider()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), p)
			return nil
		},
	}
}
