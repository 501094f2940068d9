package main

import (
	"context"
	"emergency-response-service/internal/adapters/repositories"
	"emergency-response-service/internal/app"
	"emergency-response-service/internal/config"
	"emergency-response-service/internal/domain"
	"emergency-response-service/internal/services"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ertool",
		Short:         "Maintenance tool for the emergency response store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedContactsCmd())
	rootCmd.AddCommand(contactsCmd())
	rootCmd.AddCommand(donorsCmd())
	return rootCmd
}

// withStore opens the configured store, runs fn and closes the store.
func withStore(ctx context.Context, fn func(ctx context.Context, cfg *config.Config, st *app.Store) error) error {
	cfg, err := config.LoadStore()
	if err != nil {
		return err
	}
	st, err := app.OpenStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(ctx, cfg, st)
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the store schema for the configured driver",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, cfg *config.Config, st *app.Store) error {
				if err := st.Migrate(cfg); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Schema ready (%s).\n", cfg.StoreDriver)
				return nil
			})
		},
	}
}

func seedContactsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed-contacts",
		Short: "Replace the emergency contact list from a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("file")

			contacts, err := repositories.ReadContactsSeed(path)
			if err != nil {
				return err
			}

			return withStore(cmd.Context(), func(ctx context.Context, cfg *config.Config, st *app.Store) error {
				if err := services.NewContactStore(st.KV).Replace(ctx, contacts); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d contacts.\n", len(contacts))
				return nil
			})
		},
	}
	cmd.Flags().String("file", "data/seeds/contacts.json", "Path to the contacts seed file")
	return cmd
}

func contactsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contacts",
		Short: "Manage emergency contacts",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List emergency contacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, cfg *config.Config, st *app.Store) error {
				contacts, err := services.NewContactStore(st.KV).List(ctx)
				if err != nil {
					return err
				}
				return printContacts(cmd.OutOrStdout(), contacts)
			})
		},
	}

	addCmd := &cobra.Command{
		Use:   "add NAME PHONE",
		Short: "Add an emergency contact",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dialCode, _ := cmd.Flags().GetString("dial-code")

			phone := strings.TrimSpace(args[1])
			if dialCode != "" {
				phone = domain.FormatPhone(dialCode, phone)
			}
			c := domain.Contact{Name: strings.TrimSpace(args[0]), Phone: phone}

			return withStore(cmd.Context(), func(ctx context.Context, cfg *config.Config, st *app.Store) error {
				if err := services.NewContactStore(st.KV).Add(ctx, c); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s).\n", c.Name, c.Phone)
				return nil
			})
		},
	}
	addCmd.Flags().String("dial-code", "", "Country dial code to prefix, e.g. +91")

	removeCmd := &cobra.Command{
		Use:   "remove PHONE",
		Short: "Remove every contact with the given phone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, cfg *config.Config, st *app.Store) error {
				n, err := services.NewContactStore(st.KV).Remove(ctx, strings.TrimSpace(args[0]))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d contacts.\n", n)
				return nil
			})
		},
	}

	cmd.AddCommand(listCmd, addCmd, removeCmd)
	return cmd
}

func donorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "donors",
		Short: "List willing blood donors",
		RunE: func(cmd *cobra.Command, args []string) error {
			group, _ := cmd.Flags().GetString("blood-group")

			return withStore(cmd.Context(), func(ctx context.Context, cfg *config.Config, st *app.Store) error {
				donors, err := services.NewProfileStore(st.KV).FindDonors(ctx, domain.BloodGroup(strings.ToUpper(group)))
				if err != nil {
					return err
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "NAME\tBLOOD GROUP\tPHONE")
				for _, d := range donors {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", d.Name, d.BloodGroup, d.Phone)
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().String("blood-group", "", "Only list donors of this group (A+, O-, ...)")
	return cmd
}

func printContacts(w io.Writer, contacts []domain.Contact) error {
	if len(contacts) == 0 {
		_, err := fmt.Fprintln(w, "No emergency contacts.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tPHONE")
	for _, c := range contacts {
		fmt.Fprintf(tw, "%s\t%s\n", c.Name, c.Phone)
	}
	return tw.Flush()
}
