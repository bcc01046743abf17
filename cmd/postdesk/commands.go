// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"postdesk/internal/export"
	"postdesk/internal/models"
	"postdesk/internal/store"
)

// timeNow is replaced in tests.
var timeNow = time.Now

func generateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate <title>",
		Short: "Generate a summary for a post title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title, err := store.SummaryTitle(strings.Join(args, " "))
			if err != nil {
				return err
			}

			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			res := a.summary.Generate(cmd.Context(), title)
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n(source: %s)\n", res.Summary, res.Source)
			return nil
		},
	}
}

func exportCmd() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write posts, categories and settings to stdout or a file",
		Long: `Export the dashboard.

Formats: ` + strings.Join(formatNames(), ", ") + `

Examples:
  postdesk export > dump.json
  postdesk export --format yaml -o dump.yaml
  postdesk export --format posts.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			w := cmd.OutOrStdout()
			if output != "" {
				file, err := os.Create(output)
				if err != nil {
					return err
				}
				defer file.Close()
				w = file
			}
			return export.Write(w, f, a.snapshot())
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "export format")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}

func formatNames() []string {
	names := make([]string, len(export.Formats))
	for i, f := range export.Formats {
		names[i] = string(f)
	}
	return names
}

func backupCmd() *cobra.Command {
	var (
		list bool
		keep int
	)

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Upload a JSON snapshot to S3-compatible storage",
		Long: `Upload a JSON snapshot to S3-compatible storage.

Examples:
  postdesk backup
  postdesk backup --keep 10
  postdesk backup --list
  postdesk backup restore backups/postdesk-20260301-093000.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			target := a.backups()
			if target == nil {
				return export.ErrBackupDisabled
			}

			out := cmd.OutOrStdout()
			if list {
				objs, err := target.List(cmd.Context(), export.BackupPrefix)
				if err != nil {
					return err
				}
				for _, o := range objs {
					fmt.Fprintf(out, "%s\t%d\t%s\n", o.Key, o.Size, o.LastModified.Format(time.RFC3339))
				}
				return nil
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()

			key, err := export.Backup(ctx, target, a.snapshot())
			if err != nil {
				return err
			}
			fmt.Fprintln(out, key)

			if keep > 0 {
				removed, err := export.Prune(ctx, target, keep)
				for _, k := range removed {
					fmt.Fprintf(out, "removed %s\n", k)
				}
				if err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "list existing backups instead of creating one")
	cmd.Flags().IntVar(&keep, "keep", 0, "after uploading, delete all but the N newest backups (0 keeps all)")

	cmd.AddCommand(&cobra.Command{
		Use:   "restore <key>",
		Short: "Replace posts, categories and settings with a stored backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			target := a.backups()
			if target == nil {
				return export.ErrBackupDisabled
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()

			snap, err := export.Restore(ctx, target, args[0])
			if err != nil {
				return err
			}
			if err := a.restore(ctx, snap); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "restored %d posts and %d categories from %s\n",
				len(snap.Posts), len(snap.Categories), args[0])
			return nil
		},
	})
	return cmd
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace posts, categories and settings with a JSON export",
		Long: `Load a file written by "postdesk export --format json".

The current posts, categories and settings are replaced. A collection
is left untouched if any of its records is invalid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer file.Close()

			snap, err := export.ReadJSON(file)
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.restore(cmd.Context(), snap); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d posts and %d categories\n",
				len(snap.Posts), len(snap.Categories))
			return nil
		},
	}
}

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the profile settings",
	}

	show := func(cmd *cobra.Command, s models.Settings) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "displayName: %s\n", s.DisplayName)
		fmt.Fprintf(out, "focusText:   %s\n", s.FocusText)
		fmt.Fprintf(out, "theme:       %s\n", s.Theme)
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()
			show(cmd, a.settings.Current())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Restore the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()
			show(cmd, a.settings.ResetToDefault(cmd.Context()))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "theme <dark|light>",
		Short:     "Set the theme",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(models.ThemeDark), string(models.ThemeLight)},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			theme := models.Theme(args[0])
			s, err := a.settings.Update(cmd.Context(), models.SettingsPatch{Theme: &theme})
			if err != nil {
				return err
			}
			show(cmd, s)
			return nil
		},
	})

	return cmd
}
