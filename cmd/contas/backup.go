package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/Veraticus/contas-em-dia/internal/cli"
	"github.com/spf13/cobra"
)

func backupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "backup [path]",
		Short: "Write a copy of the database",
		Long:  `Write a consistent copy of the database. Without a path the copy goes next to the database, named after the current time.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.ephemeral {
				return errors.New("nothing to back up in --ephemeral mode")
			}
			if _, err := a.open(cmd.Context()); err != nil {
				return err
			}

			dest := filepath.Join(filepath.Dir(a.sqlite.Path()),
				fmt.Sprintf("contas-backup-%s.db", time.Now().Format("20060102-150405")))
			if len(args) == 1 {
				dest = args[0]
			}

			if err := a.sqlite.Backup(cmd.Context(), dest); err != nil {
				return fmt.Errorf("backup failed: %w", err)
			}
			printLine(cmd.OutOrStdout(), cli.FormatSuccess("Cópia salva em "+dest))
			return nil
		},
	}
}
