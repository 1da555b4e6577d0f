package main

import (
	"fmt"

	"github.com/Veraticus/contas-em-dia/internal/cli"
	"github.com/spf13/cobra"
)

func categoriesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage transaction categories",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List categories, including ones only transactions still use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			printLine(cmd.OutOrStdout(), cli.CategoriesList(e.Categories(), e.OrphanedCategories()))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "orphans",
		Short: "List categories used by transactions but missing from the list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			orphans := e.OrphanedCategories()
			if len(orphans) == 0 {
				printLine(cmd.OutOrStdout(), cli.FormatSuccess("Todas as categorias em uso estão cadastradas."))
				return nil
			}
			printLine(cmd.OutOrStdout(), cli.CategoriesList(nil, orphans))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			added, err := e.AddCategory(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !added {
				printLine(cmd.OutOrStdout(), cli.FormatInfo(fmt.Sprintf("A categoria %q já existe.", args[0])))
				return nil
			}
			printLine(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Categoria %q adicionada", args[0])))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rename <old> <new>",
		Short: "Rename a category and every transaction that uses it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			moved, err := e.RenameCategory(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			printLine(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf(
				"Categoria %q renomeada para %q (%d transação(ões) atualizada(s))", args[0], args[1], moved)))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "delete <name>",
		Aliases: []string{"rm"},
		Short:   "Remove a category from the list",
		Long:    `Remove a category. Transactions keep their category; it shows up under "orphans" until renamed or re-added.`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			removed, err := e.RemoveCategory(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !removed {
				printLine(cmd.OutOrStdout(), cli.FormatInfo(fmt.Sprintf("A categoria %q não existe.", args[0])))
				return nil
			}
			printLine(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Categoria %q removida", args[0])))
			return nil
		},
	})
	return cmd
}
