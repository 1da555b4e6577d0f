package main

import (
	"fmt"
	"strings"

	"github.com/Veraticus/contas-em-dia/internal/cli"
	"github.com/Veraticus/contas-em-dia/internal/model"
	"github.com/spf13/cobra"
)

func profileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or change your name and avatar",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			p := e.Profile()
			printLine(cmd.OutOrStdout(), fmt.Sprintf("%s %s", p.Avatar, p.Name))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "avatars",
		Short: "List the available avatars",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			printLine(cmd.OutOrStdout(), strings.Join(model.AvatarOptions, " "))
		},
	})

	var name, avatar string
	set := &cobra.Command{
		Use:   "set",
		Short: "Change the name or avatar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			p := e.Profile()
			if cmd.Flags().Changed("name") {
				p.Name = name
			}
			if cmd.Flags().Changed("avatar") {
				p.Avatar = avatar
			}
			saved, err := e.SaveProfile(cmd.Context(), p)
			if err != nil {
				return err
			}
			printLine(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Perfil salvo: %s %s", saved.Avatar, saved.Name)))
			return nil
		},
	}
	set.Flags().StringVar(&name, "name", "", "display name")
	set.Flags().StringVar(&avatar, "avatar", "", "avatar (see 'contas profile avatars')")
	cmd.AddCommand(set)
	return cmd
}
