package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tempizhere/linkvault/internal/models"
)

func (c *cli) collectionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "collections",
		Aliases: []string{"col"},
		Short:   "Manage collections",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Show collections, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			collections, err := c.client().Collections(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, collections)
		},
	}

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a collection with its lists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			view, err := c.client().Collection(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd, view)
		},
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Create a collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := c.client().CreateCollection(cmd.Context(), models.CollectionInput{
				Name:        optString(cmd, "name"),
				Description: optString(cmd, "description"),
				IsPublic:    optBool(cmd, "public"),
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, created)
		},
	}
	add.Flags().String("name", "", "collection name")
	add.Flags().String("description", "", "collection description")
	add.Flags().Bool("public", false, "make the collection public")
	_ = add.MarkFlagRequired("name")

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := c.client().DeleteCollection(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "collection %d deleted\n", id)
			return nil
		},
	}

	cmd.AddCommand(list, get, add, rm)
	return cmd
}
