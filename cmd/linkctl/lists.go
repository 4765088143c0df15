package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tempizhere/linkvault/internal/models"
)

func (c *cli) listsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Manage lists and their items",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Show lists, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lists, err := c.client().Lists(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, lists)
		},
	}

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a list with its links",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			view, err := c.client().List(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd, view)
		},
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Create a list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := c.client().CreateList(cmd.Context(), models.ListInput{
				Name:         optString(cmd, "name"),
				Description:  optString(cmd, "description"),
				Public:       optBool(cmd, "public"),
				IDCollection: optInt64(cmd, "collection"),
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, created)
		},
	}
	add.Flags().String("name", "", "list name")
	add.Flags().String("description", "", "list description")
	add.Flags().Bool("public", false, "make the list public")
	add.Flags().Int64("collection", 0, "collection id")
	_ = add.MarkFlagRequired("name")

	rename := &cobra.Command{
		Use:   "set <id>",
		Short: "Change list fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			updated, err := c.client().UpdateList(cmd.Context(), id, models.ListInput{
				Name:        optString(cmd, "name"),
				Description: optString(cmd, "description"),
				Public:      optBool(cmd, "public"),
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, updated)
		},
	}
	rename.Flags().String("name", "", "list name")
	rename.Flags().String("description", "", "list description")
	rename.Flags().Bool("public", false, "make the list public")

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := c.client().DeleteList(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "list %d deleted\n", id)
			return nil
		},
	}

	items := &cobra.Command{
		Use:   "items <list-id>",
		Short: "Show items of a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			items, err := c.client().ListItems(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd, items)
		},
	}

	addItem := &cobra.Command{
		Use:   "add-item <list-id> <link-id>",
		Short: "Add a link to a list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			listID, err := parseID(args[0])
			if err != nil {
				return err
			}
			linkID, err := parseID(args[1])
			if err != nil {
				return err
			}
			item, err := c.client().AddListItem(cmd.Context(), models.ListItemInput{IDList: listID, IDSrc: linkID})
			if err != nil {
				return err
			}
			return printJSON(cmd, item)
		},
	}

	rmItem := &cobra.Command{
		Use:   "rm-item <item-id>",
		Short: "Remove an item from its list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := c.client().RemoveListItem(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "item %d removed\n", id)
			return nil
		},
	}

	cmd.AddCommand(list, get, add, rename, rm, items, addItem, rmItem)
	return cmd
}
