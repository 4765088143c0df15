package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tempizhere/linkvault/internal/models"
)

func (c *cli) linksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "links",
		Short: "Manage links",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List links with status and classification",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			links, err := c.client().Links(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, links)
		},
	}

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			link, err := c.client().Link(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd, link)
		},
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Create a link together with its status and classification",
		Long: `Create a link. The status row is always written; the classification
row is written when --area or --cat is given.

Example:
  linkctl links add --url https://go.dev --title Go --area 2 --cat 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := models.CreateLinkRequest{
				Title:       optString(cmd, "title"),
				URL:         optString(cmd, "url"),
				Description: optString(cmd, "description"),
				IsPublic:    optBool(cmd, "public"),
			}
			if v := optInt64(cmd, "area"); v != nil {
				req.IDArea = models.SlotOf(*v)
			}
			if v := optInt64(cmd, "cat"); v != nil {
				req.IDCat = models.SlotOf(*v)
			}
			created, err := c.client().CreateLink(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd, created)
		},
	}
	add.Flags().String("url", "", "link URL")
	add.Flags().String("title", "", "link title")
	add.Flags().String("description", "", "link description")
	add.Flags().Bool("public", false, "mark the link public")
	add.Flags().Int64("area", -1, "area id")
	add.Flags().Int64("cat", -1, "category id")
	_ = add.MarkFlagRequired("url")

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := c.client().DeleteLink(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "link %d deleted\n", id)
			return nil
		},
	}

	cmd.AddCommand(list, get, add, rm)
	return cmd
}
