package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/courseware/internal/app"
	"go.trai.ch/courseware/internal/engine/resource"
)

func (c *CLI) newResourceCmd(d resource.Descriptor) *cobra.Command {
	cmd := &cobra.Command{
		Use:     d.Name,
		Aliases: []string{d.Singular},
		Short:   fmt.Sprintf("List and edit %s", d.Name),
	}

	cmd.AddCommand(
		c.newListCmd(d),
		c.newGetCmd(d),
		c.newCreateCmd(d),
		c.newUpdateCmd(d),
		c.newDeleteCmd(d),
	)
	return cmd
}

func (c *CLI) newListCmd(d resource.Descriptor) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   fmt.Sprintf("List %s", d.Name),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			refresh, _ := cmd.Flags().GetBool("refresh")
			asJSON, _ := cmd.Flags().GetBool("json")
			return c.app.List(cmd.Context(), d.Name, app.ListOptions{
				Refresh: refresh,
				JSON:    asJSON,
			})
		},
	}
	cmd.Flags().BoolP("refresh", "r", false, "Bypass the cache and fetch from the server")
	cmd.Flags().Bool("json", false, "Print records as JSON")
	return cmd
}

func (c *CLI) newGetCmd(d resource.Descriptor) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: fmt.Sprintf("Show one %s", d.Singular),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Get(cmd.Context(), d.Name, args[0])
		},
	}
}

func (c *CLI) newCreateCmd(d resource.Descriptor) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: fmt.Sprintf("Create a %s", d.Singular),
		Example: fmt.Sprintf("  courseware %s create --set name=Cloud\n"+
			"  courseware %s create --data @%s.json", d.Name, d.Name, d.Singular),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			body, err := bodyFromFlags(cmd)
			if err != nil {
				return err
			}
			return c.app.Create(cmd.Context(), d.Name, body)
		},
	}
	addBodyFlags(cmd)
	return cmd
}

func (c *CLI) newUpdateCmd(d resource.Descriptor) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: fmt.Sprintf("Update a %s", d.Singular),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := bodyFromFlags(cmd)
			if err != nil {
				return err
			}
			return c.app.Update(cmd.Context(), d.Name, args[0], body)
		},
	}
	addBodyFlags(cmd)
	return cmd
}

func (c *CLI) newDeleteCmd(d resource.Descriptor) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   fmt.Sprintf("Delete a %s", d.Singular),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Delete(cmd.Context(), d.Name, args[0])
		},
	}
}
