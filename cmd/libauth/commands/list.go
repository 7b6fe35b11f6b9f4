package commands

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"libauth/internal/crypto"
	"libauth/internal/domain"
)

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List own and trusted keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			own, err := appCtx.Keys.ListKeys()
			if err != nil {
				return err
			}
			trusted, err := appCtx.Trust.ListTrusted()
			if err != nil {
				return err
			}

			if len(own) == 0 && len(trusted) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No keys.")
				return nil
			}

			table := newKeyTable(cmd.OutOrStdout())
			for _, k := range own {
				kind := "own"
				if !k.HasPrivate {
					kind = "own (public only)"
				}
				table.Append([]string{k.Name.String(), kind, k.Fingerprint.String()})
			}
			for _, k := range trusted {
				table.Append([]string{k.Name.String(), "trusted", k.Fingerprint.String()})
			}
			table.Render()
			return nil
		},
	}
}

func newKeyTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Name", "Kind", "Fingerprint"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetRowLine(false)
	table.SetAutoWrapText(false)
	return table
}

func deleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete an own key pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := domain.KeyName(args[0])
			if !yes {
				return fmt.Errorf("refusing to delete %s without --yes", name)
			}
			vk, err := appCtx.Keys.LoadVerifyingKey(name)
			if err != nil {
				return err
			}
			if err := appCtx.Keys.DeleteKeyPair(name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s (%s).\n", name, crypto.Fingerprint(vk))
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}
