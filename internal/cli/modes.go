package cli

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newModesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modes",
		Short: "List the available dialects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := newRegistry()
			data := pterm.TableData{{"MODE", "ALIASES", "LANGUAGE", "DESCRIPTION"}}
			for _, d := range reg.Dialects() {
				name := d.Name()
				if name == reg.DefaultMode() {
					name += " (default)"
				}
				data = append(data, []string{name, strings.Join(reg.Aliases(d.Name()), ", "), d.Language(), d.Description()})
			}
			table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}
}
