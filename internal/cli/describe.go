package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mark3labs/swagen/internal/definition"
	"github.com/mark3labs/swagen/internal/ingest"
	"github.com/mark3labs/swagen/internal/urlbuild"
)

func newDescribeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print the verb and URL of every operation in a definition",
		Example: strings.TrimSpace(`  swagen describe --definition api.json
  swagen describe --input openapi.yaml --base-url http://localhost:8080/api`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defPath, err := cmd.Flags().GetString("definition")
			if err != nil {
				return err
			}
			input, err := cmd.Flags().GetString("input")
			if err != nil {
				return err
			}
			var def *definition.Definition
			switch {
			case defPath != "" && input != "":
				return newUsageError("describe: --definition and --input are mutually exclusive")
			case defPath != "":
				def, err = definition.Load(defPath)
			case input != "":
				var doc *ingest.Document
				doc, err = ingest.Load(cmd.Context(), input)
				if err == nil {
					def, err = ingest.ToDefinition(doc)
				}
			default:
				return newUsageError("describe: --definition or --input is required")
			}
			if err != nil {
				return friendly(err)
			}
			base := def.Metadata.BaseURL
			if cmd.Flags().Changed("base-url") {
				if base, err = cmd.Flags().GetString("base-url"); err != nil {
					return err
				}
			}
			describe(cmd.OutOrStdout(), def, base)
			return nil
		},
	}
	cmd.Flags().String("definition", "", "Normalized definition file (JSON or YAML)")
	cmd.Flags().String("input", "", "Path or URL to an OpenAPI/Swagger document")
	cmd.Flags().String("base-url", "", "Base URL to compose against (defaults to the definition's)")
	return cmd
}

// describe prints one line per operation. Path placeholders are kept and
// query parameters are shown as {name} templates.
func describe(w io.Writer, def *definition.Definition, base string) {
	for _, svcName := range def.ServiceNames() {
		svc := def.Services[svcName]
		fmt.Fprintf(w, "%s\n", svcName)
		for _, opName := range svc.OperationNames() {
			op := svc[opName]
			u := urlbuild.Build(base, op.Path, nil, nil)
			var query []string
			for _, p := range op.Parameters {
				if p.Kind == definition.InQuery {
					query = append(query, p.Name+"={"+p.Name+"}")
				}
			}
			if len(query) > 0 {
				u += "?" + strings.Join(query, "&")
			}
			fmt.Fprintf(w, "  %-7s %s  %s\n", strings.ToUpper(op.Verb), u, opName)
		}
	}
}
