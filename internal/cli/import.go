package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/pkg/importer"
	"github.com/goliatone/go-formbuilder/pkg/store"
)

func (a *App) importCmd() *cobra.Command {
	var operationID string
	var list bool
	cmd := &cobra.Command{
		Use:   "import <openapi-file>",
		Short: "Build a form from an OpenAPI operation",
		Long: "Read an OpenAPI document and turn the JSON request body of one " +
			"operation into a form. Use --list to see the importable operations.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read document: %w", err)
			}
			imp := importer.New()

			if list {
				ids, err := imp.Operations(cmd.Context(), data)
				if err != nil {
					return err
				}
				printf(cmd.OutOrStdout(), "Operations: %s\n", strings.Join(ids, ", "))
				return nil
			}
			if operationID == "" {
				return fmt.Errorf("--operation is required unless --list is given")
			}

			form, err := imp.Import(cmd.Context(), data, operationID)
			if err != nil {
				return err
			}
			var formID string
			a.ws.Apply(func(s *store.Store) bool {
				formID = s.Install(form)
				return true
			})
			printf(cmd.OutOrStdout(), "Imported %s as form %s (%d fields)\n",
				operationID, formID, form.FieldCount())
			return nil
		},
	}
	cmd.Flags().StringVar(&operationID, "operation", "", "operation id to import")
	cmd.Flags().BoolVar(&list, "list", false, "list importable operations")
	return cmd
}
