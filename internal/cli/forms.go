package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/pkg/formdoc/templates"
	"github.com/goliatone/go-formbuilder/pkg/store"
)

func (a *App) createCmd() *cobra.Command {
	var title string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new blank form",
		RunE: func(cmd *cobra.Command, args []string) error {
			var formID string
			a.ws.Apply(func(s *store.Store) bool {
				formID = s.Create()
				if title != "" {
					s.UpdateTitle(title)
				}
				return true
			})
			printf(cmd.OutOrStdout(), "Created form %s\n", formID)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "form title")
	return cmd
}

func (a *App) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all forms",
		RunE: func(cmd *cobra.Command, args []string) error {
			forms := a.ws.Forms().Forms()
			if len(forms) == 0 {
				printf(cmd.OutOrStdout(), "No forms yet.\n")
				return nil
			}
			for _, form := range forms {
				printf(cmd.OutOrStdout(), "%s\t%s\t%d fields\t%d responses\n",
					form.ID, form.Title, form.FieldCount(), a.ws.Responses().Count(form.ID))
			}
			return nil
		},
	}
}

func (a *App) templateCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "template [kind]",
		Short: "Create a form from a built-in or YAML template",
		Long: "Instantiate a built-in template by kind, or a custom YAML template " +
			"with --file. Without arguments the built-in kinds are listed.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if file != "" {
				return a.templateFromFile(cmd, file)
			}
			if len(args) == 0 {
				kinds := make([]string, 0, len(templates.Kinds()))
				for _, kind := range templates.Kinds() {
					kinds = append(kinds, string(kind))
				}
				printf(cmd.OutOrStdout(), "Available templates: %s\n", strings.Join(kinds, ", "))
				return nil
			}

			kind := templates.Kind(args[0])
			var formID string
			applied := a.ws.Apply(func(s *store.Store) bool {
				id, ok := s.LoadTemplate(kind)
				formID = id
				return ok
			})
			if !applied {
				return fmt.Errorf("unknown template %q", args[0])
			}
			printf(cmd.OutOrStdout(), "Created form %s from %s template\n", formID, kind)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "YAML template file")
	return cmd
}

func (a *App) templateFromFile(cmd *cobra.Command, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read template: %w", err)
	}
	template, err := templates.Parse(data)
	if err != nil {
		return err
	}
	var formID string
	a.ws.Apply(func(s *store.Store) bool {
		formID = s.InstallTemplate(template)
		return true
	})
	printf(cmd.OutOrStdout(), "Created form %s from %s\n", formID, path)
	return nil
}

func (a *App) duplicateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "duplicate <form-id>",
		Short: "Duplicate a form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var copyID string
			applied := a.ws.Apply(func(s *store.Store) bool {
				id, ok := s.Duplicate(args[0])
				copyID = id
				return ok
			})
			if !applied {
				return fmt.Errorf("form %q not found", args[0])
			}
			printf(cmd.OutOrStdout(), "Duplicated %s as %s\n", args[0], copyID)
			return nil
		},
	}
}

func (a *App) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <form-id>",
		Short: "Delete a form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applied := a.ws.Apply(func(s *store.Store) bool {
				return s.Delete(args[0])
			})
			if !applied {
				return fmt.Errorf("form %q not found", args[0])
			}
			printf(cmd.OutOrStdout(), "Deleted form %s\n", args[0])
			return nil
		},
	}
}
