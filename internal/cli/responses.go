package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/pkg/formdoc"
)

func (a *App) responsesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "responses",
		Short: "Inspect and manage recorded responses",
	}
	cmd.AddCommand(
		a.responsesListCmd(),
		a.responsesDeleteCmd(),
		a.responsesClearCmd(),
	)
	return cmd
}

func (a *App) responsesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <form-id>",
		Short: "List the responses recorded for a form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, formKnown := a.ws.Forms().Form(args[0])
			records := a.ws.Responses().ByForm(args[0])
			if len(records) == 0 {
				printf(cmd.OutOrStdout(), "No responses for %s.\n", args[0])
				return nil
			}

			for _, record := range records {
				printf(cmd.OutOrStdout(), "%s\t%s\n", record.ID, record.Timestamp.Format("2006-01-02 15:04:05"))
				for _, row := range answerRows(form, formKnown, record.Data) {
					printf(cmd.OutOrStdout(), "  %s: %s\n", row.label, row.value)
				}
			}
			if !formKnown {
				printf(cmd.OutOrStdout(), "Note: form %s no longer exists.\n", args[0])
			}
			return nil
		},
	}
}

type answerRow struct {
	label string
	value string
}

// answerRows orders a record's answers by the form's step and field order.
// Answers whose field no longer exists, and every answer of an orphaned
// record, fall back to sorted field ids.
func answerRows(form formdoc.Form, formKnown bool, data map[string]formdoc.Value) []answerRow {
	rows := make([]answerRow, 0, len(data))
	seen := make(map[string]bool, len(data))

	if formKnown {
		for _, step := range form.Steps {
			for _, field := range step.Fields {
				value, ok := data[field.ID]
				if !ok {
					continue
				}
				rows = append(rows, answerRow{label: field.Label, value: value.Flatten()})
				seen[field.ID] = true
			}
		}
	}

	var leftovers []string
	for fieldID := range data {
		if !seen[fieldID] {
			leftovers = append(leftovers, fieldID)
		}
	}
	sort.Strings(leftovers)
	for _, fieldID := range leftovers {
		rows = append(rows, answerRow{label: fieldID, value: data[fieldID].Flatten()})
	}
	return rows
}

func (a *App) responsesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <form-id> <response-id>",
		Short: "Delete one response",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.ws.Responses().Delete(args[0], args[1]) {
				return fmt.Errorf("response %q not found", args[1])
			}
			printf(cmd.OutOrStdout(), "Deleted response %s\n", args[1])
			return nil
		},
	}
}

func (a *App) responsesClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <form-id>",
		Short: "Delete every response recorded for a form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.ws.Responses().Clear(args[0]) {
				return fmt.Errorf("no responses recorded for %q", args[0])
			}
			printf(cmd.OutOrStdout(), "Cleared responses for %s\n", args[0])
			return nil
		},
	}
}
