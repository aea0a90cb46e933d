package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/pkg/fill"
)

func (a *App) fillCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fill <form-id>",
		Short: "Fill a form interactively and record the response",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, ok := a.ws.Forms().Form(args[0])
			if !ok {
				return fmt.Errorf("form %q not found", args[0])
			}

			answers, err := fill.NewRunner(a.driver).Run(cmd.Context(), form)
			if err != nil {
				return err
			}
			responseID := a.ws.Responses().Submit(form.ID, answers)
			printf(cmd.OutOrStdout(), "Recorded response %s (%d answers)\n", responseID, len(answers))
			return nil
		},
	}
}
