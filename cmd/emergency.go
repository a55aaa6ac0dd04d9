package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"table-booking/internal/domain/actor"
	"table-booking/internal/domain/emergency"
	resdto "table-booking/internal/handler/dto/response"
	"table-booking/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newEmergencyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "emergency",
		Short: "Emergency closures",
	}
	cmd.AddCommand(newEmergencyTriggerCmd())
	return cmd
}

func newEmergencyTriggerCmd() *cobra.Command {
	var (
		id          string
		name        string
		description string
		start       string
		end         string
	)

	cmd := &cobra.Command{
		Use:   "trigger",
		Short: "Declare a closure window (or re-run a stored one) and cancel overlapping reservations",
		Example: `  table-booking emergency trigger --name Flood --start 2025-03-01T11:00:00Z --end 2025-03-01T13:00:00Z
  table-booking emergency trigger --id 6f1c...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var cmds commands.EmergencyCommands
			app, err := startCore(cmd.Context(), &cmds)
			if err != nil {
				return err
			}
			defer stopApp(app)

			var (
				w      *emergency.Window
				result commands.CascadeResult
			)
			switch {
			case id != "":
				emergencyID, perr := uuid.Parse(id)
				if perr != nil {
					return fmt.Errorf("invalid --id: %w", perr)
				}
				w, result, err = cmds.TriggerEmergencyByID(cmd.Context(), emergencyID, actor.System())
			case name != "":
				in, perr := parseWindowFlags(name, description, start, end)
				if perr != nil {
					return perr
				}
				w, result, err = cmds.DeclareEmergency(cmd.Context(), actor.System(), in)
			default:
				return errors.New("either --id or --name with --start and --end is required")
			}
			if err != nil {
				return err
			}

			out := json.NewEncoder(cmd.OutOrStdout())
			out.SetIndent("", "  ")
			return out.Encode(resdto.FromCascade(w, result))
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "stored emergency id to re-run")
	cmd.Flags().StringVar(&name, "name", "", "emergency name, used in the cancellation reason")
	cmd.Flags().StringVar(&description, "description", "", "free text description")
	cmd.Flags().StringVar(&start, "start", "", "window start (RFC 3339)")
	cmd.Flags().StringVar(&end, "end", "", "window end (RFC 3339)")
	cmd.MarkFlagsMutuallyExclusive("id", "name")
	return cmd
}

func parseWindowFlags(name, description, start, end string) (commands.CreateEmergencyInput, error) {
	s, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return commands.CreateEmergencyInput{}, fmt.Errorf("invalid --start: %w", err)
	}
	e, err := time.Parse(time.RFC3339, end)
	if err != nil {
		return commands.CreateEmergencyInput{}, fmt.Errorf("invalid --end: %w", err)
	}
	return commands.CreateEmergencyInput{Name: name, Description: description, Start: s, End: e}, nil
}
