package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSayCommand(a *app) *cobra.Command {
	var voice string
	cmd := &cobra.Command{
		Use:     "say <message>",
		Short:   "Announce one message and print the status line",
		Example: `tts-mcp-server say "Build complete" --voice Matthew`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ann, _, err := a.buildAnnouncer(cmd.Context())
			if err != nil {
				return err
			}
			out := ann.Announce(cmd.Context(), strings.Join(args, " "), voice)
			fmt.Fprintln(cmd.OutOrStdout(), out.String())
			return nil
		},
	}
	cmd.Flags().StringVar(&voice, "voice", "", "voice id (default from --default-voice)")
	return cmd
}
