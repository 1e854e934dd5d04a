package main

import (
	"TTSAnnouncer/internal/app/provider"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newVoicesCommand(a *app) *cobra.Command {
	var language string
	cmd := &cobra.Command{
		Use:     "voices",
		Short:   "List voices offered by the selected provider",
		Example: `tts-mcp-server voices --provider polly --language en-US`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			synth, err := provider.New(cmd.Context(), a.cfg, a.logger)
			if err != nil {
				return err
			}
			voices, err := provider.Voices(cmd.Context(), synth, language)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tLANGUAGE\tGENDER")
			for _, v := range voices {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", v.ID, v.Name, v.Language, v.Gender)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&language, "language", "", "language code filter, e.g. en-US (empty for all)")
	return cmd
}
