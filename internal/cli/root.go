package cli

import (
	"log"
	"os"

	"github.com/go-logr/stdr"
	"github.com/spf13/cobra"
	fedelog "github.com/vvakame/fedecompose/internal/log"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbosity int

	cmd := &cobra.Command{
		Use:          "fedecompose",
		Short:        "Compose federated subgraphs into a supergraph schema",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			stdr.SetVerbosity(verbosity)
			logger := stdr.New(log.New(cmd.ErrOrStderr(), "", log.LstdFlags))
			cmd.SetContext(fedelog.WithLogger(cmd.Context(), logger))
		},
	}

	cmd.PersistentFlags().IntVarP(&verbosity, "verbosity", "v", 0, "log verbosity, 1 shows per directive merge outcomes")
	cmd.AddCommand(composeCmd())

	return cmd
}
