package main

import (
	"github.com/spf13/cobra"

	"condodocs/internal/pdftext"
)

func newRootCommand() *cobra.Command {
	return buildRootCommand(pdftext.NewReader())
}

func buildRootCommand(extractor pdftext.Extractor) *cobra.Command {
	var flags globalFlags

	rootCmd := &cobra.Command{
		Use:           "condodocs",
		Short:         "Organize condominium boletos and notas fiscais",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	ctx := newCommandContext(&flags, extractor)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if shouldSkipConfig(cmd) {
			return nil
		}
		_, err := ctx.ensureConfig()
		return err
	}

	rootCmd.PersistentFlags().StringVarP(&flags.config, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Override logging.level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "Override logging.format (console, json)")
	rootCmd.PersistentFlags().BoolVar(&flags.noProgress, "no-progress", false, "Disable progress bars")

	rootCmd.AddCommand(newPairCommand(ctx))
	rootCmd.AddCommand(newSortCommand(ctx))
	rootCmd.AddCommand(newRunCommand(ctx))
	rootCmd.AddCommand(newNotasCommand(ctx))
	rootCmd.AddCommand(newBoletosCommand(ctx))
	rootCmd.AddCommand(newLinkCommand(ctx))
	rootCmd.AddCommand(newScanCommand(ctx))
	rootCmd.AddCommand(newCompareCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
