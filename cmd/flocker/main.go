package main

import (
	"os"

	"github.com/function61/flocker/pkg/flockerclient"
	"github.com/function61/gokit/dynversion"
	"github.com/function61/gokit/osutil"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     os.Args[0],
		Short:   "Flocker volume manager",
		Version: dynversion.Version,
		// hide the default "completion" subcommand from polluting UX (it can still be used). https://github.com/spf13/cobra/issues/1507
		CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
	}

	opts := flockerclient.GlobalFlags(rootCmd)

	for _, entrypoint := range flockerclient.Entrypoints(opts) {
		rootCmd.AddCommand(entrypoint)
	}

	osutil.ExitIfError(rootCmd.Execute())
}
