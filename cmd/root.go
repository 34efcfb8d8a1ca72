package cmd

import (
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "lintwarden",
	Short: "lintwarden - correlates static-analysis matches into severity-scored findings",
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
