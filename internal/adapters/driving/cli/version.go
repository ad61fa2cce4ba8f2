package cli

import (
	"runtime"

	"github.com/spf13/cobra"
)

var versionShortFlag bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the plancanvas version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		if versionShortFlag {
			cmd.Println(version)
			return
		}
		cmd.Printf("plancanvas version %s (%s %s/%s)\n",
			version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionShortFlag, "short", false, "print only the version string")
	rootCmd.AddCommand(versionCmd)
}
