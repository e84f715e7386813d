// Package verifier is the cmd/verifier CLI entry point: a cobra root
// command plus the verify subcommand, mirroring cmd/root.go's
// subcommand-registration style (cobra + viper + logrus).
package verifier

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:          "lightclient-verifier",
	Short:        "Stateless light-client verifier for Ethereum-family beacon chains",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (chain spec / storage defaults)")
	cobra.OnInitialize(initConfig)
	rootCmd.AddCommand(verifyCmd())
}

func initConfig() {
	viper.SetEnvPrefix("verifier")
	viper.AutomaticEnv()
	if cfgFile == "" {
		return
	}
	viper.SetConfigFile(cfgFile)
	_ = viper.ReadInConfig() // absence is not fatal; initConfig only sets defaults
}

// Execute runs the root command and returns the process exit code per
// spec §6 (0 success, 1 verification failure, 2 protocol/IO error, 3
// configuration error). It never calls os.Exit itself, unlike the
// teacher's cmd.Execute, so main can choose the code and tests can call
// this directly.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		return exitCodeFor(err)
	}
	return 0
}
