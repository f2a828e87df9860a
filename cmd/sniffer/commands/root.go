/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: root.go
Description: Root command and flag wiring for the dialect sniffer. Persistent flags are
bound to viper keys so they share one namespace with config files and SNIFFER_*
environment variables.
*/

package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/dialect-sniffer/pkg/pattern"
)

// Version of the sniffer CLI
const Version = "1.0.0"

// NewRootCommand builds the command tree with a fresh viper instance
func NewRootCommand() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "sniffer",
		Short: "Dialect sniffer - detect the structure of delimited text files",
		Long: `The dialect sniffer infers the delimiter, quote and escape characters of a
delimited text file without knowing them in advance. Every candidate dialect is scored
by how consistently it shapes the rows of the file, and the most consistent one wins.`,
		Version:      Version,
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Configuration file path (yaml, json or toml)")
	flags.String("log-level", "warn", "Logging level (debug, info, warn, error)")
	flags.String("log-format", "custom", "Log format (text, json, custom, sniffer)")
	flags.String("log-dir", "", "Also write logs to timestamped files in this directory")
	flags.Float64("eps", pattern.DefaultEps, "Weight floor for single-column row patterns")
	flags.Int("num-chars", 0, "Only read this many characters of the input (0 = all)")
	flags.String("encoding", "", "Encoding of the input when it is not UTF-8 (e.g. windows-1252)")
	flags.StringP("output-format", "o", "text", "Output format (text, json, yaml)")
	flags.String("output-dir", "", "Also write reports to timestamped files in this directory")

	v.BindPFlag("config", flags.Lookup("config"))
	v.BindPFlag("logging.level", flags.Lookup("log-level"))
	v.BindPFlag("logging.format", flags.Lookup("log-format"))
	v.BindPFlag("logging.output_dir", flags.Lookup("log-dir"))
	v.BindPFlag("detection.eps", flags.Lookup("eps"))
	v.BindPFlag("detection.num_chars", flags.Lookup("num-chars"))
	v.BindPFlag("detection.encoding", flags.Lookup("encoding"))
	v.BindPFlag("output.format", flags.Lookup("output-format"))
	v.BindPFlag("output.dir", flags.Lookup("output-dir"))

	rootCmd.AddCommand(
		newDetectCommand(v),
		newScoreCommand(v),
		newAbstractCommand(v),
	)
	return rootCmd
}
