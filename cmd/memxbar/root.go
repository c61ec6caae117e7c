package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/memxbar/config"
	"github.com/sarchlab/memxbar/mem/hierarchy"
	"github.com/sarchlab/memxbar/sim"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "memxbar",
	Short: "memxbar builds and exercises crossbar-based memory hierarchies.",
	Long: `memxbar reads a memory hierarchy description, checks that every ` +
		`crossbar is closed by a de-crossbar, and can run a reproducible ` +
		`random trace through the hierarchy.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

func init() {
	rootCmd.PersistentFlags().StringSlice("config", nil,
		"Configuration files, later files override earlier ones.")
	rootCmd.PersistentFlags().String("top", "",
		"Section of the object at the top of the hierarchy.")
	rootCmd.PersistentFlags().Bool("quiet", false,
		"Do not print construction messages.")

	_ = rootCmd.MarkPersistentFlagRequired("config")
	_ = rootCmd.MarkPersistentFlagRequired("top")
}

func dieOnErr(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		atexit.Exit(1)
	}
}

func buildHierarchy(
	cmd *cobra.Command,
	engine sim.Engine,
) (*hierarchy.Hierarchy, *config.Conf) {
	files, _ := cmd.Flags().GetStringSlice("config")
	top, _ := cmd.Flags().GetString("top")
	quiet, _ := cmd.Flags().GetBool("quiet")

	conf, err := config.Load(files...)
	dieOnErr(err)

	logger := log.Default()
	if quiet {
		logger = log.New(io.Discard, "", 0)
	}

	b := hierarchy.MakeBuilder().
		WithConfig(conf).
		WithEngine(engine).
		WithLogger(logger)

	h, err := b.Build(top)
	dieOnErr(err)

	return h, conf
}
