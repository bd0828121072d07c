package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mpi-recipes/build-variant/pkg/buildopts"
	"github.com/mpi-recipes/build-variant/pkg/mpivariant"
	"github.com/mpi-recipes/build-variant/pkg/rattlerbuild"
	"github.com/mpi-recipes/build-variant/pkg/variantbuild"
)

var (
	osArgs             = os.Args
	osStdout io.Writer = os.Stdout
	osStderr io.Writer = os.Stderr
)

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(osStderr)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	if buildopts.Bool(buildopts.Debug) {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

func addBuildFlags(flags *pflag.FlagSet) {
	flags.String("build-tool", rattlerbuild.DefaultBinary, "Build tool to run, looked up in $PATH unless it contains a slash")
	flags.String("base-config", variantbuild.DefaultBaseConfig, "Variant config shared by all builds, relative to the package directory")
	flags.BoolP("verbose", "v", false, "Show debug output")
}

func validateArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(2)(cmd, args); err != nil {
		return err
	}

	st, err := os.Stat(args[0])
	if err != nil {
		return fmt.Errorf("invalid package directory: %w", err)
	}
	if !st.IsDir() {
		return fmt.Errorf("invalid package directory: %q is not a directory", args[0])
	}

	_, err = mpivariant.Parse(args[1])
	return err
}

func completeArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 0:
		return nil, cobra.ShellCompDirectiveFilterDirs
	case 1:
		return mpivariant.Names(), cobra.ShellCompDirectiveNoFileComp
	default:
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
}

func cmdBuild(logger *logrus.Logger, cmd *cobra.Command, args []string) error {
	// arguments are valid at this point, errors from here on are
	// reported via the logger
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	recipeDir := args[0]
	mpi, err := mpivariant.Parse(args[1])
	if err != nil {
		return err
	}

	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return err
	}
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	buildTool, err := cmd.Flags().GetString("build-tool")
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("build-tool") {
		if envTool := buildopts.String(buildopts.BuildTool); envTool != "" {
			buildTool = envTool
		}
	}
	baseConfig, err := cmd.Flags().GetString("base-config")
	if err != nil {
		return err
	}

	builder := &variantbuild.Builder{
		Log:        logger,
		BuildTool:  buildTool,
		BaseConfig: baseConfig,
		Stdout:     osStdout,
		Stderr:     osStderr,
	}
	if err := builder.Build(recipeDir, mpi); err != nil {
		logBuildError(logger, err)
		return err
	}
	return nil
}

func logBuildError(logger *logrus.Logger, err error) {
	var buildErr *variantbuild.Error
	if !errors.As(err, &buildErr) {
		logger.Error(err)
		return
	}

	log := logger.WithFields(logrus.Fields{
		"package": buildErr.Package,
		"mpi":     buildErr.Variant.String(),
	})
	var exitErr *rattlerbuild.BuildError
	switch {
	case errors.As(err, &exitErr):
		log.Errorf("Build failed for %s (%s): %s", buildErr.Package, buildErr.Variant, exitErr)
	default:
		log.Error(buildErr.Err)
	}
}

func run() error {
	logger := newLogger()

	rootCmd := &cobra.Command{
		Use:   "build-variant <package_directory> <mpi_variant>",
		Short: "Build a conda recipe for a single MPI variant",
		Long: `Build a conda recipe for a single MPI variant

Build-variant narrows the variants.yaml of the recipe to the given MPI
implementation (one of ` + strings.Join(mpivariant.Names(), ", ") + `), drops the
overrides of all other implementations and runs rattler-build with the
result layered on top of conda_build_config.yaml.`,
		Args:              validateArgs,
		ValidArgsFunction: completeArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdBuild(logger, cmd, args)
		},
	}
	addBuildFlags(rootCmd.Flags())

	rootCmd.SetArgs(osArgs[1:])
	rootCmd.SetOut(osStdout)
	rootCmd.SetErr(osStderr)

	return rootCmd.Execute()
}

func exitCode(err error) int {
	if err != nil {
		return 1
	}
	return 0
}

func main() {
	os.Exit(exitCode(run()))
}
