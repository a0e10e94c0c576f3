package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fluffinity/elfreader/internal/elf"
	"github.com/fluffinity/elfreader/internal/render"
	"github.com/fluffinity/elfreader/internal/utils"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "elfreader",
		Short: "Inspect the structural metadata of ELF binaries",
		Long: `elfreader decodes the metadata of binary files in the Executable and
Linkable Format (ELF): the identification header, the program header
table and the section header table.

It reports the word size (32/64-bit), byte order, target architecture,
OS/ABI and object file type, and lists every program and section header
with its type, flags, offsets and sizes. Numeric codes outside the
documented tables are shown with their raw value instead of being
rejected, so vendor-specific binaries still parse.

Results can be output in human-readable text or machine-readable JSON
for scripting.`,
		Version:       utils.GetVersionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newInspectCmd())
	cmd.AddCommand(newUpdateCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newInspectCmd() *cobra.Command {
	var (
		outputFormat string
		showHeader   bool
		showProgram  bool
		showSections bool
		configFile   string
		verbose      bool
		noColor      bool
	)

	cmd := &cobra.Command{
		Use:   "inspect <binary>",
		Short: "Parse an ELF binary and print its metadata",
		Long: `Parse the given file as an ELF binary and print the decoded metadata.

By default the header, the program header table and the section header
table are all shown; use --header, --program-headers or
--section-headers to restrict the output to specific parts.

Exit codes:
  0 - File parsed successfully
  1 - File could not be read or is not a valid ELF binary
  2 - Invalid arguments or configuration error`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No selector flag means everything.
			if !showHeader && !showProgram && !showSections {
				showHeader, showProgram, showSections = true, true, true
			}
			opts := render.Options{
				Header:         showHeader,
				ProgramHeaders: showProgram,
				SectionHeaders: showSections,
				Color:          !noColor,
			}
			return runInspect(args[0], outputFormat, configFile, verbose, opts)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "", "Output format (text, json)")
	cmd.Flags().BoolVar(&showHeader, "header", false, "Print the ELF header")
	cmd.Flags().BoolVar(&showProgram, "program-headers", false, "Print the program header table")
	cmd.Flags().BoolVar(&showSections, "section-headers", false, "Print the section header table")
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "Configuration file path")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	return cmd
}

func runInspect(binaryPath, outputFormat, configFile string, verbose bool, opts render.Options) error {
	config, err := utils.LoadConfig(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	loggerConfig := utils.LoggerConfig{
		Level:  utils.ParseLogLevel(config.LogLevel),
		Format: utils.ParseLogFormat(config.LogFormat),
	}
	if verbose {
		loggerConfig.Level = utils.LogLevelDebug
	}
	logger := utils.NewLogger(loggerConfig)

	if outputFormat == "" {
		outputFormat = config.Output.Format
	}
	if !config.Output.Color {
		opts.Color = false
	}

	logger.WithComponent("elfreader").Debugf("Parsing ELF metadata of %s", binaryPath)

	report, err := elf.ParseFile(binaryPath)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", binaryPath, err)
	}

	for _, warning := range report.Warnings {
		logger.WithComponent("elfreader").Warn(warning)
	}

	switch outputFormat {
	case "json":
		return render.JSON(os.Stdout, binaryPath, report, opts)
	case "text":
		return render.Text(os.Stdout, binaryPath, report, opts)
	default:
		fmt.Fprintf(os.Stderr, "Error: unsupported output format: %s\n", outputFormat)
		os.Exit(2)
		return nil
	}
}

func newUpdateCmd() *cobra.Command {
	var (
		checkOnly  bool
		configFile string
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update elfreader to the latest release",
		Long: `Check GitHub for a newer elfreader release and install it in place of
the running binary. With --check the new version is only reported, not
installed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cmd.Context(), configFile, checkOnly)
		},
	}

	cmd.Flags().BoolVar(&checkOnly, "check", false, "Only check for a new version")
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "Configuration file path")

	return cmd
}

func runUpdate(ctx context.Context, configFile string, checkOnly bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	config, err := utils.LoadConfig(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	updater := utils.NewUpdater(utils.UpdaterConfig{
		Repository:     config.Update.Repository,
		BinaryName:     "elfreader",
		CurrentVersion: utils.Version,
	})

	release, hasUpdate, err := updater.CheckForUpdate(ctx)
	if err != nil {
		return fmt.Errorf("update check failed: %w", err)
	}
	if !hasUpdate {
		fmt.Printf("elfreader %s is up to date\n", utils.Version)
		return nil
	}

	fmt.Printf("New version available: %s (current: %s)\n", release.TagName, utils.Version)
	if checkOnly {
		return nil
	}
	if err := updater.Update(ctx, release); err != nil {
		return fmt.Errorf("update failed: %w", err)
	}
	fmt.Printf("Updated to %s\n", release.TagName)
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("elfreader version %s\n", utils.Version)
			fmt.Printf("Commit: %s\n", utils.Commit)
			fmt.Printf("Built: %s\n", utils.Date)
		},
	}
}
