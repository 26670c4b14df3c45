package cmd

import (
	"context"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/oshokin/release-packager/internal/config"
	"github.com/oshokin/release-packager/internal/logger"
	"github.com/oshokin/release-packager/internal/service/packager"
	"github.com/oshokin/release-packager/internal/version"
)

// rootCmd packages the binaries described by flags and environment variables.
//
//nolint:gochecknoglobals // Required by Cobra CLI framework architecture.
var rootCmd = &cobra.Command{
	Use:   "release-packager",
	Short: "Package cargo release binaries into a tar.gz or zip archive.",
	Long: `Packages already-built release binaries into {package}-{tag}-{asset_target}.{ext}.

The root package and its bin targets are read from cargo metadata. Each binary
is looked up under target/<dir>/release for BUILD_TARGET, RUST_TARGET and
BUILD_TARGET without a trailing glibc version (e.g. ".2.32"). Binaries and
README/LICENSE/COPYING files are staged in dist/ and then archived.

Every flag can also be set through the environment variable shown in its help;
an explicit flag wins over the environment.`,
	Example: `  TAG=v1.2.3 ASSET_TARGET=x86_64-unknown-linux-gnu BUILD_TARGET=x86_64-unknown-linux-gnu.2.32 \
    RUST_TARGET=x86_64-unknown-linux-gnu release-packager

  release-packager --tag v1.2.3 --build-target x86_64-pc-windows-msvc \
    --asset-target x86_64-pc-windows-msvc --archive-ext zip`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(cmd.Flags())
		if err != nil {
			return err
		}

		if lvl, ok := logger.ParseLogLevel(cfg.LogLevel); ok {
			logger.SetLevel(lvl)
		}

		options := &packager.Options{
			Config: cfg,
			Stdout: cmd.OutOrStdout(),
		}

		return packager.Run(cmd.Context(), options)
	},
}

// Execute runs the release-packager CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(version.Full()),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	)
	if err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	config.RegisterFlags(rootCmd.Flags())
}
