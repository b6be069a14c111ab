// Package main is the entry point for the automcp server.
//
// The bare command serves MCP over stdio; everything else is small glue:
//
// 1. Initialize logging (stderr, so stdout stays free for JSON-RPC)
// 2. Resolve configuration from flags, environment and the config file
// 3. Wire the MCP server and hand it the transport
//
// The probe and init subcommands cover smoke-testing a deployed server
// and writing the config file.
package main

import (
	"fmt"
	"os"

	"automcp/internal/config"
	"automcp/internal/experts"
	"automcp/internal/logging"
	"automcp/internal/mcp"

	"github.com/spf13/cobra"
)

func main() {
	logger := logging.NewAppLogger()

	if err := newRootCmd(logger).Execute(); err != nil {
		logger.Error("automcp failed", "error", err)
		os.Exit(1)
	}
}

func newRootCmd(logger *logging.AppLogger) *cobra.Command {
	var (
		pathFlag  string
		matchFlag string
		testFlag  bool
	)

	cmd := &cobra.Command{
		Use:     "automcp",
		Short:   "MCP server listing the experts of a VerifAI Assistant",
		Version: mcp.Version,
		Long: "automcp exposes the experts configured in a local VerifAI Assistant " +
			"through the Model Context Protocol. Started without arguments it " +
			"serves MCP over stdio; --test runs a single local listing instead.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Resolve(pathFlag, matchFlag)
			if err != nil {
				return err
			}

			srv, err := mcp.NewServer(cfg, logger)
			if err != nil {
				return err
			}

			if testFlag {
				out, err := srv.RunLocal(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			}

			return srv.Serve()
		},
	}

	cmd.PersistentFlags().StringVar(&pathFlag, "path", "",
		"VerifAI Assistant directory (overrides VERIFAI_ASSISTANT_DIR and the config file)")
	cmd.PersistentFlags().StringVar(&matchFlag, "match", "",
		`expert matching rule: "dirs", "files:<ext>" or "registry"`)
	cmd.Flags().BoolVar(&testFlag, "test", false,
		"run get_experts locally, print the result and exit")

	cmd.AddCommand(newProbeCmd(logger))
	cmd.AddCommand(newInitCmd(logger))

	return cmd
}

// newProbeCmd spawns a server binary over stdio and verifies get_experts
// end to end, the way an MCP host would use it.
func newProbeCmd(logger *logging.AppLogger) *cobra.Command {
	var serverBin string

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Spawn a server over stdio and verify get_experts works",
		RunE: func(cmd *cobra.Command, args []string) error {
			bin := serverBin
			if bin == "" {
				exe, err := os.Executable()
				if err != nil {
					return fmt.Errorf("cannot locate own binary: %w", err)
				}
				bin = exe
			}

			// Forward the shared flags so the child sees the same directory.
			var childArgs []string
			if p := cmd.InheritedFlags().Lookup("path").Value.String(); p != "" {
				childArgs = append(childArgs, "--path", p)
			}
			if m := cmd.InheritedFlags().Lookup("match").Value.String(); m != "" {
				childArgs = append(childArgs, "--match", m)
			}

			logger.Debug("Probing server", "binary", bin, "args", childArgs)
			return mcp.Probe(cmd.Context(), cmd.OutOrStdout(), bin, childArgs)
		},
	}

	cmd.Flags().StringVar(&serverBin, "server", "",
		"server binary to probe (defaults to this executable)")

	return cmd
}

// newInitCmd writes the config file so later invocations can run without
// flags or environment.
func newInitCmd(logger *logging.AppLogger) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the config file with the current --path and --match",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Resolve(
				cmd.InheritedFlags().Lookup("path").Value.String(),
				cmd.InheritedFlags().Lookup("match").Value.String(),
			)
			if err != nil {
				return err
			}
			if _, err := experts.ParseMatchRule(cfg.MatchRule); err != nil {
				return err
			}

			if err := cfg.Save(); err != nil {
				return err
			}

			path, _ := config.ConfigPath()
			logger.Info("Configuration saved", "path", path)
			fmt.Fprintln(cmd.OutOrStdout(), "wrote", path)
			return nil
		},
	}
}
