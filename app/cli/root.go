package cli

import (
	"fmt"
	"intentbot/app/client/downstream"
	"intentbot/app/client/llm"
	"intentbot/app/config"
	"intentbot/app/service/calc"
	"intentbot/app/service/catalog"
	"intentbot/app/service/flow"
	"intentbot/app/service/mcpserver"
	"intentbot/app/service/session"
	"intentbot/app/service/turn"
	"intentbot/app/util/console"
	"intentbot/app/util/mylog"
	"log/slog"
	"os"

	"github.com/samber/do"
	"github.com/spf13/cobra"
)

func NewRootCommand(di *do.Injector) *cobra.Command {
	root := &cobra.Command{
		Use:           "intentbot",
		Short:         "Console assistants that route free text through a language model",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", "config.yaml", "Path to the YAML config file")
	root.PersistentFlags().Bool("show-flow", false, "Print the pipeline flowchart before the session starts")

	root.AddCommand(
		newCalcCommand(di),
		newCatalogCommand(di),
		newMCPCommand(di),
		newFlowCommand(),
	)

	return root
}

// setup loads config, switches logging to it and registers the services.
func setup(cmd *cobra.Command, di *do.Injector) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config load failed: %w", err)
	}
	do.ProvideValue(di, cfg)

	if err = mylog.Init(cfg); err != nil {
		return nil, fmt.Errorf("logging init failed: %w", err)
	}

	do.ProvideValue(di, console.New(os.Stdin, os.Stdout))
	do.Provide(di, llm.New)
	do.Provide(di, downstream.New)
	do.Provide(di, calc.New)
	do.Provide(di, catalog.New)

	return cfg, nil
}

func newCalcCommand(di *do.Injector) *cobra.Command {
	return &cobra.Command{
		Use:   "calc",
		Short: "Add, subtract or multiply the first two numbers in a sentence",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup(cmd, di)
			if err != nil {
				return err
			}

			return runSession(cmd, di, cfg, flow.Calc(), do.MustInvoke[*calc.Service](di))
		},
	}
}

func newCatalogCommand(di *do.Injector) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Describe Siebel product model actions and print the REST requests they need",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup(cmd, di)
			if err != nil {
				return err
			}

			return runSession(cmd, di, cfg, flow.Catalog(), do.MustInvoke[*catalog.Service](di),
				session.WithGreeting(catalog.Greeting))
		},
	}
}

func newMCPCommand(di *do.Injector) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the arithmetic and catalog tools over MCP (stdio)",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			do.Provide(di, mcpserver.New)

			return do.MustInvoke[*mcpserver.Server](di).ServeStdio()
		},
	}
}

func newFlowCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "flow [calc|catalog]",
		Short:     "Print a pipeline as a Mermaid flowchart",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"calc", "catalog"},
		RunE: func(cmd *cobra.Command, args []string) error {
			graph, err := flow.ByName(args[0])
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), graph.Render())
			return err
		},
	}
}

// runSession runs the console loop until it ends or ctx is cancelled. Stdin reads
// cannot be interrupted, so cancellation does not wait for the loop.
func runSession(cmd *cobra.Command, di *do.Injector, cfg *config.Config, graph flow.Graph, pipeline turn.Pipeline, opts ...session.Option) error {
	ctx := cmd.Context()

	opts = append([]session.Option{session.WithExitWords(cfg.Session.ExitWords...)}, opts...)
	if showFlow, _ := cmd.Flags().GetBool("show-flow"); showFlow {
		opts = append(opts, session.WithBanner(graph.Render()))
	}
	sess := session.New(pipeline, do.MustInvoke[*console.Console](di), opts...)

	slog.Info("Session started", "model", cfg.LLM.Model)

	done := make(chan error, 1)
	go func() {
		done <- sess.Run(ctx)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return nil
	}
}
