package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/korulabs/koru/agent"
	"github.com/korulabs/koru/config"
	"github.com/korulabs/koru/kernel"
	"github.com/korulabs/koru/kernel/provider"
	anthropicprovider "github.com/korulabs/koru/kernel/provider/anthropic"
	openaiprovider "github.com/korulabs/koru/kernel/provider/openai"
	"github.com/korulabs/koru/memory"
	openaiembedder "github.com/korulabs/koru/memory/embedder/openai"
	"github.com/korulabs/koru/memory/store/vectordb"
	"github.com/korulabs/koru/schedule"
	"github.com/korulabs/koru/tools"
)

func newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start the interactive agent shell",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			settings, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if err := settings.EnsureDirs(); err != nil {
				return err
			}

			logger := newLogger(settings.LogLevel)

			prov, err := buildProvider(settings)
			if err != nil {
				return err
			}
			llm := kernel.NewLLMManager()
			llm.LoadModel("default", prov)

			kernelOpts := []kernel.Option{kernel.WithLogger(logger)}
			var mem *memory.Memory
			if settings.Memory.Enabled {
				mem = memory.New(
					vectordb.New(settings.Memory.Dimensions),
					settings.Memory.Dimensions,
					memory.WithEmbedder(openaiembedder.New(settings.LLM.APIKey)),
					memory.WithLogger(logger),
				)
				kernelOpts = append(kernelOpts,
					kernel.WithMemory(mem),
					kernel.WithTopK(settings.Memory.TopK),
				)
			}
			k := kernel.New(llm, kernelOpts...)

			scheduler, err := schedule.Open(
				filepath.Join(settings.DataDir, "events.db"),
				schedule.WithLogger(logger),
			)
			if err != nil {
				return err
			}
			defer scheduler.Close()

			mgr := agent.NewManager(k, agent.WithLogger(logger))
			mgr.Registry().RegisterAll(tools.Builtin(nil))
			mgr.Registry().RegisterAll(schedule.Tools(scheduler, mem, logger))

			return runShell(cmd, mgr)
		},
	}
}

func runShell(cmd *cobra.Command, mgr *agent.Manager) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Welcome to koru. Type exit or quit to leave.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(out, "koru> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			fmt.Fprintln(out, "Goodbye!")
			return nil
		}

		result, err := mgr.Execute(cmd.Context(), line)
		if err != nil {
			fmt.Fprintln(out, "Error:", err)
			continue
		}
		fmt.Fprintln(out, result)
	}
}

func buildProvider(settings *config.Settings) (provider.Provider, error) {
	switch settings.LLM.Provider {
	case "openai", "":
		return openaiprovider.New(settings.LLM.Model, settings.LLM.APIKey), nil
	case "anthropic":
		client := anthropicsdk.NewClient()
		return anthropicprovider.New(&client, settings.LLM.Model), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", settings.LLM.Provider)
	}
}

func newLogger(level string) *logrus.Logger {
	logger := logrus.New()
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)
	return logger
}
