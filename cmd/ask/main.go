package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"lojachat/internal/bootstrap"
	"lojachat/internal/chat"
	"lojachat/internal/config"
)

func main() {
	if err := newRootCmd(nil).Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the ask command. A nil generator means the Groq client
// from the environment.
func newRootCmd(llm chat.Generator) *cobra.Command {
	var (
		contextOnly bool
		dataDir     string
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "ask [mensagem]",
		Short: "Pergunta ao atendente da loja pelo terminal",
		Long: `Responde uma mensagem usando o mesmo fluxo do chat web:
classifica a intenção, busca produtos e políticas no snapshot local
e consulta o modelo. Com --context-only mostra apenas o contexto.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if dataDir != "" {
				cfg.DataDir = dataDir
				cfg.DataSource = config.DataSourceFile
			}
			if !verbose {
				cfg.LogLevel = "disabled"
			}

			logger := bootstrap.Logger(cfg, "lojachat-cli", cmd.ErrOrStderr())
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			snapshot, err := bootstrap.Snapshot(ctx, cfg, logger)
			if err != nil {
				return fmt.Errorf("erro ao carregar dados: %w", err)
			}

			generator := llm
			if generator == nil {
				generator = bootstrap.LLM(cfg, logger)
			}
			svc := chat.NewService(snapshot, generator, nil, cfg.StoreName, logger)

			if contextOnly {
				printContext(cmd.OutOrStdout(), svc.Context(args[0]))
				return nil
			}

			reply, err := svc.Reply(ctx, chat.Request{Message: args[0]})
			if err != nil {
				return err
			}
			label := color.New(color.FgGreen, color.Bold).SprintFunc()
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", label(cfg.StoreName+":"), reply.Text)
			return nil
		},
	}

	cmd.Flags().BoolVar(&contextOnly, "context-only", false, "mostra o contexto montado sem chamar o modelo")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "diretório dos arquivos JSON (força DATA_SOURCE=file)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "mostra os logs")
	return cmd
}

func printContext(w io.Writer, r chat.Retrieval) {
	header := color.New(color.FgCyan, color.Bold).SprintFunc()

	fmt.Fprintf(w, "%s produto=%t política=%t saudação=%t termos=%v\n",
		header("intenção:"), r.ProductIntent, r.PolicyIntent, r.Greeting, r.Terms)
	if !r.Price.IsZero() {
		fmt.Fprintf(w, "%s min=%v max=%v\n", header("preço:"), deref(r.Price.Min), deref(r.Price.Max))
	}
	if r.Context == "" {
		fmt.Fprintln(w, "(nenhum dado relevante encontrado para esta pergunta)")
		return
	}
	fmt.Fprintln(w, r.Context)
}

func deref(f *float64) any {
	if f == nil {
		return "-"
	}
	return *f
}
