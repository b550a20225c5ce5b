package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"lojachat/internal/bootstrap"
	"lojachat/internal/config"
	"lojachat/internal/crawler"
	"lojachat/internal/data"
	"lojachat/internal/db"
	"lojachat/internal/model"
	"lojachat/internal/repository"
)

// go run ./cmd/crawler
// go run ./cmd/crawler -store=https://diravena.com -db
func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := zerolog.New(os.Stderr)
		boot.Fatal().Err(err).Msg("configuração inválida")
	}

	store := flag.String("store", cfg.StoreURL, "URL da loja")
	out := flag.String("out", cfg.DataDir, "diretório dos arquivos JSON")
	toDB := flag.Bool("db", false, "também grava os documentos no Postgres (DATABASE_URL)")
	workers := flag.Int("workers", cfg.WorkerCount, "páginas raspadas em paralelo")
	flag.Parse()

	logger := bootstrap.Logger(cfg, "lojachat-crawler", os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var repo *repository.DocumentRepository
	if *toDB {
		if cfg.DatabaseURL == "" {
			logger.Fatal().Msg("DATABASE_URL não configurada")
		}
		conn, err := db.New(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("Erro ao conectar no Postgres")
		}
		defer conn.Close()
		repo = &repository.DocumentRepository{DB: conn}
		if err := repo.EnsureSchema(); err != nil {
			logger.Fatal().Err(err).Msg("Erro ao criar tabela scraped_documents")
		}
	}

	results := crawler.CrawlAll(ctx, nil, crawler.DefaultTargets(*store), *workers, logger)

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			continue
		}
		if err := save(*out, repo, res); err != nil {
			failed++
			logger.Error().Err(err).Str("kind", res.Target.Kind).Msg("Erro ao salvar documento")
		}
	}

	logger.Info().Int("pages", len(results)).Int("failed", failed).Msg("Crawler finalizado")
	if failed > 0 {
		os.Exit(1)
	}
}

func save(dir string, repo *repository.DocumentRepository, res crawler.Result) error {
	if res.Catalog != nil {
		if err := data.WriteCatalog(dir, res.Catalog); err != nil {
			return err
		}
		if repo != nil {
			return repo.Save(repository.KindProducts, res.Catalog.Source, res.Catalog.ScrapedAt, res.Catalog)
		}
		return nil
	}

	kind := model.PolicyKind(res.Target.Kind)
	if err := data.WritePolicy(dir, kind, res.Policy); err != nil {
		return err
	}
	if repo != nil {
		return repo.Save(string(kind), res.Policy.Source, res.Policy.ScrapedAt, res.Policy)
	}
	return nil
}
