package main

import (
	"context"
	"strings"

	httpadapter "agentgate/internal/adapter/http"
	"agentgate/internal/adapter/model/openaigen"
	gormrepo "agentgate/internal/adapter/repo/gorm"
	"agentgate/internal/adapter/repo/memory"
	"agentgate/internal/app/gateway"
	"agentgate/internal/app/invoker"
	"agentgate/internal/app/ledger"
	"agentgate/internal/app/ports"
	"agentgate/internal/domain/agent"
	"agentgate/pkg/config"
	"agentgate/pkg/logx"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/rs/zerolog/log"
)

type serverConfig struct {
	Addr          string `split_words:"true" default:":8080"`
	DBDSN         string `envconfig:"DB_DSN"`
	MigrationsDir string `split_words:"true" default:"./migrations"`
	SignupBonus   int64  `split_words:"true" default:"50"`
	Log           logx.Config
	Model         openaigen.Config
}

func main() {
	cfg := config.MustNew[serverConfig]("AGENTGATE")
	logx.Init(cfg.Log)

	accounts := mustBuildAccountRepo(cfg)

	uc := gateway.UseCase{
		Registry:    agent.NewRegistry(),
		Accounts:    accounts,
		Ledger:      ledger.Service{Accounts: accounts},
		Invoker:     invoker.Invoker{Provider: openaigen.New(cfg.Model)},
		SignupBonus: cfg.SignupBonus,
	}

	h := httpadapter.Handler{Gateway: uc}
	s := server.Default(
		server.WithHostPorts(cfg.Addr),
		server.WithHandleMethodNotAllowed(true),
	)
	h.RegisterRoutes(s)

	log.Info().Str("addr", cfg.Addr).Msg("agentgate server listening")
	s.Spin()
}

func mustBuildAccountRepo(cfg *serverConfig) ports.AccountRepository {
	dsn := strings.TrimSpace(cfg.DBDSN)
	if dsn == "" {
		log.Warn().Msg("AGENTGATE_DB_DSN not set, using in-memory account store (balances reset on restart)")
		return memory.NewAccountRepo(memory.NewStore())
	}
	db, err := gormrepo.OpenPostgres(dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("open postgres")
	}
	if err := gormrepo.ApplyMigrations(context.Background(), db, cfg.MigrationsDir); err != nil {
		log.Fatal().Err(err).Msg("apply migrations")
	}
	return gormrepo.NewAccountRepo(db)
}
