package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/snapdraw/raffle-api/internal/api"
	"github.com/snapdraw/raffle-api/internal/config"
	"github.com/snapdraw/raffle-api/internal/db"
	"github.com/snapdraw/raffle-api/internal/domain"
	"github.com/snapdraw/raffle-api/internal/logger"
	"github.com/snapdraw/raffle-api/internal/repository"
	"github.com/snapdraw/raffle-api/internal/repository/dao"
	"github.com/snapdraw/raffle-api/internal/revocation"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	if err = dao.InitTables(postgresDB); err != nil {
		return fmt.Errorf("failed to initialize tables -> %w", err)
	}

	if err = seedSettings(postgresDB, conf.Raffle); err != nil {
		return fmt.Errorf("failed to seed raffle settings -> %w", err)
	}

	revoker, err := buildRevoker(conf.Redis)
	if err != nil {
		return fmt.Errorf("failed to initialize revocation store -> %w", err)
	}

	if conf.Razorpay.IsConfigured() {
		zap.L().Info("payment gateway configured, running live checkout")
	} else {
		zap.L().Warn("payment gateway not configured, running in demo mode")
	}

	// Editing the raffle section of the config file appends a new
	// settings row, which takes effect without a restart.
	lastRaffle := conf.Raffle
	config.Watch(func(newConf *config.AppConfig, e fsnotify.Event) {
		zap.L().Info("config file changed", zap.String("file", e.Name))

		if newConf.Raffle == nil || (lastRaffle != nil && *newConf.Raffle == *lastRaffle) {
			return
		}
		lastRaffle = newConf.Raffle

		seed, err := settingsFromConfig(newConf.Raffle)
		if err != nil {
			zap.L().Error("ignoring invalid raffle config change", zap.Error(err))
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		repo := repository.NewRaffleSettingsRepository(dao.NewRaffleSettingsDAO(postgresDB))
		if _, err := repo.Replace(ctx, seed); err != nil {
			zap.L().Error("applying raffle config change", zap.Error(err))
			return
		}
		zap.L().Info("raffle settings updated from config file")
	})

	s := api.NewServer(conf, postgresDB, revoker)

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}

// buildRevoker picks Redis when an address is configured, otherwise an
// in-process store. The in-process store loses revocations on restart,
// acceptable for a single-instance deployment with 24h tokens.
func buildRevoker(conf *config.RedisConfig) (revocation.Revoker, error) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" && conf != nil {
		addr = conf.Addr
	}
	if addr == "" {
		zap.L().Info("no redis configured, using in-memory token revocation")

		return revocation.NewMemoryStore(), nil
	}

	opts := &redis.Options{Addr: addr}
	if conf != nil {
		opts.Password = conf.Password
		opts.DB = conf.DB
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping -> %w", err)
	}

	return revocation.NewRedisStore(client), nil
}

func settingsFromConfig(conf *config.RaffleConfig) (domain.RaffleSettings, error) {
	seed := domain.RaffleSettings{
		IsActive:   true,
		EntryPrice: 10000, // 100 INR
	}
	if conf == nil {
		return seed, nil
	}

	seed.IsActive = conf.Active
	if conf.EntryPrice > 0 {
		seed.EntryPrice = conf.EntryPrice
	}
	if conf.MaxEntries > 0 {
		maxEntries := conf.MaxEntries
		seed.MaxEntries = &maxEntries
	}
	if conf.EndDate != "" {
		endDate, err := time.Parse(time.RFC3339, conf.EndDate)
		if err != nil {
			return domain.RaffleSettings{}, fmt.Errorf("invalid raffle.end_date -> %w", err)
		}
		seed.EndDate = &endDate
	}

	return seed, nil
}

func seedSettings(postgresDB *gorm.DB, conf *config.RaffleConfig) error {
	seed, err := settingsFromConfig(conf)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo := repository.NewRaffleSettingsRepository(dao.NewRaffleSettingsDAO(postgresDB))

	return repo.EnsureDefault(ctx, seed)
}
