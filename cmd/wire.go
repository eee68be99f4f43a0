package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/KPSTVLD/warrant-articles-bot/internal/adapters/repo/flatfile"
	"github.com/KPSTVLD/warrant-articles-bot/internal/adapters/repo/sqlite"
	"github.com/KPSTVLD/warrant-articles-bot/internal/adapters/source"
	"github.com/KPSTVLD/warrant-articles-bot/internal/application"
	"github.com/KPSTVLD/warrant-articles-bot/internal/domain"
	"github.com/KPSTVLD/warrant-articles-bot/internal/ports"
	"github.com/spf13/viper"
)

const (
	configDirName = ".wab"
	configName    = "config"
	configType    = "toml"

	ledgerBackendKey  = "ledger.backend"
	ledgerPathKey     = "ledger.path"
	titlesPathKey     = "titles.path"
	poolsKey          = "pools"
	dispenseDelayKey  = "dispense.delay"
	rareChanceKey     = "reward.rare_chance"
	rareAmountKey     = "reward.rare_amount"
	rewardModeKey     = "reward.mode"
	commonAmountKey   = "reward.common_amount"
	rangeMinKey       = "reward.range_min"
	rangeMaxKey       = "reward.range_max"
	defaultSQLitePath = "data/ledger.db"
)

type app struct {
	dispense *application.DispenseService
	shop     *application.ShopService
	query    *application.QueryService
	ledger   ports.LedgerRepository
}

func wireApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger := slog.Default()

	ledger, err := wireLedger(cfg, logger)
	if err != nil {
		return nil, err
	}

	pools, err := source.LoadPools(cfg.GetStringMapString(poolsKey), logger)
	if err != nil {
		return nil, fmt.Errorf("wire content pools: %w", err)
	}

	catalog, err := source.LoadCatalog(cfg.GetString(titlesPathKey), logger)
	if err != nil {
		return nil, fmt.Errorf("wire title catalog: %w", err)
	}

	policy, err := domain.NewRewardPolicy(rewardConfig(cfg), nil)
	if err != nil {
		return nil, fmt.Errorf("wire reward policy: %w", err)
	}

	return &app{
		dispense: application.NewDispenseService(ledger, pools, policy, cfg.GetDuration(dispenseDelayKey)),
		shop:     application.NewShopService(ledger, catalog),
		query:    application.NewQueryService(ledger),
		ledger:   ledger,
	}, nil
}

func loadConfig() (*viper.Viper, error) {
	cfg := viper.New()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, configDirName))
	cfg.AddConfigPath(".")

	cfg.SetDefault(ledgerBackendKey, "flatfile")
	cfg.SetDefault(titlesPathKey, "data/titles.txt")
	cfg.SetDefault(poolsKey, map[string]string{
		"gb":   "data/gb.txt",
		"ukrf": "data/uk_rf.txt",
	})
	cfg.SetDefault(dispenseDelayKey, "0s")
	cfg.SetDefault(rareChanceKey, 0.04)
	cfg.SetDefault(rareAmountKey, 1)
	cfg.SetDefault(rewardModeKey, string(domain.RewardModeFixed))
	cfg.SetDefault(commonAmountKey, 100)
	cfg.SetDefault(rangeMinKey, 1)
	cfg.SetDefault(rangeMaxKey, 100)

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return cfg, nil
}

func wireLedger(cfg *viper.Viper, logger *slog.Logger) (ports.LedgerRepository, error) {
	backend := cfg.GetString(ledgerBackendKey)
	switch backend {
	case "flatfile":
		ledger, err := flatfile.NewRepository(cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("wire flatfile ledger: %w", err)
		}
		return ledger, nil
	case "sqlite":
		path := cfg.GetString(ledgerPathKey)
		if path == "" {
			path = defaultSQLitePath
		}
		ledger, err := sqlite.Open(path, logger)
		if err != nil {
			return nil, fmt.Errorf("wire sqlite ledger: %w", err)
		}
		return ledger, nil
	default:
		return nil, fmt.Errorf("unsupported ledger backend %q", backend)
	}
}

func rewardConfig(cfg *viper.Viper) domain.RewardConfig {
	return domain.RewardConfig{
		RareChance:   cfg.GetFloat64(rareChanceKey),
		RareAmount:   cfg.GetInt64(rareAmountKey),
		Mode:         domain.RewardMode(cfg.GetString(rewardModeKey)),
		CommonAmount: cfg.GetInt64(commonAmountKey),
		RangeMin:     cfg.GetInt64(rangeMinKey),
		RangeMax:     cfg.GetInt64(rangeMaxKey),
	}
}
