// Package main is the entityctl maintenance CLI: classification checks,
// merge suggestions, merges, schema migrations and admin tokens.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-minutes/internal/adapter/repository"
	"github.com/johnquangdev/meeting-minutes/internal/domain/repositories"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/database"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/resolver"
	"github.com/johnquangdev/meeting-minutes/pkg/config"
	pkglogger "github.com/johnquangdev/meeting-minutes/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "entityctl",
	Short: "Maintenance commands for the meeting minutes entity registry",
	Long: `entityctl runs entity maintenance outside the API server. Database,
logging and resolver settings come from the same environment variables as
the server; a YAML config file can override resolver-config and json.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./entityctl.yaml or ~/.config/entityctl/config.yaml)")
	rootCmd.PersistentFlags().String("resolver-config", "", "resolver override file (overrides RESOLVER_CONFIG_FILE)")
	rootCmd.PersistentFlags().Bool("json", false, "print results as JSON")

	_ = viper.BindPFlag("resolver-config", rootCmd.PersistentFlags().Lookup("resolver-config"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("entityctl")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "entityctl"))
		}
	}

	viper.SetEnvPrefix("ENTITYCTL")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// app holds the connections shared by commands
type app struct {
	cfg    *config.Config
	db     *gorm.DB
	store  repositories.Store
	logger *zap.Logger
}

func openApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if f := viper.GetString("resolver-config"); f != "" {
		cfg.Resolver.ConfigFile = f
	}

	logger, err := pkglogger.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.NewDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &app{cfg: cfg, db: db, store: repository.NewStore(db), logger: logger}, nil
}

func (a *app) Close() {
	_ = database.CloseDB(a.db)
	_ = a.logger.Sync()
}

func (a *app) resolver() (resolver.Service, error) {
	var settings *config.ResolverSettings
	if a.cfg.Resolver.ConfigFile != "" {
		s, err := config.LoadResolverFile(a.cfg.Resolver.ConfigFile)
		if err != nil {
			return nil, err
		}
		settings = s
	}
	rcfg := resolver.ConfigFromSettings(a.cfg.Resolver, settings)
	if err := rcfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid resolver config: %w", err)
	}
	return resolver.NewService(a.store, rcfg, nil, a.logger, nil), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
