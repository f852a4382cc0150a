// Command authorpubs browses an author's publications in the terminal and
// lets curators highlight the ones worth showing first.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/authorpubs/internal/config"
	"github.com/jask/authorpubs/internal/database"
	"github.com/jask/authorpubs/internal/database/repository"
	"github.com/jask/authorpubs/internal/logger"
	"github.com/jask/authorpubs/internal/service"
	"github.com/jask/authorpubs/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "authorpubs",
	Short: "Browse and curate author publication profiles",
	Long: `authorpubs shows an author's profile: highlighted papers first, then every
research work of the author, paged and filterable. Users with the superuser
or cataloger role can select papers and highlight them for the author.

Run without a subcommand to open the browser on ui.start_author.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runBrowse,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: $AUTHORPUBS_CONFIG or ~/.config/authorpubs/config.toml)")
}

// env is everything a subcommand needs once config, logging and the
// database are up.
type env struct {
	cfg config.Config
	log *zap.Logger
	db  *sql.DB
	svc *service.LiteratureService
}

func (e *env) Close() {
	_ = e.db.Close()
	_ = e.log.Sync()
}

// newStore builds a store for the configured user and limits.
func (e *env) newStore() *store.Store {
	user := store.UserState{Email: e.cfg.User.Email, Roles: e.cfg.User.Roles}
	return store.New(store.Initial(user, e.cfg.UI.PageSize),
		store.WithLogger(e.log.Named("store")),
		store.WithMaxInflight(e.cfg.Store.MaxInflight),
	)
}

// setup loads config, opens the log and migrates the database. seed
// loads the demo corpus into an empty database; only seed and browse ask
// for it.
func setup(cmd *cobra.Command, seed bool) (*env, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	log, err := logger.New(cfg.Log.Env, cfg.Log.Level, cfg.Log.Path)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	cmd.SetContext(logger.WithContext(cmd.Context(), log))

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}
	if err := database.RunMigrations(cfg.Database.Path, cfg.Database.Migrations); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if seed {
		if err := database.SeedDefaults(cmd.Context(), db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("seed defaults: %w", err)
		}
	}

	svc := &service.LiteratureService{
		Authors:    repository.NewAuthorRepo(db),
		Records:    repository.NewLiteratureRepo(db),
		References: repository.NewReferenceRepo(db),
		Highlights: repository.NewHighlightRepo(db),
		Log:        log.Named("service"),
	}
	log.Debug("ready", zap.String("db", cfg.Database.Path), zap.Strings("roles", cfg.User.Roles))
	return &env{cfg: cfg, log: log, db: db, svc: svc}, nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
