package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/mahavak/rhonda/internal/catalog"
	"github.com/mahavak/rhonda/internal/cli"
	"github.com/mahavak/rhonda/internal/constants"
	"github.com/mahavak/rhonda/internal/errors"
	"github.com/mahavak/rhonda/internal/gamify"
	"github.com/mahavak/rhonda/internal/keyring"
	"github.com/mahavak/rhonda/internal/logger"
	"github.com/mahavak/rhonda/internal/storage"
	"github.com/mahavak/rhonda/internal/syncer"
	"github.com/mahavak/rhonda/internal/tracker"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage path or postgres:// connection string." type:"path" default:"~/.config/rhonda/rhonda.db"`
	API     string `help:"Remote tracking API base URL." default:"http://localhost:8080/api"`
	Debug   bool   `help:"Enable debug logging."`

	Init  cli.InitCmd `cmd:"" help:"Initialize rhonda storage."`
	Tui   cli.TuiCmd  `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Track struct {
		Supplement cli.TrackSupplementCmd `cmd:"" help:"Record a supplement dose."`
		Sauna      cli.TrackSaunaCmd      `cmd:"" help:"Record a sauna session."`
	} `cmd:"" help:"Record activity."`
	Note         cli.NoteCmd         `cmd:"" help:"Add or list notes."`
	Stats        cli.StatsCmd        `cmd:"" help:"Show derived statistics."`
	Achievements cli.AchievementsCmd `cmd:"" help:"Show level, points, and achievements."`
	Challenge    struct {
		List  cli.ChallengeListCmd  `cmd:"" help:"List challenges."`
		Start cli.ChallengeStartCmd `cmd:"" help:"Start a challenge."`
		Claim cli.ChallengeClaimCmd `cmd:"" help:"Claim a completed challenge's reward."`
	} `cmd:"" help:"Manage challenges."`
	Remind cli.RemindCmd `cmd:"" help:"Show pending slots and expired challenges."`
	Data   struct {
		Export cli.DataExportCmd `cmd:"" help:"Export the document."`
		Import cli.DataImportCmd `cmd:"" help:"Import an exported document."`
		Reset  cli.DataResetCmd  `cmd:"" help:"Delete all data and reinitialize."`
	} `cmd:"" help:"Manage stored data."`
	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a backup."`
		List    cli.BackupListCmd    `cmd:"" help:"List backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage backups."`
	Sync struct {
		Now    cli.SyncNowCmd    `cmd:"" help:"Replay queued mutations against the server."`
		Status cli.SyncStatusCmd `cmd:"" help:"Show the pending sync queue."`
	} `cmd:"" help:"Synchronize with the remote API."`
	Doctor cli.DoctorCmd `cmd:"" help:"Run diagnostics."`
	ConfigCmd struct {
		SetConnection   cli.ConfigSetConnectionCmd   `cmd:"" help:"Store a database connection string in the OS keyring."`
		ClearConnection cli.ConfigClearConnectionCmd `cmd:"" help:"Remove the stored connection string."`
	} `cmd:"" name:"config" help:"Manage configuration."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Supplement and sauna protocol tracker"),
		kong.UsageOnError(),
		kong.Vars{"version": constants.Version},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	backend, err := selectBackend(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}
	store := storage.New(backend)

	queuePath := filepath.Join(filepath.Dir(CLI.Config), constants.SyncQueueFileName)
	queue, err := syncer.OpenQueue(queuePath)
	if err != nil {
		logger.Warn("Sync queue unavailable", "error", err)
	}

	recorder := tracker.NewRecorder(store)
	recorder.AddHook(gamify.NewHook(store, catalog.Achievements()))

	registry := syncer.NewRegistry()
	registry.Activate(constants.CacheVersion)
	offline := syncer.NewHandler(registry, syncer.NewHTTPFetcher(), constants.OfflineFallbackURL)

	appCtx := &cli.Context{
		Store:    store,
		Recorder: recorder,
		Queue:    queue,
		Client:   syncer.NewClient(CLI.API),
		Offline:  offline,
		Debug:    CLI.Debug,
	}

	err = ctx.Run(appCtx)
	offline.Wait()
	if err != nil {
		errors.Fatal(err)
	}
}

// selectBackend picks the storage flavor from the config value's shape:
// postgres connection strings hit a remote server, .json paths use the
// plain file store, anything else is SQLite.
func selectBackend(config string) (storage.Backend, error) {
	if strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://") {
		if storage.HasEmbeddedCredentials(config) {
			return nil, fmt.Errorf("connection string must not embed a password; store it with 'rhonda config set-connection'")
		}
		if stored, err := keyring.GetConnectionString(); err == nil && stored != "" {
			config = stored
		}
		return storage.NewPostgresBackend(config), nil
	}
	if strings.HasSuffix(config, ".json") {
		return storage.NewFileBackend(config), nil
	}
	return storage.NewSQLiteBackend(config), nil
}
