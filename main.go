package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/daemon"
	"github.com/jmoiron/sqlx"
	"github.com/kardianos/osext"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	fyyur "github.com/derWhity/fyyur/internal"
	"github.com/derWhity/fyyur/internal/ctxhelper"
	"github.com/derWhity/fyyur/internal/database"
	"github.com/derWhity/fyyur/internal/log"
	"github.com/derWhity/fyyur/internal/models"
	artistrepo "github.com/derWhity/fyyur/internal/repos/artist/sqlite"
	showrepo "github.com/derWhity/fyyur/internal/repos/show/sqlite"
	venuerepo "github.com/derWhity/fyyur/internal/repos/venue/sqlite"
)

const (
	appName    = "Fyyur"
	appVersion = "0.1.0"
)

// options set on the command line
type options struct {
	configFile string
	envFile    string
}

// Checks and tries to create the given directory recursively
func checkAndCreateDir(path string, logger *logrus.Entry) error {
	fileInfo, err := os.Stat(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("stat of '%s' has failed: %v", path, err)
		}
		logger.WithField(log.FldPath, path).Info("Directory does not exist - trying to create...")
		if err = os.MkdirAll(path, os.ModePerm); err != nil {
			return fmt.Errorf("failed to create directory '%s': %v", path, err)
		}
		logger.Info("Directory created successfully")
		return nil
	}
	if !fileInfo.IsDir() {
		return fmt.Errorf("'%s' is not a directory. Remove the plain file if you want to continue", path)
	}
	return nil
}

// loadConfig loads the configuration and sets the log level configured in it
func loadConfig(ctx context.Context, opts *options) (models.AppConfig, error) {
	logger := ctxhelper.Logger(ctx)
	cs := fyyur.NewConfigService(opts.configFile)
	if err := cs.Load(ctx); err != nil {
		logger.WithError(err).Error("Cannot load config. Using defaults")
	}
	if err := cs.ApplyEnvironment(ctx, opts.envFile); err != nil {
		return models.AppConfig{}, err
	}
	conf := cs.GetConfig(ctx)
	level, err := logrus.ParseLevel(conf.LogLevel)
	if err != nil {
		logger.WithError(err).Warnf("Unknown log level '%s' - staying with '%s'", conf.LogLevel, logrus.GetLevel())
	} else {
		logrus.SetLevel(level)
	}
	return conf, nil
}

// openDatabase opens the database inside the configured data directory and performs pending migrations
func openDatabase(conf models.AppConfig, logger *logrus.Entry) (*sqlx.DB, error) {
	logger.Infof("Using '%s' as data directory", conf.DataDir)
	if err := checkAndCreateDir(conf.DataDir, logger); err != nil {
		return nil, err
	}
	return database.Open(filepath.Join(conf.DataDir, conf.DBFile), logger)
}

func newRootCmd() *cobra.Command {
	opts := options{}
	execDir, err := osext.ExecutableFolder()
	if err != nil {
		panic(err)
	}

	cmd := &cobra.Command{
		Use:     "fyyur",
		Short:   "Fyyur lists venues and artists and books shows between them",
		Version: appVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), &opts)
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configFile, "config", filepath.Join(execDir, "config.json"),
		"The configuration file to load the application's configuration from")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", "",
		"A file with FYYUR_* environment variables to load (defaults to .env if it exists)")

	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the web server (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), &opts)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Perform pending database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd.Context(), &opts)
		},
	})
	return cmd
}

func runMigrate(ctx context.Context, opts *options) error {
	logger := ctxhelper.Logger(ctx)
	conf, err := loadConfig(ctx, opts)
	if err != nil {
		return err
	}
	db, err := openDatabase(conf, logger)
	if err != nil {
		return err
	}
	logger.Info("Database is up to date")
	return db.Close()
}

func runServe(ctx context.Context, opts *options) error {
	logger := ctxhelper.Logger(ctx)
	conf, err := loadConfig(ctx, opts)
	if err != nil {
		return err
	}
	db, err := openDatabase(conf, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	venueRepo := venuerepo.New(db, logger)
	artistRepo := artistrepo.New(db, logger)
	showRepo := showrepo.New(db, logger)

	vSrv := fyyur.NewVenueService(venueRepo, showRepo, time.Now, logger)
	aSrv := fyyur.NewArtistService(artistRepo, showRepo, time.Now, logger)
	sSrv := fyyur.NewShowService(showRepo, logger)

	httpLogger := logger.WithField(log.FldTransport, "HTTP")

	h, err := fyyur.MakeHTTPHandler(vSrv, aSrv, sSrv, conf.StaticDir, httpLogger)
	if err != nil {
		return err
	}

	// Start listening
	errs := make(chan error)

	// Listen for stop signals that will end the service
	go func() {
		c := make(chan os.Signal, 2)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		err := fmt.Errorf("%s", <-c)
		logger.Info("Caught signal to stop. Shutting down.")
		errs <- err
	}()

	go func() {
		httpLogger.WithField("addr", conf.ListenAddress).Info("Starting listening port")
		errs <- http.ListenAndServe(conf.ListenAddress, h)
	}()

	// Watchdog for systemd
	go func() {
		interval, err := daemon.SdWatchdogEnabled(false)
		if err != nil || interval == 0 {
			return
		}
		logger.Info("Activating systemd watchdog goroutine")
		port := conf.ListenAddress[strings.LastIndex(conf.ListenAddress, ":")+1:]
		url := fmt.Sprintf("http://127.0.0.1:%s/alive", port)
		for {
			if resp, err := http.Get(url); err == nil {
				resp.Body.Close()
				daemon.SdNotify(false, "WATCHDOG=1")
			}
			time.Sleep(interval / 3)
		}
	}()

	// Notify systemd that we are ready to go (if available)
	daemon.SdNotify(false, "READY=1")

	logger.WithError(<-errs).Error("Shutdown complete")
	return nil
}

func main() {
	// Initialize the logger
	logger := logrus.WithField(log.FldVersion, appVersion)
	logger.Infof("%s version %s is starting up...", appName, appVersion)
	ctx := ctxhelper.WithLogger(context.Background(), logger)

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logger.WithError(err).Fatal("Fyyur has stopped with an error")
	}
}
