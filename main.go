package main

import (
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/daemon"
	"github.com/kardianos/osext"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	fyyur "github.com/derWhity/fyyur/internal"
	"github.com/derWhity/fyyur/internal/ctxhelper"
	"github.com/derWhity/fyyur/internal/db"
	"github.com/derWhity/fyyur/internal/log"
	"github.com/derWhity/fyyur/internal/migrate"
	artistrepo "github.com/derWhity/fyyur/internal/repos/artist/sqlite"
	showrepo "github.com/derWhity/fyyur/internal/repos/show/sqlite"
	venuerepo "github.com/derWhity/fyyur/internal/repos/venue/sqlite"
)

const (
	appName    = "Fyyur"
	appVersion = "0.1.0"
)

// Checks and tries to create the given directory recursively (or panics if this fails)
func checkAndCreateDir(path string, logger *logrus.Entry) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.WithField(log.FldPath, path).Info("Directory does not exist - trying to create...")
			if err = os.MkdirAll(path, os.ModePerm); err != nil {
				logger.WithError(err).Fatal("Failed to create directory")
			}
			logger.Info("Directory created successfully")
		} else {
			logger.WithError(err).Fatal("Stat has failed")
		}
	} else {
		if !fileInfo.IsDir() {
			logger.Fatalf("'%s' is not a directory. Remove the plain file if you want to continue", path)
		}
	}
}

// aliveURL builds the URL of the alive check for the given listen address
func aliveURL(listenAddress string) string {
	host, port, err := net.SplitHostPort(listenAddress)
	if err != nil {
		return ""
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}
	return fmt.Sprintf("http://%s/alive", net.JoinHostPort(host, port))
}

func main() {
	execDir, err := osext.ExecutableFolder()
	if err != nil {
		panic(err)
	}

	configFile := flag.String(
		"config",
		filepath.Join(execDir, "config.json"),
		"The configuration file to load the application's configuration from",
	)
	envFile := flag.String(
		"env",
		".env",
		"Optional dotenv file with FYYUR_* variables overriding the configuration file",
	)
	writeConfig := flag.Bool(
		"write-config",
		false,
		"Write the effective configuration to the configuration file and exit",
	)
	flag.Parse()

	ctx := context.Background()

	// Initialize the logger
	logger := logrus.WithField(log.FldVersion, appVersion)
	logger.Infof("%s version %s is starting up...", appName, appVersion)
	ctx = ctxhelper.WithLogger(ctx, logger)

	// Load the main configuration
	cs := fyyur.NewConfigService(*configFile, *envFile)
	if err := cs.Load(ctx); err != nil {
		logger.WithError(err).Error("Cannot load config. Using defaults")
	}
	conf := cs.GetConfig(ctx)
	if lvl, err := logrus.ParseLevel(conf.LogLevel); err == nil {
		logrus.SetLevel(lvl)
	} else {
		logger.WithError(err).Warnf("Unknown log level '%s'", conf.LogLevel)
	}
	if *writeConfig {
		if err := cs.WriteToFile(ctx, *configFile); err != nil {
			logger.WithError(err).Fatal("Failed to write configuration")
		}
		return
	}

	logger.Infof("Using '%s' as data directory", conf.DataDir)
	checkAndCreateDir(conf.DataDir, logger)

	// Set up the database connection and perform pending migrations
	conn, err := db.Open(conf.DatabasePath(), conf.MaxOpenConns)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open database connection")
	}
	defer conn.Close()
	logger.Info("Performing database migrations...")
	if err = migrate.ExecuteMigrationsOnDb(conn, logger); err != nil {
		logger.WithError(err).Fatal("Database migration has failed. Please check database for consistency and try again.")
	}

	venueRepo := venuerepo.New(conn, logger)
	artistRepo := artistrepo.New(conn, logger)
	showRepo := showrepo.New(conn, logger)

	vSrv := fyyur.NewVenueService(venueRepo, showRepo, fyyur.SystemClock, logger)
	aSrv := fyyur.NewArtistService(artistRepo, showRepo, fyyur.SystemClock, logger)
	sSrv := fyyur.NewShowService(showRepo, fyyur.SystemClock, logger)

	httpLogger := logger.WithField(log.FldTransport, "HTTP")

	h := fyyur.MakeHTTPHandler(
		vSrv,
		aSrv,
		sSrv,
		fyyur.HandlerOptions{
			Location: conf.Location(),
			Timeout:  conf.Timeout(),
		},
		httpLogger,
	)

	srv := &http.Server{
		Addr:              conf.ListenAddress,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	// Start listening
	errs := make(chan error, 2)

	// Listen for stop signals that will end the service
	go func() {
		c := make(chan os.Signal, 2)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		sig := <-c
		logger.Info("Caught signal to stop. Shutting down.")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Warn("HTTP server did not shut down cleanly")
		}
		errs <- fmt.Errorf("%s", sig)
	}()

	go func() {
		httpLogger.WithField("addr", conf.ListenAddress).Info("Starting listening port")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			errs <- err
		}
	}()

	// Watchdog for systemd
	go func() {
		interval, err := daemon.SdWatchdogEnabled(false)
		if err != nil || interval == 0 {
			return
		}
		url := aliveURL(conf.ListenAddress)
		if url == "" {
			logger.Warn("Cannot derive alive URL from listen address. Watchdog disabled")
			return
		}
		logger.Info("Activating systemd watchdog goroutine")
		client := http.Client{Timeout: interval / 3}
		for {
			if resp, err := client.Get(url); err == nil {
				resp.Body.Close()
				daemon.SdNotify(false, "WATCHDOG=1")
			}
			time.Sleep(interval / 3)
		}
	}()

	// Notify systemd that we are ready to go (if available)
	daemon.SdNotify(false, "READY=1")

	logger.WithError(<-errs).Error("Shutdown complete")
}
