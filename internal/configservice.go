package internal

import (
	"encoding/json"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"golang.org/x/net/context"

	"github.com/derWhity/fyyur/internal/ctxhelper"
	"github.com/derWhity/fyyur/internal/log"
	"github.com/derWhity/fyyur/internal/models"
)

// Environment variables overriding the values of the configuration file
const (
	EnvDataDir        = "FYYUR_DATA_DIR"
	EnvDatabase       = "FYYUR_DATABASE"
	EnvListenAddress  = "FYYUR_LISTEN_ADDRESS"
	EnvTimeZone       = "FYYUR_TIMEZONE"
	EnvRequestTimeout = "FYYUR_REQUEST_TIMEOUT"
	EnvMaxOpenConns   = "FYYUR_MAX_OPEN_CONNS"
	EnvLogLevel       = "FYYUR_LOG_LEVEL"
)

// ConfigService provides access to the application's configuration
type ConfigService interface {
	// Load loads the application config from its default file locations
	Load(ctx context.Context) error
	// LoadFromFile loads the configuration from the given JSON file, applying the dotenv file and the environment on
	// top of it. A missing JSON file leaves the defaults in place
	LoadFromFile(ctx context.Context, filename string) error
	// WriteToFile writes the current application configuration to a JSON file
	WriteToFile(ctx context.Context, filename string) error
	// GetConfig retuns the current application configuration
	GetConfig(ctx context.Context) models.AppConfig
}

// -- ConfigService implementation -------------------------------------------------------------------------------------

type configService struct {
	sync.RWMutex
	configFilename string
	envFilename    string
	config         *models.AppConfig
}

// NewConfigService creates a new configuration service instance with the given default JSON file name and dotenv file
// name. An empty envFilename disables reading a dotenv file
func NewConfigService(configFilename, envFilename string) ConfigService {
	return &configService{
		configFilename: configFilename,
		envFilename:    envFilename,
	}
}

// Load loads the application config from its default file locations
func (s *configService) Load(ctx context.Context) error {
	return s.LoadFromFile(ctx, s.configFilename)
}

// LoadFromFile loads the configuration from the given JSON file and the environment
func (s *configService) LoadFromFile(ctx context.Context, filename string) error {
	logger := ctxhelper.Logger(ctx)
	conf, err := models.GetDefaultConfig()
	if err != nil {
		return errors.Wrap(err, "LoadFromFile: Failed to create default config")
	}
	logger.WithField(log.FldFile, filename).Info("Loading configuration file")
	f, err := os.Open(filename)
	switch {
	case os.IsNotExist(err):
		logger.WithField(log.FldFile, filename).Info("Configuration file does not exist. Using defaults")
	case err != nil:
		return errors.Wrap(err, "LoadFromFile: cannot load configuration file")
	default:
		defer f.Close()
		if err = json.NewDecoder(f).Decode(conf); err != nil {
			return errors.Wrap(err, "LoadFromFile: Failed to decode configuration file")
		}
	}
	if s.envFilename != "" {
		// Variables already present in the environment win over the ones from the file
		if err := godotenv.Load(s.envFilename); err != nil {
			if _, statErr := os.Stat(s.envFilename); !os.IsNotExist(statErr) {
				return errors.Wrapf(err, "LoadFromFile: Failed to read environment file '%s'", s.envFilename)
			}
		} else {
			logger.WithField(log.FldFile, s.envFilename).Info("Loaded environment file")
		}
	}
	if err := applyEnv(conf); err != nil {
		return errors.Wrap(err, "LoadFromFile: Illegal environment configuration")
	}
	s.Lock()
	s.config = conf
	s.Unlock()
	return nil
}

// applyEnv overwrites the configuration values for which an environment variable is set
func applyEnv(conf *models.AppConfig) error {
	for name, target := range map[string]*string{
		EnvDataDir:        &conf.DataDir,
		EnvDatabase:       &conf.Database,
		EnvListenAddress:  &conf.ListenAddress,
		EnvTimeZone:       &conf.TimeZone,
		EnvRequestTimeout: &conf.RequestTimeout,
		EnvLogLevel:       &conf.LogLevel,
	} {
		if val, ok := os.LookupEnv(name); ok {
			*target = val
		}
	}
	if val, ok := os.LookupEnv(EnvMaxOpenConns); ok {
		n, err := strconv.Atoi(val)
		if err != nil || n < 1 {
			return errors.Errorf("%s must be a positive integer, got '%s'", EnvMaxOpenConns, val)
		}
		conf.MaxOpenConns = n
	}
	return nil
}

// WriteToFile writes the current application configuration to a JSON file
func (s *configService) WriteToFile(ctx context.Context, filename string) error {
	logger := ctxhelper.Logger(ctx)
	logger.WithField(log.FldFile, filename).Info("Writing configuration file")
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "WriteToFile: Cannot open configuration file '%s' to write to", filename)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "    ")
	conf := s.GetConfig(ctx)
	if err := enc.Encode(&conf); err != nil {
		return errors.Wrap(err, "WriteToFile: Failed to serialize configuration data")
	}
	return nil
}

// GetConfig retuns the current application configuration
func (s *configService) GetConfig(ctx context.Context) models.AppConfig {
	s.RLock()
	defer s.RUnlock()
	if s.config != nil {
		return *s.config
	}
	conf, err := models.GetDefaultConfig()
	if err != nil {
		ctxhelper.Logger(ctx).WithError(err).Error("Failed to build default configuration")
		return models.AppConfig{}
	}
	return *conf
}
