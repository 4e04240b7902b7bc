package internal

import (
	"context"
	"encoding/json"
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/derWhity/fyyur/internal/ctxhelper"
	"github.com/derWhity/fyyur/internal/log"
	"github.com/derWhity/fyyur/internal/models"
)

// Environment variables overriding the values of the configuration file
const (
	EnvDataDir       = "FYYUR_DATA_DIR"
	EnvDBFile        = "FYYUR_DB_FILE"
	EnvListenAddress = "FYYUR_LISTEN_ADDRESS"
	EnvLogLevel      = "FYYUR_LOG_LEVEL"
	EnvStaticDir     = "FYYUR_STATIC_DIR"
)

// ConfigService gives access to the application's configuration
type ConfigService interface {
	// Load loads the application config from its default file location. A missing file is created with the
	// default values
	Load(ctx context.Context) error
	// LoadFromFile loads the configuration from the given JSON file and returns it
	LoadFromFile(ctx context.Context, filename string) error
	// ApplyEnvironment overrides the loaded values with the FYYUR_* environment variables. Variables are read from
	// envFile first, if given, or from a .env file inside the working directory if there is one
	ApplyEnvironment(ctx context.Context, envFile string) error
	// Write writes the current application configuration to the default file name
	Write(ctx context.Context) error
	// WriteToFile writes the current application configuration to a JSON file
	WriteToFile(ctx context.Context, filename string) error
	// GetConfig retuns the current application configuration
	GetConfig(ctx context.Context) models.AppConfig
}

// -- ConfigService implementation -------------------------------------------------------------------------------------

type configService struct {
	configFilename string
	config         *models.AppConfig
}

// NewConfigService creates a new configuration service instance with the given default file name
func NewConfigService(configFilename string) ConfigService {
	return &configService{
		configFilename: configFilename,
	}
}

// Load loads the application config from its default file location
func (s *configService) Load(ctx context.Context) error {
	_, err := os.Stat(s.configFilename)
	if os.IsNotExist(err) {
		ctxhelper.Logger(ctx).WithField(log.FldFile, s.configFilename).Warn(
			"Configuration file does not exist - creating it with default values",
		)
		return s.Write(ctx)
	}
	return s.LoadFromFile(ctx, s.configFilename)
}

// LoadFromFile loads the configuration from the given JSON file and returns it
func (s *configService) LoadFromFile(ctx context.Context, filename string) error {
	logger := ctxhelper.Logger(ctx)
	logger.WithField(log.FldFile, filename).Info("Loading configuration file")
	conf, err := models.GetDefaultConfig()
	if err != nil {
		return errors.Wrap(err, "LoadFromFile: Failed to create default config")
	}
	f, err := os.Open(filename)
	if err != nil {
		return errors.Wrap(err, "LoadFromFile: cannot load configuration file")
	}
	defer f.Close()
	if err = json.NewDecoder(f).Decode(&conf); err != nil {
		return errors.Wrap(err, "LoadFromFile: Failed to decode configuration file")
	}
	s.config = conf
	return nil
}

// ApplyEnvironment overrides the loaded values with the FYYUR_* environment variables
func (s *configService) ApplyEnvironment(ctx context.Context, envFile string) error {
	logger := ctxhelper.Logger(ctx)
	if envFile != "" {
		logger.WithField(log.FldFile, envFile).Info("Loading environment file")
		if err := godotenv.Load(envFile); err != nil {
			return errors.Wrapf(err, "ApplyEnvironment: Failed to load environment file '%s'", envFile)
		}
	} else if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "ApplyEnvironment: Failed to load .env file")
	}
	conf := s.GetConfig(ctx)
	for name, target := range map[string]*string{
		EnvDataDir:       &conf.DataDir,
		EnvDBFile:        &conf.DBFile,
		EnvListenAddress: &conf.ListenAddress,
		EnvLogLevel:      &conf.LogLevel,
		EnvStaticDir:     &conf.StaticDir,
	} {
		if val, ok := os.LookupEnv(name); ok && val != "" {
			logger.WithField(log.FldEnv, name).Debug("Configuration value overridden by environment")
			*target = val
		}
	}
	s.config = &conf
	return nil
}

// Write writes the current application configuration to the default file name
func (s *configService) Write(ctx context.Context) error {
	return s.WriteToFile(ctx, s.configFilename)
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
	var ret models.AppConfig
	if s.config != nil {
		ret = *s.config
	} else {
		if tmp, err := models.GetDefaultConfig(); err == nil {
			ret = *tmp
		}
	}
	return ret
}
