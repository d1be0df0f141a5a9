package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/barcamp-grid/internal/adapters/credentials"
	tomllog "github.com/bnema/barcamp-grid/internal/adapters/eventlog/toml"
	"github.com/bnema/barcamp-grid/internal/adapters/matrix"
	gridrender "github.com/bnema/barcamp-grid/internal/adapters/render/grid"
	"github.com/bnema/barcamp-grid/internal/application"
	"github.com/bnema/barcamp-grid/internal/domain"
	"github.com/bnema/barcamp-grid/internal/logger"
	"github.com/bnema/barcamp-grid/internal/ports"
	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

const (
	configDir  = ".config/barcamp"
	configName = "config"
	configType = "toml"
	envPrefix  = "BCG"

	keyBackend      = "backend"
	keyHomeserver   = "matrix.homeserver"
	keyUserID       = "matrix.user_id"
	keyRoomID       = "matrix.room_id"
	keySpaceID      = "matrix.space_id"
	keySecretsStore = "secrets.store"
	keyLogDebug     = "log.debug"
	keyLogPath      = "log.path"
	keyShowIDs      = "output.ids"

	backendMatrix = "matrix"
	backendLocal  = "local"

	secretsAuto = "auto"
	secretsFile = "file"

	defaultLocalRoomID = "!barcamp:localhost"
)

type app struct {
	cfg        *viper.Viper
	homeDir    string
	httpClient *http.Client
	clock      ports.Clock
	renderGrid func(domain.GridEvent, gridrender.RenderOptions) (string, error)

	svc     *services
	closers []func() error
}

// services are opened on first use so that flags are applied and commands
// like version never touch the backend.
type services struct {
	logger      *log.Logger
	channel     ports.EventChannel
	locator     *application.Locator
	store       *application.GridStore
	grid        *application.GridService
	topics      *application.TopicService
	submissions *application.SubmissionService
	rooms       *application.LinkedRoomService
}

func wireApp() (*app, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg := viper.New()
	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, configDir))
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	cfg.SetDefault(keyBackend, backendLocal)
	cfg.SetDefault(keySecretsStore, secretsAuto)
	cfg.SetDefault(keyLogPath, filepath.Join(homeDir, configDir, "logs", "bcg.log"))

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return &app{
		cfg:        cfg,
		homeDir:    homeDir,
		httpClient: &http.Client{Timeout: 2 * time.Minute},
		clock:      ports.SystemClock{},
		renderGrid: gridrender.Render,
	}, nil
}

func (a *app) services(ctx context.Context, stderr io.Writer) (*services, error) {
	if a.svc != nil {
		return a.svc, nil
	}

	logger, err := a.openLogger(stderr)
	if err != nil {
		return nil, err
	}

	channel, roomID, err := a.openChannel(ctx, logger)
	if err != nil {
		return nil, err
	}

	locator := application.NewLocator(channel, roomID, a.cfg.GetString(keySpaceID))
	store := application.NewGridStore(channel, locator, logger)
	topics := application.NewTopicService(channel, locator)
	submissions := application.NewSubmissionService(store, channel, locator, logger)

	a.svc = &services{
		logger:      logger,
		channel:     channel,
		locator:     locator,
		store:       store,
		grid:        application.NewGridService(store, topics, submissions, a.clock, application.WithGridLogger(logger)),
		topics:      topics,
		submissions: submissions,
		rooms:       application.NewLinkedRoomService(store, logger),
	}
	return a.svc, nil
}

func (a *app) openLogger(stderr io.Writer) (*log.Logger, error) {
	appLogger, closeLog, err := logger.New(logger.Config{
		Debug:  a.cfg.GetBool(keyLogDebug),
		Path:   a.cfg.GetString(keyLogPath),
		Stderr: stderr,
	})
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}
	a.closers = append(a.closers, closeLog)
	return appLogger, nil
}

func (a *app) openChannel(ctx context.Context, logger *log.Logger) (ports.EventChannel, string, error) {
	switch backend := a.cfg.GetString(keyBackend); backend {
	case backendLocal:
		opts := []tomllog.Option{tomllog.WithClock(a.clock)}
		if userID := a.cfg.GetString(keyUserID); userID != "" {
			opts = append(opts, tomllog.WithSender(userID))
		}
		eventLog, err := tomllog.NewLog(a.cfg, opts...)
		if err != nil {
			return nil, "", fmt.Errorf("wire local event log: %w", err)
		}

		roomID := a.cfg.GetString(keyRoomID)
		if roomID == "" {
			roomID = defaultLocalRoomID
		}
		logger.Debug("using local event log", "path", eventLog.Path(), "room_id", roomID)
		return eventLog, roomID, nil

	case backendMatrix:
		homeserver, userID, err := a.matrixIdentity()
		if err != nil {
			return nil, "", err
		}
		roomID := a.cfg.GetString(keyRoomID)
		if roomID == "" {
			return nil, "", fmt.Errorf("%s is required for the matrix backend", keyRoomID)
		}

		client, err := a.matrixClient(homeserver, logger)
		if err != nil {
			return nil, "", err
		}

		vault, err := a.vault()
		if err != nil {
			return nil, "", err
		}
		creds, err := vault.Load(ctx, homeserver, userID)
		if err != nil {
			if errors.Is(err, credentials.ErrNotLoggedIn) {
				return nil, "", fmt.Errorf("%w (run bcg login)", err)
			}
			return nil, "", err
		}

		return client.Session(creds.UserID, creds.AccessToken), roomID, nil

	default:
		return nil, "", fmt.Errorf("unknown backend %q (want %s or %s)", backend, backendMatrix, backendLocal)
	}
}

func (a *app) matrixIdentity() (string, string, error) {
	homeserver := a.cfg.GetString(keyHomeserver)
	if homeserver == "" {
		return "", "", fmt.Errorf("%s is required for the matrix backend", keyHomeserver)
	}
	userID := a.cfg.GetString(keyUserID)
	if userID == "" {
		return "", "", fmt.Errorf("%s is required for the matrix backend", keyUserID)
	}
	return homeserver, userID, nil
}

func (a *app) matrixClient(homeserver string, logger *log.Logger) (*matrix.Client, error) {
	client, err := matrix.NewClient(matrix.ClientConfig{
		HomeserverURL: homeserver,
		HTTPClient:    a.httpClient,
		Logger:        logger,
	})
	if err != nil {
		return nil, err
	}

	a.closers = append(a.closers, func() error {
		client.CloseIdleConnections()
		return nil
	})
	return client, nil
}

func (a *app) vault() (*credentials.Vault, error) {
	root := filepath.Join(a.homeDir, configDir, "secrets")

	switch mode := a.cfg.GetString(keySecretsStore); mode {
	case secretsFile:
		return credentials.NewVault(credentials.NewFileStore(root)), nil
	case secretsAuto, "":
		store, err := credentials.NewDefaultStore(root)
		if err != nil {
			return nil, fmt.Errorf("wire secret store chain: %w", err)
		}
		return credentials.NewVault(store), nil
	default:
		return nil, fmt.Errorf("unknown secrets store %q (want %s or %s)", mode, secretsAuto, secretsFile)
	}
}

func (a *app) close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}
