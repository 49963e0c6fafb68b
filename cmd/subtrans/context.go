package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"subtrans/internal/config"
	"subtrans/internal/logging"
	"subtrans/internal/metrics"
	"subtrans/internal/pipeline"
	"subtrans/internal/translation"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		if err := loadDotEnv(".env"); err != nil {
			c.configErr = err
			return
		}
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil {
			if level := strings.TrimSpace(*c.logLevelFlag); level != "" {
				cfg.Logging.Level = level
			}
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

// loadDotEnv exports variables from path without overriding ones already set.
// A missing file is ignored.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// session bundles what a translating command needs for one invocation.
type session struct {
	cfg     *config.Config
	logger  *slog.Logger
	closer  io.Closer
	metrics *metrics.Metrics
	runner  *pipeline.Runner
}

func (c *commandContext) openSession(name string) (*session, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, closer, err := logging.NewFromConfig(cfg, fmt.Sprintf("%s-%s", name, time.Now().Format("20060102-150405")))
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	m := metrics.New()
	factory := func(lang string) (translation.Backend, error) {
		return translation.NewFromConfig(cfg, lang,
			translation.WithLogger(logger),
			translation.WithMetrics(m),
		)
	}
	runner := pipeline.NewRunner(factory,
		pipeline.WithLogger(logger),
		pipeline.WithMetrics(m),
		pipeline.WithSourceLanguage(cfg.Translation.SourceLanguage),
	)
	return &session{cfg: cfg, logger: logger, closer: closer, metrics: m, runner: runner}, nil
}

// close flushes metrics to the textfile target and releases log files.
func (s *session) close() {
	if err := s.metrics.WriteTextfile(s.cfg.Paths.MetricsFile); err != nil {
		s.logger.Warn("write metrics textfile failed", logging.Error(err))
	}
	if s.closer != nil {
		_ = s.closer.Close()
	}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
