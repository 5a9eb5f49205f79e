package main

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"organizer/internal/config"
	"organizer/internal/logging"
	"organizer/internal/rules"
)

type commandContext struct {
	configFlag *string
	rulesFlag  *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configSeen bool
	configErr  error
}

func newCommandContext(configFlag, rulesFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		rulesFlag:  rulesFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configSeen = exists
	})
	return c.config, c.configErr
}

// rulesOverride returns the explicit rules path: the flag wins over settings.
func (c *commandContext) rulesOverride() string {
	if c.rulesFlag != nil {
		if flag := strings.TrimSpace(*c.rulesFlag); flag != "" {
			if expanded, err := config.ExpandPath(flag); err == nil {
				return expanded
			}
			return flag
		}
	}
	if c.config != nil {
		return c.config.Paths.RulesFile
	}
	return ""
}

func (c *commandContext) loadRules() (*rules.Rules, error) {
	return rules.Discover(c.rulesOverride(), config.ProgramDir(), workingDir())
}

func (c *commandContext) newLogger(w io.Writer) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.NewFromConfig(cfg, w)
}

func workingDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
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
