package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.AuditLog == "" {
		if value, ok := os.LookupEnv(auditLogEnvVar); ok {
			c.Paths.AuditLog = strings.TrimSpace(value)
		}
	}
	if strings.TrimSpace(c.Paths.AuditLog) == "" {
		c.Paths.AuditLog = filepath.Join(ProgramDir(), defaultAuditLog)
	}
	if c.Paths.AuditLog, err = expandPath(strings.TrimSpace(c.Paths.AuditLog)); err != nil {
		return fmt.Errorf("paths.audit_log: %w", err)
	}
	if strings.TrimSpace(c.Paths.HistoryDB) == "" {
		c.Paths.HistoryDB = defaultHistoryDB
	}
	if c.Paths.HistoryDB, err = expandPath(strings.TrimSpace(c.Paths.HistoryDB)); err != nil {
		return fmt.Errorf("paths.history_db: %w", err)
	}
	if c.Paths.RulesFile, err = expandPath(strings.TrimSpace(c.Paths.RulesFile)); err != nil {
		return fmt.Errorf("paths.rules_file: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	if value, ok := os.LookupEnv(logLevelEnvVar); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
}
