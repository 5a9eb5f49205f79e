package config

const (
	defaultConfigPath = "~/.config/organizer/organizer.toml"
	projectConfigName = "organizer.toml"
	defaultAuditLog   = "organizer.log"
	defaultHistoryDB  = "~/.local/share/organizer/history.db"
	defaultLogFormat  = "console"
	defaultLogLevel   = "info"
	defaultProgress   = true
	defaultHistory    = true
	logLevelEnvVar    = "ORGANIZER_LOG_LEVEL"
	auditLogEnvVar    = "ORGANIZER_AUDIT_LOG"
)

// Default returns a Config populated with repository defaults. The audit log
// path stays empty until normalize places it next to the program.
func Default() Config {
	return Config{
		Paths: Paths{
			HistoryDB: defaultHistoryDB,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Organizer: Organizer{
			Progress: defaultProgress,
			History:  defaultHistory,
		},
	}
}
