package logger

// Exported for white-box testing.
var (
	CollectErrorEntriesExported = collectErrorEntries
	FormatErrorEntriesExported  = formatErrorEntries
	FromEnvExported             = fromEnv
)
