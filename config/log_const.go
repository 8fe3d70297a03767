package config

const (
	LogErrorColor = "\033[31m"
	LogWarnColor  = "\033[33m"
	LogInfoColor  = "\033[32m"
	LogColorReset = "\033[0m"
)

// Color constants for logger prefixes
const (
	ColorGreen   = "\033[32m"
	ColorBlue    = "\033[34m"
	ColorMagenta = "\033[35m"
	ColorCyan    = "\033[36m"
	ColorReset   = "\033[0m"
)
