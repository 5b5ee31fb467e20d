package logger

// Config holds configuration for the logger.
type Config struct {
	// Level is the minimum enabled level (debug, info, warn, error).
	Level string `mapstructure:"level" default:"info"`
	// Format is the encoding: json or console.
	Format string `mapstructure:"format" default:"console"`
	// Output is where entries are written: stderr, stdout or a file path.
	// Commands print their reports on stdout, so logs default to stderr.
	Output string `mapstructure:"output" default:"stderr"`
}
