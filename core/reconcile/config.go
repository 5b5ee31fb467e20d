package reconcile

import "time"

// Config holds the `teach` configuration section.
type Config struct {
	// Source is the input snapshot: a local path or s3://bucket/key.
	Source string `mapstructure:"source" default:"data/teach.json"`
	// Workers bounds concurrent upserts.
	Workers int `mapstructure:"workers" default:"16"`
	// TimeoutSeconds bounds the batch submission; 0 disables the timeout.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"0"`
	// Dedupe keeps only the last record per question before submission.
	Dedupe bool `mapstructure:"dedupe" default:"false"`
}

// Options converts the configuration into run options.
func (c Config) Options() Options {
	return Options{
		Workers: c.Workers,
		Timeout: time.Duration(c.TimeoutSeconds) * time.Second,
		Dedupe:  c.Dedupe,
	}
}
