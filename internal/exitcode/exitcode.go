// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown task, empty title).
	UserError = 1

	// ConfigError indicates unusable configuration (bad base URL, bad config.yaml).
	ConfigError = 2

	// BackendError indicates the task service could not be reached or refused a request.
	BackendError = 3
)
