// Package utils exposes the ambient helpers shared by the CLI and services.
//
// It houses ConfigurationLoader and LoggerFactory, which integrate Viper,
// environment variables, and zap logging, plus SubprocessStreams for mirroring
// subprocess output to the terminal.
package utils
