// Package utils exposes the ambient helpers shared by manifest-lock commands.
//
// ConfigurationLoader layers embedded defaults, configuration files, dotenv
// files, and environment variables through Viper. LoggerFactory builds zap
// loggers that keep standard output free for manifests. CommandContextAccessor
// carries ExecutionMetadata on command contexts.
package utils
