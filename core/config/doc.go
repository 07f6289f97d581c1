// Package config loads the application configuration.
//
// Configuration comes from environment variables and an optional .env
// file. The Config struct composes the partial configurations of the
// other packages; struct tags declare the key names and default values,
// which are registered with Viper through reflection so every key is
// overridable via the environment (e.g. MAILBOX_SERVER, ARCHIVE_PATH,
// REPORT_OUTPUT_DIR).
package config
