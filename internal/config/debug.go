package config

import "os"

func IsDebug() bool {
	return os.Getenv("FOLIO_DEBUG") == "1"
}

// LogFormat is read before the rest of the config so startup errors are
// logged in the right format.
func LogFormat() string {
	return os.Getenv("FOLIO_LOG_FORMAT")
}
