package database

import (
	"regexp"
	"strings"
)

// emulatorHost is the address Android emulators use to reach the host
// machine's loopback interface.
const emulatorHost = "10.0.2.2"

// RewriteForEmulator rewrites loopback hosts in dsn so a database running on
// the development machine is reachable from inside an Android emulator.
// DSNs that already point at a remote host are returned unchanged.
func RewriteForEmulator(dsn string) string {
	dsn = strings.ReplaceAll(dsn, "localhost", emulatorHost)
	dsn = strings.ReplaceAll(dsn, "127.0.0.1", emulatorHost)
	return dsn
}

var mysqlDBNameRE = regexp.MustCompile(`(\))/([^?/]+)`)

// ServerDSN strips the database name out of dsn so the manager can connect
// at server level and issue CREATE DATABASE before the schema exists. Only
// mysql and postgres need this; other drivers return dsn unchanged.
func ServerDSN(driver, dsn string) string {
	switch driver {
	case "mysql":
		// user:pass@tcp(host:port)/dbname?params -> user:pass@tcp(host:port)/?params
		return mysqlDBNameRE.ReplaceAllString(dsn, "$1/")
	case "postgres":
		// Swap dbname for the maintenance database; CREATE DATABASE cannot
		// run against a database that does not exist yet.
		if strings.Contains(dsn, "dbname=") {
			re := regexp.MustCompile(`dbname=\S+`)
			return re.ReplaceAllString(dsn, "dbname=postgres")
		}
		return dsn + " dbname=postgres"
	default:
		return dsn
	}
}
