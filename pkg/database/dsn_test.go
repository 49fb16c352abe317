package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewriteForEmulator(t *testing.T) {
	assert.Equal(t,
		"root:root@tcp(10.0.2.2:3306)/apache_db?parseTime=True",
		RewriteForEmulator("root:root@tcp(localhost:3306)/apache_db?parseTime=True"))

	assert.Equal(t,
		"host=10.0.2.2 user=postgres dbname=apache_db",
		RewriteForEmulator("host=127.0.0.1 user=postgres dbname=apache_db"))

	// Remote hosts are untouched.
	assert.Equal(t,
		"root:root@tcp(db.internal:3306)/apache_db",
		RewriteForEmulator("root:root@tcp(db.internal:3306)/apache_db"))
}

func TestServerDSNStripsDatabase(t *testing.T) {
	assert.Equal(t,
		"root:root@tcp(localhost:3306)/?charset=utf8mb4",
		ServerDSN("mysql", "root:root@tcp(localhost:3306)/apache_db?charset=utf8mb4"))

	assert.Equal(t,
		"host=localhost user=postgres dbname=postgres port=5432",
		ServerDSN("postgres", "host=localhost user=postgres dbname=apache_db port=5432"))

	// sqlite has no server level.
	assert.Equal(t, "apache_db.sqlite", ServerDSN("sqlite", "apache_db.sqlite"))
}
