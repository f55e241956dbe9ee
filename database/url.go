package database

import (
	"net/url"
	"strings"
)

// ConstructDatabaseURL points a base postgres connection URL at the given
// database, defaulting sslmode=disable when the URL does not specify one.
// An empty database name leaves the URL untouched so a fully formed
// DATABASE_URL can be used on its own.
func ConstructDatabaseURL(baseURL, databaseName string) string {
	if databaseName == "" {
		return baseURL
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		// Let the driver reject the malformed URL with its own error
		return baseURL
	}

	u.Path = "/" + strings.Trim(databaseName, "/")

	query := u.Query()
	if query.Get("sslmode") == "" {
		query.Set("sslmode", "disable")
		u.RawQuery = query.Encode()
	}

	return u.String()
}
