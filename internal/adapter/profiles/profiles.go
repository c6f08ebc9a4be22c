package profiles

import (
	"fmt"
	"net/url"

	"github.com/lodestone-labs/relnav/internal/core/domain"
)

// Profile is one saved connection. Either URL is given verbatim, or it is
// assembled from the host/port/database fields with credentials
// percent-encoded.
type Profile struct {
	Name     string   `yaml:"name"`
	Dialect  string   `yaml:"dialect"` // postgres (default), mysql, sqlite, sqlserver
	URL      string   `yaml:"url,omitempty"`
	Host     string   `yaml:"host,omitempty"`
	Port     int      `yaml:"port,omitempty"`
	Database string   `yaml:"database,omitempty"`
	Username string   `yaml:"username,omitempty"`
	Password string   `yaml:"password,omitempty"`
	Schemas  []string `yaml:"schemas,omitempty"`
}

// ConnString renders the profile as a DSN for its dialect.
func (p Profile) ConnString() string {
	if p.URL != "" {
		return p.URL
	}

	user := url.QueryEscape(p.Username)
	pass := url.QueryEscape(p.Password)
	dialect, _ := domain.ParseDialect(p.Dialect)

	switch dialect {
	case domain.DialectMySQL:
		return fmt.Sprintf("mysql://%s:%s@%s:%d/%s", user, pass, p.Host, p.Port, p.Database)
	case domain.DialectSQLite:
		// The database field holds the file path; rwc creates it if missing.
		return fmt.Sprintf("sqlite:%s?mode=rwc", p.Database)
	case domain.DialectSQLServer:
		return fmt.Sprintf("server=tcp:%s,%d;database=%s;user=%s;password=%s;TrustServerCertificate=true",
			p.Host, p.Port, p.Database, p.Username, p.Password)
	default:
		return fmt.Sprintf("postgres://%s:%s@%s:%d/%s", user, pass, p.Host, p.Port, p.Database)
	}
}

// Registry holds loaded profiles keyed by name, preserving file order for
// listing.
type Registry struct {
	byName map[string]Profile
	names  []string
}

func newRegistry(list []Profile) *Registry {
	r := &Registry{byName: make(map[string]Profile, len(list))}
	for _, p := range list {
		r.byName[p.Name] = p
		r.names = append(r.names, p.Name)
	}
	return r
}

func (r *Registry) Get(name string) (Profile, bool) {
	p, ok := r.byName[name]
	return p, ok
}

func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

func (r *Registry) Len() int {
	return len(r.names)
}
