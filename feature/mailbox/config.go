package mailbox

import "fmt"

// Config holds configuration for the live IMAP mailbox.
type Config struct {
	// Name is the display name used in reports.
	Name string `mapstructure:"name" default:"Mailbox"`
	// Server is the IMAP server hostname.
	Server string `mapstructure:"server" default:"localhost"`
	// Port is the IMAP server port.
	Port int `mapstructure:"port" default:"993"`
	// Username authenticates the IMAP session.
	Username string `mapstructure:"username" default:""`
	// Password authenticates the IMAP session.
	Password string `mapstructure:"password" default:""`
	// UseTLS dials an implicit-TLS connection when true.
	UseTLS bool `mapstructure:"use_tls" default:"true"`
}

// Addr returns the dial address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server, c.Port)
}
