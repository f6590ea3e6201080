package models

import (
	"strings"
	"time"
)

type Client struct {
	ClientID    string `gorm:"primaryKey"                    yaml:"client_id"`
	ClientName  string `gorm:"not null"                      yaml:"name"`
	Description string `gorm:"type:text"                     yaml:"description"`
	Scopes      string `gorm:"not null"                      yaml:"scopes"` // space-separated scopes
	IsActive    bool   `gorm:"not null"                      yaml:"active"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides the table name used by Client to `oauth_client`
func (Client) TableName() string {
	return "oauth_client"
}

// AllowedScopes returns the client's configured scopes as a slice.
func (c *Client) AllowedScopes() []string {
	return strings.Fields(c.Scopes)
}
