// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Jason Giese (Bl4cky99)

package config

type Config struct {
	Server  ServerConfig `yaml:"server" json:"server"`
	Auth    AuthConfig   `yaml:"auth" json:"auth"`
	Unknown string       `yaml:"unknown,omitempty" json:"unknown,omitempty"`
	Schemas []SchemaDef  `yaml:"schemas" json:"schemas" validate:"required,min=1,dive"`
}

type ServerConfig struct {
	Addr           string            `yaml:"addr" json:"addr"`
	BasePath       string            `yaml:"basePath" json:"basePath"`
	DefaultHeaders map[string]string `yaml:"defaultHeaders" json:"defaultHeaders"`
	MaxBodyBytes   int64             `yaml:"maxBodyBytes" json:"maxBodyBytes" validate:"gte=0"`
	RateLimitRPS   float64           `yaml:"rateLimitRps" json:"rateLimitRps" validate:"gte=0"`
	Metrics        bool              `yaml:"metrics" json:"metrics"`
}

type AuthConfig struct {
	// "none" | "token" | "basic"
	Type  string           `yaml:"type"  json:"type"`
	Token *TokenAuthConfig `yaml:"token,omitempty" json:"token,omitempty"`
	Basic *BasicAuthConfig `yaml:"basic,omitempty" json:"basic,omitempty"`
}

type TokenAuthConfig struct {
	Header string   `yaml:"header" json:"header"`
	Prefix string   `yaml:"prefix" json:"prefix"`
	Tokens []string `yaml:"tokens" json:"tokens"`
}

type BasicAuthConfig struct {
	Users []BasicUser `yaml:"users" json:"users"`
}
type BasicUser struct {
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
}

// SchemaDef declares one named schema.
type SchemaDef struct {
	Name    string     `yaml:"name"    json:"name" validate:"required"`
	Unknown string     `yaml:"unknown,omitempty" json:"unknown,omitempty"`
	Fields  []FieldDef `yaml:"fields"  json:"fields" validate:"required,min=1,dive"`
}

type FieldDef struct {
	Name     string   `yaml:"name"     json:"name" validate:"required"`
	Type     string   `yaml:"type"     json:"type" validate:"required"`
	Required bool     `yaml:"required,omitempty" json:"required,omitempty"`
	Nullable bool     `yaml:"nullable,omitempty" json:"nullable,omitempty"`
	Schemes  []string `yaml:"schemes,omitempty"  json:"schemes,omitempty" validate:"omitempty,dive,required"`
}
