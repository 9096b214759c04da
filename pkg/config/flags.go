package config

import (
	"github.com/namsral/flag"
)

const (
	EnvTypeProduction  = "production"
	EnvTypeStaging     = "staging"
	EnvTypeDevelopment = "development"
)

type Flags struct {
	WorkDir       string
	BugsnagAPIKey string
	Environment   string
	DbConnString  string
	APIHost       string
	AuthToken     string
	WorkspaceID   string
	UserID        string
	UserRole      string
	SchemaFile    string
	RefreshSec    int
	ShowVersion   bool
	Debug         bool
}

func ParseFlags(flags *Flags, args []string) {
	if len(args) == 0 {
		panic("Wrong usage, there should be at least 1 argument in args parameter")
	}

	fs := flag.NewFlagSetWithEnvPrefix(args[0], "TRACKBOARD", flag.ExitOnError)

	fs.BoolVar(&flags.Debug, "debug", false, "Show debug application logs")
	fs.BoolVar(&flags.ShowVersion, "version", false, "Show application version")
	fs.StringVar(&flags.WorkDir, "workdir", ".", "Workdir of the application")
	fs.StringVar(&flags.BugsnagAPIKey, "bugsnag_key", "", "Bugsnag API Key")
	fs.StringVar(&flags.Environment, "environment", EnvTypeDevelopment, "Current environment")
	fs.StringVar(&flags.DbConnString, "db_conn_string", "", "DB Connection String, empty for in-memory storage")
	fs.StringVar(&flags.APIHost, "api_host", "http://localhost:8000/api", "Backend REST API host")
	fs.StringVar(&flags.AuthToken, "auth_token", "", "Backend auth token")
	fs.StringVar(&flags.WorkspaceID, "workspace_id", "1", "Backend workspace id")
	fs.StringVar(&flags.UserID, "user_id", "", "Id of the authenticated user")
	fs.StringVar(&flags.UserRole, "user_role", "", "Role of the authenticated user")
	fs.StringVar(&flags.SchemaFile, "schema_file", "", "Custom field schema seed file (YAML)")
	fs.IntVar(&flags.RefreshSec, "refresh_interval", 60, "Task refresh interval in seconds")

	fs.Parse(args[1:])
}
