package databricks

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"
)

// ErrNoCredentials is returned when neither the environment nor the
// configuration file provides a host and token. Without credentials no remote
// file can be processed, so callers should treat it as fatal for the run.
var ErrNoCredentials = errors.New("missing Databricks credentials")

// Profile holds the connection settings of one Databricks workspace, as
// configured by the Databricks CLI.
type Profile struct {
	Name     string
	Host     string
	Token    string
	Username string
}

// LoadProfile reads the named profile from ~/.databrickscfg. The
// DATABRICKS_HOST and DATABRICKS_TOKEN environment variables take precedence
// over the file.
func LoadProfile(name string) (Profile, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Profile{}, err
	}
	return LoadProfileFromFile(filepath.Join(home, ".databrickscfg"), name)
}

// LoadProfileFromFile is LoadProfile reading an explicit configuration file.
func LoadProfileFromFile(path string, name string) (Profile, error) {
	profile := Profile{
		Name:     name,
		Host:     os.Getenv("DATABRICKS_HOST"),
		Token:    os.Getenv("DATABRICKS_TOKEN"),
		Username: os.Getenv("DATABRICKS_USERNAME"),
	}
	if profile.Host != "" && profile.Token != "" {
		return profile, nil
	}

	cfg, err := ini.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Profile{}, fmt.Errorf("%w: %s does not exist (run `databricks configure`)", ErrNoCredentials, path)
		}
		return Profile{}, fmt.Errorf("reading %s: %w", path, err)
	}

	section := cfg.Section(name)
	if profile.Host == "" {
		profile.Host = section.Key("host").String()
	}
	if profile.Token == "" {
		profile.Token = section.Key("token").String()
	}
	if profile.Username == "" {
		profile.Username = section.Key("username").String()
	}

	if profile.Host == "" || profile.Token == "" {
		return Profile{}, fmt.Errorf("%w: profile %q defines no host or token", ErrNoCredentials, name)
	}
	return profile, nil
}
