// Package dci retrieves claim artifacts from the DCI control server through
// the external dcictl client.
package dci

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// DefaultRCPath is the conventional credentials file next to the working dir.
const DefaultRCPath = "dcirc.sh"

const (
	envClientID  = "DCI_CLIENT_ID"
	envAPISecret = "DCI_API_SECRET"
	envCSURL     = "DCI_CS_URL"
)

// Config carries the credentials dcictl needs to reach the control server.
type Config struct {
	ClientID  string
	APISecret string
	CSURL     string
}

// ResolveConfig resolves DCI credentials with explicit precedence: process
// environment first, then the dcirc.sh file at rcPath for any missing key.
// A key absent from both is an error naming the variable.
func ResolveConfig(rcPath string) (Config, error) {
	required := []string{envClientID, envAPISecret, envCSURL}

	vals := map[string]string{}
	var missing []string
	for _, key := range required {
		if v := os.Getenv(key); v != "" {
			vals[key] = v
		} else {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		fromFile, err := godotenv.Read(rcPath)
		if err != nil {
			return Config{}, errors.Wrapf(err, "reading DCI credentials file %s", rcPath)
		}
		for _, key := range missing {
			v, ok := fromFile[key]
			if !ok || v == "" {
				return Config{}, errors.Errorf(
					"required DCI variable %s not set in environment or %s", key, rcPath)
			}
			vals[key] = v
		}
	}

	return Config{
		ClientID:  vals[envClientID],
		APISecret: vals[envAPISecret],
		CSURL:     vals[envCSURL],
	}, nil
}

// Environ returns the current process environment extended with the DCI
// credentials, suitable for a dcictl child process.
func (c Config) Environ() []string {
	return append(os.Environ(),
		envClientID+"="+c.ClientID,
		envAPISecret+"="+c.APISecret,
		envCSURL+"="+c.CSURL,
	)
}
