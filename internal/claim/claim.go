// Package claim models the certsuite claim record and loads it from disk.
package claim

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

var (
	// ErrInputNotFound means the claim file does not exist at the given path.
	ErrInputNotFound = errors.New("claim file not found")
	// ErrMissingResults means the claim has no results section to report on.
	ErrMissingResults = errors.New("no test results found in claim data")
)

// Record is the root of a claim.json document.
type Record struct {
	Claim Body `json:"claim"`
}

// Body holds the sections of the claim the report consumes. Results entries
// stay raw so one malformed test never fails the whole document decode.
type Body struct {
	Results  map[string]json.RawMessage `json:"results"`
	Versions Versions                   `json:"versions"`
}

// Versions lists the component versions recorded by the cert suite run.
type Versions struct {
	K8s                string `json:"k8s"`
	OcClient           string `json:"ocClient"`
	Ocp                string `json:"ocp"`
	CertSuite          string `json:"certSuite"`
	ClaimFormat        string `json:"claimFormat"`
	CertSuiteGitCommit string `json:"certSuiteGitCommit"`
}

// TestOutcome is one certification test's result inside claim.results.
type TestOutcome struct {
	TestID                 TestID            `json:"testID"`
	CatalogInfo            CatalogInfo       `json:"catalogInfo"`
	State                  string            `json:"state"`
	CategoryClassification map[string]string `json:"categoryClassification"`
	CapturedTestOutput     string            `json:"capturedTestOutput"`
}

type TestID struct {
	ID string `json:"id"`
}

type CatalogInfo struct {
	Description           string `json:"description"`
	ExceptionProcess      string `json:"exceptionProcess"`
	Remediation           string `json:"remediation"`
	BestPracticeReference string `json:"bestPracticeReference"`
}

// Load reads and decodes a claim.json file. It fails with ErrInputNotFound
// when the file is absent and ErrMissingResults when the claim carries no
// results section.
func Load(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("read claim: %w", err)
	}
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}
	if len(r.Claim.Results) == 0 {
		return nil, ErrMissingResults
	}
	return &r, nil
}
