package dci

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const dcictlBin = "dcictl"

// Fetcher retrieves the claim artifact for a job to a local path.
type Fetcher interface {
	Fetch(ctx context.Context, jobID, destPath string) error
}

// CommandFetcher shells out to dcictl. No retries and no timeout of its own;
// cancellation comes from the caller's context.
type CommandFetcher struct {
	Config Config
	Log    *zap.Logger
}

// Fetch lists the job's files, picks the claim.json artifacts and downloads
// them to destPath.
func (f *CommandFetcher) Fetch(ctx context.Context, jobID, destPath string) error {
	if _, err := exec.LookPath(dcictlBin); err != nil {
		return errors.Wrapf(err, "%s is not installed", dcictlBin)
	}

	out, err := f.run(ctx, "file-list", jobID, "--limit", "200")
	if err != nil {
		return err
	}
	ids := claimFileIDs(out)
	if len(ids) == 0 {
		return errors.Errorf("no claim.json files found in job %s", jobID)
	}
	f.Log.Info("found claim.json artifacts",
		zap.String("job", jobID), zap.Strings("fileIds", ids))

	if _, err := f.run(ctx, "job-download-file", jobID,
		"--file-id", strings.Join(ids, ","), "--target", destPath); err != nil {
		return err
	}
	f.Log.Info("downloaded claim.json", zap.String("target", destPath))
	return nil
}

func (f *CommandFetcher) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, dcictlBin, args...)
	cmd.Env = f.Config.Environ()
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", errors.Wrapf(err, "dcictl %s: %s",
			args[0], strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// claimFileIDs extracts file ids from dcictl file-list output. A claim line
// carries both the artifact name and its text/plain mime type; the id is the
// second column.
func claimFileIDs(out string) []string {
	var ids []string
	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(line, "claim.json") || !strings.Contains(line, "text/plain") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) > 1 {
			ids = append(ids, fields[1])
		}
	}
	return ids
}
