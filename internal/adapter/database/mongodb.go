package database

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/semmidev/argos/internal/config"
)

type MongoDBDatabase struct {
	source  *config.SourceConfig
	replica *config.ReplicaConfig
}

func NewMongoDB(source *config.SourceConfig, replica *config.ReplicaConfig) *MongoDBDatabase {
	return &MongoDBDatabase{source: source, replica: replica}
}

// Dump writes a single gzip-compressed archive of the source database.
func (m *MongoDBDatabase) Dump(ctx context.Context, archivePath string) error {
	args := []string{
		fmt.Sprintf("--uri=%s", m.source.URI),
		fmt.Sprintf("--archive=%s", archivePath),
		"--gzip",
	}

	cmd := exec.CommandContext(ctx, m.source.DumpBin, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s failed: %w, output: %s", m.source.DumpBin, err, string(output))
	}

	return nil
}

// Replicate streams a dump of the source directly into a restore against the
// replica cluster, dropping and replacing target collections.
func (m *MongoDBDatabase) Replicate(ctx context.Context) error {
	dump := exec.CommandContext(ctx, m.source.DumpBin,
		fmt.Sprintf("--uri=%s", m.source.URI),
		"--archive",
	)

	restore := exec.CommandContext(ctx, m.source.RestoreBin,
		fmt.Sprintf("--uri=%s", m.replica.URI),
		"--archive",
		"--drop",
		fmt.Sprintf("--numParallelCollections=%d", m.replica.ParallelCollections),
	)

	var dumpErr, restoreOut bytes.Buffer
	dump.Stderr = &dumpErr
	restore.Stderr = &restoreOut

	pipe, err := dump.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to create dump pipe: %w", err)
	}
	restore.Stdin = pipe

	if err := dump.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", m.source.DumpBin, err)
	}
	if err := restore.Start(); err != nil {
		_ = dump.Process.Kill()
		_ = dump.Wait()
		return fmt.Errorf("failed to start %s: %w", m.source.RestoreBin, err)
	}

	if err := dump.Wait(); err != nil {
		_ = restore.Wait()
		return fmt.Errorf("%s failed: %w, output: %s", m.source.DumpBin, err, dumpErr.String())
	}
	if err := restore.Wait(); err != nil {
		return fmt.Errorf("%s failed: %w, output: %s", m.source.RestoreBin, err, restoreOut.String())
	}

	return nil
}

func (m *MongoDBDatabase) GetName() string {
	return m.source.Database
}

func (m *MongoDBDatabase) Ping(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, "mongosh", m.source.URI, "--eval", "db.runCommand({ ping: 1 })")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("mongodb ping failed: %w", err)
	}

	return nil
}
