package backups

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/julianstephens/traineeline/internal/backup"
	"github.com/julianstephens/traineeline/internal/cli"
	"github.com/julianstephens/traineeline/internal/storage/sqlite"
)

var errNotSQLite = errors.New("backups are only supported for SQLite storage")

func manager(ctx *cli.Context) (*backup.Manager, error) {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return nil, errNotSQLite
	}
	return backup.NewManager(ctx.Store.GetConfigPath()), nil
}

type BackupCreateCmd struct {
	Keep int `help:"Number of snapshots to keep after rotation." default:"14"`
}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	if c.Keep < 0 {
		return fmt.Errorf("keep must not be negative, got %d", c.Keep)
	}
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}
	mgr = mgr.WithKeep(c.Keep)

	snap, err := mgr.Create()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	ctx.Printf("✓ Backup created: %s\n", snap.Name())
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}

	snaps, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(snaps) == 0 {
		ctx.Println("No backups found.")
	} else {
		ctx.Printf("Available backups (%d total, keeping most recent %d):\n", len(snaps), mgr.Keep())
		cli.RenderBackups(ctx.Stdout(), snaps)
	}
	ctx.Printf("Backup directory: %s\n", mgr.Dir())
	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or file name of the backup to restore."`
	Yes        bool   `help:"Skip the confirmation prompt." short:"y"`

	in io.Reader
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}

	path, err := mgr.Resolve(c.BackupFile)
	if err != nil {
		return err
	}

	if !c.Yes {
		ctx.Println("⚠️  WARNING: This will replace the holiday database with the backup.")
		ctx.Println("A backup of the current database will be created before restoring.")
		ctx.Printf("\nRestore from: %s\n", path)
		ctx.Print("Continue? [y/N]: ")

		if !c.confirm() {
			ctx.Println("Restore cancelled.")
			return nil
		}
	}

	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	previous, err := mgr.Restore(path)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	if previous.Path != "" {
		ctx.Printf("Created backup of current database: %s\n", previous.Name())
	}
	ctx.Println("✓ Database restored successfully")
	return nil
}

func (c *BackupRestoreCmd) confirm() bool {
	in := c.in
	if in == nil {
		in = os.Stdin
	}
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
