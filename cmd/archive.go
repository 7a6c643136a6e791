/*
Copyright © 2025 skippy

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/skippy/farm/internal/ioarchive"
	"github.com/skippy/farm/internal/ioschema"
	"github.com/skippy/farm/pkg/config"
	"github.com/spf13/cobra"
)

// getArchiveCmd returns the archive command with its subcommands.
func getArchiveCmd() *cobra.Command {
	archiveCmd := &cobra.Command{
		Use:   "archive",
		Short: "Manage the PostgreSQL estimate archive",
		Long: `The archive keeps computed growth rates and feed readings in PostgreSQL.
The upstream push job reads rows that are not pushed yet.

Subcommands:
  create   create archive tables
  migrate  update archive tables to the current version
  push     compute estimates and save them for the push job
  status   show how many rows wait for the push job`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	archiveCmd.AddCommand(
		getArchiveCreateCmd(),
		getArchiveMigrateCmd(),
		getArchivePushCmd(),
		getArchiveStatusCmd(),
	)
	return archiveCmd
}

func getArchiveCreateCmd() *cobra.Command {
	var force bool

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create archive schema",
		Long: `Create the estimate archive schema from scratch.

This command:
  1. Connects to PostgreSQL using configuration settings
  2. Checks for existing tables and prompts for confirmation
  3. Creates all tables using GORM AutoMigrate
  4. Sets byte-order collation on paddock ids

Use --force to skip confirmation and drop existing tables.

Examples:
  farm archive create
  farm archive create -f`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArchiveCreate(force)
		},
	}

	createCmd.Flags().BoolVarP(&force, "force", "f",
		false, "drop existing tables without confirmation")

	return createCmd
}

func runArchiveCreate(force bool) error {
	ctx := context.Background()
	op, err := connect(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	hasTables, err := op.HasTables(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if hasTables {
		if !force {
			gn.Warn("\nWarning: Database contains existing tables.")
			gn.Warn("Creating schema will drop ALL existing tables and data.")
			fmt.Print("\nDo you want to continue? (yes/no): ")

			reader := bufio.NewReader(os.Stdin)
			response, err := reader.ReadString('\n')
			if err != nil {
				gn.Warn("Failed to read user input")
				return err
			}
			response = strings.TrimSpace(strings.ToLower(response))
			if response != "yes" && response != "y" {
				gn.Info("Aborted. No changes made.")
				return nil
			}
		}
		gn.Info("Dropping all existing tables...")
		if err := op.DropAllTables(ctx); err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
	}

	sm := ioschema.NewManager(op)
	if err := sm.Create(ctx, cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Archive schema is ready.")
	gn.Info("Run 'farm archive push' to save estimates.")
	return nil
}

func getArchiveMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Migrate archive schema to latest version",
		Long: `Migrate updates the archive schema with GORM AutoMigrate. New tables,
columns and indexes are added, existing data is kept.

Use this command after updating farm.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArchiveMigrate()
		},
	}
}

func runArchiveMigrate() error {
	ctx := context.Background()
	op, err := connect(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	hasTables, err := op.HasTables(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if !hasTables {
		gn.Warn(`Warning: Database appears to be empty.
	Run 'farm archive create' first to initialize the schema.`)
		return nil
	}

	if err := ioschema.NewManager(op).Migrate(ctx, cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	gn.Info("Schema is now up to date.")
	return nil
}

func getArchivePushCmd() *cobra.Command {
	var rng rangeFlags
	var dryRun bool

	pushCmd := &cobra.Command{
		Use:   "push",
		Short: "Save growth rates and feed readings for the push job",
		Long: `Push estimates growth of all paddocks over the date range and feed on
offer at its last day, then saves both to the archive. Growth rates that
differ from the archived value by less than sync.growth_rate_tolerance
are not saved again.

Examples:
  farm archive push
  farm archive push --from 2025-04-01 --to 2025-04-30 --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArchivePush(rng, dryRun)
		},
	}

	rng.add(pushCmd)
	pushCmd.Flags().BoolVar(&dryRun, "dry-run", false,
		"show what would be saved without writing")

	return pushCmd
}

func runArchivePush(rf rangeFlags, dryRun bool) error {
	ctx := context.Background()
	cfg.Update([]config.Option{config.OptSyncDryRun(dryRun)})

	rng, err := rf.dateRange(time.Now())
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	runner, store, err := openRunner()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer store.Close()

	growth, err := runner.Growth(ctx, rng, nil, false)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	feed, err := runner.Feed(ctx, rng.To, nil)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	op, err := archiveOperator(ctx, dryRun)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	arch := ioarchive.New(cfg, op)
	gSum, err := arch.ArchiveGrowth(ctx, archiveGrowth(growth))
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	fSum, err := arch.ArchiveFeed(ctx, archiveFeed(feed))
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	gn.Info("Growth %s", summaryLine(gSum))
	gn.Info("Feed %s", summaryLine(fSum))
	return nil
}

func getArchiveStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show rows waiting for the push job",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			op, err := connect(ctx)
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			defer op.Close()

			growth, feed, err := ioarchive.Pending(ctx, op)
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			fmt.Printf("growth rates  %s\nfeed readings %s\n",
				humanize.Comma(int64(growth)), humanize.Comma(int64(feed)))
			return nil
		},
	}
}
