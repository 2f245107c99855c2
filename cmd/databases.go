package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/renekerr/sqlinv/internal/inventory"
	"github.com/renekerr/sqlinv/internal/ui"
	"github.com/renekerr/sqlinv/internal/util"
)

var databasesOutput string

var databasesCmd = &cobra.Command{
	Use:   "databases <server> [server...]",
	Short: "List the user databases hosted on one or more servers",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDatabases,
}

func init() {
	rootCmd.AddCommand(databasesCmd)

	databasesCmd.Flags().StringVarP(&databasesOutput, "output", "o", "", "also write the report to this file")
}

func runDatabases(cmd *cobra.Command, args []string) error {
	report := []string{"Server,Name"}

	failed := 0
	for _, arg := range args {
		server := util.NormalizeName(arg)
		lines, err := listDatabases(server)
		if err != nil {
			ui.Warn(fmt.Sprintf("%s: %v", server, err))
			failed++
			continue
		}
		report = append(report, lines...)
	}

	for _, line := range report {
		fmt.Println(line)
	}
	if databasesOutput != "" {
		if err := inventory.WriteLines(databasesOutput, report); err != nil {
			return fmt.Errorf("writing %s: %w", databasesOutput, err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d servers could not be reached", failed, len(args))
	}
	return nil
}

func listDatabases(server string) ([]string, error) {
	db, err := inventory.OpenServer(server)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rows, err := db.QueryContext(ctx, inventory.QueryUserDatabases)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		lines = append(lines, server+","+name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		lines = append(lines, server+",No user databases")
	}
	return lines, nil
}
