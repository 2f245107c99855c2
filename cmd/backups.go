package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/renekerr/sqlinv/internal/inventory"
	"github.com/renekerr/sqlinv/internal/ui"
	"github.com/renekerr/sqlinv/internal/util"
)

var (
	backupsServersFile string
	backupsOutput      string
)

var backupsCmd = &cobra.Command{
	Use:   "backups [server...]",
	Short: "Report last week's backup activity per server",
	Long: `Query the msdb backup history of each server and print one line per
backup with its type, device and copy-only flag. Servers come from the
arguments or from a file with one name per line.`,
	RunE: runBackups,
}

func init() {
	rootCmd.AddCommand(backupsCmd)

	backupsCmd.Flags().StringVar(&backupsServersFile, "servers-file", "", "file with one server name per line")
	backupsCmd.Flags().StringVarP(&backupsOutput, "output", "o", "", "also write the report to this file")
}

func runBackups(cmd *cobra.Command, args []string) error {
	servers := make([]string, 0, len(args))
	for _, a := range args {
		servers = append(servers, util.NormalizeName(a))
	}
	if backupsServersFile != "" {
		fromFile, err := inventory.ReadLines(backupsServersFile)
		if err != nil {
			return fmt.Errorf("reading %s: %w", backupsServersFile, err)
		}
		for _, s := range fromFile {
			servers = append(servers, util.NormalizeName(s))
		}
	}
	if len(servers) == 0 {
		return fmt.Errorf("no servers given, pass names or --servers-file")
	}

	report := []string{"Server,Database,BackupType,DeviceName,IsCopyOnly"}

	failed := 0
	for _, server := range servers {
		lines, err := listBackups(server)
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
	if backupsOutput != "" {
		if err := inventory.WriteLines(backupsOutput, report); err != nil {
			return fmt.Errorf("writing %s: %w", backupsOutput, err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d servers could not be reached", failed, len(servers))
	}
	return nil
}

func listBackups(server string) ([]string, error) {
	db, err := inventory.OpenServer(server)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rows, err := db.QueryContext(ctx, inventory.QueryBackupHistory)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []string
	for rows.Next() {
		var dbName, backType, device string
		var copyOnly bool
		if err := rows.Scan(&dbName, &backType, &device, &copyOnly); err != nil {
			return nil, err
		}
		// Maintenance-plan backups land on local disk; anything not
		// pointing at a virtual device counts as the native kind.
		deviceName := "Nativo"
		if strings.Contains(device, "VDI_") || strings.HasPrefix(device, "{") {
			deviceName = device
		}
		lines = append(lines, fmt.Sprintf("%s,%s,%s,%s,%t", server, dbName, backType, deviceName, copyOnly))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
