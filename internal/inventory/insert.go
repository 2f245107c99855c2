package inventory

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/renekerr/sqlinv/internal/model"
	"github.com/renekerr/sqlinv/internal/util"
)

// GeneratedTimeLayout matches the timestamp format stored in the
// GeneratedDateTime column.
const GeneratedTimeLayout = "02-01-2006 15:04:05"

var mergedColumns = []string{
	"GeneratedDateTime", "ServerName", "DatabaseName",
	"RespContact1", "Email1", "RespContact2", "Email2", "Env",
	"SQLVersion", "InstanceType", "Lstnr", "BackupRetDays",
	"ServiceDesk", "RelAppServ", "Comments", "Maintenance",
}

// BuildInserts renders one INSERT statement per merged row for the refresh
// load. BackupRetDays is emitted as a bare integer ('' when missing),
// everything else as a quoted literal with embedded quotes doubled.
func BuildInserts(table string, rows []model.MergedRow, generated time.Time) []string {
	stamp := generated.Format(GeneratedTimeLayout)
	columns := strings.Join(mergedColumns, ", ")

	statements := make([]string, 0, len(rows))
	for _, row := range rows {
		values := []string{
			util.QuoteLiteral(stamp),
			util.QuoteLiteral(row.ServerName),
			util.QuoteLiteral(row.DatabaseName),
			util.QuoteLiteral(row.RespContact1),
			util.QuoteLiteral(row.Email1),
			util.QuoteLiteral(row.RespContact2),
			util.QuoteLiteral(row.Email2),
			util.QuoteLiteral(row.Env),
			util.QuoteLiteral(row.SQLVersion),
			util.QuoteLiteral(row.InstanceType),
			util.QuoteLiteral(row.Lstnr),
			retentionValue(row.BackupRetDays),
			util.QuoteLiteral(row.ServiceDesk),
			util.QuoteLiteral(row.RelAppServ),
			util.QuoteLiteral(row.Comments),
			util.QuoteLiteral(row.Maintenance),
		}
		statements = append(statements, fmt.Sprintf(
			"INSERT INTO %s (%s) VALUES (%s);", table, columns, strings.Join(values, ", ")))
	}
	return statements
}

// BuildRegistrationInserts renders the INSERT statements that would register
// a batch of untracked servers, one statement per hosted database.
func BuildRegistrationInserts(table string, regs []model.Registration, retentionDays int) []string {
	columns := "ServerName, DatabaseName, RespContact1, Email1, RespContact2, Email2, Env, " +
		"SQLVersion, InstanceType, Lstnr, BackupRetDays, ServiceDesk, RelAppServ, Comments, Maintenance"

	var statements []string
	for _, reg := range regs {
		for _, db := range reg.Databases {
			statements = append(statements, fmt.Sprintf(
				"INSERT INTO %s (%s) VALUES (%s, %s, %s, %s, '', '', %s, %s, %s, '', %d, '', '', '', '');",
				table, columns,
				util.QuoteLiteral(reg.Server),
				util.QuoteLiteral(db),
				util.QuoteLiteral(reg.Contact.Name),
				util.QuoteLiteral(reg.Contact.Email),
				util.QuoteLiteral(reg.Environment),
				util.QuoteLiteral(reg.SQLVersion),
				util.QuoteLiteral(reg.InstanceType),
				retentionDays))
		}
	}
	return statements
}

// retentionValue renders BackupRetDays as a bare integer. The value comes
// from a CSV that may have been edited by hand, so anything that does not
// parse as an integer is treated as missing rather than emitted into SQL.
func retentionValue(s string) string {
	s = util.IntegerPart(strings.TrimSpace(s))
	n, err := strconv.Atoi(s)
	if err != nil {
		return "''"
	}
	return strconv.Itoa(n)
}
