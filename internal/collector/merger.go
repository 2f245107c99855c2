package collector

import (
	"github.com/renekerr/sqlinv/internal/model"
	"github.com/renekerr/sqlinv/internal/util"
)

// Merge left-joins the collected database records with the server detail
// rows on server name. Records without a detail row keep empty metadata
// columns, matching the left-join the refresh load expects.
func Merge(inv *model.Inventory) {
	inv.Merged = inv.Merged[:0]
	for _, rec := range inv.Databases {
		row := model.MergedRow{
			ServerName:   rec.ServerName,
			DatabaseName: rec.DatabaseName,
		}
		if d, ok := inv.Details[rec.ServerName]; ok {
			row.RespContact1 = d.RespContact1
			row.Email1 = d.Email1
			row.RespContact2 = d.RespContact2
			row.Email2 = d.Email2
			row.Env = d.Env
			row.SQLVersion = d.SQLVersion
			row.InstanceType = d.InstanceType
			row.Lstnr = d.Lstnr
			row.BackupRetDays = util.IntegerPart(d.BackupRetDays)
			row.ServiceDesk = d.ServiceDesk
			row.RelAppServ = d.RelAppServ
			row.Comments = d.Comments
			row.Maintenance = d.Maintenance
		}
		inv.Merged = append(inv.Merged, row)
	}
}
