package inventory

// QueryUserDatabases lists user databases, skipping the four system ones.
const QueryUserDatabases = `
SELECT name FROM sys.databases WHERE database_id > 4 ORDER BY name;
`

// QueryVersion retrieves the full engine version banner.
const QueryVersion = `
SELECT @@VERSION;
`

// QueryInstanceType distinguishes availability-group, clustered and
// stand-alone instances.
const QueryInstanceType = `
SELECT CASE
  WHEN SERVERPROPERTY('IsHadrEnabled') = 1 THEN 'HADR'
  WHEN SERVERPROPERTY('IsClustered') = 1 THEN 'CLUSTER'
  ELSE 'SA'
END;
`

// queryTrackedServers lists every server name present in the inventory
// table. The table name is interpolated from configuration.
const queryTrackedServers = `
SELECT DISTINCT ServerName FROM %s;
`

// queryOlapServers lists servers the inventory tracks as analysis hosts.
const queryOlapServers = `
SELECT DISTINCT ServerName FROM %s WHERE InstanceType = 'OLAP';
`

// queryServerDetails pulls one detail row per server for the merge step.
const queryServerDetails = `
SELECT DISTINCT
  ServerName, RespContact1, Email1, RespContact2, Email2, Env,
  SQLVersion, InstanceType, Lstnr, BackupRetDays, ServiceDesk,
  RelAppServ, Comments, Maintenance
FROM %s;
`

// QueryBackupHistory reports the most recent backups per database with
// device and copy-only information from msdb.
const QueryBackupHistory = `
SELECT
  b.database_name AS dbname,
  b.type AS backtype,
  m.physical_device_name AS devicename,
  b.is_copy_only AS iscopyonly
FROM msdb.dbo.backupset b
JOIN msdb.dbo.backupmediafamily m ON b.media_set_id = m.media_set_id
WHERE b.backup_finish_date >= DATEADD(day, -7, GETDATE())
ORDER BY b.database_name, b.backup_finish_date DESC;
`
