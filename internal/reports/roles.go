package reports

import (
	"path/filepath"
	"slices"
	"time"
)

// Role is a recipient of printed audit reports.
type Role struct {
	Name    string
	Label   string
	Reports []string
}

// Roles lists the audit reports each role receives, in print order.
var Roles = []Role{
	{
		Name:  "accountant",
		Label: "Contadora",
		Reports: []string{
			"rpt_Early_Bird",
			"rpt_daybalance",
			"rpt_AccountCxC",
			"rpt_dailytransactions2",
			"rpt_guestbalance",
			"rpt_todaychin",
			"rpt_Cajeros_Resum",
			"rpt_cajeros",
			"rpt_cajeroindividual",
			"rpt_cajeros_smart",
			"rpt_depbalance",
			"rpt_deptransferidos",
			"rpt_nad_balance",
			"rpt_CancelAdjust",
			"rpt_RSRV_CXLD",
			"rpt_FoliosVirtuales",
		},
	},
	{
		Name:    "manager",
		Label:   "Gerencia",
		Reports: []string{"rpt_Early_Bird", "rpt_todaychin", "rpt_nad_balance", "rpt_CancelAdjust"},
	},
	{
		Name:    "salesManager",
		Label:   "Gerencia de ventas",
		Reports: []string{"rpt_Early_Bird", "rpt_todaychin", "rpt_CancelAdjust"},
	},
	{
		Name:    "extras",
		Label:   "Extras",
		Reports: []string{"rpt_guestbalance"},
	},
}

// Exceptions are never printed automatically.
var Exceptions = []string{"rpt_dailytransactions2", "rpt_nad_balance"}

// PrintJob is one copy of one report for one role.
type PrintJob struct {
	Role   Role
	Report string
}

func (j PrintJob) FileName() string {
	return j.Report + ".pdf"
}

// PrintJobs expands roles into print jobs, skipping the exceptions.
func PrintJobs(roles []Role) []PrintJob {
	jobs := []PrintJob{}
	for _, role := range roles {
		for _, report := range role.Reports {
			if slices.Contains(Exceptions, report) {
				continue
			}
			jobs = append(jobs, PrintJob{Role: role, Report: report})
		}
	}
	return jobs
}

// DatedDir is the directory an audit archive extracted on day t goes to.
func DatedDir(tempDir string, t time.Time) string {
	return filepath.Join(tempDir, t.Format("02-01-2006"))
}
