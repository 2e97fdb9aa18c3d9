package shard

import (
	"fmt"
	"time"

	"mkt-settle-api/internal/config"
)

// AllTables returns all tables for the month of ts
func AllTables(base string, ts time.Time) []string {
	month := ts.Format("200601")
	n := config.C.Ledger.ShardsPerMonth
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, fmt.Sprintf("%s_%s_p%d", base, month, i))
	}
	return out
}

// TablesInRange returns every shard table whose month falls inside [from, to],
// oldest month first. Used for trailing-window scans across month boundaries.
func TablesInRange(base string, from, to time.Time) []string {
	if to.Before(from) {
		from, to = to, from
	}
	var out []string
	cur := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, from.Location())
	end := time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, to.Location())
	for !cur.After(end) {
		out = append(out, AllTables(base, cur)...)
		cur = cur.AddDate(0, 1, 0)
	}
	return out
}

// IndexTable returns the monthly order index table, e.g. p_commission_index_202608.
func IndexTable(ts time.Time) string {
	return fmt.Sprintf("p_commission_index_%s", ts.Format("200601"))
}
