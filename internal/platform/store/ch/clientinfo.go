package ch

import (
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// BuildClientInfo tags queries in system.query_log with the binary role, commit and host
func BuildClientInfo(role string) clickhouse.ClientInfo {
	host, _ := os.Hostname()
	info := clickhouse.ClientInfo{}
	for _, p := range [][2]string{
		{"artisantrend", strings.TrimSpace(role)},
		{"go", runtime.Version()},
		{"commit", shortSHA()},
		{"host", strings.TrimSpace(host)},
	} {
		info.Products = append(info.Products, struct {
			Name    string
			Version string
		}{Name: p[0], Version: p[1]})
	}
	return info
}

func shortSHA() string {
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 7 {
				return s.Value[:7]
			}
		}
	}
	return "unknown"
}
