package config

import (
	"os"
	"testing"
	"time"

	kit "artisantrend/internal/platform/testkit"
)

func TestPrefixKey(t *testing.T) {
	c := New().Prefix("CORE_").Prefix("RUN_")
	if got := c.key("DATA_DIR"); got != "CORE_RUN_DATA_DIR" {
		t.Fatalf("key() = %q, want CORE_RUN_DATA_DIR", got)
	}
}

func TestMustAccessors(t *testing.T) {
	c := New().Prefix("T_")
	t.Setenv("T_NAME", "  artisan ")
	t.Setenv("T_N", " 8 ")
	t.Setenv("T_ON", "true")
	t.Setenv("T_WAIT", "2s")
	t.Setenv("T_PORT", "4000")
	t.Setenv("T_BADPORT", "70000")
	t.Setenv("T_BAD", "x")

	if got := c.MustString("NAME"); got != "artisan" {
		t.Fatalf("MustString = %q", got)
	}
	if got := c.MustInt("N"); got != 8 {
		t.Fatalf("MustInt = %d", got)
	}
	if !c.MustBool("ON") {
		t.Fatalf("MustBool = false")
	}
	if got := c.MustDuration("WAIT"); got != 2*time.Second {
		t.Fatalf("MustDuration = %v", got)
	}
	if got := c.MustPort("PORT"); got != ":4000" {
		t.Fatalf("MustPort = %q", got)
	}

	kit.MustPanic(t, func() { c.MustString("MISSING") })
	kit.MustPanic(t, func() { c.MustInt("BAD") })
	kit.MustPanic(t, func() { c.MustBool("BAD") })
	kit.MustPanic(t, func() { c.MustDuration("BAD") })
	kit.MustPanic(t, func() { c.MustPort("BADPORT") })
	kit.MustPanic(t, func() { c.Require("NAME", "MISSING") })
	kit.MustNotPanic(t, func() { c.Require("NAME", "N") })
}

func TestMayAccessors(t *testing.T) {
	c := New().Prefix("M_")
	t.Setenv("M_F", "12.5")
	t.Setenv("M_BADF", "x")
	t.Setenv("M_I", "3")
	t.Setenv("M_BADI", "3.5")
	t.Setenv("M_CSV", " a, ,b ,")
	t.Setenv("M_EMPTYCSV", " , ")
	t.Setenv("M_DIR", "RISING")

	if got := c.MayFloat64("F", 0); got != 12.5 {
		t.Fatalf("MayFloat64 = %v", got)
	}
	if got := c.MayFloat64("BADF", 60); got != 60 {
		t.Fatalf("MayFloat64 invalid = %v, want default", got)
	}
	if got := c.MayInt("I", 0); got != 3 {
		t.Fatalf("MayInt = %d", got)
	}
	if got := c.MayInt("BADI", 9); got != 9 {
		t.Fatalf("MayInt invalid = %d, want 9", got)
	}
	if got := c.MayString("UNSET", "d"); got != "d" {
		t.Fatalf("MayString = %q", got)
	}
	if got := c.MayDuration("UNSET", time.Second); got != time.Second {
		t.Fatalf("MayDuration = %v", got)
	}
	if got := c.MayBool("UNSET", true); !got {
		t.Fatalf("MayBool default lost")
	}
	csv := c.MayCSV("CSV", nil)
	if len(csv) != 2 || csv[0] != "a" || csv[1] != "b" {
		t.Fatalf("MayCSV = %v", csv)
	}
	if got := c.MayCSV("EMPTYCSV", []string{"x"}); len(got) != 1 || got[0] != "x" {
		t.Fatalf("MayCSV blank = %v", got)
	}
	if got := c.MayEnum("DIR", "stable", "rising", "stable", "declining"); got != "rising" {
		t.Fatalf("MayEnum = %q", got)
	}
	kit.MustPanic(t, func() { c.MayEnum("CSV", "", "rising") })
}

func TestLoadDotEnvKeepsExisting(t *testing.T) {
	dir := t.TempDir()
	p := kit.WriteFile(t, dir, ".env", "DOTENV_NEW=from-file\nDOTENV_KEEP=from-file\n")
	t.Setenv("DOTENV_KEEP", "from-env")
	t.Cleanup(func() { _ = os.Unsetenv("DOTENV_NEW") })

	LoadDotEnv(p, dir+"/missing.env")

	if got := os.Getenv("DOTENV_NEW"); got != "from-file" {
		t.Fatalf("DOTENV_NEW = %q, want from-file", got)
	}
	if got := os.Getenv("DOTENV_KEEP"); got != "from-env" {
		t.Fatalf("DOTENV_KEEP = %q, want from-env", got)
	}
}
