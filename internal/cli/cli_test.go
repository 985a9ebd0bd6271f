package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pfrederiksen/courtgrid/internal/logger"
)

// setTestEnv points the configuration at a fake reservation page
func setTestEnv(t *testing.T) {
	t.Helper()

	page, err := os.ReadFile(filepath.Join("..", "..", "testdata", "fixtures", "reservation_page.html"))
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	}))
	t.Cleanup(srv.Close)

	t.Setenv("COURTGRID_SOURCE_URL", srv.URL)
	t.Setenv("COURTGRID_BASE_URL", "https://grid.example.com/")
	t.Setenv("COURTGRID_FACILITY", "jingu")
	t.Setenv("COURTGRID_LOG_LEVEL", "error")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCmdSubcommands(t *testing.T) {
	cmd := NewRootCmd()
	want := []string{"serve", "grid", "links", "announce", "bot"}
	for _, name := range want {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestLinksCmd(t *testing.T) {
	setTestEnv(t)

	out, err := execute(t, "links", "--date", "2026-03-05")
	if err != nil {
		t.Fatalf("links error = %v", err)
	}

	for _, want := range []string{
		"page:     https://grid.example.com/jingu/2026/03/05",
		"image:    https://grid.example.com/image/jingu/2026/03/05",
		"calendar: https://grid.example.com/ics/jingu/2026/03/05",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestLinksCmdInvalidDate(t *testing.T) {
	setTestEnv(t)

	if _, err := execute(t, "links", "--date", "2026-02-30"); err == nil {
		t.Error("links with impossible date: error = nil, want error")
	}
}

func TestGridCmdJSON(t *testing.T) {
	setTestEnv(t)
	path := filepath.Join(t.TempDir(), "week.json")

	if _, err := execute(t, "grid", "--date", "2026-10-18", "--days", "2", "--format", "json", "--out", path); err != nil {
		t.Fatalf("grid error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	var week WeekOutput
	if err := json.Unmarshal(data, &week); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}

	if len(week.Days) != 2 {
		t.Fatalf("len(Days) = %d, want 2", len(week.Days))
	}
	if week.Days[0].Date != "2026-10-18" || week.Days[1].Date != "2026-10-19" {
		t.Errorf("dates = %s, %s; want 2026-10-18, 2026-10-19", week.Days[0].Date, week.Days[1].Date)
	}
	// 12 free tennis slots and 13 free shared slots per day in the fixture
	if week.FreeTotal != 50 {
		t.Errorf("FreeTotal = %d, want 50", week.FreeTotal)
	}
	if week.Days[0].Tennis[3] != "reserved" || week.Days[0].Shared[5] != "free" {
		t.Errorf("day 0 tennis[3] = %s, shared[5] = %s; want reserved, free",
			week.Days[0].Tennis[3], week.Days[0].Shared[5])
	}
}

func TestGridCmdPNG(t *testing.T) {
	setTestEnv(t)

	out, err := execute(t, "grid", "--date", "2026-10-18", "--days", "1")
	if err != nil {
		t.Fatalf("grid error = %v", err)
	}
	if !strings.HasPrefix(out, "\x89PNG\r\n\x1a\n") {
		t.Errorf("stdout does not start with the PNG signature")
	}
}

func TestGridCmdUnknownFormat(t *testing.T) {
	setTestEnv(t)

	_, err := execute(t, "grid", "--format", "gif")
	if err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Errorf("grid --format gif error = %v, want unknown format", err)
	}
}

func TestGridCmdUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()
	setTestEnv(t)
	t.Setenv("COURTGRID_SOURCE_URL", srv.URL)

	path := filepath.Join(t.TempDir(), "week.png")
	if _, err := execute(t, "grid", "--date", "2026-10-18", "--days", "3", "--out", path); err == nil {
		t.Fatal("grid with failing upstream: error = nil, want error")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("output file exists after failure, want none")
	}
}

func TestAnnounceDryRun(t *testing.T) {
	setTestEnv(t)

	out, err := execute(t, "announce", "--dry-run", "--date", "2026-10-18", "--days", "2")
	if err != nil {
		t.Fatalf("announce error = %v", err)
	}

	for _, want := range []string{
		"jingu court availability 10/18 - 10/19",
		"50 free hourly slots",
		"https://grid.example.com/jingu/2026/10/18",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunLogsFailure(t *testing.T) {
	var buf bytes.Buffer
	previous := logger.Default()
	logger.SetDefault(logger.New(logger.LevelInfo, &buf))
	defer logger.SetDefault(previous)

	if code := run([]string{"grid", "--format", "gif"}); code != ExitError {
		t.Errorf("run() = %d, want %d", code, ExitError)
	}

	var entry logger.LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not one JSON entry: %v\n%s", err, buf.String())
	}
	if entry.Level != "ERROR" || entry.Message != "Command failed" {
		t.Errorf("entry = %+v, want ERROR Command failed", entry)
	}
	if !strings.Contains(entry.Error, "unknown format") {
		t.Errorf("entry.Error = %q, want unknown format", entry.Error)
	}
	if entry.Fields["command"] != "courtgrid grid" {
		t.Errorf("entry.Fields[command] = %v, want courtgrid grid", entry.Fields["command"])
	}
}

func TestServeBotRequiresToken(t *testing.T) {
	setTestEnv(t)
	t.Setenv("COURTGRID_TELEGRAM_TOKEN", "")

	_, err := execute(t, "serve", "--bot", "--addr", "127.0.0.1:0")
	if err == nil || !strings.Contains(err.Error(), "COURTGRID_TELEGRAM_TOKEN") {
		t.Errorf("serve --bot error = %v, want token error", err)
	}
}
