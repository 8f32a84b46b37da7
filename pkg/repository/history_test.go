package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/devicelab-dev/appium-healer/pkg/locator"
)

func writeCatalogFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func TestPersistHistory_RoundTrip(t *testing.T) {
	catalogDir := t.TempDir()
	writeCatalogFile(t, catalogDir, "login.properties", `
button = id=login;xpath=//Button;accessibilityid=login
field = id=user;name=user
`)
	historyPath := filepath.Join(t.TempDir(), "history.properties")

	repo := New(historyPath)
	if err := repo.LoadAll(catalogDir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	repo.RecordHealing("login.button", 2)
	repo.RecordHealing("login.field", 1)

	// A fresh repository loading the same sources must agree on every
	// previously-recorded best strategy.
	fresh := New(historyPath)
	if err := fresh.LoadAll(catalogDir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, id := range []string{"login.button", "login.field"} {
		want, _ := repo.GetBestStrategy(id)
		got, ok := fresh.GetBestStrategy(id)
		if !ok {
			t.Fatalf("%s: expected a strategy", id)
		}
		if got != want {
			t.Errorf("%s: expected %v after reload, got %v", id, want, got)
		}
	}
}

func TestPersistHistory_Idempotent(t *testing.T) {
	historyPath := filepath.Join(t.TempDir(), "history.properties")
	repo := New(historyPath)
	repo.SetStrategies("b.el", []locator.Strategy{locator.ByID("b"), locator.ByXPath("//b")})
	repo.SetStrategies("a.el", []locator.Strategy{locator.ByID("a"), locator.ByXPath("//a")})
	repo.RecordHealing("b.el", 1)
	repo.RecordHealing("a.el", 1)

	if err := repo.PersistHistory(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first, err := os.ReadFile(historyPath)
	if err != nil {
		t.Fatalf("failed to read history: %v", err)
	}

	if err := repo.PersistHistory(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := os.ReadFile(historyPath)
	if err != nil {
		t.Fatalf("failed to read history: %v", err)
	}

	if string(first) != string(second) {
		t.Errorf("expected byte-identical output:\n%q\n%q", first, second)
	}
}

func TestPersistHistory_SortedFormat(t *testing.T) {
	historyPath := filepath.Join(t.TempDir(), "history.properties")
	repo := New(historyPath)
	repo.SetStrategies("b.el", []locator.Strategy{locator.ByID("b"), locator.ByXPath("//b")})
	repo.SetStrategies("a.el", []locator.Strategy{locator.ByID("a"), locator.ByXPath("//a")})
	repo.RecordHealing("b.el", 1)
	repo.RecordHealing("a.el", 1)

	data, err := os.ReadFile(historyPath)
	if err != nil {
		t.Fatalf("failed to read history: %v", err)
	}
	want := "a.el = 1\nb.el = 1\n"
	if string(data) != want {
		t.Errorf("expected %q, got %q", want, data)
	}
}

func TestLoadAll_DropsOutOfRangeRecords(t *testing.T) {
	catalogDir := t.TempDir()
	writeCatalogFile(t, catalogDir, "page.properties", "btn = id=ok;xpath=//b\n")

	historyDir := t.TempDir()
	historyPath := filepath.Join(historyDir, "history.properties")
	history := "page.btn = 7\npage.gone = 1\nbroken line\npage.bad = x\n"
	if err := os.WriteFile(historyPath, []byte(history), 0o644); err != nil {
		t.Fatalf("failed to seed history: %v", err)
	}

	repo := New(historyPath)
	if err := repo.LoadAll(catalogDir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Out-of-range and orphaned records are reconciled away.
	best, ok := repo.GetBestStrategy("page.btn")
	if !ok {
		t.Fatal("expected a strategy")
	}
	if best != locator.ByID("ok") {
		t.Errorf("expected primary after reconcile, got %v", best)
	}
	if len(repo.History()) != 0 {
		t.Errorf("expected empty history after reconcile, got %v", repo.History())
	}
}

func TestLoadAll_MissingEverythingIsEmptyRepository(t *testing.T) {
	base := t.TempDir()
	repo := New(filepath.Join(base, "nohistory"))
	if err := repo.LoadAll(filepath.Join(base, "nocatalog")); err != nil {
		t.Fatalf("missing sources must not fail startup: %v", err)
	}
	if repo.Count() != 0 {
		t.Errorf("expected empty repository, got %d elements", repo.Count())
	}
}

func TestReadHistoryFile_CommentsSkipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.properties")
	content := "# healing history\npage.btn = 1\n\npage.other = 0\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write: %v", err)
	}

	records, err := ReadHistoryFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records["page.btn"] != 1 || records["page.other"] != 0 {
		t.Errorf("unexpected records: %v", records)
	}
}
