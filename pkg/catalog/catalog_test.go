package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/devicelab-dev/appium-healer/pkg/locator"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func TestLoad_Properties(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "login_page.properties", `
# login screen locators
login_button = id=login_button;xpath=//Button[@text='Login'];accessibilityid=login

username_field = id=username;name=username
`)

	cat, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cat.Elements) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(cat.Elements))
	}

	strategies := cat.Elements["login_page.login_button"]
	if len(strategies) != 3 {
		t.Fatalf("expected 3 strategies, got %d", len(strategies))
	}
	if strategies[0] != locator.ByID("login_button") {
		t.Errorf("expected primary id=login_button, got %v", strategies[0])
	}
	if strategies[1] != locator.ByXPath("//Button[@text='Login']") {
		t.Errorf("expected xpath second, got %v", strategies[1])
	}

	if len(cat.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", cat.Warnings)
	}
}

func TestLoad_YAMLGroup(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "home_page.yaml", `
search_box:
  - id=search
  - css=input.search
logout_link:
  - linktext=Log out
`)

	cat, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cat.Elements) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(cat.Elements))
	}
	strategies := cat.Elements["home_page.search_box"]
	if len(strategies) != 2 {
		t.Fatalf("expected 2 strategies, got %d", len(strategies))
	}
	if strategies[1] != locator.ByCSS("input.search") {
		t.Errorf("expected css=input.search, got %v", strategies[1])
	}
}

func TestLoad_UnknownKindSkippedWithWarning(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "page.properties",
		"btn = id=ok;hologram=3d;xpath=//Button\n")

	cat, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	strategies := cat.Elements["page.btn"]
	if len(strategies) != 2 {
		t.Fatalf("expected 2 strategies (unknown kind skipped), got %d", len(strategies))
	}
	if len(cat.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d: %v", len(cat.Warnings), cat.Warnings)
	}
	if !strings.Contains(cat.Warnings[0], "hologram") {
		t.Errorf("warning should name the unknown kind: %q", cat.Warnings[0])
	}
}

func TestLoad_AllStrategiesInvalid(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "page.properties", "ghost = nope=1;alsono=2\n")

	cat, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A key with zero parsable strategies is not registered at all.
	if _, ok := cat.Elements["page.ghost"]; ok {
		t.Error("expected element with no valid strategies to be dropped")
	}
}

func TestLoad_MalformedLine(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "page.properties", "not a key value line\nbtn = id=ok\n")

	cat, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cat.Elements) != 1 {
		t.Fatalf("expected 1 element, got %d", len(cat.Elements))
	}
	if len(cat.Warnings) != 1 {
		t.Errorf("expected 1 warning, got %v", cat.Warnings)
	}
}

func TestLoad_DuplicateStrategiesDeduped(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "page.properties", "btn = id=ok;xpath=//b;id=ok\n")

	cat, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	strategies := cat.Elements["page.btn"]
	if len(strategies) != 2 {
		t.Fatalf("expected duplicates removed, got %d strategies", len(strategies))
	}
	if strategies[0] != locator.ByID("ok") {
		t.Errorf("first occurrence should win, got %v", strategies[0])
	}
}

func TestLoad_MissingDirYieldsEmptyCatalog(t *testing.T) {
	cat, err := Load(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("missing catalog dir must not fail: %v", err)
	}
	if len(cat.Elements) != 0 {
		t.Errorf("expected empty catalog, got %d elements", len(cat.Elements))
	}
}

func TestLoad_IgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "readme.txt", "btn = id=ok\n")
	writeFile(t, dir, "page.properties", "btn = id=ok\n")

	cat, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cat.Elements) != 1 {
		t.Errorf("expected only .properties parsed, got %d elements", len(cat.Elements))
	}
}

func TestLoad_InvalidYAMLWarned(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.yaml", "\t- not: [valid\n")
	writeFile(t, dir, "good.properties", "btn = id=ok\n")

	cat, err := Load(dir)
	if err != nil {
		t.Fatalf("one bad file must not abort the load: %v", err)
	}
	if len(cat.Elements) != 1 {
		t.Errorf("expected the good file loaded, got %d elements", len(cat.Elements))
	}
	if len(cat.Warnings) == 0 {
		t.Error("expected a warning for the bad yaml file")
	}
}
