package main

import (
	"encoding/json"
	"path/filepath"
	"reflect"
	"testing"
)

func TestGroupCommandTable(t *testing.T) {
	env := setupCLITestEnv(t)
	shoot := filepath.Join(env.baseDir, "shoot")
	writeBracketShoot(t, shoot)

	out, _, err := runCLI(t, []string{"group", shoot}, env.configPath)
	if err != nil {
		t.Fatalf("group: %v", err)
	}
	requireContains(t, out, "5 scanned, 4 grouped into 2 groups, 1 skipped")
	requireContains(t, out, "IMG_0001.jpg, IMG_0002.jpg, IMG_0003.jpg")
	requireContains(t, out, "-2.0 .. +2.0 EV")
	requireContains(t, out, "1 metadata_absent")
}

func TestGroupCommandJSON(t *testing.T) {
	env := setupCLITestEnv(t)
	shoot := filepath.Join(env.baseDir, "shoot")
	writeBracketShoot(t, shoot)

	out, _, err := runCLI(t, []string{"group", "--json", "--explain", shoot}, env.configPath)
	if err != nil {
		t.Fatalf("group --json: %v", err)
	}
	var doc struct {
		Groups    map[string][]string `json:"groups"`
		Skipped   map[string]int      `json:"skipped"`
		Decisions []struct {
			Candidate string `json:"candidate"`
			Reason    string `json:"reason"`
		} `json:"decisions"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	want := map[string][]string{
		"1": {"IMG_0001.jpg", "IMG_0002.jpg", "IMG_0003.jpg"},
		"2": {"IMG_0004.jpg"},
	}
	if !reflect.DeepEqual(doc.Groups, want) {
		t.Fatalf("unexpected groups %v", doc.Groups)
	}
	if doc.Skipped["metadata_absent"] != 1 {
		t.Fatalf("unexpected skipped %v", doc.Skipped)
	}
	if len(doc.Decisions) != 4 || doc.Decisions[3].Reason != "time_gap" {
		t.Fatalf("unexpected decisions %+v", doc.Decisions)
	}
}

func TestGroupCommandThresholdFlags(t *testing.T) {
	env := setupCLITestEnv(t)
	shoot := filepath.Join(env.baseDir, "shoot")
	writeBracketShoot(t, shoot)

	tests := []struct {
		name   string
		flags  []string
		groups int
	}{
		{name: "wide time tolerance merges", flags: []string{"--time-tolerance", "1m"}, groups: 1},
		{name: "tight exposure limit with no gate splits", flags: []string{"--exposure-jump-limit", "1", "--exposure-jump-gap", "0s"}, groups: 4},
		{name: "dimension tolerance zero keeps brackets", flags: []string{"--dimension-tolerance", "0"}, groups: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"group", "--json"}, tt.flags...)
			out, _, err := runCLI(t, append(args, shoot), env.configPath)
			if err != nil {
				t.Fatalf("group: %v", err)
			}
			var doc struct {
				Groups map[string][]string `json:"groups"`
			}
			if err := json.Unmarshal([]byte(out), &doc); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(doc.Groups) != tt.groups {
				t.Fatalf("expected %d groups, got %v", tt.groups, doc.Groups)
			}
		})
	}
}

func TestGroupCommandErrors(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"group", filepath.Join(env.baseDir, "missing")}, env.configPath)
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
	requireContains(t, err.Error(), "does not exist")

	shoot := filepath.Join(env.baseDir, "shoot")
	writeBracketShoot(t, shoot)
	if _, _, err := runCLI(t, []string{"group", "--time-tolerance=-1s", shoot}, env.configPath); err == nil {
		t.Fatal("expected error for negative tolerance")
	}
	if _, _, err := runCLI(t, []string{"group"}, env.configPath); err == nil {
		t.Fatal("expected error without directory argument")
	}
}

func TestShootsCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	parent := filepath.Join(env.baseDir, "shoots")
	writeBracketShoot(t, filepath.Join(parent, "day1"))
	writeBracketShoot(t, filepath.Join(parent, "day2"))

	out, _, err := runCLI(t, []string{"shoots", parent}, env.configPath)
	if err != nil {
		t.Fatalf("shoots: %v", err)
	}
	requireContains(t, out, filepath.Join(parent, "day1"))
	requireContains(t, out, filepath.Join(parent, "day2"))

	out, _, err = runCLI(t, []string{"shoots", "--json", parent}, env.configPath)
	if err != nil {
		t.Fatalf("shoots --json: %v", err)
	}
	var docs []struct {
		Dir    string              `json:"dir"`
		Groups map[string][]string `json:"groups"`
	}
	if err := json.Unmarshal([]byte(out), &docs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(docs) != 2 || len(docs[1].Groups) != 2 {
		t.Fatalf("unexpected shoots output %+v", docs)
	}

	empty := filepath.Join(env.baseDir, "empty")
	if err := mkdir(empty); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	out, _, err = runCLI(t, []string{"shoots", empty}, env.configPath)
	if err != nil {
		t.Fatalf("shoots empty: %v", err)
	}
	requireContains(t, out, "No shoot directories found")
}
