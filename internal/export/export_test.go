package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lox/seededrand/internal/plan"
)

var fixture = []plan.Result{
	{
		Step: "spawn",
		Kind: plan.KindRect,
		Samples: []plan.Sample{
			{Step: "spawn", Index: 0, Values: []float64{1.5, 2}},
			{Step: "spawn", Index: 1, Values: []float64{0.25, 3}},
		},
	},
	{
		Step:    "palette",
		Kind:    plan.KindPick,
		Samples: []plan.Sample{{Step: "palette", Index: 0, Label: "red"}},
	},
}

func TestEncodeCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, FormatCSV, fixture); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	want := "step,index,label,v0,v1\nspawn,0,,1.5,2\nspawn,1,,0.25,3\npalette,0,red\n"
	if buf.String() != want {
		t.Errorf("CSV mismatch:\ngot  %q\nwant %q", buf.String(), want)
	}
}

func TestEncodeJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, FormatJSON, fixture); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	var decoded []plan.Result
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 2 || decoded[1].Samples[0].Label != "red" {
		t.Errorf("unexpected decoded results: %+v", decoded)
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	err := Encode(&bytes.Buffer{}, Format("xml"), fixture)
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestFormatFor(t *testing.T) {
	if FormatFor("out.json") != FormatJSON {
		t.Errorf("expected json for .json")
	}
	if FormatFor("out.csv") != FormatCSV || FormatFor("out") != FormatCSV {
		t.Errorf("expected csv default")
	}
}

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "samples.csv")

	// overwrite an existing file
	if err := os.WriteFile(target, []byte("stale"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := WriteFile(target, FormatCSV, fixture); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("step,index,label")) {
		t.Errorf("unexpected content %q", data)
	}

	info, err := os.Stat(target)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o644 {
		t.Errorf("File permissions mismatch: got %o, want %o", info.Mode().Perm(), 0o644)
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range entries {
		if entry.Name() != "samples.csv" {
			t.Errorf("Unexpected file in directory: %s", entry.Name())
		}
	}
}

func TestWriteFileMissingDir(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "nope", "out.csv"), FormatCSV, fixture)
	if err == nil {
		t.Fatal("expected error writing into a missing directory")
	}
}
