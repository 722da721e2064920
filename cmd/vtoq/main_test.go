package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/diapath/vtoq/internal/mldtest"
	"golang.org/x/image/tiff"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func sampleContainer() []byte {
	return mldtest.New(1, 1).
		Layer("ROI",
			mldtest.Polygon(1, 0, 0, 10, 0, 10, 10, 0, 10),
			mldtest.Polygon(0, 2, 2, 4, 2, 4, 4),
			mldtest.Line(1, 0, 0, 5, 5),
		).
		TextSection("LayerConfigs", "<cfg/>").
		Bytes()
}

func featureCount(t *testing.T, path string) int {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Expected output %s: %v", path, err)
	}
	var doc struct {
		Features []json.RawMessage `json:"features"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Output is not JSON: %v", err)
	}
	return len(doc.Features)
}

func TestRunUsage(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := run(nil, &out, &errOut); code != 2 {
		t.Errorf("Expected exit 2 without args, got %d", code)
	}
	if code := run([]string{"bogus"}, &out, &errOut); code != 2 {
		t.Errorf("Expected exit 2 for unknown command, got %d", code)
	}
	if !strings.Contains(errOut.String(), "unknown command: bogus") {
		t.Errorf("Expected unknown command message, got %q", errOut.String())
	}
	if code := run([]string{"help"}, &out, &errOut); code != 0 {
		t.Errorf("Expected exit 0 for help, got %d", code)
	}
	if code := run([]string{"convert"}, &out, &errOut); code != 2 {
		t.Errorf("Expected exit 2 for convert without --in, got %d", code)
	}
}

func TestConvertCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "slide.mld")
	classes := filepath.Join(dir, "classes.json")
	writeFile(t, in, sampleContainer())
	writeFile(t, classes, []byte(`{"1": ["Tumor", "c80000"]}`))

	var out, errOut bytes.Buffer
	code := run([]string{"convert", "--in", in, "--classes", classes, "--scale-x", "2", "--offset-y", "5"}, &out, &errOut)
	if code != 0 {
		t.Fatalf("Expected exit 0, got %d: %s", code, errOut.String())
	}
	if n := featureCount(t, in+".geojson"); n != 2 {
		t.Errorf("Expected 2 features (annotation and hole), got %d", n)
	}
	if !strings.Contains(out.String(), "2 features from 3 objects") {
		t.Errorf("Expected summary line, got %q", out.String())
	}

	// rings mode folds the hole into the annotation
	custom := filepath.Join(dir, "custom.geojson")
	code = run([]string{"convert", "--in", in, "--out", custom, "--holes", "rings"}, &out, &errOut)
	if code != 0 {
		t.Fatalf("Expected exit 0, got %d: %s", code, errOut.String())
	}
	if n := featureCount(t, custom); n != 1 {
		t.Errorf("Expected 1 feature, got %d", n)
	}

	code = run([]string{"convert", "--in", in, "--out", custom, "--merge"}, &out, &errOut)
	if code != 0 {
		t.Fatalf("Expected exit 0, got %d: %s", code, errOut.String())
	}
	if n := featureCount(t, custom); n != 3 {
		t.Errorf("Expected 3 features after merge, got %d", n)
	}

	if code := run([]string{"convert", "--in", in, "--holes", "nested"}, &out, &errOut); code != 2 {
		t.Errorf("Expected exit 2 for bad --holes, got %d", code)
	}
	if code := run([]string{"convert", "--in", filepath.Join(dir, "missing.mld")}, &out, &errOut); code != 1 {
		t.Errorf("Expected exit 1 for a missing input, got %d", code)
	}
}

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.mld")
	b := filepath.Join(dir, "b.mld")
	writeFile(t, a, sampleContainer())
	writeFile(t, b, sampleContainer())

	jobs := filepath.Join(dir, "jobs.tsv")
	writeFile(t, jobs, []byte(strings.Join([]string{
		"LayerData\tScaleX\tScaleY\tOffsetX\tOffsetY\tOutput",
		a + "\t1\t1\t0\t0\t",
		"# skipped",
		b + "\t2\t-2\t100\t100\t" + filepath.Join(dir, "b-out.geojson"),
	}, "\n")+"\n"))

	for _, workers := range []string{"1", "4"} {
		var out, errOut bytes.Buffer
		code := run([]string{"batch", "--jobs", jobs, "--workers", workers}, &out, &errOut)
		if code != 0 {
			t.Fatalf("workers=%s: expected exit 0, got %d: %s", workers, code, errOut.String())
		}
		if !strings.Contains(out.String(), "2 of 2 jobs converted") {
			t.Errorf("workers=%s: expected summary, got %q", workers, out.String())
		}
	}
	if n := featureCount(t, a+".geojson"); n != 2 {
		t.Errorf("Expected 2 features for a, got %d", n)
	}
	if n := featureCount(t, filepath.Join(dir, "b-out.geojson")); n != 2 {
		t.Errorf("Expected 2 features for b, got %d", n)
	}
}

func TestReadJobsErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"missing column", "LayerData\tScaleX\n"},
		{"bad number", "LayerData\tScaleX\tScaleY\tOffsetX\tOffsetY\na.mld\tx\t1\t0\t0\n"},
		{"empty input", "LayerData\tScaleX\tScaleY\tOffsetX\tOffsetY\n\t1\t1\t0\t0\n"},
		{"shared output", "LayerData\tScaleX\tScaleY\tOffsetX\tOffsetY\na.mld\t1\t1\t0\t0\na.mld\t1\t1\t0\t0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := readJobs(strings.NewReader(tt.in), true); err == nil {
				t.Errorf("Expected error")
			}
		})
	}
}

func TestReadJobs(t *testing.T) {
	in := "LayerData\tScaleX\tScaleY\tOffsetX\tOffsetY\n" +
		"s3://slides/a.mld\t0.5\t-0.5\t10\t20\n"

	jobs, err := readJobs(strings.NewReader(in), false)
	if err != nil {
		t.Fatalf("readJobs failed: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("Expected 1 job, got %d", len(jobs))
	}
	j := jobs[0]
	if !j.Input.S3 || j.Input.Bucket != "slides" || j.Output.Path != "a.mld.geojson" {
		t.Errorf("Expected s3 input with default output, got %+v", j)
	}
	if j.Transform.Scale.Y != -0.5 || j.Transform.Offset.X != 10 || j.Overwrite {
		t.Errorf("Unexpected job %+v", j)
	}
}

func TestDumpCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "slide.mld")
	writeFile(t, in, sampleContainer())

	var out, errOut bytes.Buffer
	if code := run([]string{"dump", "--objects", in}, &out, &errOut); code != 0 {
		t.Fatalf("Expected exit 0, got %d: %s", code, errOut.String())
	}

	for _, want := range []string{
		"Layers: 1 declared, 1 decoded",
		"=== Layer 0: ROI ===",
		"Polygon   : 2",
		"Line      : 1",
		"LayerConfigs: 6 bytes",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("Expected %q in dump output:\n%s", want, out.String())
		}
	}

	if code := run([]string{"dump"}, &out, &errOut); code != 2 {
		t.Errorf("Expected exit 2 without a file, got %d", code)
	}
	writeFile(t, filepath.Join(dir, "short.mld"), []byte("MLD"))
	if code := run([]string{"dump", filepath.Join(dir, "short.mld")}, &out, &errOut); code != 1 {
		t.Errorf("Expected exit 1 for a truncated header, got %d", code)
	}
}

func TestMaskCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "slide.mld")
	dest := filepath.Join(dir, "mask.tif")
	writeFile(t, in, sampleContainer())

	var out, errOut bytes.Buffer
	code := run([]string{"mask", "--in", in, "--out", dest,
		"--width", "20", "--height", "20",
		"--left", "0", "--right", "20", "--bottom", "20", "--top", "0"}, &out, &errOut)
	if code != 0 {
		t.Fatalf("Expected exit 0, got %d: %s", code, errOut.String())
	}

	f, err := os.Open(dest)
	if err != nil {
		t.Fatalf("Expected mask file: %v", err)
	}
	defer f.Close()
	img, err := tiff.Decode(f)
	if err != nil {
		t.Fatalf("tiff.Decode failed: %v", err)
	}
	if img.Bounds().Dx() != 20 || img.Bounds().Dy() != 20 {
		t.Errorf("Expected 20x20 mask, got %v", img.Bounds())
	}

	if code := run([]string{"mask", "--in", in, "--out", dest, "--kind", "blob", "--width", "1", "--height", "1", "--right", "1", "--bottom", "1"}, &out, &errOut); code != 2 {
		t.Errorf("Expected exit 2 for an unknown kind, got %d", code)
	}
}
