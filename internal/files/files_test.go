package files

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpenInput_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")

	_, err := OpenInput(path, nil)
	var openErr *InputOpenError
	if !errors.As(err, &openErr) {
		t.Fatalf("expected *InputOpenError, got %T (%v)", err, err)
	}
	if openErr.Path != path {
		t.Errorf("Path = %q, want %q", openErr.Path, path)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected error to wrap fs.ErrNotExist: %v", err)
	}
	if want := "Failed to open '" + path + "' for reading."; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestOpenInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.txt")
	if err := os.WriteFile(path, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}

	rc, err := OpenInput(path, nil)
	if err != nil {
		t.Fatalf("OpenInput failed: %v", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hello" {
		t.Errorf("read %q", data)
	}
}

func TestCreateOutput_Truncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.h")
	if err := os.WriteFile(path, []byte(strings.Repeat("stale ", 100)), 0644); err != nil {
		t.Fatal(err)
	}

	wc, err := CreateOutput(path, nil)
	if err != nil {
		t.Fatalf("CreateOutput failed: %v", err)
	}
	if _, err := io.WriteString(wc, "fresh"); err != nil {
		t.Fatal(err)
	}
	if err := wc.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "fresh" {
		t.Errorf("file content = %q, want %q", data, "fresh")
	}
}

func TestCreateOutput_Unwritable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no", "such", "dir", "out.h")

	_, err := CreateOutput(path, nil)
	var openErr *OutputOpenError
	if !errors.As(err, &openErr) {
		t.Fatalf("expected *OutputOpenError, got %T (%v)", err, err)
	}
	if !strings.Contains(err.Error(), "for writing") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestStdio(t *testing.T) {
	var stdout bytes.Buffer
	for _, path := range []string{"", Stdio} {
		wc, err := CreateOutput(path, &stdout)
		if err != nil {
			t.Fatal(err)
		}
		io.WriteString(wc, "x")
		if err := wc.Close(); err != nil {
			t.Errorf("closing stdout wrapper should be a no-op: %v", err)
		}
	}
	if stdout.String() != "xx" {
		t.Errorf("stdout = %q, want %q", stdout.String(), "xx")
	}

	rc, err := OpenInput(Stdio, strings.NewReader("piped"))
	if err != nil {
		t.Fatal(err)
	}
	data, _ := io.ReadAll(rc)
	if string(data) != "piped" {
		t.Errorf("stdin = %q", data)
	}
	if err := rc.Close(); err != nil {
		t.Errorf("closing stdin wrapper should be a no-op: %v", err)
	}
}
