package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pysugar/code-facts/internal/facts"
)

func TestRun_Random(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := run(nil, &out, &errOut); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}

	found := false
	for _, f := range facts.All() {
		if strings.Contains(out.String(), f) {
			found = true
		}
	}
	if !found {
		t.Fatalf("output does not contain a catalog fact: %q", out.String())
	}
}

func TestRun_All(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := run([]string{"--all"}, &out, &errOut); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	for _, f := range facts.All() {
		if !strings.Contains(out.String(), f) {
			t.Fatalf("missing fact %q", f)
		}
	}
}

func TestRun_Help(t *testing.T) {
	for _, arg := range []string{"--help", "-h"} {
		var out, errOut bytes.Buffer
		if code := run([]string{arg}, &out, &errOut); code != 0 {
			t.Fatalf("%s: expected exit 0, got %d", arg, code)
		}
		if !strings.Contains(out.String(), "--all") {
			t.Fatalf("%s: expected usage text, got %q", arg, out.String())
		}
	}
}

func TestRun_Version(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := run([]string{"--version"}, &out, &errOut); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.HasPrefix(out.String(), "facts dev") {
		t.Fatalf("unexpected version output %q", out.String())
	}
}

func TestRun_UnknownFlag(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := run([]string{"--bogus"}, &out, &errOut); code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
}
