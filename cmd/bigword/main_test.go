package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runCLI executes the CLI with an empty config and colors off.
func runCLI(t *testing.T, stdin string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "bigword.toml")
	if err := os.WriteFile(cfgPath, nil, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return runWithConfig(t, cfgPath, stdin, args...)
}

func runWithConfig(t *testing.T, cfgPath, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	full := append([]string{"--color=off", "--config", cfgPath}, args...)
	code := run(context.Background(), full, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestEvalArgs(t *testing.T) {
	code, out, errOut := runCLI(t, "", "eval", "--", "2*3+4", "let x = 16#ff", "x*x", "-7 / 2", "-7 % 2")
	if code != 0 {
		t.Fatalf("exit %d, stderr %q", code, errOut)
	}
	want := "10\nx = 255\n65025\n-3\n-1\n"
	if out != want {
		t.Fatalf("stdout = %q, want %q", out, want)
	}
}

func TestEvalLeadingZeros(t *testing.T) {
	code, out, errOut := runCLI(t, "", "eval", "0007", "000 + 0001", "0000000000000000000065536 * 2")
	if code != 0 {
		t.Fatalf("exit %d, stderr %q", code, errOut)
	}
	want := "7\n1\n131072\n"
	if out != want {
		t.Fatalf("stdout = %q, want %q", out, want)
	}
}

func TestEvalStdin(t *testing.T) {
	src := "# comment\nlet a = 12345678901234567890\n\na * a\n_ - 1\n"
	code, out, errOut := runCLI(t, src, "eval", "--out", "16")
	if code != 0 {
		t.Fatalf("exit %d, stderr %q", code, errOut)
	}
	want := "a = ab54a98ceb1f0ad2\n" +
		"72aa3681f6e120d4a3ff1b512b511444\n" +
		"72aa3681f6e120d4a3ff1b512b511443\n"
	if out != want {
		t.Fatalf("stdout = %q, want %q", out, want)
	}
}

func TestEvalDivisionByZero(t *testing.T) {
	code, _, errOut := runCLI(t, "", "eval", "1 + 10 / 0")
	if code != 1 {
		t.Fatalf("exit %d, want 1", code)
	}
	if !strings.Contains(errOut, "division by zero") {
		t.Fatalf("stderr = %q", errOut)
	}
}

func TestEvalUsesConfigBase(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "bigword.toml")
	if err := os.WriteFile(cfgPath, []byte("[calc]\nbase = 16\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	code, out, errOut := runWithConfig(t, cfgPath, "", "eval", "1f + 1")
	if code != 0 || out != "32\n" {
		t.Fatalf("exit %d, stdout %q, stderr %q", code, out, errOut)
	}
}

func TestBadConfigFails(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "bigword.toml")
	if err := os.WriteFile(cfgPath, []byte("[calc]\nbase = 99\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	code, _, errOut := runWithConfig(t, cfgPath, "", "selfcheck")
	if code != 1 || !strings.Contains(errOut, "[calc].base") {
		t.Fatalf("exit %d, stderr %q", code, errOut)
	}
}

func TestConvert(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"convert", "ff", "--from", "16", "--to", "2"}, "11111111\n"},
		{[]string{"convert", "--", "-65536"}, "-10000\n"},
		{[]string{"convert", "１２３", "--to", "10"}, "123\n"},
		{[]string{"convert", "65536", "--dump"}, "10000\n+[0001 0000]\n"},
		{[]string{"convert", "000100", "--to", "16"}, "64\n"},
		{[]string{"convert", "--", "-000"}, "0\n"},
	}
	for _, tt := range tests {
		code, out, errOut := runCLI(t, "", tt.args...)
		if code != 0 || out != tt.want {
			t.Fatalf("%v: exit %d, stdout %q, stderr %q, want %q", tt.args, code, out, errOut, tt.want)
		}
	}

	if code, _, errOut := runCLI(t, "", "convert", "12z"); code != 1 || !strings.Contains(errOut, "invalid") {
		t.Fatalf("bad numeral: exit %d, stderr %q", code, errOut)
	}
	if code, _, _ := runCLI(t, "", "convert", "1", "--to", "37"); code != 1 {
		t.Fatalf("base 37 accepted")
	}
}

func TestChecksum(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"checksum", "100", "--prime", "7"}, "2\n"},
		{[]string{"checksum", "--prime", "7", "--", "-1"}, "6\n"},
		{[]string{"checksum", "--prime", "7", "--text", "--", "-1"}, "6\n"},
		{[]string{"checksum", "ff", "--prime", "13", "--base", "16", "--text"}, "8\n"},
		{[]string{"checksum", "0000100", "--prime", "7"}, "2\n"},
	}
	for _, tt := range tests {
		code, out, errOut := runCLI(t, "", tt.args...)
		if code != 0 || out != tt.want {
			t.Fatalf("%v: exit %d, stdout %q, stderr %q, want %q", tt.args, code, out, errOut, tt.want)
		}
	}
	if code, _, _ := runCLI(t, "", "checksum", "5", "--prime", "0"); code != 1 {
		t.Fatalf("prime 0 accepted")
	}
}

func TestCheckPlain(t *testing.T) {
	code, out, errOut := runCLI(t, "", "check", "--ui", "off", "--iterations", "5", "--only", "add,quorem")
	if code != 0 {
		t.Fatalf("exit %d, stderr %q", code, errOut)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "PASS add") || !strings.HasPrefix(lines[1], "PASS quorem") {
		t.Fatalf("stdout = %q", out)
	}

	code, out, _ = runCLI(t, "", "--quiet", "check", "--ui", "off", "--iterations", "3")
	if code != 0 || out != "" {
		t.Fatalf("quiet check: exit %d, stdout %q", code, out)
	}
}

func TestCheckList(t *testing.T) {
	code, out, _ := runCLI(t, "", "check", "--list")
	if code != 0 || !strings.Contains(out, "division-law\n") {
		t.Fatalf("exit %d, stdout %q", code, out)
	}
}

func TestStoreLifecycle(t *testing.T) {
	dir := t.TempDir()
	steps := []struct {
		args []string
		want string
	}{
		{[]string{"store", "--dir", dir, "put", "--", "big", "-123456789012345678901234567890"}, "stored big (7 words)\n"},
		{[]string{"store", "--dir", dir, "get", "big"}, "-123456789012345678901234567890\n"},
		{[]string{"store", "--dir", dir, "get", "big", "--base", "36"}, "-byw97um9s91dlz68tsi\n"},
		{[]string{"eval", "--load", "--dir", dir, "big + 1"}, "-123456789012345678901234567889\n"},
		{[]string{"store", "--dir", dir, "rm", "big"}, ""},
	}
	for _, st := range steps {
		code, out, errOut := runCLI(t, "", st.args...)
		if code != 0 || out != st.want {
			t.Fatalf("%v: exit %d, stdout %q, stderr %q, want %q", st.args, code, out, errOut, st.want)
		}
	}
	code, _, errOut := runCLI(t, "", "store", "--dir", dir, "get", "big")
	if code != 1 || !strings.Contains(errOut, "not found") {
		t.Fatalf("get after rm: exit %d, stderr %q", code, errOut)
	}
}

func TestSelfcheckAndVersion(t *testing.T) {
	code, out, _ := runCLI(t, "", "selfcheck")
	if code != 0 || !strings.HasPrefix(out, "ok platform assumptions hold (16-bit words, base 65536)") {
		t.Fatalf("selfcheck: exit %d, stdout %q", code, out)
	}
	code, out, _ = runCLI(t, "", "version", "--format", "json")
	if code != 0 || !strings.Contains(out, `"tool": "bigword"`) || !strings.Contains(out, `"word_bits": 16`) {
		t.Fatalf("version: exit %d, stdout %q", code, out)
	}
}

func TestFlagErrors(t *testing.T) {
	for _, args := range [][]string{
		{"--color=sometimes", "selfcheck"},
		{"check", "--ui", "maybe"},
		{"version", "--format", "xml"},
		{"--trace-level", "loud", "selfcheck"},
	} {
		var out, errOut bytes.Buffer
		if code := run(context.Background(), args, strings.NewReader(""), &out, &errOut); code != 1 {
			t.Fatalf("%v: exit %d, want 1", args, code)
		}
	}
}

func TestTraceToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.log")
	code, _, errOut := runCLI(t, "", "--trace", path, "--trace-level", "detail", "eval", "6*7")
	if code != 0 {
		t.Fatalf("exit %d, stderr %q", code, errOut)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read trace: %v", err)
	}
	for _, want := range []string{"command bigword eval", "item calc.eval"} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("trace missing %q:\n%s", want, data)
		}
	}
}

func TestEvalSessionFile(t *testing.T) {
	src, err := os.ReadFile(filepath.Join("..", "..", "testdata", "session.calc"))
	if err != nil {
		t.Fatalf("read session: %v", err)
	}
	code, out, errOut := runCLI(t, string(src), "eval")
	if code != 0 {
		t.Fatalf("exit %d, stderr %q", code, errOut)
	}
	want := "w = 65535\n65536\nbig = 18446744073709551615\n" +
		"340282366920938463426481119284349108225\n" +
		"5192296858534827627967546375798784\n" +
		"-11\n" +
		"f = 18364758544493064720\n18364758544493064720\n" +
		"2157792190\n2147483657\n1677025\n559008\n"
	if out != want {
		t.Fatalf("stdout =\n%s\nwant\n%s", out, want)
	}
}
