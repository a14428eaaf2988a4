package fuzztests

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10 // 64 KiB

// addLineSeeds adds every non-comment line of testdata/<name> as a seed.
func addLineSeeds(f *testing.F, name string) {
	// #nosec G304 -- path is a fixed repository location
	data, err := os.ReadFile(filepath.Join("..", "..", "testdata", name))
	if err != nil {
		return
	}
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		f.Add(clampSeed(line))
	}
}

// addBuiltinSeeds covers the edge cases even without testdata.
func addBuiltinSeeds(f *testing.F) {
	for _, s := range []string{"", "0", "-", "+", "-0", "65535", "65536", "ffff", "zz", "1_000", "１２３"} {
		f.Add([]byte(s))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
