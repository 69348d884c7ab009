package fuzztests

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxFuzzInput = 1 << 16 // 64 KiB
	maxSeedBytes = 64 << 10
)

var languageSeeds = []string{
	"",
	"[proc,main] mes(\"Hello, world!\");",
	"[proc,add](int $a, int $b)(int) return(calc($a + $b));",
	"#id: 12\n[clientscript,c](int $x) if ($x > 0) { mes(\"<tostring($x)>\"); }",
	"[label,l] def_int $i = 0; while ($i < 10) { $i = calc($i + 1); }",
	"[proc,s](int $k) switch_int ($k) { case 1, 2 : mes(\"a\"); case default : return; }",
	"[proc,arr] def_int $n = 3; def_intarray $a($n); $a(0) = 1;",
	"[proc,h] if_sethook(~h, build);",
	"[proc,g] %gold = calc(%gold * 2); ^max;",
	"[proc,u] \"unterminated",
	"[proc,k](string $s)(string, int) return($s, 1",
	"[", "[proc", "[proc,]", "]]]]", "if (", "((((((", "$$$$", "\"<\"", "//", "/* open",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.cs2 файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".cs2" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) > maxSeedBytes {
		src = src[:maxSeedBytes]
	}
	return bytes.Clone(src)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return bytes.Clone(input)
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(bytes.Clone(input[:maxLen]), "..."...)
}
