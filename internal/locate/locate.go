// Package locate discovers the external assistant binary.
package locate

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// namePattern は候補バイナリ名の許可パターン。
// これに一致しない名前はファイルシステムにも PATH 検索にも渡さない。
var namePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// DefaultSearchDirs は既知のインストール先ディレクトリを返す。
// PATH 検索より先に、シェルを介さない存在チェックでここを探す。
func DefaultSearchDirs() []string {
	dirs := []string{
		"/opt/homebrew/bin",
		"/usr/local/bin",
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		dirs = append(dirs,
			filepath.Join(home, ".local", "bin"),
			filepath.Join(home, "bin"),
		)
	}
	return dirs
}

// Locator はアシスタント CLI の実体パスを探索し、プロセス生存期間
// いっぱい結果をメモ化する。「見つからなかった」も確定結果として
// キャッシュされる: セッション中に後から PATH に現れたバイナリは
// 再起動まで検出されない（意図的な単純化）。
type Locator struct {
	candidates []string
	searchDirs []string

	// 探索プリミティブ。テストから差し替えて呼び出し回数を検証する。
	statFile func(path string) bool
	lookPath func(name string) (string, error)
	logf     func(format string, args ...any)

	once     sync.Once
	cached   string
	cachedOK bool
}

// New は候補名と既知ディレクトリから Locator を構築する。
func New(candidates, searchDirs []string) *Locator {
	return &Locator{
		candidates: candidates,
		searchDirs: searchDirs,
		statFile:   statRegularFile,
		lookPath:   exec.LookPath,
		logf: func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		},
	}
}

// GetOrLocate はキャッシュを優先して実体パスを返す。
// 初回呼び出しだけが Locate を実行し、以後は成否に関わらず
// 凍結された結果を返す。sync.Once 経由なので並行呼び出しでも
// 探索は1度しか走らない。
func (l *Locator) GetOrLocate() (path string, ok bool) {
	l.once.Do(func() {
		l.cached, l.cachedOK = l.Locate()
	})
	return l.cached, l.cachedOK
}

// Locate は探索を実行する（メモ化なし）。
//
// 探索順:
//  1. 既知ディレクトリ × 候補名の直接存在チェック（シェル不使用）
//  2. exec.LookPath による PATH 検索
//
// 見つからない場合は ok=false。エラーは返さない設計。
func (l *Locator) Locate() (path string, ok bool) {
	for _, name := range l.candidates {
		if !namePattern.MatchString(name) {
			l.logf("locate: skipping invalid binary name %q", name)
			continue
		}
		for _, dir := range l.searchDirs {
			p := filepath.Join(dir, name)
			if l.statFile(p) {
				return p, true
			}
		}
	}

	for _, name := range l.candidates {
		if !namePattern.MatchString(name) {
			continue // 1周目でログ済み
		}
		p, err := l.lookPath(name)
		if err != nil {
			continue
		}
		// PATH に相対エントリがあると相対パスが返りうる。
		// 改行混入とあわせて不正形として拒否する。
		if !filepath.IsAbs(p) || strings.ContainsAny(p, "\n\r") {
			l.logf("locate: rejecting malformed lookup result %q for %q", p, name)
			continue
		}
		return p, true
	}
	return "", false
}

// statRegularFile は path が通常ファイルとして存在するかを返す。
func statRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
