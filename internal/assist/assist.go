// Package assist implements the single user-facing operation:
// launch the assistant CLI on the active document.
package assist

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/0x6d61/claunch/internal/vault"
)

// 失敗種別。すべて Invoke で回収され、通知1件と診断ログ1行に写像される。
// ホストへ伝播するものはない。リトライもしない。
var (
	ErrNoActiveDocument    = errors.New("no active document")
	ErrUnsupportedDocument = errors.New("unsupported document type")
	ErrBinaryNotFound      = errors.New("assistant binary not found")
	ErrInvalidPath         = errors.New("invalid document path")
	ErrLaunchFailure       = errors.New("terminal launch failed")
)

// Host はホストアプリケーション側のコラボレータ契約。
// TUI（本番）とテストダブルの両方が実装する。
type Host interface {
	// ActiveDocument は現在アクティブなドキュメントを返す。なければ ok=false。
	ActiveDocument() (ref vault.DocumentRef, ok bool)
	// Root は信頼境界の vault ルートを返す。
	Root() *vault.Root
	// Notify はユーザー向け通知を表示する。fire-and-forget。
	Notify(message string)
}

// Locator はバイナリ探索の契約。locate.Locator が満たす。
type Locator interface {
	GetOrLocate() (path string, ok bool)
}

// TerminalLauncher はターミナル投入の契約。launcher.Launcher が満たす。
type TerminalLauncher interface {
	Launch(ctx context.Context, dir, binary, noteArg string) error
}

// Service は1回の起動操作を合成する。
type Service struct {
	host     Host
	locator  Locator
	launcher TerminalLauncher
	allowed  map[string]bool // 許可拡張子（ドット付き小文字）

	logf func(format string, args ...any)
}

// NewService は Service を構築する。exts は許可するドキュメント拡張子。
func NewService(host Host, locator Locator, tl TerminalLauncher, exts []string) *Service {
	allowed := make(map[string]bool, len(exts))
	for _, e := range exts {
		allowed[strings.ToLower(e)] = true
	}
	return &Service{
		host:     host,
		locator:  locator,
		launcher: tl,
		allowed:  allowed,
		logf: func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		},
	}
}

// SetLogf は診断ログの出力先を差し替える（既定は stderr）。
func (s *Service) SetLogf(logf func(format string, args ...any)) {
	s.logf = logf
}

// Invoke は「アクティブドキュメントでアシスタントを起動」を実行する。
// 失敗はすべてここで回収し、ユーザー通知と stderr 診断に変換する。
func (s *Service) Invoke(ctx context.Context) {
	if err := s.launchActive(ctx); err != nil {
		s.logf("assist: %v", err)
		s.host.Notify(userMessage(err))
	}
}

// launchActive がパイプライン本体:
// ドキュメント参照 → パス検証 → バイナリ探索（キャッシュ）→ 起動。
func (s *Service) launchActive(ctx context.Context) error {
	ref, ok := s.host.ActiveDocument()
	if !ok {
		return ErrNoActiveDocument
	}
	if !s.allowed[ref.Ext] {
		return fmt.Errorf("%w: %q", ErrUnsupportedDocument, ref.Ext)
	}

	res := s.host.Root().Resolve(ref.RelPath)
	if !res.OK() {
		return fmt.Errorf("%w: %q (%s)", ErrInvalidPath, ref.RelPath, res.Reason)
	}

	binary, ok := s.locator.GetOrLocate()
	if !ok {
		return ErrBinaryNotFound
	}

	// 作業ディレクトリはドキュメントの親ディレクトリ
	dir := filepath.Dir(res.Path)
	if err := s.launcher.Launch(ctx, dir, binary, res.Path); err != nil {
		return fmt.Errorf("%w: %v", ErrLaunchFailure, err)
	}
	return nil
}

// userMessage は失敗種別をユーザー向けの1行に写像する。
func userMessage(err error) string {
	switch {
	case errors.Is(err, ErrNoActiveDocument):
		return "No active note to open."
	case errors.Is(err, ErrUnsupportedDocument):
		return "Only markdown notes can be opened with the assistant."
	case errors.Is(err, ErrInvalidPath):
		return "This note's path cannot be opened safely."
	case errors.Is(err, ErrBinaryNotFound):
		return "Assistant CLI not found. Install it or set binaries in config.yaml."
	case errors.Is(err, ErrLaunchFailure):
		return "Could not open Terminal. See console output for details."
	}
	return "Unexpected error. See console output for details."
}
