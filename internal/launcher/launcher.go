// Package launcher opens the assistant CLI in a macOS Terminal tab.
//
// 検証済みの部品（vault が解決したパス、locate が見つけたバイナリ）から
// シェルコマンドを合成し、AppleScript に包んで osascript で投入する。
// AppleScript は一時ファイルに書く: コマンドライン引数としてインライン化
// するとエスケープ層がもう1枚増えるため、ファイル渡しの方が頑健。
package launcher

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/0x6d61/claunch/internal/shellquote"
)

// tabSettleDelay は新規タブ生成キー入力後、コマンド投入までの待ち秒数。
// タブのフォーカス切り替わりを待つための固定値。
const tabSettleDelay = 0.4

// Launcher は Terminal への投入を担う。
type Launcher struct {
	marker string // CLI に渡す引数の先頭マーカー（通常 "@"）

	// osascript 実行部。テストから差し替える。
	runScript func(ctx context.Context, scriptPath string) error
	logf      func(format string, args ...any)
}

// New は引数マーカーを指定して Launcher を構築する。
func New(marker string) *Launcher {
	return &Launcher{
		marker:    marker,
		runScript: runOsascript,
		logf: func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		},
	}
}

// BuildCommand は cd <dir> && <binary> <marker+arg> のシェルコマンドを
// 合成する。各トークンは shellquote.Quote を通す。
func BuildCommand(dir, binary, arg, marker string) string {
	return "cd " + shellquote.Quote(dir) +
		" && " + shellquote.Quote(binary) +
		" " + shellquote.Quote(marker+arg)
}

// buildScript はシェルコマンドを AppleScript に埋め込む。
//
// Terminal に既存ウィンドウがあれば cmd-T で新規タブを合成して
// フロントウィンドウで実行、なければ do script が新規ウィンドウを開く。
// 状態遷移ではなく読み取りのみの分岐。
func buildScript(shellCmd string) string {
	embedded := shellquote.EscapeAppleScript(shellCmd)
	return fmt.Sprintf(`tell application "Terminal"
	activate
	if (count of windows) > 0 then
		tell application "System Events" to keystroke "t" using {command down}
		delay %g
		do script "%s" in front window
	else
		do script "%s"
	end if
end tell
`, tabSettleDelay, embedded, embedded)
}

// Launch は dir をカレントにして binary に marker 付きの noteArg を渡す
// コマンドを Terminal の新規タブ（またはウィンドウ）で起動する。
//
// 戻るのは osascript プロセスの終了時点。CLI 自体の起動は
// fire-and-forget であり、完了や成否は追跡しない。
// タイムアウトは設けない: 自動化層がハングすると本呼び出しも
// ハングする（既知の制限）。
func (l *Launcher) Launch(ctx context.Context, dir, binary, noteArg string) error {
	script := buildScript(BuildCommand(dir, binary, noteArg, l.marker))

	f, err := os.CreateTemp("", "claunch-*.scpt")
	if err != nil {
		return fmt.Errorf("launcher: create temp script: %w", err)
	}
	path := f.Name()
	defer func() {
		// 成否どちらの経路でも削除する。失敗はログのみ。
		if err := os.Remove(path); err != nil {
			l.logf("launcher: failed to remove temp script %s: %v", path, err)
		}
	}()

	if _, err := f.WriteString(script); err != nil {
		f.Close()
		return fmt.Errorf("launcher: write temp script: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("launcher: close temp script: %w", err)
	}

	if err := l.runScript(ctx, path); err != nil {
		return fmt.Errorf("launcher: terminal automation failed: %w", err)
	}
	return nil
}

// runOsascript は AppleScript ファイルを osascript で実行する。
// 標準出力・標準エラーは捕捉しない。
func runOsascript(ctx context.Context, scriptPath string) error {
	return exec.CommandContext(ctx, "osascript", scriptPath).Run()
}
