package launcher

import "context"

// BuildScriptForTest は buildScript をテストから呼べるようにエクスポートする。
func BuildScriptForTest(shellCmd string) string {
	return buildScript(shellCmd)
}

// SetRunScriptForTest は osascript 実行部をテスト用に差し替える。
func (l *Launcher) SetRunScriptForTest(fn func(ctx context.Context, scriptPath string) error) {
	l.runScript = fn
}

// SetLogfForTest は診断ログ出力をテスト用に差し替える。
func (l *Launcher) SetLogfForTest(logf func(string, ...any)) {
	l.logf = logf
}
