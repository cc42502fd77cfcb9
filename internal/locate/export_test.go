package locate

// SetProbesForTest は探索プリミティブをテスト用に差し替える。
func (l *Locator) SetProbesForTest(
	statFile func(string) bool,
	lookPath func(string) (string, error),
) {
	l.statFile = statFile
	l.lookPath = lookPath
}

// SetLogfForTest は診断ログ出力をテスト用に差し替える。
func (l *Locator) SetLogfForTest(logf func(string, ...any)) {
	l.logf = logf
}
