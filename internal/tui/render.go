package tui

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"

	"github.com/0x6d61/claunch/internal/vault"
)

// previewByteLimit はプレビューのために読む最大バイト数。
// 巨大ノートでイベントループを待たせないための上限。
const previewByteLimit = 64 * 1024

// loadPreview はノート本文を読み込み、ターミナル用にレンダリングして返す。
// パスは必ず vault の Resolve を通す（TUI 経由でも信頼境界は同じ）。
func loadPreview(root *vault.Root, ref vault.DocumentRef, width int) (string, error) {
	res := root.Resolve(ref.RelPath)
	if !res.OK() {
		return "", errors.New(res.Reason.String())
	}

	f, err := os.Open(res.Path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, previewByteLimit))
	if err != nil {
		return "", err
	}

	rendered, err := renderMarkdown(string(data), width)
	if err != nil {
		// フォールバック: プレーンテキスト
		return string(data), nil
	}
	return rendered, nil
}

// renderMarkdown は glamour を使って Markdown をターミナル用にレンダリングする。
// ダークスタイルを明示指定（TUI は常にダークターミナルで使用される想定）。
// WithAutoStyle() は非 TTY 環境（テスト・CI）で plain にフォールバックするため使用しない。
// glamour の dark スタイルは左右マージンを追加するため、width を縮小して渡す。
func renderMarkdown(text string, width int) (string, error) {
	wrapWidth := width - 4
	if wrapWidth < 20 {
		wrapWidth = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(wrapWidth),
	)
	if err != nil {
		return "", err
	}
	out, err := r.Render(text)
	if err != nil {
		return "", err
	}
	return out, nil
}

// statusForLaunch は起動完了メッセージをステータス行の文言に変換する。
func statusForLaunch(msg launchDoneMsg) (status string, good bool) {
	if msg.hasNotice {
		return msg.notice, false
	}
	return fmt.Sprintf("Opened in Terminal: %s", msg.rel), true
}
