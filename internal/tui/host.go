package tui

import (
	"sync"

	"github.com/0x6d61/claunch/internal/vault"
)

// hostBridge は assist.Host の TUI 側実装。
//
// Bubble Tea の Model は値コピーで更新されるため、起動コマンドの
// goroutine と共有する状態はここに逃がす。アクティブドキュメントは
// 起動直前に差し込まれ、Notify の内容は完了メッセージ経由で
// ステータスバーへ運ばれる。
type hostBridge struct {
	root *vault.Root

	mu        sync.Mutex
	active    vault.DocumentRef
	hasActive bool
	notice    string
	hasNotice bool
}

func newHostBridge(root *vault.Root) *hostBridge {
	return &hostBridge{root: root}
}

// ActiveDocument は直近に setActive されたドキュメントを返す。
func (b *hostBridge) ActiveDocument() (vault.DocumentRef, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.active, b.hasActive
}

// Root は vault ルートを返す。
func (b *hostBridge) Root() *vault.Root { return b.root }

// Notify は通知をバッファする。fire-and-forget 契約なので上書きでよい。
func (b *hostBridge) Notify(message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.notice = message
	b.hasNotice = true
}

func (b *hostBridge) setActive(ref vault.DocumentRef) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.active = ref
	b.hasActive = true
}

// takeNotice はバッファ済み通知を取り出してクリアする。
func (b *hostBridge) takeNotice() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n, ok := b.notice, b.hasNotice
	b.notice, b.hasNotice = "", false
	return n, ok
}
