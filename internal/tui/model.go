// Package tui implements the Bubble Tea note picker for claunch.
package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/0x6d61/claunch/internal/assist"
	"github.com/0x6d61/claunch/internal/vault"
)

// FocusState tracks which pane has keyboard focus.
type FocusState int

const (
	FocusList    FocusState = iota // left pane: note list
	FocusPreview                   // right pane: markdown preview
)

// listPaneOuterWidth is the total rendered width of the left pane (borders included).
const listPaneOuterWidth = 40

// launchDoneMsg は起動コマンド完了の Bubble Tea メッセージ。
type launchDoneMsg struct {
	rel       string
	notice    string
	hasNotice bool
}

// previewMsg はプレビュー読み込み完了の Bubble Tea メッセージ。
type previewMsg struct {
	rel      string
	rendered string
}

// noteListItem wraps vault.DocumentRef to satisfy the list.Item interface.
type noteListItem struct {
	ref vault.DocumentRef
}

func (i noteListItem) Title() string {
	base := filepath.Base(i.ref.RelPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (i noteListItem) Description() string {
	dir := filepath.Dir(i.ref.RelPath)
	if dir == "." {
		return "/"
	}
	return dir
}

func (i noteListItem) FilterValue() string { return i.ref.RelPath }

// Model is the root Bubble Tea model for the claunch note picker.
type Model struct {
	width  int
	height int
	ready  bool
	focus  FocusState

	notes    []vault.DocumentRef
	list     list.Model
	viewport viewport.Model

	bridge *hostBridge
	svc    *assist.Service

	launching  bool
	status     string // 1行ステータス（通知 or 起動結果）
	statusGood bool
}

// New は note picker の Model を初期化する。
// buildService はホスト実装（hostBridge）を受け取って Service を組む
// ファクトリ。依存の組み立ては cmd 側が握る。
func New(root *vault.Root, notes []vault.DocumentRef, buildService func(assist.Host) *assist.Service) Model {
	items := make([]list.Item, len(notes))
	for i, n := range notes {
		items[i] = noteListItem{ref: n}
	}

	d := list.NewDefaultDelegate()
	d.ShowDescription = true
	d.Styles.SelectedTitle = d.Styles.SelectedTitle.Foreground(colorPrimary)
	d.Styles.SelectedDesc = d.Styles.SelectedDesc.Foreground(colorMuted)

	l := list.New(items, d, listPaneOuterWidth-4, 20)
	l.Title = "NOTES"
	l.SetShowHelp(false)
	l.Styles.Title = lipgloss.NewStyle().
		Foreground(colorTitle).
		Bold(true).
		Padding(0, 1)

	bridge := newHostBridge(root)

	return Model{
		notes:  notes,
		list:   l,
		focus:  FocusList,
		bridge: bridge,
		svc:    buildService(bridge),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// selectedNote returns the currently highlighted note, or ok=false.
func (m *Model) selectedNote() (vault.DocumentRef, bool) {
	item, ok := m.list.SelectedItem().(noteListItem)
	if !ok {
		return vault.DocumentRef{}, false
	}
	return item.ref, true
}

// launchCmd はアシスタント起動を非同期コマンドとして実行する。
// 起動後のキャンセルはしない設計なので context.Background を使う。
func launchCmd(svc *assist.Service, bridge *hostBridge, ref vault.DocumentRef) tea.Cmd {
	return func() tea.Msg {
		bridge.setActive(ref)
		svc.Invoke(context.Background())
		notice, has := bridge.takeNotice()
		return launchDoneMsg{rel: ref.RelPath, notice: notice, hasNotice: has}
	}
}

// previewCmd は選択ノートを読み込み glamour でレンダリングする。
func previewCmd(root *vault.Root, ref vault.DocumentRef, width int) tea.Cmd {
	return func() tea.Msg {
		body, err := loadPreview(root, ref, width)
		if err != nil {
			body = fmt.Sprintf("  (preview unavailable: %v)", err)
		}
		return previewMsg{rel: ref.RelPath, rendered: body}
	}
}
