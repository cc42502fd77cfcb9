package tui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model and routes all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleResize(msg.Width, msg.Height)
		m.ready = true
		// 初回リサイズ時に選択中ノートのプレビューを読み込む
		if ref, ok := m.selectedNote(); ok {
			return m, previewCmd(m.bridge.Root(), ref, m.previewContentWidth())
		}
		return m, nil

	case launchDoneMsg:
		m.launching = false
		m.status, m.statusGood = statusForLaunch(msg)
		return m, nil

	case previewMsg:
		// 選択が既に移っていたら古いプレビューは捨てる
		if ref, ok := m.selectedNote(); ok && ref.RelPath == msg.rel {
			m.viewport.SetContent(msg.rendered)
			m.viewport.GotoTop()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey はキー入力を処理する。
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// リストのフィルタ入力中はすべてリストに委譲する
	if m.focus == FocusList && m.list.FilterState() == list.Filtering {
		return m.delegateToList(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "tab":
		if m.focus == FocusList {
			m.focus = FocusPreview
		} else {
			m.focus = FocusList
		}
		return m, nil

	case "enter":
		if m.focus != FocusList || m.launching {
			break
		}
		ref, ok := m.selectedNote()
		if !ok {
			return m, nil
		}
		m.launching = true
		m.status, m.statusGood = "Opening "+ref.RelPath+" ...", true
		return m, launchCmd(m.svc, m.bridge, ref)
	}

	switch m.focus {
	case FocusList:
		return m.delegateToList(msg)
	case FocusPreview:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// delegateToList はリストへキーを渡し、選択が動いたらプレビューを再読込する。
func (m Model) delegateToList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	before, hadBefore := m.selectedNote()

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	after, hasAfter := m.selectedNote()
	if hasAfter && (!hadBefore || after.RelPath != before.RelPath) {
		return m, tea.Batch(cmd, previewCmd(m.bridge.Root(), after, m.previewContentWidth()))
	}
	return m, cmd
}

// handleResize はウィンドウサイズ変更に合わせて各ペインを再配置する。
func (m *Model) handleResize(width, height int) {
	m.width = width
	m.height = height

	// ステータスバー1行 + 上下ボーダー2行ぶんを差し引く
	innerHeight := height - 3
	if innerHeight < 3 {
		innerHeight = 3
	}

	m.list.SetSize(listPaneOuterWidth-4, innerHeight)

	m.viewport.Width = m.previewContentWidth()
	m.viewport.Height = innerHeight
}

// previewContentWidth は右ペインのコンテンツ幅を返す。
func (m *Model) previewContentWidth() int {
	w := m.width - listPaneOuterWidth - 2
	if w < 20 {
		w = 20
	}
	return w
}
