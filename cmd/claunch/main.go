package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/0x6d61/claunch/internal/assist"
	"github.com/0x6d61/claunch/internal/config"
	"github.com/0x6d61/claunch/internal/launcher"
	"github.com/0x6d61/claunch/internal/locate"
	"github.com/0x6d61/claunch/internal/tui"
	"github.com/0x6d61/claunch/internal/vault"
)

const version = "0.2.0"

func main() {
	var (
		configPath  = flag.String("config", "config/config.yaml", "設定ファイルのパス")
		vaultDir    = flag.String("vault", "", "vault ルートディレクトリ（設定より優先）")
		notePath    = flag.String("note", "", "vault 相対のノートパス（指定時は TUI を起動せず直接開く）")
		showVersion = flag.Bool("version", false, "バージョンを表示")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `📝 claunch — open a vault note in the Claude CLI, in a new Terminal tab

Usage:
  claunch [flags]

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Environment:
  CLAUNCH_VAULT   vault ルート（config の vault_root: "${CLAUNCH_VAULT}" から参照）

Examples:
  claunch                                  # TUI picker（vault は設定から）
  claunch -vault ~/Vault                   # vault を指定して起動
  claunch -note "Notes/Meeting (2025).md"  # TUI を使わず直接ターミナルへ
`)
	}
	flag.Parse()

	// .env があれば読み込む（CLAUNCH_VAULT 等）。無ければ無視。
	_ = godotenv.Load()

	if *showVersion {
		fmt.Println("claunch", version)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "設定エラー:", err)
		os.Exit(1)
	}

	rootDir := cfg.VaultRoot
	if *vaultDir != "" {
		rootDir = *vaultDir
	}
	if rootDir == "" {
		rootDir, err = os.Getwd()
		if err != nil {
			fmt.Fprintln(os.Stderr, "vault ルートを決定できません:", err)
			os.Exit(1)
		}
	}
	if !filepath.IsAbs(rootDir) {
		abs, err := filepath.Abs(rootDir)
		if err != nil {
			fmt.Fprintln(os.Stderr, "vault ルートを解決できません:", err)
			os.Exit(1)
		}
		rootDir = abs
	}

	root, err := vault.NewRoot(rootDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "vault エラー:", err)
		os.Exit(1)
	}

	searchDirs := cfg.SearchDirs
	if len(searchDirs) == 0 {
		searchDirs = locate.DefaultSearchDirs()
	}
	loc := locate.New(cfg.Binaries, searchDirs)
	ln := launcher.New(cfg.ArgMarker)

	// --- ヘッドレスモード ---
	if *notePath != "" {
		host := &cliHost{root: root, ref: vault.NewDocumentRef(*notePath)}
		svc := assist.NewService(host, loc, ln, cfg.Extensions)
		svc.Invoke(context.Background())
		if host.notified {
			os.Exit(1)
		}
		return
	}

	// --- TUI ---
	notes, err := vault.ListNotes(root, cfg.Extensions)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ノート一覧エラー:", err)
		os.Exit(1)
	}
	if len(notes) == 0 {
		fmt.Fprintf(os.Stderr, "vault にノートが見つかりません: %s\n", root.Dir())
		os.Exit(1)
	}

	m := tui.New(root, notes, func(h assist.Host) *assist.Service {
		return assist.NewService(h, loc, ln, cfg.Extensions)
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "TUI エラー:", err)
		os.Exit(1)
	}
}

// cliHost は -note 指定時の assist.Host 実装。
// 通知は stderr へ流し、失敗があったことを終了コードに反映する。
type cliHost struct {
	root     *vault.Root
	ref      vault.DocumentRef
	notified bool
}

func (h *cliHost) ActiveDocument() (vault.DocumentRef, bool) { return h.ref, true }

func (h *cliHost) Root() *vault.Root { return h.root }

func (h *cliHost) Notify(message string) {
	fmt.Fprintln(os.Stderr, message)
	h.notified = true
}
