// Package vault models the note store: a trusted root directory and the
// documents inside it. All attacker-influenced relative paths pass through
// Root.Resolve before participating in any filesystem or shell operation.
package vault

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// RejectReason は Resolve が相対パスを拒否した理由。
type RejectReason int

const (
	RejectNone        RejectReason = iota // 拒否なし（解決成功）
	RejectEmpty                           // 空パス
	RejectAbsolute                        // 相対パスとして渡されたが絶対パス
	RejectTraversal                       // 正規化後も .. セグメントが残る
	RejectOutsideRoot                     // 解決結果が root の外
)

// String は診断ログ用の短い説明を返す。
func (r RejectReason) String() string {
	switch r {
	case RejectNone:
		return "ok"
	case RejectEmpty:
		return "empty path"
	case RejectAbsolute:
		return "absolute path not allowed"
	case RejectTraversal:
		return "parent traversal not allowed"
	case RejectOutsideRoot:
		return "resolves outside vault root"
	}
	return "unknown"
}

// Result は Resolve のタグ付き結果。例外は投げない設計で、
// 呼び出し側に OK/Rejected の分岐を強制する。
type Result struct {
	Path   string // 解決済み絶対パス（OK のときのみ有効）
	Reason RejectReason
}

// OK は解決が成功したかを返す。
func (r Result) OK() bool { return r.Reason == RejectNone }

// DocumentRef は vault 内の1ドキュメントへの参照。
type DocumentRef struct {
	RelPath string // root からの相対パス
	Ext     string // 拡張子（ドット付き、小文字）
}

// NewDocumentRef は相対パスから DocumentRef を作る。
func NewDocumentRef(rel string) DocumentRef {
	return DocumentRef{
		RelPath: rel,
		Ext:     strings.ToLower(filepath.Ext(rel)),
	}
}

// Root は信頼境界となる vault のルートディレクトリ。
// セッション開始時に1度だけ構築し、以後のパス解決はすべてここを通す。
type Root struct {
	dir string
}

// NewRoot は絶対パス dir から Root を構築する。
func NewRoot(dir string) (*Root, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("vault: root path must not be empty")
	}
	if !filepath.IsAbs(dir) {
		return nil, fmt.Errorf("vault: root path must be absolute: %q", dir)
	}
	return &Root{dir: filepath.Clean(dir)}, nil
}

// Dir はルートの絶対パスを返す。
func (r *Root) Dir() string { return r.dir }

// Resolve は攻撃者が影響しうる相対パス rel を検証し、絶対パスへ解決する。
//
// 2段階チェック:
//  1. 相対形のまま検査 — 絶対パス・正規化後に残る .. セグメントを拒否。
//     結合前に拒否することで、filepath.Join が root を無視して
//     外へ抜ける形のパス構築を防ぐ。
//  2. 結合後の絶対形を独立に再検証 — root そのもの、または
//     root+セパレータ で始まることを要求する。
//
// 正規化の差異で片方のチェックをすり抜けても、もう片方が塞ぐ。
func (r *Root) Resolve(rel string) Result {
	if strings.TrimSpace(rel) == "" {
		return Result{Reason: RejectEmpty}
	}
	if filepath.IsAbs(rel) {
		return Result{Reason: RejectAbsolute}
	}

	cleaned := filepath.Clean(rel)
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return Result{Reason: RejectTraversal}
	}

	joined := filepath.Clean(filepath.Join(r.dir, cleaned))
	if joined != r.dir && !strings.HasPrefix(joined, r.dir+string(filepath.Separator)) {
		return Result{Reason: RejectOutsideRoot}
	}
	return Result{Path: joined}
}

// ListNotes は root 以下を辿り、exts（ドット付き小文字）に一致する
// ドキュメントの DocumentRef を相対パス順で返す。
// ドットで始まるディレクトリ（.obsidian 等）は降りない。
func ListNotes(root *Root, exts []string) ([]DocumentRef, error) {
	allowed := make(map[string]bool, len(exts))
	for _, e := range exts {
		allowed[strings.ToLower(e)] = true
	}

	var refs []DocumentRef
	err := filepath.WalkDir(root.Dir(), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != root.Dir() && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !allowed[strings.ToLower(filepath.Ext(name))] {
			return nil
		}
		rel, err := filepath.Rel(root.Dir(), path)
		if err != nil {
			return err
		}
		refs = append(refs, NewDocumentRef(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("vault: walk %s: %w", root.Dir(), err)
	}
	return refs, nil
}
