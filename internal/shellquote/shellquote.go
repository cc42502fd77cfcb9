// Package shellquote provides the two-stage escaping pipeline used to embed
// untrusted strings in a shell command inside an AppleScript string literal.
package shellquote

import "strings"

// Quote は raw を POSIX シェルの単一トークンとしてクォートする。
//
// 全体をシングルクォートで囲み、埋め込みのシングルクォートは
// 「閉じる → エスケープ済みクォート → 再び開く」の4文字列 '\'' に置換する。
// この形式はスペース・$・バッククォート・バックスラッシュ・両種クォートを
// 含む任意の文字列を、シェル解釈後にちょうど1引数として復元する。
func Quote(raw string) string {
	return "'" + strings.ReplaceAll(raw, "'", `'\''`) + "'"
}

// QuoteAll は各トークンを Quote してそのまま返す。
func QuoteAll(raws ...string) []string {
	quoted := make([]string, len(raws))
	for i, r := range raws {
		quoted[i] = Quote(r)
	}
	return quoted
}

// EscapeAppleScript は raw を AppleScript のダブルクォート文字列リテラルに
// 埋め込める形にエスケープする。
//
// AppleScript リテラルのメタ文字はバックスラッシュとダブルクォートの2つのみ。
// 両者をバックスラッシュでエスケープすれば、リテラルのパース結果は
// 元の文字列とバイト単位で一致する。
//
// Quote と合成して使う: EscapeAppleScript(Quote(x)) を AppleScript が
// デコードし、その結果をシェルが解釈すると、ちょうど x という1引数になる。
func EscapeAppleScript(raw string) string {
	var sb strings.Builder
	sb.Grow(len(raw))
	for _, r := range raw {
		if r == '\\' || r == '"' {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
