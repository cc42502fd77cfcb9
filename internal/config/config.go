package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// AppConfig は config/config.yaml の統合設定構造
type AppConfig struct {
	// VaultRoot は信頼境界となる vault のルート。${VAR} 展開対象。
	VaultRoot string `yaml:"vault_root"`
	// Binaries はアシスタント CLI の候補バイナリ名（優先順）。
	Binaries []string `yaml:"binaries"`
	// SearchDirs は PATH 検索より先に調べる既知のインストール先。
	SearchDirs []string `yaml:"search_dirs"`
	// ArgMarker は CLI に渡すパス引数の先頭マーカー。
	// 全バージョンの CLI で必須かは未確認のため設定可能にしてある。
	ArgMarker string `yaml:"arg_marker"`
	// Extensions は起動対象として許可するドキュメント拡張子。
	Extensions []string `yaml:"extensions"`
}

// applyDefaults はゼロ値のフィールドにデフォルト値を適用する
func (c *AppConfig) applyDefaults() {
	if len(c.Binaries) == 0 {
		c.Binaries = []string{"claude", "claude-code"}
	}
	if c.ArgMarker == "" {
		c.ArgMarker = "@"
	}
	if len(c.Extensions) == 0 {
		c.Extensions = []string{".md"}
	}
}

// Load は config/config.yaml を読み込む。
// vault_root と search_dirs の ${VAR} 環境変数を展開する。
// ファイルが存在しない場合はデフォルトの AppConfig を返す。
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := &AppConfig{}
			cfg.applyDefaults()
			return cfg, nil
		}
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	// 環境変数を展開
	cfg.VaultRoot = expandEnvString(cfg.VaultRoot)
	for i := range cfg.SearchDirs {
		cfg.SearchDirs[i] = expandEnvString(cfg.SearchDirs[i])
	}

	// デフォルト値の適用
	cfg.applyDefaults()

	return &cfg, nil
}

// expandEnvString は文字列内の ${VAR} をホスト環境変数で展開する
func expandEnvString(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		return os.Getenv(varName)
	})
}
