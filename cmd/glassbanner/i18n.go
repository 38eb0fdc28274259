// Package main provides localization for the glassbanner CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Configuration": "設定ファイル",
		"Output":        "出力先",
		"Content":       "内容",
		"Size and Crop": "サイズと切り抜き",
		"Browser":       "ブラウザ設定",
		"Rendering":     "描画",
		"Debug":         "デバッグ",
		"Logging":       "ログ",

		// Root command
		"Compose frosted-glass banner images": "すりガラス風のバナー画像を作成",
		"glassbanner crops a background photo and renders a frosted-glass caption card on top of it.": "glassbannerは背景写真を切り抜き、その上にすりガラス風のキャプションカードを描画します。",

		// Export command
		"Export a banner as PNG": "バナーをPNGとして書き出し",
		"Render the banner at full resolution and save it as a PNG file.": "バナーを原寸で描画し、PNGファイルとして保存します。",

		// Preview command
		"Screenshot the live preview": "プレビューのスクリーンショットを撮影",
		"Render the preview page in headless Chrome and save a screenshot of the banner box.": "ヘッドレスChromeでプレビューを描画し、バナー部分のスクリーンショットを保存します。",
		"Screenshot PNG file path (required)":                                                 "スクリーンショットのPNGファイルパス（必須）",

		// Version command
		"Show version information": "バージョン情報を表示",
		"glassbanner version %s":   "glassbanner バージョン %s",

		// Flags
		"Configuration file (YAML or TOML)":                      "設定ファイル（YAMLまたはTOML）",
		"Caption text, \\n starts a new line":                    "キャプション文字列（\\n で改行）",
		"Caption color (#rgb, #rrggbb, rgb() or rgba())":         "文字色（#rgb, #rrggbb, rgb() または rgba()）",
		"Card tint color (#rgb, #rrggbb, rgb() or rgba())":       "カードの色味（#rgb, #rrggbb, rgb() または rgba()）",
		"TTF or OTF font file for the caption":                   "キャプション用のTTF/OTFフォントファイル",
		"Fixed banner width (500-10000, 0 = auto)":               "バナーの固定幅（500-10000、0 = 自動）",
		"Fixed banner height (140-1000, 0 = auto, default: 320)": "バナーの固定高さ（140-1000、0 = 自動、デフォルト: 320）",
		"Horizontal focal point in percent":                      "水平方向の焦点（パーセント）",
		"Vertical focal point in percent":                        "垂直方向の焦点（パーセント）",
		"Measure the preview in headless Chrome":                 "ヘッドレスChromeでプレビューを計測",
		"Path to Chrome executable":                              "Chrome実行ファイルのパス",
		"Run browser in non-headless mode":                       "ブラウザを非ヘッドレスモードで実行",
		"Output PNG file path":                                   "出力PNGファイルパス",
		"Directory for the generated file name":                  "自動生成ファイル名の保存先ディレクトリ",
		"Output export summary to file (Markdown format)":        "書き出しサマリーをファイルに出力（Markdown形式）",
		"Noise seed for reproducible output (0 = random)":        "再現用のノイズシード（0 = ランダム）",
		"Compositing workers (default: number of CPUs)":          "合成ワーカー数（デフォルト: CPU数）",
		"Enable debug output":                                    "デバッグ出力を有効化",
		"Directory for debug output":                             "デバッグ出力のディレクトリ",
		"Log level (debug, info, warn, error)":                   "ログレベル（debug, info, warn, error）",
		"Suppress all log output":                                "全てのログ出力を抑制",

		// Runtime messages
		"Preview saved to %s":         "プレビューを %s に保存しました",
		"Preview failed: %v":          "プレビューに失敗しました: %v",
		"Summary saved to %s":         "サマリーを %s に保存しました",
		"Failed to write summary: %s": "サマリーの書き込みに失敗しました: %s",

		// Summary content
		"Export Summary": "書き出しサマリー",
		"Generated":      "生成日時",
		"Effects":        "効果",
		"Geometry":       "配置",
		"Item":           "項目",
		"Value":          "値",

		// Output section
		"File":        "ファイル",
		"Banner Size": "バナーサイズ",
		"File Size":   "ファイルサイズ",
		"Render Time": "描画時間",

		// Content section
		"Caption":    "キャプション",
		"Lines":      "行数",
		"Text Color": "文字色",
		"Tint Color": "カードの色味",

		// Geometry section
		"Source Image": "元画像",
		"Preview Size": "プレビューサイズ",
		"Scale":        "倍率",
		"Card":         "カード",
		"Card Radius":  "カードの角丸",
		"Font Size":    "フォントサイズ",
		"Blur Radius":  "ぼかし半径",
		"Focal Point":  "焦点",

		// Effects section
		"Backdrop Blur": "背景ぼかし",
		"Layers":        "レイヤー数",
		"Applied":       "適用",
		"Unavailable":   "利用不可",
		"Generated by":  "生成:",
	})
}
