package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Exporting %s...":                 "%s を書き出し中...",
		"Export saved to %s":              "書き出し結果を %s に保存しました",
		"Export completed in %d ms":       "書き出しが %d ms で完了しました",
		"Export aborted: %v":              "書き出しを中止しました: %v",
		"Interrupted, shutting down...":   "中断されました。シャットダウン中...",
		"Background decoded: %dx%d":       "背景画像をデコードしました: %dx%d",
		"Preview measured: box %.0fx%.0f": "プレビュー計測完了: ボックス %.0fx%.0f",

		// Preview meter
		"Launching browser for preview measurement": "プレビュー計測のためブラウザを起動中",
		"Preview card %.1fx%.1f at %.1f,%.1f":       "プレビューカード %.1fx%.1f 位置 %.1f,%.1f",
		"Browser closed":                            "ブラウザを閉じました",

		// Geometry stage
		"Resolved %dx%d at scale %.3f": "%dx%d に解決しました (倍率 %.3f)",

		// Crop stage
		"Cover placement %.1f,%.1f size %.1fx%.1f": "カバー配置 %.1f,%.1f サイズ %.1fx%.1f",

		// Glass stage
		"Glass panel %dx%d, blur %.1f px, padding %d px":    "ガラスパネル %dx%d, ぼかし %.1f px, 余白 %d px",
		"Blur unavailable, rendering the card without blur": "ぼかしが利用できません。ぼかしなしでカードを描画します",
		"Blur failed, rendering the card without blur: %v":  "ぼかしに失敗しました。ぼかしなしでカードを描画します: %v",

		// Caption stage
		"Caption %d line(s) at %.1f px, first baseline %.1f": "キャプション %d 行 (%.1f px), 最初のベースライン %.1f",
		"Empty caption, nothing to draw":                     "キャプションが空のため描画しません",
		"Caption shadow %s drawn without blur: %v":           "キャプションの影 %s をぼかしなしで描画しました: %v",

		// Composite stage
		"Compositing %d layers with %d workers":  "%d レイヤーを %d ワーカーで合成中",
		"Composition completed: %dx%d, %d bytes": "合成が完了しました: %dx%d, %d バイト",

		// User notices
		"Please select a background image first.":   "先に背景画像を選択してください。",
		"The background image could not be loaded.": "背景画像を読み込めませんでした。",
		"The banner could not be exported: %s":      "バナーを書き出せませんでした: %s",

		// Warnings
		"Failed to save debug output: %v": "デバッグ出力の保存に失敗しました: %v",

		// Errors
		"Failed to launch browser: %s": "ブラウザの起動に失敗しました: %s",
		"Failed to write output: %s":   "出力の書き込みに失敗しました: %s",
	})
}
