package playground

import "github.com/zjrosen/vimline/internal/vim"

var modeLabels = map[string]map[vim.Mode]string{
	"en": {
		vim.ModeNormal:  "NORMAL",
		vim.ModeInsert:  "INSERT",
		vim.ModeVisual:  "VISUAL",
		vim.ModeReplace: "REPLACE",
	},
	"es": {
		vim.ModeNormal:  "NORMAL",
		vim.ModeInsert:  "INSERTAR",
		vim.ModeVisual:  "VISUAL",
		vim.ModeReplace: "REEMPLAZAR",
	},
	"de": {
		vim.ModeNormal:  "NORMAL",
		vim.ModeInsert:  "EINFÜGEN",
		vim.ModeVisual:  "VISUELL",
		vim.ModeReplace: "ERSETZEN",
	},
	"zh": {
		vim.ModeNormal:  "普通",
		vim.ModeInsert:  "插入",
		vim.ModeVisual:  "可视",
		vim.ModeReplace: "替换",
	},
}

// ModeLabel returns the indicator text for m in lang, falling back to
// English for unknown languages.
func ModeLabel(lang string, m vim.Mode) string {
	labels, ok := modeLabels[lang]
	if !ok {
		labels = modeLabels["en"]
	}
	if label, ok := labels[m]; ok {
		return label
	}
	return m.String()
}
