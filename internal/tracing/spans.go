package tracing

// Span names.
const (
	SpanVimExecute = "vim.execute"
	SpanEditorKey  = "editor.key"
)

// Span attribute keys.
const (
	AttrCommandKeys = "vim.command.keys"
	AttrOperator    = "vim.operator"
	AttrCount       = "vim.count"
	AttrMode        = "vim.mode"
	AttrResolved    = "vim.resolved"
	AttrKey         = "editor.key"
	AttrSession     = "session.name"
)
