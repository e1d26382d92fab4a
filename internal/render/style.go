// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import "html/template"

// stylesheet is prepended to the back field when RenderConfig.InlineStyle
// is set. Anki note types can style the same classes instead.
const stylesheet template.HTML = `<style>` +
	`.dict-entry{font-family:"Helvetica Neue",Arial,sans-serif;line-height:1.6;padding:12px;border-radius:8px;background:#f8f9fa;text-align:left}` +
	`.headword{font-size:1.4em;font-weight:bold;color:#2c3e50}` +
	`.note{color:#6c757d;font-style:italic}` +
	`.section{margin:8px 0;padding:6px 8px;border-left:3px solid #007bff;background:#fff;border-radius:4px}` +
	`.phonetic{color:#6c757d;font-family:"Courier New",monospace}` +
	`.pos-item,.freq-item,.form-item{display:inline-block;margin:2px 6px 2px 0;padding:2px 8px;border-radius:4px;background:#e9ecef;font-size:.9em}` +
	`.sense-pos{color:#28a745;font-weight:500}` +
	`.translation{color:#d63384}` +
	`.definition{color:#0d6efd}` +
	`.detail{color:#495057;font-size:.9em}` +
	`.source{color:#6c757d}` +
	`.highlight{color:#d63384;font-weight:bold}` +
	`</style>`
