package layout

import (
	"encoding/json"
	"os"

	"github.com/ByLCY/folio/geometry"
)

// PageTrace 记录一页中可见的文本块，用于调试 JSON。
type PageTrace struct {
	Page   int          `json:"page"`
	Blocks []BlockTrace `json:"blocks"`
	Icons  []IconTrace  `json:"icons,omitempty"`
}

// BlockTrace 对应一个 TextLayout 以及它实际绘制的各行。
type BlockTrace struct {
	Style  string        `json:"style"`
	Bounds geometry.Rect `json:"bounds"`
	Align  string        `json:"align"`
	Lines  []string      `json:"lines"`
}

// IconTrace 记录清单图标的位置。
type IconTrace struct {
	Name    string         `json:"name"`
	TopLeft geometry.Point `json:"topLeft"`
}

// Trace 描述 layout 绘制 text 时的结果。
func (l TextLayout) Trace(text string) BlockTrace {
	bt := BlockTrace{Bounds: l.Bounds, Align: l.Align.String()}
	if l.Style != nil {
		bt.Style = l.Style.Name
	}
	for _, line := range l.Lines(text) {
		bt.Lines = append(bt.Lines, line.Text)
	}
	return bt
}

// WriteDebugJSON 将各页的排版结果输出为 JSON，便于调试或可视化。
func WriteDebugJSON(pages []PageTrace, path string) error {
	if pages == nil {
		return nil
	}
	data, err := json.MarshalIndent(pages, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
