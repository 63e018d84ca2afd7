// Package renderer 定义输出后端的契约：为排版提供字体度量，并把分页组件的
// 每一页输出为最终文件。
package renderer

import (
	"github.com/ByLCY/folio/component"
	"github.com/ByLCY/folio/display"
	"github.com/ByLCY/folio/geometry"
)

// FontSpec 描述排版所需的字体。Size 以显示像素为单位。
type FontSpec struct {
	Name string
	Src  string
	Size float64
}

// FontProvider 由输出后端实现，返回用该后端自身度量文本的字体，
// 保证排版时的测量与最终绘制一致。
type FontProvider interface {
	Font(spec FontSpec) (display.Font, error)
}

// Renderer 将分页组件的全部页面输出为最终文件，例如 PDF 或图像。
// Render 返回生成的二进制数据以及可能的错误。
type Renderer interface {
	Render(content component.PaginatedComponent, area geometry.Rect) ([]byte, error)
}

// EachPage 把 content 放进 area，然后依次切换到每一页并调用 fn。
// 结束后回到第一页。
func EachPage(content component.PaginatedComponent, area geometry.Rect, fn func(page int) error) error {
	content.Place(area)
	defer content.ChangePage(0)
	for page := range content.PageCount() {
		content.ChangePage(page)
		if err := fn(page); err != nil {
			return err
		}
	}
	return nil
}
