package binding

import (
	"encoding/hex"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/ByLCY/folio/paragraphs"
)

// ErrorText 替代无法显示的值。
const ErrorText = "ERROR"

var printer = message.NewPrinter(language.English)

// Text 把单个值转成显示文本：nil 为空串，字符串原样，字节切片为小写十六进制，
// 数字带千分位，其余类型一律为 ErrorText。
func Text(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case []byte:
		return hexText(c, 0, nil)
	}
	if s, ok := numberText(v); ok {
		return s
	}
	return ErrorText
}

func numberText(v any) (string, bool) {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return printer.Sprint(number.Decimal(v)), true
	}
	return "", false
}

// hexText 把 b 从第 offset 个十六进制数字开始转成文本。offset 为奇数时从
// 某个字节的低半字节开始。结果先写进 buf；buf 不够时只输出 len(buf)/2 个字节，
// buf 为空时另行分配。
func hexText(b []byte, offset int, buf []byte) string {
	binOff, hexOff := offset/2, offset%2
	if binOff > len(b) {
		return ""
	}
	b = b[binOff:]
	if len(buf) < 2 {
		buf = make([]byte, 2*len(b))
	}
	i := hex.Encode(buf, b[:min(len(b), len(buf)/2)])
	if hexOff > i {
		return ""
	}
	return string(buf[hexOff:i])
}

// textAt 返回值 v 从 offset 开始的文本。
func textAt(v any, offset int, buf []byte) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c[offset:]
	case []byte:
		return hexText(c, offset, buf)
	}
	s := Text(v)
	if offset > len(s) {
		return ""
	}
	return s[offset:]
}

// Values 是内容为不透明值的段落来源，值在排版时才转成文本。
type Values struct {
	items []paragraphs.Paragraph[any]
	limit int
}

var _ paragraphs.Source = (*Values)(nil)

// NewValues 创建容量为 limit 的列表。
func NewValues(limit int) *Values {
	return &Values{items: make([]paragraphs.Paragraph[any], 0, limit), limit: limit}
}

// Add 追加段落，内容为 nil 时忽略。列表已满时按 paragraphs.Debug 决定 panic 还是丢弃。
func (v *Values) Add(p paragraphs.Paragraph[any]) *Values {
	if p.Content() == nil {
		return v
	}
	if len(v.items) >= v.limit {
		if paragraphs.Debug {
			panic("binding: value list is full")
		}
		return v
	}
	v.items = append(v.items, p)
	return v
}

func (v *Values) At(index, offset int, buf []byte) paragraphs.Paragraph[string] {
	p := v.items[index]
	return paragraphs.WithContent(p, textAt(p.Content(), offset, buf))
}

func (v *Values) Size() int { return len(v.items) }

// Items 返回列表内容的切片视图。
func (v *Values) Items() []paragraphs.Paragraph[any] { return v.items }
