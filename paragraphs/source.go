package paragraphs

import "fmt"

// Source 是可按下标访问、长度已知的段落集合。
//
// At 返回第 index 段从字节偏移 offset 开始的文本视图；buf 是调用方可选提供的
// 临时缓冲区，实现可以用它来物化内容。At 必须是纯函数：相同参数多次调用得到
// 相同的文本，因为分页迭代与实际渲染会分别调用它。
type Source interface {
	At(index, offset int, buf []byte) Paragraph[string]
	Size() int
}

// Slice 把定长数组或切片作为段落来源。
type Slice[T Text] []Paragraph[T]

func (s Slice[T]) At(index, offset int, _ []byte) Paragraph[string] {
	return textFrom(s[index], offset)
}

func (s Slice[T]) Size() int { return len(s) }

// Single 把单个段落作为来源。
type Single[T Text] struct {
	Paragraph Paragraph[T]
}

// One 包装单个段落。
func One[T Text](p Paragraph[T]) Single[T] {
	return Single[T]{Paragraph: p}
}

func (s Single[T]) At(index, offset int, _ []byte) Paragraph[string] {
	if index != 0 {
		panic(fmt.Sprintf("paragraphs: single paragraph source has no index %d", index))
	}
	return textFrom(s.Paragraph, offset)
}

func (s Single[T]) Size() int { return 1 }

// 常用的有界列表容量。
const (
	VecShortCapacity = 8
	VecLongCapacity  = 32
)

// Vec 是容量有上限的段落列表。
type Vec[T Text] struct {
	items bounded[Paragraph[T]]
}

// NewVec 创建容量为 limit 的列表。
func NewVec[T Text](limit int) *Vec[T] {
	return &Vec[T]{items: newBounded[Paragraph[T]](limit)}
}

func NewVecShort[T Text]() *Vec[T] { return NewVec[T](VecShortCapacity) }
func NewVecLong[T Text]() *Vec[T]  { return NewVec[T](VecLongCapacity) }

// Add 追加段落并返回列表本身以便链式调用。内容为空的段落直接忽略；
// 列表已满时按构建配置处理（uidebug 下 panic，否则丢弃）。
func (v *Vec[T]) Add(p Paragraph[T]) *Vec[T] {
	if len(p.content) == 0 {
		return v
	}
	v.items.mustPush(p, "paragraph list is full")
	return v
}

// Update 替换第 index 段的内容。
func (v *Vec[T]) Update(index int, content T) {
	v.items.items[index].Update(content)
}

func (v *Vec[T]) At(index, offset int, _ []byte) Paragraph[string] {
	return textFrom(v.items.items[index], offset)
}

func (v *Vec[T]) Size() int { return v.items.len() }

// Items 返回列表内容的切片视图。
func (v *Vec[T]) Items() []Paragraph[T] { return v.items.items }

var (
	_ Source = Slice[string](nil)
	_ Source = Single[string]{}
	_ Source = (*Vec[string])(nil)
	_ Source = (*Vec[[]byte])(nil)
)
