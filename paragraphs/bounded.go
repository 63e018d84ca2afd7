package paragraphs

// bounded 是容量固定的列表。容量对应显示硬件的固定上限，超出容量属于编程错误：
// uidebug 构建下立即 panic，发布构建下静默丢弃多出的元素。
type bounded[T any] struct {
	items []T
	limit int
}

func newBounded[T any](limit int) bounded[T] {
	return bounded[T]{items: make([]T, 0, limit), limit: limit}
}

// push 在容量允许时追加元素并返回 true。
func (b *bounded[T]) push(v T) bool {
	if len(b.items) >= b.limit {
		return false
	}
	b.items = append(b.items, v)
	return true
}

func (b *bounded[T]) mustPush(v T, msg string) {
	if !b.push(v) && Debug {
		panic("paragraphs: " + msg)
	}
}

func (b *bounded[T]) clear() { b.items = b.items[:0] }

func (b *bounded[T]) len() int { return len(b.items) }
