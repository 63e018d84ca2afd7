//go:build !uidebug

package paragraphs

// Debug 为 false 时容量溢出静默丢弃多出的元素。
const Debug = false
