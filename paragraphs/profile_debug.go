//go:build uidebug

package paragraphs

// Debug 打开额外的不变式断言，容量溢出时直接 panic。
const Debug = true
