// Package binding 把外部数据绑定到屏幕文本：${path} 插值、
// 按路径取原始值，以及把不透明值按需转成文本的段落来源。
package binding

import (
	"encoding/base64"
	"regexp"
	"strconv"
	"strings"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Interpolate 将文本中的 ${path.to.value} 替换为 data 中的值，值按 Text 的规则转成文本。
// 若 data 为空或路径不存在，则返回原占位符。
func Interpolate(text string, data any) string {
	if data == nil {
		return text
	}
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		path, ok := placeholderPath(match)
		if !ok {
			return match
		}
		if val, ok := Resolve(data, path); ok {
			return Text(val)
		}
		return match
	})
}

// Value 在 text 恰好是一个占位符时返回它绑定的原始值（例如 []byte 保持为字节，
// 留给 Values 在排版时再转成十六进制）；否则返回插值后的字符串。
func Value(text string, data any) any {
	trimmed := strings.TrimSpace(text)
	if loc := exprPattern.FindStringIndex(trimmed); loc != nil && loc[0] == 0 && loc[1] == len(trimmed) {
		if path, ok := placeholderPath(trimmed); ok {
			if val, ok := Resolve(data, path); ok {
				return val
			}
		}
	}
	return Interpolate(text, data)
}

func placeholderPath(match string) (string, bool) {
	groups := exprPattern.FindStringSubmatch(match)
	if len(groups) < 2 {
		return "", false
	}
	path := strings.TrimSpace(groups[1])
	return path, path != ""
}

// Resolve 按 a.b[0].c 形式的路径在 data 中查找值。
func Resolve(data any, path string) (any, bool) {
	steps, ok := splitPath(path)
	if !ok {
		return nil, false
	}
	current := data
	for _, st := range steps {
		if current, ok = st.apply(current); !ok {
			return nil, false
		}
	}
	return current, true
}

// step 是路径中的一级：对象字段或数组下标。
type step struct {
	key   string
	index int
	isIdx bool
}

func (s step) apply(current any) (any, bool) {
	if !s.isIdx {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		val, ok := m[s.key]
		return val, ok
	}
	switch c := current.(type) {
	case []any:
		if s.index < len(c) {
			return c[s.index], true
		}
	case []byte:
		if s.index < len(c) {
			return int(c[s.index]), true
		}
	}
	return nil, false
}

// splitPath 把 a.b[0][1].c 拆成逐级的 step；下标必须是非负整数。
func splitPath(path string) ([]step, bool) {
	var steps []step
	for _, segment := range strings.Split(path, ".") {
		name, rest, found := strings.Cut(segment, "[")
		if name != "" {
			steps = append(steps, step{key: name})
		}
		if !found {
			continue
		}
		rest = "[" + rest
		for rest != "" {
			closing := strings.IndexByte(rest, ']')
			if rest[0] != '[' || closing < 0 {
				return nil, false
			}
			idx, err := strconv.Atoi(rest[1:closing])
			if err != nil || idx < 0 {
				return nil, false
			}
			steps = append(steps, step{index: idx, isIdx: true})
			rest = rest[closing+1:]
		}
	}
	return steps, true
}

// bytesKey 标记 JSON 中以 base64 编码的二进制值：{"$base64": "..."}。
const bytesKey = "$base64"

// DecodeBytes 递归地把 JSON 解码结果中的 {"$base64": "..."} 对象替换为 []byte。
// 解码失败的对象原样保留，显示时会变成 "ERROR"。
func DecodeBytes(data any) any {
	switch c := data.(type) {
	case map[string]any:
		if len(c) == 1 {
			if s, ok := c[bytesKey].(string); ok {
				if b, err := base64.StdEncoding.DecodeString(s); err == nil {
					return b
				}
				return c
			}
		}
		for k, v := range c {
			c[k] = DecodeBytes(v)
		}
		return c
	case []any:
		for i, v := range c {
			c[i] = DecodeBytes(v)
		}
		return c
	default:
		return data
	}
}
