// Package fonts 提供内置字体，并按统一的 src 语法加载字体文件。
package fonts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-fonts/latin-modern/lmmono10regular"
	"github.com/go-fonts/latin-modern/lmroman10bold"
	"github.com/go-fonts/latin-modern/lmroman10regular"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Default 是未声明字体时使用的内置字体。
const Default = "goregular"

var builtin = map[string][]byte{
	"goregular":   goregular.TTF,
	"gobold":      gobold.TTF,
	"goitalic":    goitalic.TTF,
	"gomono":      gomono.TTF,
	"gomonobold":  gomonobold.TTF,
	"lmroman":     lmroman10regular.TTF,
	"lmromanbold": lmroman10bold.TTF,
	"lmmono":      lmmono10regular.TTF,
}

// Names 返回所有内置字体名，按字母排序。
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsBuiltin 报告 src 是否指向内置字体。
func IsBuiltin(src string) bool {
	return strings.HasPrefix(src, "builtin:") || strings.HasPrefix(src, "embed:")
}

// Load 返回字体的字节数据。src 可写为 "builtin:gomono"（"embed:" 前缀等价），
// 其余情况按文件路径读取，相对路径以 baseDir 为基准；src 为空时返回默认字体。
func Load(src, baseDir string) ([]byte, error) {
	if src == "" {
		return builtin[Default], nil
	}
	if IsBuiltin(src) {
		name := strings.ToLower(src[strings.IndexByte(src, ':')+1:])
		if name == "" {
			name = Default
		}
		data, ok := builtin[name]
		if !ok {
			return nil, fmt.Errorf("未知的内置字体 %s（可用：%s）", name, strings.Join(Names(), ", "))
		}
		return data, nil
	}
	path := src
	if !filepath.IsAbs(path) && baseDir != "" {
		path = filepath.Join(baseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取字体 %s 失败: %w", path, err)
	}
	return data, nil
}
