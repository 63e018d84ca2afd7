package layout

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// 文档中的长度可以带单位；排版本身只使用显示像素，换算依赖屏幕的像素密度。

// Unit 是长度在文档中书写时的单位。
type Unit int

const (
	UnitNone Unit = iota // 无单位，按像素处理
	UnitPX
	UnitPT
	UnitMM
)

const (
	// DefaultDPI 下 1pt 恰好等于 1px。
	DefaultDPI = 72.0

	mmPerInch = 25.4
	ptPerInch = 72.0
)

var unitSuffixes = []struct {
	suffix string
	unit   Unit
}{
	{"px", UnitPX},
	{"pt", UnitPT},
	{"mm", UnitMM},
}

func (u Unit) String() string {
	for _, s := range unitSuffixes {
		if s.unit == u {
			return s.suffix
		}
	}
	return ""
}

// Length 保留数值与原始单位。
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

func (l Length) IsZero() bool { return l.Value == 0 }

func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'f', -1, 64) + l.Unit.String()
}

// ToPX 按给定像素密度换算为像素，dpi 不大于 0 时使用 DefaultDPI。
func (l Length) ToPX(dpi float64) float64 {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	switch l.Unit {
	case UnitPT:
		return l.Value * dpi / ptPerInch
	case UnitMM:
		return l.Value * dpi / mmPerInch
	default:
		return l.Value
	}
}

// Pixels 返回四舍五入后的整数像素。
func (l Length) Pixels(dpi float64) int {
	return int(math.Round(l.ToPX(dpi)))
}

// ParseLength 解析 "12"、"12px"、"9pt"、"30mm" 等写法。
func ParseLength(value string) (Length, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{}, fmt.Errorf("长度为空")
	}
	unit := UnitNone
	for _, s := range unitSuffixes {
		if num, ok := strings.CutSuffix(v, s.suffix); ok {
			v, unit = strings.TrimSpace(num), s.unit
			break
		}
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return Length{}, fmt.Errorf("无法解析长度 %q", value)
	}
	if f < 0 || math.IsInf(f, 0) || math.IsNaN(f) {
		return Length{}, fmt.Errorf("长度 %q 超出范围", value)
	}
	return Length{Value: f, Unit: unit}, nil
}

// ParseRawLengthStr 与 ParseLength 相同，但解析失败时返回零长度。
func ParseRawLengthStr(value string) Length {
	l, err := ParseLength(value)
	if err != nil {
		return Length{}
	}
	return l
}
