// Package value 提供带单位前缀与舍入策略的数值类型。
//
// Value 包装一个字节数量（底层使用 [unit.Datasize]），渲染时按
// 前缀换算并四舍五入。前缀为 auto 时自动选择最大的可读单位。
package value

import (
	"math"
	"strconv"

	"github.com/martinlindhe/unit"
)

// Prefix 二进制单位前缀。
type Prefix string

// 支持的前缀集合。auto 表示渲染时自动选择。
const (
	PrefixByte Prefix = "B"
	PrefixKiB  Prefix = "KiB"
	PrefixMiB  Prefix = "MiB"
	PrefixGiB  Prefix = "GiB"
	PrefixTiB  Prefix = "TiB"
	PrefixAuto Prefix = "auto"
)

// Prefixes 按从小到大排列的固定前缀（不含 auto）。
var Prefixes = []Prefix{PrefixByte, PrefixKiB, PrefixMiB, PrefixGiB, PrefixTiB}

// ValidPrefix 判断 s 是否为合法前缀（含 auto）。
func ValidPrefix(s string) bool {
	switch Prefix(s) {
	case PrefixByte, PrefixKiB, PrefixMiB, PrefixGiB, PrefixTiB, PrefixAuto:
		return true
	}

	return false
}

// Value 带前缀与舍入策略的数量。
type Value struct {
	size   unit.Datasize
	prefix Prefix
	round  int
	suffix string // 渲染后缀，如速率的 "/s"
}

// NewBytes 以字节数构造 Value。
//
// round 为保留的小数位数，负值表示不舍入。
func NewBytes(n float64, prefix Prefix, round int) Value {
	return Value{size: unit.Datasize(n) * unit.Byte, prefix: prefix, round: round}
}

// NewRate 以字节/秒构造速率 Value，渲染时追加 "/s"。
func NewRate(n float64, prefix Prefix, round int) Value {
	v := NewBytes(n, prefix, round)
	v.suffix = "/s"

	return v
}

// Bytes 返回字节数。
func (v Value) Bytes() float64 {
	return v.size.Bytes()
}

// Resolve 返回换算后的数值与实际使用的前缀。
//
// prefix 为 auto 时选择数值不小于 1 的最大前缀。
func (v Value) Resolve() (float64, Prefix) {
	p := v.prefix
	if p == PrefixAuto || p == "" {
		p = PrefixByte
		for _, candidate := range Prefixes[1:] {
			if v.in(candidate) < 1 {
				break
			}
			p = candidate
		}
	}

	return v.in(p), p
}

// String 渲染为 "数值 前缀" 形式，如 "512.5 MiB"。
func (v Value) String() string {
	n, p := v.Resolve()
	if v.round >= 0 {
		n = Round(n, v.round)
	}

	return strconv.FormatFloat(n, 'f', -1, 64) + " " + string(p) + v.suffix
}

func (v Value) in(p Prefix) float64 {
	switch p {
	case PrefixKiB:
		return v.size.Kibibytes()
	case PrefixMiB:
		return v.size.Mebibytes()
	case PrefixGiB:
		return v.size.Gibibytes()
	case PrefixTiB:
		return v.size.Tebibytes()
	default:
		return v.size.Bytes()
	}
}

// Round 按 places 位小数四舍五入。
func Round(n float64, places int) float64 {
	if places < 0 {
		return n
	}
	shift := math.Pow(10, float64(places))

	return math.Round(n*shift) / shift
}
