package format

import (
	"fmt"
	"strconv"
	"strings"
)

// ═══════════════════════════════════════════════════════════════════════════
// 分词
// ═══════════════════════════════════════════════════════════════════════════

// Tokenize 将模板拆分为字面量与花括号表达式两类 token。
//
// 扫描时维护嵌套层级计数，内层花括号不会截断表达式；
// 所有 token 按原文拼接后与输入逐字节一致。
//
// 不配对的 "{" 会把剩余输入整体收进最后一个 token，
// "}" 在层级为 0 时按普通字符处理。
func Tokenize(template string) []string {
	var tokens []string
	var buf strings.Builder
	buf.Grow(len(template))

	level := 0
	for i := 0; i < len(template); i++ {
		ch := template[i]
		switch ch {
		case '{':
			if level == 0 && buf.Len() > 0 {
				tokens = append(tokens, buf.String())
				buf.Reset()
			}
			level++
			buf.WriteByte(ch)
		case '}':
			buf.WriteByte(ch)
			if level > 0 {
				level--
				if level == 0 {
					tokens = append(tokens, buf.String())
					buf.Reset()
				}
			}
		default:
			buf.WriteByte(ch)
		}
	}

	if buf.Len() > 0 {
		tokens = append(tokens, buf.String())
	}

	return tokens
}

// ═══════════════════════════════════════════════════════════════════════════
// 表达式解析
// ═══════════════════════════════════════════════════════════════════════════

// Expression 一条已解析的模板表达式。
//
// 形如 {domain.info}、{domain[option].info}、{domain.info?alt}。
// Option 为 nil 表示未携带方括号限定符。
type Expression struct {
	Domain       string
	Option       *string
	Info         string
	Alternate    string
	HasAlternate bool
}

func isWordChar(ch byte) bool {
	return (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z') ||
		(ch >= '0' && ch <= '9') || ch == '_'
}

func scanWord(s string, start int) int {
	i := start
	for i < len(s) && isWordChar(s[i]) {
		i++
	}

	return i
}

// ParseExpression 将一个表达式 token 解析为 [Expression]。
//
// 替代文本中的空占位符 "{}" 会在此处改写为对自身的引用，
// 使替代文本可以重新嵌入原值（携带 option 时一并保留）。
func ParseExpression(token string) (*Expression, error) {
	if len(token) < 2 || token[0] != '{' || token[len(token)-1] != '}' {
		return nil, fmt.Errorf("format: not a braced expression: %q", token)
	}
	inner := token[1 : len(token)-1]

	end := scanWord(inner, 0)
	if end == 0 {
		return nil, fmt.Errorf("format: missing domain in %q", token)
	}
	expr := &Expression{Domain: inner[:end]}
	i := end

	if i < len(inner) && inner[i] == '[' {
		close := strings.IndexByte(inner[i:], ']')
		if close < 0 {
			return nil, fmt.Errorf("format: unclosed option in %q", token)
		}
		opt := inner[i+1 : i+close]
		expr.Option = &opt
		i += close + 1
	}

	if i >= len(inner) || inner[i] != '.' {
		return nil, fmt.Errorf("format: missing info in %q", token)
	}
	i++

	end = scanWord(inner, i)
	if end == i {
		return nil, fmt.Errorf("format: missing info in %q", token)
	}
	expr.Info = inner[i:end]
	i = end

	if i < len(inner) {
		if inner[i] != '?' {
			return nil, fmt.Errorf("format: unexpected %q in %q", string(inner[i]), token)
		}
		expr.HasAlternate = true
		expr.Alternate = strings.ReplaceAll(inner[i+1:], "{}", expr.selfReference())
	}

	return expr, nil
}

// selfReference 生成指向本表达式取值的最小表达式文本。
func (e *Expression) selfReference() string {
	var buf strings.Builder
	buf.WriteByte('{')
	buf.WriteString(e.Domain)
	if e.Option != nil {
		buf.WriteByte('[')
		buf.WriteString(*e.Option)
		buf.WriteByte(']')
	}
	buf.WriteByte('.')
	buf.WriteString(e.Info)
	buf.WriteByte('}')

	return buf.String()
}

// ═══════════════════════════════════════════════════════════════════════════
// 渲染
// ═══════════════════════════════════════════════════════════════════════════

// Resolver 将 (domain, info, option) 三元组解析为取值。
//
// option 为 nil 表示使用该域的默认配置。
// 取值为 nil 渲染为空串；未知 domain/info 应返回 error。
type Resolver interface {
	Query(domain, info string, option *string) (any, error)
}

// Tree 一棵绑定了 [Resolver] 的模板树。
type Tree struct {
	template string
	resolver Resolver
}

// NewTree 构造模板树。
func NewTree(template string, resolver Resolver) *Tree {
	return &Tree{template: template, resolver: resolver}
}

// Render 渲染整个模板。
//
// 按序拼接每个 token 的渲染结果；表达式解析失败或
// Resolver 报错时中止并返回该错误。
func (t *Tree) Render() (string, error) {
	var buf strings.Builder
	for _, token := range Tokenize(t.template) {
		if len(token) >= 2 && token[0] == '{' && token[len(token)-1] == '}' {
			rendered, err := t.renderExpression(token)
			if err != nil {
				return "", err
			}
			buf.WriteString(rendered)

			continue
		}
		buf.WriteString(token)
	}

	return buf.String(), nil
}

func (t *Tree) renderExpression(token string) (string, error) {
	expr, err := ParseExpression(token)
	if err != nil {
		return "", err
	}

	result, err := t.resolver.Query(expr.Domain, expr.Info, expr.Option)
	if err != nil {
		return "", err
	}

	switch v := result.(type) {
	case nil:
		// 数据缺失渲染为空，替代文本同样丢弃
		return "", nil
	case bool:
		if v && expr.HasAlternate {
			return NewTree(expr.Alternate, t.resolver).Render()
		}

		return "", nil
	}

	if expr.HasAlternate {
		return NewTree(expr.Alternate, t.resolver).Render()
	}

	return Stringify(result), nil
}

// Stringify 将取值转为字符串。
//
// 浮点数使用最短无损表示，自定义类型优先走 fmt.Stringer。
func Stringify(v any) string {
	switch typed := v.(type) {
	case string:
		return typed
	case fmt.Stringer:
		return typed.String()
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(typed), 'f', -1, 32)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	case uint64:
		return strconv.FormatUint(typed, 10)
	default:
		return fmt.Sprintf("%v", typed)
	}
}
