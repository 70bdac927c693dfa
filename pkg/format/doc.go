// Package format 提供状态栏模板的分词、解析与渲染。
//
// 模板由字面量与花括号表达式组成，表达式引用某个域的某个字段，
// 可携带方括号限定符与 "?" 替代文本：
//
//	{domain.info}
//	{domain[option].info}
//	{domain.info?alt}
//	{domain[option].info?alt}
//
// 替代文本可嵌套任意表达式，也可用空占位符 "{}" 重新嵌入原值；
// 花括号嵌套深度不限，但须在单个表达式内配对。
//
// # 语义说明
//
//  1. 取值为 nil 渲染为空串（硬件缺失不是错误）
//  2. 布尔 true 渲染替代文本，false 渲染为空串
//  3. 其他取值经 [Stringify] 转为文本；携带替代文本时以替代文本为准
//  4. 未知 domain/info 由 [Resolver] 返回 error，渲染中止
//
// # 快速开始
//
// 绑定一个 Resolver 渲染模板：
//
//	tree := format.NewTree("cpu: {cpu.cpu_usage}% mem: {mem.used}", resolver)
//	line, err := tree.Render()
//
// 条件渲染（仅在充电时输出）：
//
//	tree := format.NewTree("{bat.is_charging?charging {bat.percent}%}", resolver)
//
// 详见 [Tree.Render] 文档。
package format
