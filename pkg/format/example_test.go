package format_test

import (
	"fmt"

	"github.com/Julian-Heng/sys-line-sub000/pkg/format"
)

// exampleResolver 固定返回演示数据。
type exampleResolver struct{}

func (exampleResolver) Query(domain, info string, option *string) (any, error) {
	switch domain + "." + info {
	case "cpu.cores":
		return 8, nil
	case "bat.is_charging":
		return true, nil
	case "bat.percent":
		return 66.0, nil
	}

	return nil, fmt.Errorf("info %q not in domain %q", info, domain)
}

// Example_render 演示基本的模板渲染。
func Example_render() {
	tree := format.NewTree("{cpu.cores} cores", exampleResolver{})
	line, _ := tree.Render()
	fmt.Println(line)

	// Output:
	// 8 cores
}

// Example_alternate 演示布尔条件与替代文本。
func Example_alternate() {
	tree := format.NewTree("{bat.is_charging?charging at {bat.percent}%}", exampleResolver{})
	line, _ := tree.Render()
	fmt.Println(line)

	// Output:
	// charging at 66%
}

// Example_tokenize 演示分词结果。
func Example_tokenize() {
	for _, token := range format.Tokenize("load {cpu.load_avg} up {cpu.uptime}") {
		fmt.Printf("%q\n", token)
	}

	// Output:
	// "load "
	// "{cpu.load_avg}"
	// " up "
	// "{cpu.uptime}"
}
