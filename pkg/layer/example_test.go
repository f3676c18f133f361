package layer_test

import (
	"fmt"

	"github.com/matzehuels/suechart/pkg/layer"
)

func ExampleFlatten() {
	root, err := layer.ImportSVG(`<svg width="300" height="200"><g><g><g><rect/><line/></g></g></g><g/></svg>`)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("before:", layer.GroupDepth(root), "nested groups")

	flat, _ := layer.Flatten(root)
	fmt.Println("after:", layer.GroupDepth(flat), "nested groups")
	fmt.Println(flat, flat.Children)

	frame := layer.Place(flat, layer.Frame{X: 40, Y: 60, Width: 300, Height: 200})
	fmt.Printf("%+v\n", frame)
	// Output:
	// before: 3 nested groups
	// after: 0 nested groups
	// svg(2) [rect line]
	// {X:40 Y:60 Width:300 Height:200}
}
