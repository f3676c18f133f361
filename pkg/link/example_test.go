package link_test

import (
	"fmt"

	"github.com/matzehuels/suechart/pkg/link"
)

func ExampleDecode() {
	l := link.Decode(link.EncodeMaster("Revenue", "3f1c"))
	fmt.Println(l.Role, l.DisplayName, l.Payload)

	l = link.Decode("Just a rectangle")
	fmt.Println(l.Role, l.DisplayName)
	// Output:
	// master Revenue 3f1c
	// none Just a rectangle
}
