// Code generated by hand. DO NOT EDIT.

package a

func generated(c *Counter) int {
	return c.Value
}
