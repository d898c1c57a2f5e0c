package main

import (
	"fmt"
	"reflect"

	"github.com/alecthomas/kong"

	"github.com/gogpu/ggplot"
)

// TypeMappers contains all the kong.TypeMapper options that should be used
// when parsing at the top-level.
var TypeMappers = []kong.Option{
	kong.TypeMapper(reflect.TypeOf(ggplot.RGBA{}), kong.MapperFunc(func(ctx *kong.DecodeContext, target reflect.Value) error {
		var s string
		if err := ctx.Scan.PopValueInto("color", &s); err != nil {
			return err
		}

		c, err := ggplot.ParseColor(s)
		if err != nil {
			return fmt.Errorf(`must be a color name or hex value but got "%s"`, s)
		}

		target.Set(reflect.ValueOf(c))
		return nil
	})),
}
