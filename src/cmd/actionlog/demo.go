// FILE: actionlog/src/cmd/actionlog/demo.go
package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

var errNotLess = errors.New("x should be less than y")

type operands struct {
	X, Y int
}

func addIfLess(ctx context.Context, in operands) (int, error) {
	if in.X > in.Y {
		return 0, errNotLess
	}
	return in.X + in.Y, nil
}

func parseOperands(args []string) (operands, error) {
	if len(args) != 2 {
		return operands{}, fmt.Errorf("expected 2 operands, got %d", len(args))
	}

	x, err := strconv.Atoi(args[0])
	if err != nil {
		return operands{}, fmt.Errorf("invalid x %q: %w", args[0], err)
	}
	y, err := strconv.Atoi(args[1])
	if err != nil {
		return operands{}, fmt.Errorf("invalid y %q: %w", args[1], err)
	}

	return operands{X: x, Y: y}, nil
}
