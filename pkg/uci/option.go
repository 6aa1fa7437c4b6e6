package uci

import (
	"fmt"
	"strconv"
)

// Option is a setting a front end can list with "uci" and change with "setoption".
type Option interface {
	UciName() string
	UciString() string
	Set(s string) error
}

// BoolOption is a "check" option.
type BoolOption struct {
	Name  string
	Value *bool
}

func (opt *BoolOption) UciName() string {
	return opt.Name
}

func (opt *BoolOption) UciString() string {
	return fmt.Sprintf("option name %v type check default %v", opt.Name, *opt.Value)
}

func (opt *BoolOption) Set(s string) error {
	var v, err = strconv.ParseBool(s)
	if err != nil {
		return fmt.Errorf("option %v: %w", opt.Name, err)
	}
	*opt.Value = v
	return nil
}

// IntOption is a "spin" option limited to [Min, Max].
type IntOption struct {
	Name  string
	Min   int
	Max   int
	Value *int
}

func (opt *IntOption) UciName() string {
	return opt.Name
}

func (opt *IntOption) UciString() string {
	return fmt.Sprintf("option name %v type spin default %v min %v max %v",
		opt.Name, *opt.Value, opt.Min, opt.Max)
}

func (opt *IntOption) Set(s string) error {
	var v, err = strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("option %v: %w", opt.Name, err)
	}
	if v < opt.Min || v > opt.Max {
		return fmt.Errorf("option %v: %d out of range [%d, %d]", opt.Name, v, opt.Min, opt.Max)
	}
	*opt.Value = v
	return nil
}
