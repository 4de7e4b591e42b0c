// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/cfnsmoke/internal/output"
	"github.com/tfctl/cfnsmoke/internal/util"
)

// ErrUsage marks command line mistakes.
var ErrUsage = errors.New("usage")

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// IdentifierArg returns the single positional argument of a run.
func IdentifierArg(c *cli.Command) (string, error) {
	if n := c.Args().Len(); n != 1 {
		return "", fmt.Errorf("%w: expected exactly one identifier, got %d", ErrUsage, n)
	}
	return c.Args().First(), nil
}

func OutputValidator(value any) error {
	valid := false
	for _, v := range output.Formats {
		if v == value {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("must be one of %v", output.Formats)
	}
	return nil
}

func TempRootValidator(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("must be a string")
	}
	if _, err := util.ResolveTempRoot(s); err != nil {
		return err
	}
	return nil
}
