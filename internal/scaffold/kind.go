// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package scaffold

import (
	"fmt"
	"strings"
)

// Kind is the artifact kind passed to `cfn init -a`.
type Kind string

const (
	KindResource Kind = "RESOURCE"
	KindModule   Kind = "MODULE"
	KindHook     Kind = "HOOK"
)

// Round is one row of the smoke table: which template to scaffold, as which
// artifact kind, and whether the generated handler package is type checked.
type Round struct {
	Kind      Kind   `json:"kind" yaml:"kind"`
	Template  string `json:"template" yaml:"template"`
	TypeCheck bool   `json:"typecheck" yaml:"typecheck"`
}

// Rounds returns the fixed round table in execution order. A fresh slice is
// returned on every call.
func Rounds() []Round {
	return []Round{
		{Kind: KindResource, Template: "AWS::Foo::Bar", TypeCheck: true},
		{Kind: KindModule, Template: "AWS::Foo::Bar::Module"},
		{Kind: KindHook, Template: "AWS::Foo::Bar"},
	}
}

// PackageName derives the Python handler package the language plugin writes
// for a type name: the namespace segments lowercased and joined with "_".
// AWS::Foo::Bar becomes aws_foo_bar.
func PackageName(template string) string {
	parts := strings.Split(template, "::")
	for i, p := range parts {
		parts[i] = strings.ToLower(p)
	}
	return strings.Join(parts, "_")
}

// DefaultCheckPath is the directory the type checker is pointed at when no
// override is configured: the handler package under src/.
func DefaultCheckPath(template string) string {
	return fmt.Sprintf("src/%s/", PackageName(template))
}

// String implements fmt.Stringer.
func (r Round) String() string {
	return fmt.Sprintf("%s(%s)", r.Kind, r.Template)
}
