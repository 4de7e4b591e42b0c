// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/tfctl/cfnsmoke/internal/log"
)

// schemaTag is one attribute path of the machine readable report.
type schemaTag struct {
	Name string
	Type string
}

// maxSchemaDepth limits the depth of schema walking to prevent infinite
// recursion.
const maxSchemaDepth = 4

// DumpReportSchema writes the attribute paths of the json and yaml reports
// (--schema).
func DumpReportSchema(w io.Writer) {
	DumpSchema(w, reflect.TypeOf(document{}))
}

// DumpSchema writes a sorted list of the dotted json attribute paths of typ to
// w, one per line with the Go kind alongside. Slices are marked with "[]".
func DumpSchema(w io.Writer, typ reflect.Type) {
	fmt.Fprintln(w,
		`Attributes of the --output=json and --output=yaml report. Slices are shown
as name[] and their elements as name[].attr.`)
	fmt.Fprintln(w, "")

	tags := dumpSchemaWalker("", typ, 0)
	if len(tags) == 0 {
		log.Debugf("No tags found for type: %s", typ.Name())
		return
	}

	sort.Slice(tags, func(i, j int) bool {
		return tags[i].Name < tags[j].Name
	})

	width := 0
	for _, tag := range tags {
		width = max(width, len(tag.Name))
	}
	for _, tag := range tags {
		fmt.Fprintf(w, "%-*s  %s\n", width, tag.Name, tag.Type)
	}
}

// dumpSchemaWalker walks a struct type collecting json tags. Embedded structs
// are flattened the way encoding/json flattens them.
func dumpSchemaWalker(holder string, typ reflect.Type, depth int) []schemaTag {
	tags := make([]schemaTag, 0)
	if typ.Kind() != reflect.Struct {
		return tags
	}

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			tags = append(tags, dumpSchemaWalker(holder, field.Type, depth)...)
			continue
		}

		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = field.Name
		}
		if holder != "" {
			name = holder + "." + name
		}

		ft := field.Type
		if ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}

		switch {
		case ft == reflect.TypeOf(time.Time{}) || ft == reflect.TypeOf(time.Duration(0)):
			tags = append(tags, schemaTag{Name: name, Type: ft.String()})
		case ft.Kind() == reflect.Struct && depth < maxSchemaDepth:
			tags = append(tags, dumpSchemaWalker(name, ft, depth+1)...)
		case ft.Kind() == reflect.Slice && ft.Elem().Kind() == reflect.Struct && depth < maxSchemaDepth:
			tags = append(tags, schemaTag{Name: name + "[]", Type: "list"})
			tags = append(tags, dumpSchemaWalker(name+"[]", ft.Elem(), depth+1)...)
		default:
			tags = append(tags, schemaTag{Name: name, Type: ft.Kind().String()})
		}
	}

	return tags
}
